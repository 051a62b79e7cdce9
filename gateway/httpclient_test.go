package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/consolehq/go-console-client/gateway"
)

func TestLoginDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "admin@nike.com", body["email"])
		require.Equal(t, "password", body["password"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"userId": "userId1",
			"token":  "tok-123",
			"organizationsList": []map[string]string{
				{"id": "orgId1", "name": "Org One"},
				{"id": "orgId2", "name": "Org Two"},
			},
		})
	}))
	defer server.Close()

	client := gateway.NewHTTPClient(server.URL)
	result, err := client.Login(context.Background(), "admin@nike.com", "password")
	require.NoError(t, err)

	require.Equal(t, "userId1", result.UserID)
	require.Equal(t, "tok-123", result.Token)
	require.Len(t, result.Organizations, 2)
	require.Equal(t, "Org One", result.Organizations[0].Name)
	// The response omitted the email; the request's is kept.
	require.Equal(t, "admin@nike.com", result.Email)
}

func TestLoginSurfacesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid email or password"})
	}))
	defer server.Close()

	client := gateway.NewHTTPClient(server.URL)
	_, err := client.Login(context.Background(), "admin@nike.com", "nope")
	require.EqualError(t, err, "Invalid email or password")
}

func TestLoginFallbackMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := gateway.NewHTTPClient(server.URL)
	_, err := client.Login(context.Background(), "admin@nike.com", "password")
	require.EqualError(t, err, "Login failed")
}

func TestLoginTransportFailureFallsBack(t *testing.T) {
	// A server that is not there: transport errors collapse into the same
	// fallback message as application rejections.
	client := gateway.NewHTTPClient("http://127.0.0.1:1")
	_, err := client.Login(context.Background(), "admin@nike.com", "password")
	require.EqualError(t, err, "Login failed")
}

func TestBearerTokenAttachedAfterAuthorization(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := gateway.NewHTTPClient(server.URL)
	client.SetAuthorization("tok-123")

	_, err := client.FetchUsers(context.Background(), "orgId1")
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClearAuthorizationIsIdempotent(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := gateway.NewHTTPClient(server.URL)
	client.SetAuthorization("tok-123")
	client.ClearAuthorization()
	client.ClearAuthorization()

	_, err := client.FetchUsers(context.Background(), "orgId1")
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestFetchProfileQueryAndNormalization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/current-user", r.URL.Path)
		require.Equal(t, "userId1", r.URL.Query().Get("userId"))
		require.Equal(t, "orgId2", r.URL.Query().Get("orgId"))

		// Single role object, capitalized keys: the shape the API actually
		// sends for this endpoint.
		_, _ = w.Write([]byte(`{
			"Id": "userId1",
			"Email": "userId1@example.com",
			"Role": {
				"Id": "role3",
				"Name": "Manager",
				"Permissions": [{"Id": "perm6", "Name": "View"}]
			}
		}`))
	}))
	defer server.Close()

	client := gateway.NewHTTPClient(server.URL)
	fragment, err := client.FetchProfile(context.Background(), "userId1", "orgId2")
	require.NoError(t, err)

	require.Equal(t, "userId1", fragment.UserID)
	require.Len(t, fragment.Roles, 1)
	require.Equal(t, "Manager", fragment.Roles[0].Name)
}

func TestFetchProfileFallbackMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := gateway.NewHTTPClient(server.URL)
	_, err := client.FetchProfile(context.Background(), "userId1", "orgId1")
	require.EqualError(t, err, "Failed to fetch current user data")
}

func TestCreateInviteePostsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/invitees", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "new.user@example.com", body["email"])
		require.Equal(t, "role2", body["role"])

		_ = json.NewEncoder(w).Encode(gateway.Invitee{
			ID:     "inv1",
			Email:  body["email"],
			Status: gateway.InviteePending,
		})
	}))
	defer server.Close()

	client := gateway.NewHTTPClient(server.URL)
	invitee, err := client.CreateInvitee(context.Background(), "orgId1", "new.user@example.com", "role2")
	require.NoError(t, err)
	require.Equal(t, gateway.InviteePending, invitee.Status)
}
