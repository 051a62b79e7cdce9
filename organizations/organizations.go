package organizations

// Summary is a lightweight reference to an organization the authenticated user
// belongs to. The list is fetched once at login and held for the lifetime of
// the session.
type Summary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Organization is the full entity as returned by the organizations collection
// endpoint.
type Organization struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CreatedDate string `json:"createdDate,omitempty"`
}

// NameByID returns the display name for id within list. Unknown ids resolve
// to the empty string rather than an error; the session keeps working with a
// blank organization name when the server permits a switch the client has no
// summary for.
func NameByID(list []Summary, id string) string {
	for _, org := range list {
		if org.ID == id {
			return org.Name
		}
	}
	return ""
}
