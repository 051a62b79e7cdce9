package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/consolehq/go-console-client/storage"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	fs, err := storage.OpenFileStore(path)
	require.NoError(t, err)

	require.NoError(t, fs.Set("token", "tok-123"))
	require.NoError(t, fs.Set("email", "admin@nike.com"))

	v, ok := fs.Get("token")
	require.True(t, ok)
	require.Equal(t, "tok-123", v)

	// A second open sees what the first wrote.
	fs2, err := storage.OpenFileStore(path)
	require.NoError(t, err)
	v, ok = fs2.Get("email")
	require.True(t, ok)
	require.Equal(t, "admin@nike.com", v)
}

func TestFileStoreRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	fs, err := storage.OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, fs.Set("token", "tok-123"))

	require.NoError(t, fs.Remove("token"))
	_, ok := fs.Get("token")
	require.False(t, ok)

	// Removing an absent key is fine.
	require.NoError(t, fs.Remove("token"))
}

func TestFileStoreCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "state.json")

	fs, err := storage.OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, fs.Set("token", "tok"))

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestFileStoreToleratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{definitely not json"), 0o600))

	fs, err := storage.OpenFileStore(path)
	require.NoError(t, err)

	_, ok := fs.Get("token")
	require.False(t, ok)

	// The store stays usable after discarding the corrupt contents.
	require.NoError(t, fs.Set("token", "tok"))
	v, ok := fs.Get("token")
	require.True(t, ok)
	require.Equal(t, "tok", v)
}

func TestMemStore(t *testing.T) {
	ms := storage.NewMemStore()

	_, ok := ms.Get("token")
	require.False(t, ok)

	require.NoError(t, ms.Set("token", "tok"))
	require.NoError(t, ms.Set("email", "admin@nike.com"))
	require.Equal(t, 2, ms.Len())

	v, ok := ms.Get("token")
	require.True(t, ok)
	require.Equal(t, "tok", v)

	require.NoError(t, ms.Remove("token"))
	require.Equal(t, 1, ms.Len())
}
