package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// FileStore persists keys as a single JSON object on disk. The whole file is
// rewritten on every mutation; reads are served from memory after the initial
// load. A corrupt or missing file loads as empty.
type FileStore struct {
	path   string
	lock   sync.RWMutex
	values map[string]string
}

var _ Store = (*FileStore)(nil)

// DefaultPath returns the state file location under the user config dir,
// falling back to the home directory when the platform reports none.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "consolectl", "state.json")
}

// OpenFileStore loads the store at path, creating parent directories as
// needed. Unreadable or malformed contents are discarded rather than
// reported: persisted state is a cache, not a source of truth.
func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "[OpenFileStore] MkdirAll")
	}

	fs := &FileStore{path: path, values: make(map[string]string)}
	data, err := os.ReadFile(path)
	if err != nil {
		return fs, nil
	}
	if err := json.Unmarshal(data, &fs.values); err != nil {
		fs.values = make(map[string]string)
	}
	return fs, nil
}

func (fs *FileStore) Get(key string) (string, bool) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	v, ok := fs.values[key]
	return v, ok
}

func (fs *FileStore) Set(key, value string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.values[key] = value
	return fs.flush()
}

func (fs *FileStore) Remove(key string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	if _, ok := fs.values[key]; !ok {
		return nil
	}
	delete(fs.values, key)
	return fs.flush()
}

func (fs *FileStore) flush() error {
	data, err := json.MarshalIndent(fs.values, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[FileStore.flush] MarshalIndent")
	}
	if err := os.WriteFile(fs.path, data, 0o600); err != nil {
		return errors.Wrap(err, "[FileStore.flush] WriteFile")
	}
	return nil
}
