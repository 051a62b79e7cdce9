package storage

import "sync"

// MemStore is an in-memory Store. Tests inject it in place of the file-backed
// store; embedders that want a session without persistence can too.
type MemStore struct {
	lock   sync.RWMutex
	values map[string]string
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

func (ms *MemStore) Get(key string) (string, bool) {
	ms.lock.RLock()
	defer ms.lock.RUnlock()
	v, ok := ms.values[key]
	return v, ok
}

func (ms *MemStore) Set(key, value string) error {
	ms.lock.Lock()
	defer ms.lock.Unlock()
	ms.values[key] = value
	return nil
}

func (ms *MemStore) Remove(key string) error {
	ms.lock.Lock()
	defer ms.lock.Unlock()
	delete(ms.values, key)
	return nil
}

// Len reports the number of stored keys. Used by tests asserting that logout
// clears everything.
func (ms *MemStore) Len() int {
	ms.lock.RLock()
	defer ms.lock.RUnlock()
	return len(ms.values)
}
