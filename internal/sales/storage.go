package sales

import "sync"

// Storage is the key-value slot the collection is persisted into.
// Get reports ok=false when the key has never been written.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// LocalStorage provides an in-memory implementation of Storage.
type LocalStorage struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewLocalStorage instantiates a new LocalStorage with an empty map.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		m: map[string]string{},
	}
}

// Get returns the raw value stored under key.
func (l *LocalStorage) Get(key string) (string, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.m[key]
	return v, ok, nil
}

// Set overwrites the value stored under key.
func (l *LocalStorage) Set(key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.m[key] = value
	return nil
}
