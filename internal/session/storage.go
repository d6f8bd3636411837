package session

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Storage keys of the persisted snapshot.
const (
	KeyGameConfig = "gameConfig"
	KeyGameState  = "gameState"
)

// Storage is a JSON-serializing key/value store.
// storage.Store implements it on SQLite.
type Storage interface {
	// Get decodes the value under key into v and reports whether it existed.
	Get(key string, v any) (bool, error)

	// Set replaces the value under key.
	Set(key string, v any) error

	// Remove deletes key. Missing keys are not an error.
	Remove(key string) error

	// Clear deletes every key.
	Clear() error
}

// MemoryStorage is an in-process Storage. Values are kept as JSON so reads
// never alias the caller's data.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		data: map[string][]byte{},
	}
}

func (m *MemoryStorage) Get(key string, v any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("memory storage: decode %s: %w", key, err)
	}
	return true, nil
}

func (m *MemoryStorage) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("memory storage: encode %s: %w", key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

// SetRaw stores already encoded JSON under key.
func (m *MemoryStorage) SetRaw(key string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), raw...)
}

func (m *MemoryStorage) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string][]byte{}
	return nil
}
