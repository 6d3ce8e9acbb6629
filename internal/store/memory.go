package store

import "sync"

// MemoryBackend keeps the store value in memory. It is used in tests and
// anywhere a throwaway store is wanted.
type MemoryBackend struct {
	mu    sync.Mutex
	data  *Data
	Saves int // number of Save calls
}

// NewMemoryBackend returns a backend seeded with a copy of d, or empty if d is nil.
func NewMemoryBackend(d *Data) *MemoryBackend {
	m := &MemoryBackend{}
	if d != nil {
		m.data = d.Clone().normalize()
	}
	return m
}

// Load returns a copy of the current value.
func (m *MemoryBackend) Load() (*Data, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return Empty(), nil
	}
	return m.data.Clone(), nil
}

// Save replaces the current value with a copy of d.
func (m *MemoryBackend) Save(d *Data) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = d.Clone().normalize()
	m.Saves++
	return nil
}
