package cart

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Store persists the full entry set. Save overwrites the previous
// snapshot; there is no merging, last write wins.
type Store interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
}

// MemoryStore keeps the snapshot in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Load() ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *MemoryStore) Save(entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make([]Entry, len(entries))
	copy(m.entries, entries)
	return nil
}

// FileStore writes the snapshot as one JSON array to a single file,
// the server-side analog of the browser's localStorage "cart" key.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

var _ Store = (*FileStore)(nil)

func (f *FileStore) Load() ([]Entry, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	return entries, nil
}

func (f *FileStore) Save(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	return os.WriteFile(f.path, data, 0o644)
}
