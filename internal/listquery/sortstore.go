package listquery

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const (
	sortFieldSuffix     = "_sort_orderBy"
	sortDirectionSuffix = "_sort_order"
)

// Store is durable key-value storage for per-entity view preferences.
// Injected into the controller so tests can substitute an in-memory stub.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// MemStore is a Store backed by a plain map. Zero value is not usable,
// call NewMemStore.
type MemStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{values: map[string]string{}}
}

func (s *MemStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// FileStore persists keys as a JSON object in a single file. It is the
// durable analog of browser local storage for the terminal front-end.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.load()
	if err != nil {
		return "", false
	}
	v, ok := values[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.load()
	if err != nil {
		return err
	}
	delete(values, key)
	return s.save(values)
}

func (s *FileStore) load() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	values := map[string]string{}
	if err := json.Unmarshal(raw, &values); err != nil {
		// corrupted preference file, start over
		return map[string]string{}, nil
	}
	return values, nil
}

func (s *FileStore) save(values map[string]string) error {
	raw, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// loadSort reads the persisted sort pair for an entity, falling back per
// missing part to the provided defaults.
func loadSort(store Store, entity, defaultField string) (string, Direction) {
	field := defaultField
	direction := Asc
	if v, ok := store.Get(entity + sortFieldSuffix); ok && v != "" {
		field = v
	}
	if v, ok := store.Get(entity + sortDirectionSuffix); ok {
		if d := Direction(v); d == Asc || d == Desc {
			direction = d
		}
	}
	return field, direction
}

func saveSort(store Store, entity, field string, direction Direction) {
	_ = store.Set(entity+sortFieldSuffix, field)
	_ = store.Set(entity+sortDirectionSuffix, string(direction))
}

func clearSort(store Store, entity string) {
	_ = store.Delete(entity + sortFieldSuffix)
	_ = store.Delete(entity + sortDirectionSuffix)
}
