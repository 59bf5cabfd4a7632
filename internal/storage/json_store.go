package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/facultyboard/internal/models"
)

const jsonStoreVersion = 1

type jsonDocument struct {
	Version    int                                 `json:"version"`
	Timetables map[string]map[string]models.Period `json:"timetables"`
}

// JSONStore is a MemoryStore mirrored to a single JSON file after every
// change.
type JSONStore struct {
	*MemoryStore
	path string
}

func NewJSONStore(path string) *JSONStore {
	s := &JSONStore{MemoryStore: NewMemoryStore(), path: path}
	s.onSave = s.save
	return s
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'facultyboard init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > jsonStoreVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d)", doc.Version, jsonStoreVersion)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.weeks = doc.Timetables
	if s.weeks == nil {
		s.weeks = make(map[string]map[string]models.Period)
	}
	for id, week := range s.weeks {
		if week == nil {
			s.weeks[id] = make(map[string]models.Period)
		}
	}
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// save must be called with the write lock held.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(jsonDocument{Version: jsonStoreVersion, Timetables: s.weeks}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}
