package storage

import (
	"encoding/json"
	"fmt"
	"os"
)

// FileStore persists keys as a JSON object in a single file, standing in
// for the mobile platform's key-value storage. Values survive client
// restarts; the file is rewritten on every mutation.
type FileStore struct {
	path   string
	values map[string]string
}

// NewFileStore opens or creates the store at path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.values); err != nil {
			return nil, fmt.Errorf("failed to parse session file: %w", err)
		}
	}

	return s, nil
}

func (s *FileStore) Get(key string) (string, error) {
	value, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *FileStore) Set(key, value string) error {
	s.values[key] = value
	return s.flush()
}

func (s *FileStore) Delete(key string) error {
	delete(s.values, key)
	return s.flush()
}

func (s *FileStore) flush() error {
	raw, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session file: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}
