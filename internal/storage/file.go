package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	appErrors "todo/internal/errors"
	"todo/internal/todo"
)

// FileStore keeps every record in one pretty-printed JSON array. Each save
// rewrites the whole file in place.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("store path is empty")
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Path() string { return s.path }

// Load returns no records and no error when the file does not exist yet.
// Unparsable content, including a record without an id, is reported as
// CodeCorruptStore.
func (s *FileStore) Load() ([]todo.Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, appErrors.New(appErrors.CodeLoadFailed, "read "+s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var records []todo.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, appErrors.New(appErrors.CodeCorruptStore, "parse "+s.path, err)
	}
	for i, r := range records {
		if r.ID == uuid.Nil {
			return nil, appErrors.New(appErrors.CodeCorruptStore, fmt.Sprintf("parse %s: record %d has no id", s.path, i), nil)
		}
	}
	return records, nil
}

func (s *FileStore) Save(records []todo.Record) error {
	if records == nil {
		records = []todo.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return appErrors.New(appErrors.CodeSaveFailed, "encode todos", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return appErrors.New(appErrors.CodeSaveFailed, "create store directory", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return appErrors.New(appErrors.CodeSaveFailed, "write "+s.path, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
