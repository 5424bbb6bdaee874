package storage

import (
	"fmt"
	"strings"

	appErrors "todo/internal/errors"
	"todo/internal/todo"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Backend is a todo.Store that holds resources until closed.
type Backend interface {
	todo.Store
	Close() error
}

// Open returns the backend named kind, rooted at path.
func Open(kind, path string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", BackendJSON:
		return NewFileStore(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, appErrors.New(appErrors.CodeConfigurationError, fmt.Sprintf("unknown storage backend %q", kind), nil)
	}
}
