package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	appErrors "todo/internal/errors"
	"todo/internal/todo"
)

// SQLiteStore keeps records in a todos table. Saves replace the whole table
// inside one transaction; position keeps display order.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS todos (
	id TEXT PRIMARY KEY,
	text TEXT NOT NULL,
	done INTEGER NOT NULL DEFAULT 0,
	position INTEGER NOT NULL,
	updated_at TEXT NOT NULL DEFAULT ''
);`
	if _, err := s.db.Exec(ddl); err != nil {
		return err
	}
	return s.ensureColumns()
}

// ensureColumns upgrades tables created before updated_at existed.
func (s *SQLiteStore) ensureColumns() error {
	required := map[string]string{
		"updated_at": "ALTER TABLE todos ADD COLUMN updated_at TEXT NOT NULL DEFAULT '';",
	}
	existing := map[string]struct{}{}
	rows, err := s.db.Query(`PRAGMA table_info(todos);`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		existing[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for col, alter := range required {
		if _, ok := existing[col]; ok {
			continue
		}
		if _, err := s.db.Exec(alter); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Load() ([]todo.Record, error) {
	rows, err := s.db.Query(`SELECT id, text, done FROM todos ORDER BY position;`)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeLoadFailed, "query todos", err)
	}
	defer rows.Close()

	var records []todo.Record
	for rows.Next() {
		var idStr, text string
		var doneInt int
		if err := rows.Scan(&idStr, &text, &doneInt); err != nil {
			return nil, appErrors.New(appErrors.CodeLoadFailed, "scan todo", err)
		}
		id, err := uuid.Parse(idStr)
		if err == nil && id == uuid.Nil {
			err = errors.New("nil id")
		}
		if err != nil {
			return nil, appErrors.New(appErrors.CodeCorruptStore, fmt.Sprintf("todo id %q", idStr), err)
		}
		records = append(records, todo.Record{ID: id, Text: text, Done: doneInt == 1})
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.New(appErrors.CodeLoadFailed, "read todos", err)
	}
	return records, nil
}

func (s *SQLiteStore) Save(records []todo.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return appErrors.New(appErrors.CodeSaveFailed, "begin", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM todos;`); err != nil {
		return appErrors.New(appErrors.CodeSaveFailed, "clear todos", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for i, r := range records {
		done := 0
		if r.Done {
			done = 1
		}
		_, err := tx.Exec(`INSERT INTO todos (id, text, done, position, updated_at) VALUES (?, ?, ?, ?, ?);`,
			r.ID.String(), r.Text, done, i, now)
		if err != nil {
			return appErrors.New(appErrors.CodeSaveFailed, "insert todo", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return appErrors.New(appErrors.CodeSaveFailed, "commit", err)
	}
	return nil
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
