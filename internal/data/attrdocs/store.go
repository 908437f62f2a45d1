// Package attrdocs persists documented-instance-attribute facts produced
// by the external source analyzer, keyed by project. The member
// enumerator consumes them as (namespace, name) pairs.
package attrdocs

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"docscope/internal/engine/members"
)

const sqliteDriverName = "sqlite"

type Store struct {
	db         *sql.DB
	projectKey string
}

var _ members.Analyzer = (*Store)(nil)

func Open(path, projectKey string, busyTimeout time.Duration) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("attr docs store path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("attr docs store path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create attr docs directory %q: %w", dir, err)
		}
	}

	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", cleanPath, busyTimeout.Milliseconds())
	db, err := sql.Open(sqliteDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open attr docs store %q: %w", cleanPath, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping attr docs store %q: %w", cleanPath, err)
	}

	if err := migrateSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	key := strings.TrimSpace(projectKey)
	if key == "" {
		key = "default"
	}

	return &Store{db: db, projectKey: key}, nil
}

func migrateSchema(db *sql.DB) error {
	var version int
	_ = db.QueryRow(`PRAGMA user_version`).Scan(&version)

	if version == 0 {
		_, err := db.Exec(`
CREATE TABLE attr_docs (
  project_key TEXT NOT NULL,
  namespace TEXT NOT NULL,
  attr_name TEXT NOT NULL,
  doc TEXT NOT NULL DEFAULT '',
  PRIMARY KEY (project_key, namespace, attr_name)
);
CREATE INDEX idx_attr_docs_project_namespace ON attr_docs(project_key, namespace);

PRAGMA user_version = 1;
`)
		if err != nil {
			return fmt.Errorf("create attr docs schema: %w", err)
		}
	}
	return nil
}

// UpsertDoc records one documented attribute for namespace.
func (s *Store) UpsertDoc(namespace, name, doc string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store not initialized")
	}
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO attr_docs (project_key, namespace, attr_name, doc) VALUES (?, ?, ?, ?)`,
		s.projectKey, namespace, name, doc)
	if err != nil {
		return fmt.Errorf("upsert attr doc %s.%s: %w", namespace, name, err)
	}
	return nil
}

// DeleteNamespace drops every fact recorded for namespace.
func (s *Store) DeleteNamespace(namespace string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store not initialized")
	}
	_, err := s.db.Exec(
		`DELETE FROM attr_docs WHERE project_key = ? AND namespace = ?`,
		s.projectKey, namespace)
	if err != nil {
		return fmt.Errorf("delete attr docs for %s: %w", namespace, err)
	}
	return nil
}

// FindAttrDocs returns every fact for the project, satisfying the
// enumerator's analyzer contract.
func (s *Store) FindAttrDocs() ([]members.AttrDoc, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store not initialized")
	}
	rows, err := s.db.Query(
		`SELECT namespace, attr_name FROM attr_docs WHERE project_key = ? ORDER BY namespace, attr_name`,
		s.projectKey)
	if err != nil {
		return nil, fmt.Errorf("query attr docs: %w", err)
	}
	defer rows.Close()

	out := make([]members.AttrDoc, 0)
	for rows.Next() {
		var doc members.AttrDoc
		if err := rows.Scan(&doc.Namespace, &doc.Name); err != nil {
			continue
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Doc returns the documentation text for one attribute, empty when
// unknown.
func (s *Store) Doc(namespace, name string) (string, error) {
	if s == nil || s.db == nil {
		return "", fmt.Errorf("store not initialized")
	}
	var doc string
	err := s.db.QueryRow(
		`SELECT doc FROM attr_docs WHERE project_key = ? AND namespace = ? AND attr_name = ?`,
		s.projectKey, namespace, name).Scan(&doc)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load attr doc %s.%s: %w", namespace, name, err)
	}
	return doc, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
