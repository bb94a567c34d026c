// Package store provides key-value implementations of todo.Repository.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite" // pure-Go SQLite driver, no CGO required

	"github.com/MihkelHunter/mkTasks/internal/todo"
)

type dialect struct {
	driver string
	schema string
	upsert string
}

var (
	sqliteDialect = dialect{
		driver: "sqlite",
		schema: `
CREATE TABLE IF NOT EXISTS kv_entries (
	name  TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`,
		upsert: `INSERT INTO kv_entries (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
	}

	mysqlDialect = dialect{
		driver: "mysql",
		schema: `
CREATE TABLE IF NOT EXISTS kv_entries (
	name  VARCHAR(191) PRIMARY KEY,
	value LONGTEXT NOT NULL
)`,
		upsert: `INSERT INTO kv_entries (name, value) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE value = VALUES(value)`,
	}
)

// SQLStore implements todo.Repository on a single kv_entries table.
type SQLStore struct {
	db *sql.DB
	d  dialect
}

// NewSQLite opens (or creates) a SQLite database at the given path.
func NewSQLite(path string) (*SQLStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	return open(sqliteDialect, path)
}

// NewMySQL connects to a MySQL server using dsn.
func NewMySQL(dsn string) (*SQLStore, error) {
	return open(mysqlDialect, dsn)
}

func open(d dialect, dsn string) (*SQLStore, error) {
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if _, err := db.Exec(d.schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLStore{db: db, d: d}, nil
}

func (s *SQLStore) Get(key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv_entries WHERE name = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Put writes all records in one transaction.
func (s *SQLStore) Put(records ...todo.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, r := range records {
		if _, err := tx.Exec(s.d.upsert, r.Key, string(r.Value)); err != nil {
			tx.Rollback()
			return fmt.Errorf("put %s: %w", r.Key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

var _ todo.Repository = (*SQLStore)(nil)
