package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Postgres driver registered as "pgx" for database/sql.
	_ "github.com/jackc/pgx/v4/stdlib"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db      *sql.DB
	dialect string
}

// Open creates a new Store for dsn. DSNs starting with postgres:// or
// postgresql:// connect to Postgres; anything else is a SQLite path or URI.
// SQLite connections get the recommended pragmas. Tables are created if
// missing.
func Open(dsn string) (*Store, error) {
	driverName, dia := resolveDriver(dsn)

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dia == dialect.SQLite {
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	if err := migrate(context.Background(), db, dia); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db, dialect: dia}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect returns the ent dialect name in use ("sqlite3" or "postgres").
func (s *Store) Dialect() string {
	return s.dialect
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// KVRepo returns the durable key-value map backed by this store.
func (s *Store) KVRepo() KVRepo {
	return &kvRepo{db: s.db, dialect: s.dialect}
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, dialect: s.dialect}
}

// table returns a dialect-aware table reference for the query builder.
func table(dia, name string) *entsql.SelectTable {
	return entsql.Dialect(dia).Table(name)
}

func resolveDriver(dsn string) (driverName, dia string) {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return "pgx", dialect.Postgres
	}
	return "sqlite", dialect.SQLite
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. AILEARN_DB environment variable
// 2. $XDG_DATA_HOME/ailearn/ailearn.db
// 3. ~/.local/share/ailearn/ailearn.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("AILEARN_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "ailearn.db")
	return p, EnsureDir(p)
}

// DataDir returns the application data directory,
// $XDG_DATA_HOME/ailearn or ~/.local/share/ailearn. It is not created.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "ailearn"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
// Postgres DSNs and SQLite URIs are left alone.
func EnsureDir(path string) error {
	if d, _ := resolveDriver(path); d != "sqlite" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
