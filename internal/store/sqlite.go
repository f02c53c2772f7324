package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/alexanderramin/rotina/internal/domain"
)

// sqliteStore keeps everything in one kv table. Collections and meta keys
// share the table under distinct key prefixes.
type sqliteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (and if needed creates) a SQLite-backed store at path.
// ":memory:" is accepted for tests. Sets WAL mode, like every other SQLite
// consumer in this codebase's lineage.
func OpenSQLite(path string) (Store, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: setting WAL mode: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: creating schema: %w", err)
	}

	return &sqliteStore{db: db, path: path}, nil
}

func (s *sqliteStore) get(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return value, nil
}

func (s *sqliteStore) put(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (s *sqliteStore) Get(c domain.Collection) ([]byte, error) {
	return s.get(collectionKey(c))
}

// Set writes the payload and the lastModified bump in one transaction so a
// crash cannot leave the clock behind the data.
func (s *sqliteStore) Set(c domain.Collection, data []byte) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	upsert := `INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.Exec(upsert, collectionKey(c), data); err != nil {
		return fmt.Errorf("store: write %s: %w", c, err)
	}
	if _, err := tx.Exec(upsert, metaKey(MetaLastModified), []byte(nowMeta())); err != nil {
		return fmt.Errorf("store: bump lastModified: %w", err)
	}
	return tx.Commit()
}

func (s *sqliteStore) GetMeta(key string) (string, error) {
	data, err := s.get(metaKey(key))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *sqliteStore) SetMeta(key, value string) error {
	return s.put(metaKey(key), []byte(value))
}

func (s *sqliteStore) DeleteMeta(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", metaKey(key)); err != nil {
		return fmt.Errorf("store: delete meta %s: %w", key, err)
	}
	return nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }
