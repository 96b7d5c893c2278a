package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const (
	keyAuthToken = "auth_token"
	keyUserData  = "user_data"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dbPath, err := resolveDBPath(path)
	if err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, errors.Join(err, cerr)
		}
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func resolveDBPath(path string) (string, error) {
	abs := filepath.Clean(path)
	if strings.HasSuffix(abs, ".db") {
		if err := os.MkdirAll(filepath.Dir(abs), 0o750); err != nil {
			return "", err
		}
		return abs, nil
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return "", err
	}
	return filepath.Join(abs, "state.db"), nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS credentials (key TEXT PRIMARY KEY, value BLOB NOT NULL);",
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveCredentials persists the token and serialized user in one
// transaction so a reader never sees a token without its user.
func (s *SQLiteStore) SaveCredentials(token string, user []byte) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	upsert := `INSERT INTO credentials (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.Exec(upsert, keyAuthToken, []byte(token)); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	if _, err := tx.Exec(upsert, keyUserData, user); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	return tx.Commit()
}

// Credentials returns the stored token and user. Absent rows yield
// empty values, not an error.
func (s *SQLiteStore) Credentials() (string, []byte, error) {
	token, err := s.get(keyAuthToken)
	if err != nil {
		return "", nil, err
	}
	user, err := s.get(keyUserData)
	if err != nil {
		return "", nil, err
	}
	return string(token), user, nil
}

func (s *SQLiteStore) ClearCredentials() error {
	_, err := s.db.Exec(`DELETE FROM credentials WHERE key IN (?, ?)`, keyAuthToken, keyUserData)
	return err
}

func (s *SQLiteStore) get(key string) ([]byte, error) {
	var raw []byte
	err := s.db.QueryRow(`SELECT value FROM credentials WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}
