package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sparks/internal/modules/account/domain"
	accountout "sparks/internal/modules/account/port/out"
	apperrors "sparks/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const (
	keyAuthToken = "auth_token"
	keyUserData  = "user_data"
)

type SQLiteCredentialStore struct {
	db *sql.DB
}

func NewSQLiteCredentialStore(dbPath string) (*SQLiteCredentialStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	store := &SQLiteCredentialStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

var _ accountout.CredentialStore = (*SQLiteCredentialStore)(nil)

func (s *SQLiteCredentialStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteCredentialStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

// Save writes the token and the profile snapshot in one transaction.
func (s *SQLiteCredentialStore) Save(ctx context.Context, creds domain.Credentials) error {
	snapshot, err := json.Marshal(creds.Profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if err := put(ctx, tx, keyAuthToken, creds.Token); err != nil {
		return err
	}
	if err := put(ctx, tx, keyUserData, string(snapshot)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit credentials: %w", err)
	}
	return nil
}

func (s *SQLiteCredentialStore) SaveProfile(ctx context.Context, profile domain.Profile) error {
	snapshot, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return put(ctx, s.db, keyUserData, string(snapshot))
}

func (s *SQLiteCredentialStore) Load(ctx context.Context) (domain.Credentials, error) {
	token, err := s.get(ctx, keyAuthToken)
	if err != nil {
		return domain.Credentials{}, err
	}
	snapshot, err := s.get(ctx, keyUserData)
	if err != nil {
		return domain.Credentials{}, err
	}
	creds := domain.Credentials{Token: token}
	if err := json.Unmarshal([]byte(snapshot), &creds.Profile); err != nil {
		return domain.Credentials{}, fmt.Errorf("decode user data: %w", err)
	}
	return creds, nil
}

func (s *SQLiteCredentialStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key IN (?, ?)`, keyAuthToken, keyUserData); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (s *SQLiteCredentialStore) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.ErrNoStoredSession
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return value, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func put(ctx context.Context, db execer, key, value string) error {
	const stmt = `
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at;
`
	if _, err := db.ExecContext(ctx, stmt, key, value, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
