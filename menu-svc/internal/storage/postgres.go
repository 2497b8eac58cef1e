package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cafe-menu/menu-svc/internal/domain"
)

// PostgresStore keeps the same keys as RedisStore in a single key-value table.
type PostgresStore struct {
	DB   *sql.DB
	keys keySet
}

func NewPostgresStore(db *sql.DB, prefix string) *PostgresStore {
	return &PostgresStore{DB: db, keys: newKeySet(prefix)}
}

func (s *PostgresStore) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS menu_kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

func (s *PostgresStore) LoadSnapshot(ctx context.Context) (domain.Menu, error) {
	value, ok, err := s.get(ctx, s.keys.snapshot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNoSnapshot
	}
	return domain.DecodeMenu([]byte(value))
}

func (s *PostgresStore) SaveSnapshot(ctx context.Context, menu domain.Menu) error {
	data, err := domain.EncodeMenu(menu)
	if err != nil {
		return err
	}
	return s.set(ctx, s.keys.snapshot, string(data))
}

func (s *PostgresStore) CachedAt(ctx context.Context) (time.Time, error) {
	value, ok, err := s.get(ctx, s.keys.cachedAt)
	if err != nil || !ok {
		return time.Time{}, err
	}
	millis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse cache timestamp: %w", err)
	}
	return time.UnixMilli(millis), nil
}

func (s *PostgresStore) MarkFetched(ctx context.Context, at time.Time) error {
	return s.set(ctx, s.keys.cachedAt, strconv.FormatInt(at.UnixMilli(), 10))
}

func (s *PostgresStore) InvalidateCache(ctx context.Context) error {
	return s.del(ctx, s.keys.cachedAt)
}

func (s *PostgresStore) AdminSession(ctx context.Context) (string, error) {
	value, _, err := s.get(ctx, s.keys.session)
	return value, err
}

func (s *PostgresStore) SetAdminSession(ctx context.Context, token string) error {
	return s.setOrDelete(ctx, s.keys.session, token)
}

func (s *PostgresStore) ClearAdminSession(ctx context.Context) error {
	return s.del(ctx, s.keys.session)
}

func (s *PostgresStore) WriteCredential(ctx context.Context) (string, error) {
	value, _, err := s.get(ctx, s.keys.credential)
	return value, err
}

func (s *PostgresStore) SetWriteCredential(ctx context.Context, token string) error {
	return s.setOrDelete(ctx, s.keys.credential, token)
}

func (s *PostgresStore) PasswordVerifier(ctx context.Context) (string, error) {
	value, _, err := s.get(ctx, s.keys.verifier)
	return value, err
}

func (s *PostgresStore) SetPasswordVerifier(ctx context.Context, hash string) error {
	return s.setOrDelete(ctx, s.keys.verifier, hash)
}

func (s *PostgresStore) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.DB.QueryRowContext(ctx, "SELECT value FROM menu_kv WHERE key = $1", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *PostgresStore) set(ctx context.Context, key, value string) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO menu_kv (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value)
	return err
}

func (s *PostgresStore) setOrDelete(ctx context.Context, key, value string) error {
	if value == "" {
		return s.del(ctx, key)
	}
	return s.set(ctx, key, value)
}

func (s *PostgresStore) del(ctx context.Context, key string) error {
	_, err := s.DB.ExecContext(ctx, "DELETE FROM menu_kv WHERE key = $1", key)
	return err
}
