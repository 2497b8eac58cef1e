package storage

import (
	"context"
	"errors"
	"time"

	"cafe-menu/menu-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	Client *redis.Client
	keys   keySet
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{Client: client, keys: newKeySet(prefix)}
}

func (s *RedisStore) LoadSnapshot(ctx context.Context) (domain.Menu, error) {
	data, err := s.Client.Get(ctx, s.keys.snapshot).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return domain.DecodeMenu(data)
}

func (s *RedisStore) SaveSnapshot(ctx context.Context, menu domain.Menu) error {
	data, err := domain.EncodeMenu(menu)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.keys.snapshot, data, 0).Err()
}

func (s *RedisStore) CachedAt(ctx context.Context) (time.Time, error) {
	millis, err := s.Client.Get(ctx, s.keys.cachedAt).Int64()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(millis), nil
}

func (s *RedisStore) MarkFetched(ctx context.Context, at time.Time) error {
	return s.Client.Set(ctx, s.keys.cachedAt, at.UnixMilli(), 0).Err()
}

func (s *RedisStore) InvalidateCache(ctx context.Context) error {
	return s.Client.Del(ctx, s.keys.cachedAt).Err()
}

func (s *RedisStore) AdminSession(ctx context.Context) (string, error) {
	return s.get(ctx, s.keys.session)
}

func (s *RedisStore) SetAdminSession(ctx context.Context, token string) error {
	return s.set(ctx, s.keys.session, token)
}

func (s *RedisStore) ClearAdminSession(ctx context.Context) error {
	return s.Client.Del(ctx, s.keys.session).Err()
}

func (s *RedisStore) WriteCredential(ctx context.Context) (string, error) {
	return s.get(ctx, s.keys.credential)
}

func (s *RedisStore) SetWriteCredential(ctx context.Context, token string) error {
	return s.set(ctx, s.keys.credential, token)
}

func (s *RedisStore) PasswordVerifier(ctx context.Context) (string, error) {
	return s.get(ctx, s.keys.verifier)
}

func (s *RedisStore) SetPasswordVerifier(ctx context.Context, hash string) error {
	return s.set(ctx, s.keys.verifier, hash)
}

func (s *RedisStore) get(ctx context.Context, key string) (string, error) {
	value, err := s.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return value, err
}

// set deletes the key for empty values so "unset" never round-trips as "".
func (s *RedisStore) set(ctx context.Context, key, value string) error {
	if value == "" {
		return s.Client.Del(ctx, key).Err()
	}
	return s.Client.Set(ctx, key, value, 0).Err()
}
