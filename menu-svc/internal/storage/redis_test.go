package storage

import (
	"context"
	"testing"
	"time"

	"cafe-menu/menu-svc/internal/domain"
	"cafe-menu/menu-svc/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ service.Store         = (*RedisStore)(nil)
	_ service.Store         = (*PostgresStore)(nil)
	_ service.RemoteSource  = (*GitHubSource)(nil)
	_ service.Fetcher       = (*JSONSource)(nil)
	_ service.MenuPublisher = (*KafkaPublisher)(nil)
)

func setupTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, "test"), mr
}

func TestRedisStore_Snapshot(t *testing.T) {
	store, mr := setupTestRedisStore(t)
	ctx := context.Background()

	_, err := store.LoadSnapshot(ctx)
	assert.ErrorIs(t, err, domain.ErrNoSnapshot)

	menu := domain.DefaultMenu()
	require.NoError(t, store.SaveSnapshot(ctx, menu))
	assert.True(t, mr.Exists("test:v2:snapshot"))

	loaded, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, menu, loaded)
}

func TestRedisStore_CorruptSnapshot(t *testing.T) {
	store, mr := setupTestRedisStore(t)
	require.NoError(t, mr.Set("test:v2:snapshot", `{"not":"a list"}`))

	_, err := store.LoadSnapshot(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoSnapshot)
}

func TestRedisStore_CacheTimestamp(t *testing.T) {
	store, _ := setupTestRedisStore(t)
	ctx := context.Background()

	at, err := store.CachedAt(ctx)
	require.NoError(t, err)
	assert.True(t, at.IsZero())

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.MarkFetched(ctx, now))
	at, err = store.CachedAt(ctx)
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), at.UnixMilli())

	require.NoError(t, store.InvalidateCache(ctx))
	at, err = store.CachedAt(ctx)
	require.NoError(t, err)
	assert.True(t, at.IsZero())
}

func TestRedisStore_AdminState(t *testing.T) {
	store, mr := setupTestRedisStore(t)
	ctx := context.Background()

	session, err := store.AdminSession(ctx)
	require.NoError(t, err)
	assert.Empty(t, session)

	require.NoError(t, store.SetAdminSession(ctx, "session-1"))
	session, _ = store.AdminSession(ctx)
	assert.Equal(t, "session-1", session)
	require.NoError(t, store.ClearAdminSession(ctx))
	session, _ = store.AdminSession(ctx)
	assert.Empty(t, session)

	require.NoError(t, store.SetWriteCredential(ctx, "ghp_token"))
	assert.True(t, mr.Exists("test:admin:credential"))
	require.NoError(t, store.SetWriteCredential(ctx, ""))
	assert.False(t, mr.Exists("test:admin:credential"))

	require.NoError(t, store.SetPasswordVerifier(ctx, "$2a$10$hash"))
	hash, err := store.PasswordVerifier(ctx)
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$hash", hash)
}

func TestRedisStore_DefaultPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisStore(client, "")
	require.NoError(t, store.SaveSnapshot(context.Background(), domain.Menu{}))
	assert.True(t, mr.Exists(DefaultKeyPrefix+":v2:snapshot"))
}
