package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"cafe-menu/config"
	"cafe-menu/menu-svc/internal/domain"
	"cafe-menu/menu-svc/internal/mocks"
	"cafe-menu/menu-svc/internal/service"
	"cafe-menu/menu-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("REDIS_HOST", mr.Host())
	t.Setenv("REDIS_PORT", mr.Port())
	logger, _ := test.NewNullLogger()

	store, closeStore := openStore(config.Config{StoreDriver: config.DriverRedis, StorePrefix: "test"}, logger)
	defer closeStore()

	require.IsType(t, &storage.RedisStore{}, store)
	ctx := context.Background()
	require.NoError(t, store.SaveSnapshot(ctx, domain.DefaultMenu()))
	assert.True(t, mr.Exists("test:v2:snapshot"))
}

func TestBootstrapCredential(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		token        string
		prepareMocks func(store *mocks.Store, auth *mocks.AuthenticatorInterface)
		expectedLogs int
	}{
		{
			name:         "no token configured",
			prepareMocks: func(store *mocks.Store, auth *mocks.AuthenticatorInterface) {},
		},
		{
			name:  "admin already stored one",
			token: "ghp_env",
			prepareMocks: func(store *mocks.Store, auth *mocks.AuthenticatorInterface) {
				store.On("WriteCredential", mock.Anything).Return("ghp_admin", nil).Once()
			},
		},
		{
			name:  "seeded from environment",
			token: "ghp_env",
			prepareMocks: func(store *mocks.Store, auth *mocks.AuthenticatorInterface) {
				store.On("WriteCredential", mock.Anything).Return("", nil).Once()
				auth.On("SetWriteCredential", mock.Anything, "ghp_env").Return(nil).Once()
			},
		},
		{
			name:  "rejected token",
			token: "ghp_revoked",
			prepareMocks: func(store *mocks.Store, auth *mocks.AuthenticatorInterface) {
				store.On("WriteCredential", mock.Anything).Return("", nil).Once()
				auth.On("SetWriteCredential", mock.Anything, "ghp_revoked").Return(domain.ErrCredentialRejected).Once()
			},
			expectedLogs: 1,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := mocks.NewStore(t)
			auth := mocks.NewAuthenticatorInterface(t)
			testCase.prepareMocks(store, auth)
			logger, hook := test.NewNullLogger()

			bootstrapCredential(ctx, config.Config{GitHubToken: testCase.token}, store, auth, logger)

			assert.Len(t, hook.AllEntries(), testCase.expectedLogs)
		})
	}
}

// contentsAPI mimics the GitHub contents endpoint for one file: updates must
// carry the current blob sha, as the real API demands for existing files.
type contentsAPI struct {
	mu      sync.Mutex
	content []byte
	sha     int
}

func (c *contentsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	current := fmt.Sprintf("sha-%d", c.sha)
	switch r.Method {
	case http.MethodGet:
		json.NewEncoder(w).Encode(map[string]any{
			"type":     "file",
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString(c.content),
			"sha":      current,
		})
	case http.MethodPut:
		var body struct {
			Content []byte `json:"content"`
			SHA     string `json:"sha"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		switch {
		case body.SHA == "":
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprint(w, `{"message":"\"sha\" wasn't supplied"}`)
			return
		case body.SHA != current:
			w.WriteHeader(http.StatusConflict)
			fmt.Fprint(w, `{"message":"sha mismatch"}`)
			return
		}
		c.content = body.Content
		c.sha++
		json.NewEncoder(w).Encode(map[string]any{
			"content": map[string]any{"sha": fmt.Sprintf("sha-%d", c.sha)},
		})
	}
}

func TestMenuSources_GitHubAndJSONFile(t *testing.T) {
	ctx := context.Background()
	seed, err := domain.EncodeMenu(domain.DefaultMenu())
	require.NoError(t, err)

	github := httptest.NewServer(&contentsAPI{content: seed, sha: 1})
	defer github.Close()
	var jsonHits atomic.Int32
	jsonFile := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonHits.Add(1)
		w.Write(seed)
	}))
	defer jsonFile.Close()

	remote, fetchers, err := menuSources(config.Config{
		GitHubOwner:  "cafe",
		GitHubRepo:   "menu",
		GitHubBranch: "main",
		GitHubPath:   "menu.json",
		GitHubAPIURL: github.URL,
		MenuJSONURL:  jsonFile.URL + "/menu.json",
	})
	require.NoError(t, err)
	require.Len(t, fetchers, 2)
	assert.IsType(t, &storage.GitHubSource{}, fetchers[0])
	assert.IsType(t, &storage.JSONSource{}, fetchers[1])

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	store := storage.NewRedisStore(client, "sources")
	require.NoError(t, store.SetWriteCredential(ctx, "ghp_token"))

	logger, _ := test.NewNullLogger()
	loader := service.NewMenuLoader(store, 0, logger, fetchers...)
	state := service.NewMenuState(loader.Load(ctx))
	mutator := service.NewMutator(state, store, store, remote, nil, logger)

	_, res, err := mutator.UpsertProduct(ctx, service.ProductInput{CategoryID: "hot", Name: "Flat White", Price: 45000})
	require.NoError(t, err)
	assert.Equal(t, service.RemoteSynced, res.Remote)

	res, err = mutator.ApplyGlobalDiscount(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, service.RemoteSynced, res.Remote)

	require.NoError(t, mutator.Reload(ctx, func(ctx context.Context) (domain.Menu, error) {
		return loader.Refresh(ctx), nil
	}))
	assert.GreaterOrEqual(t, state.Snapshot()[0].ItemIndex("flat-white"), 0)
	assert.Zero(t, jsonHits.Load())
}

func TestMenuSources_JSONFileOnly(t *testing.T) {
	remote, fetchers, err := menuSources(config.Config{MenuJSONURL: "http://cdn.example.com/menu.json"})
	require.NoError(t, err)
	assert.Nil(t, remote)
	require.Len(t, fetchers, 1)
	assert.IsType(t, &storage.JSONSource{}, fetchers[0])
}
