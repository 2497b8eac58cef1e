package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafe-menu/config"
	httpapi "cafe-menu/menu-svc/internal/api/http"
	"cafe-menu/menu-svc/internal/service"
	"cafe-menu/menu-svc/internal/storage"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	logger := config.NewLogger(cfg.LogLevel)
	log := logger.WithField("service", "menu-svc")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore := openStore(cfg, log)
	defer closeStore()

	remote, fetchers, err := menuSources(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to configure menu sources")
	}

	loader := service.NewMenuLoader(store, cfg.CacheTTL, log, fetchers...)
	state := service.NewMenuState(loader.Load(ctx))

	hub := httpapi.NewHub(log)
	state.Subscribe(hub.Broadcast)
	defer hub.Close()

	verifier := service.BcryptVerifier{}
	defaultHash := cfg.AdminPasswordHash
	if defaultHash == "" {
		if defaultHash, err = verifier.Hash(cfg.AdminPassword); err != nil {
			log.WithError(err).Fatal("failed to hash admin password")
		}
	}
	auth := service.NewAuthenticator(store, remote, verifier, cfg.AdminUser, defaultHash, log)
	bootstrapCredential(ctx, cfg, store, auth, log)

	origin := uuid.NewString()
	var publisher service.MenuPublisher
	var reader *kafka.Reader
	if cfg.KafkaEnabled() {
		writer := config.NewKafkaWriter(cfg.KafkaBroker, cfg.EventsTopic)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)

		reader = config.NewKafkaReader(cfg.KafkaBroker, cfg.EventsTopic, "menu-svc-"+origin)
		defer reader.Close()
	}
	mutator := service.NewMutator(state, store, store, remote, publisher, log).WithOrigin(origin)
	if reader != nil {
		go service.NewSyncConsumer(reader, loader, mutator, origin, log).Start(ctx)
	}

	qr := service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL}
	handler := httpapi.NewHandler(loader, state, mutator, auth, qr, hub, log)
	server := httpapi.NewServer(":"+cfg.Port, httpapi.NewRouter(handler))

	go func() {
		log.WithField("port", cfg.Port).Info("menu service starting")
		if err := server.Run(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("failed to run server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.WithError(err).Error("failed to shut down server gracefully")
	}
}

func openStore(cfg config.Config, log logrus.FieldLogger) (service.Store, func()) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db := config.MustInitPostgres(log)
		pg := storage.NewPostgresStore(db, cfg.StorePrefix)
		if err := pg.EnsureSchema(); err != nil {
			log.WithError(err).Fatal("failed to ensure schema")
		}
		return pg, func() { db.Close() }
	default:
		client := config.MustInitRedis(log)
		return storage.NewRedisStore(client, cfg.StorePrefix), func() { client.Close() }
	}
}

// menuSources builds the fetch chain. The writable GitHub source goes first so
// every load captures the revision token the next write needs; the plain JSON
// file only serves reads when GitHub is unreachable.
func menuSources(cfg config.Config) (service.RemoteSource, []service.Fetcher, error) {
	var remote service.RemoteSource
	var fetchers []service.Fetcher
	if cfg.GitHubEnabled() {
		gh, err := storage.NewGitHubSource(storage.GitHubConfig{
			Owner:  cfg.GitHubOwner,
			Repo:   cfg.GitHubRepo,
			Branch: cfg.GitHubBranch,
			Path:   cfg.GitHubPath,
			APIURL: cfg.GitHubAPIURL,
		})
		if err != nil {
			return nil, nil, err
		}
		remote = gh
		fetchers = append(fetchers, gh)
	}
	if cfg.MenuJSONURL != "" {
		fetchers = append(fetchers, storage.NewJSONSource(cfg.MenuJSONURL, &http.Client{Timeout: 15 * time.Second}))
	}
	return remote, fetchers, nil
}

// bootstrapCredential seeds the remote write token from the environment
// unless an admin already stored one.
func bootstrapCredential(ctx context.Context, cfg config.Config, store service.CredentialSource, auth service.AuthenticatorInterface, log logrus.FieldLogger) {
	if cfg.GitHubToken == "" {
		return
	}
	current, err := store.WriteCredential(ctx)
	if err != nil {
		log.WithError(err).Warn("failed to read stored write credential")
		return
	}
	if current != "" {
		return
	}
	if err := auth.SetWriteCredential(ctx, cfg.GitHubToken); err != nil {
		log.WithError(err).Warn("GITHUB_TOKEN rejected, edits will stay local")
	}
}
