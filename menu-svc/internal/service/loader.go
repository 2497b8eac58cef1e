package service

import (
	"context"
	"errors"
	"time"

	"cafe-menu/menu-svc/internal/domain"

	"github.com/sirupsen/logrus"
)

const DefaultCacheTTL = 5 * time.Minute

type MenuLoader struct {
	store    SnapshotStore
	fetchers []Fetcher
	ttl      time.Duration
	log      logrus.FieldLogger

	now  func() time.Time
	seed func() domain.Menu
}

// NewMenuLoader builds a loader that consults fetchers in the given order.
// Nil fetchers are skipped so optional sources can be passed straight from
// configuration.
func NewMenuLoader(store SnapshotStore, ttl time.Duration, log logrus.FieldLogger, fetchers ...Fetcher) *MenuLoader {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	var active []Fetcher
	for _, f := range fetchers {
		if f != nil {
			active = append(active, f)
		}
	}
	return &MenuLoader{
		store:    store,
		fetchers: active,
		ttl:      ttl,
		log:      log.WithField("component", "loader"),
		now:      time.Now,
		seed:     domain.DefaultMenu,
	}
}

// WithClock replaces the time source; used by tests.
func (l *MenuLoader) WithClock(now func() time.Time) *MenuLoader {
	l.now = now
	return l
}

// Load always resolves to a valid menu: fresh cache, then remote sources,
// then any persisted snapshot, then the built-in seed.
func (l *MenuLoader) Load(ctx context.Context) domain.Menu {
	cached, cacheErr := l.store.LoadSnapshot(ctx)
	if cacheErr != nil && !errors.Is(cacheErr, domain.ErrNoSnapshot) {
		l.log.WithError(cacheErr).Warn("reading cached menu failed")
	}
	haveCache := cacheErr == nil

	if haveCache && l.fresh(ctx) {
		l.log.Debug("serving menu from fresh cache")
		return cached
	}

	for _, f := range l.fetchers {
		menu, err := f.Fetch(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrRemoteNotFound) {
				l.log.Info("remote menu not found, treating as cache miss")
			} else {
				l.log.WithError(err).Warn("remote menu fetch failed")
			}
			continue
		}
		menu.Normalize()
		if err := menu.Validate(); err != nil {
			l.log.WithError(err).Warn("remote menu payload invalid")
			continue
		}
		if err := l.store.SaveSnapshot(ctx, menu); err != nil {
			l.log.WithError(err).Warn("caching remote menu failed")
		} else if err := l.store.MarkFetched(ctx, l.now()); err != nil {
			l.log.WithError(err).Warn("recording cache timestamp failed")
		}
		l.log.WithField("categories", len(menu)).Info("menu loaded from remote")
		return menu
	}

	if haveCache {
		l.log.Info("serving stale cached menu")
		return cached
	}

	seed := l.seed()
	if err := l.store.SaveSnapshot(ctx, seed); err != nil {
		l.log.WithError(err).Warn("persisting seed menu failed")
	}
	l.log.Info("serving built-in seed menu")
	return seed
}

// Refresh drops the cache timestamp so the next load goes to the remote.
func (l *MenuLoader) Refresh(ctx context.Context) domain.Menu {
	if err := l.store.InvalidateCache(ctx); err != nil {
		l.log.WithError(err).Warn("invalidating cache failed")
	}
	return l.Load(ctx)
}

// Stored returns the persisted snapshot without consulting any remote.
func (l *MenuLoader) Stored(ctx context.Context) (domain.Menu, error) {
	return l.store.LoadSnapshot(ctx)
}

func (l *MenuLoader) fresh(ctx context.Context) bool {
	at, err := l.store.CachedAt(ctx)
	if err != nil {
		l.log.WithError(err).Warn("reading cache timestamp failed")
		return false
	}
	if at.IsZero() {
		return false
	}
	return l.now().Sub(at) < l.ttl
}
