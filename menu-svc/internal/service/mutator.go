package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"cafe-menu/menu-svc/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type RemoteStatus string

const (
	RemoteSynced       RemoteStatus = "synced"
	RemoteLocalOnly    RemoteStatus = "local-only"
	RemoteUnauthorized RemoteStatus = "unauthorized"
	RemoteConflict     RemoteStatus = "conflict"
	RemoteFailed       RemoteStatus = "failed"
)

const (
	defaultCategoryIcon = "📦"
	maxGlobalDiscount   = 90
)

// SaveResult describes how far a mutation got. A local save always happened
// when Changed is true; Remote tells whether the shared copy followed.
type SaveResult struct {
	Changed bool         `json:"changed"`
	Remote  RemoteStatus `json:"remote,omitempty"`
	Warning string       `json:"warning,omitempty"`
}

func (r SaveResult) Degraded() bool {
	return r.Changed && r.Remote != RemoteSynced
}

type CategoryInput struct {
	Title string `json:"title" validate:"required,max=60"`
	Tag   string `json:"tag" validate:"max=40"`
	Icon  string `json:"icon" validate:"max=16"`
}

type ProductInput struct {
	CategoryID  string   `json:"category_id" validate:"required"`
	Name        string   `json:"name" validate:"required,max=80"`
	Price       int      `json:"price" validate:"gt=0"`
	Discount    int      `json:"discount"`
	Ingredients string   `json:"ingredients" validate:"max=500"`
	Tags        []string `json:"tags"`
	Img         string   `json:"img"`
	PreviousID  string   `json:"previous_id"`
}

type Mutator struct {
	mu        sync.Mutex
	state     *MenuState
	store     SnapshotStore
	creds     CredentialSource
	remote    RemoteSource
	publisher MenuPublisher
	origin    string
	validate  *validator.Validate
	log       logrus.FieldLogger
	now       func() time.Time
}

// NewMutator wires the admin operations. creds, remote and publisher may be
// nil; saves then stay local and no events are emitted.
func NewMutator(state *MenuState, store SnapshotStore, creds CredentialSource, remote RemoteSource, publisher MenuPublisher, log logrus.FieldLogger) *Mutator {
	return &Mutator{
		state:     state,
		store:     store,
		creds:     creds,
		remote:    remote,
		publisher: publisher,
		validate:  validator.New(),
		log:       log.WithField("component", "mutator"),
		now:       time.Now,
	}
}

// WithOrigin tags published events so instances can skip their own.
func (m *Mutator) WithOrigin(origin string) *Mutator {
	m.origin = origin
	return m
}

func (m *Mutator) AddCategory(ctx context.Context, in CategoryInput) (domain.Category, SaveResult, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Tag = strings.TrimSpace(in.Tag)
	in.Icon = strings.TrimSpace(in.Icon)
	if err := m.check(in); err != nil {
		return domain.Category{}, SaveResult{}, err
	}
	id := domain.Slug(in.Title)
	if id == "" {
		return domain.Category{}, SaveResult{}, domain.NewValidationError("must contain letters or digits", "title")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	menu := m.state.Snapshot()
	if menu.CategoryIndex(id) >= 0 {
		return domain.Category{}, SaveResult{}, fmt.Errorf("%w: %s", domain.ErrCategoryExists, id)
	}
	cat := domain.Category{ID: id, Title: in.Title, Icon: in.Icon, Tag: in.Tag, Items: []domain.Item{}}
	if cat.Tag == "" {
		cat.Tag = id
	}
	if cat.Icon == "" {
		cat.Icon = defaultCategoryIcon
	}
	next := append(menu.Clone(), cat)

	res, err := m.commit(ctx, menu, next, domain.MenuEvent{Action: "category_added", CategoryID: id})
	return cat, res, err
}

func (m *Mutator) RemoveCategory(ctx context.Context, id string) (SaveResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	menu := m.state.Snapshot()
	idx := menu.CategoryIndex(id)
	if idx < 0 {
		return SaveResult{}, nil
	}
	next := append(menu[:idx:idx].Clone(), menu[idx+1:].Clone()...)
	return m.commit(ctx, menu, next, domain.MenuEvent{Action: "category_removed", CategoryID: id})
}

// UpsertProduct creates or replaces the item keyed by the slug of its name.
// When PreviousID names another existing item, that entry is re-keyed in place.
func (m *Mutator) UpsertProduct(ctx context.Context, in ProductInput) (domain.Item, SaveResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	if err := m.check(in); err != nil {
		return domain.Item{}, SaveResult{}, err
	}
	id := domain.Slug(in.Name)
	if id == "" {
		return domain.Item{}, SaveResult{}, domain.NewValidationError("must contain letters or digits", "name")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	menu := m.state.Snapshot()
	ci := menu.CategoryIndex(in.CategoryID)
	if ci < 0 {
		return domain.Item{}, SaveResult{}, fmt.Errorf("%w: %s", domain.ErrCategoryNotFound, in.CategoryID)
	}
	next := menu.Clone()
	cat := &next[ci]

	item := domain.Item{
		ID:          id,
		Name:        in.Name,
		Price:       in.Price,
		Discount:    domain.ClampDiscount(in.Discount),
		Ingredients: strings.TrimSpace(in.Ingredients),
		Tags:        cleanTags(in.Tags),
		Img:         strings.TrimSpace(in.Img),
	}
	if len(item.Tags) == 0 {
		item.Tags = []string{cat.Tag}
	}

	target := cat.ItemIndex(id)
	if in.PreviousID != "" && in.PreviousID != id {
		if prev := cat.ItemIndex(in.PreviousID); prev >= 0 {
			if target >= 0 {
				return domain.Item{}, SaveResult{}, fmt.Errorf("%w: %s", domain.ErrItemExists, id)
			}
			target = prev
		}
	}

	if target >= 0 {
		if item.Img == "" {
			item.Img = cat.Items[target].Img
		}
		cat.Items[target] = item
	} else {
		cat.Items = append(cat.Items, item)
	}

	res, err := m.commit(ctx, menu, next, domain.MenuEvent{Action: "product_upserted", CategoryID: cat.ID, ItemID: id})
	return item, res, err
}

func (m *Mutator) SetProductImage(ctx context.Context, categoryID, itemID, src string) (SaveResult, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return SaveResult{}, domain.NewValidationError("image source is required", "img")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	menu := m.state.Snapshot()
	ci := menu.CategoryIndex(categoryID)
	if ci < 0 {
		return SaveResult{}, fmt.Errorf("%w: %s", domain.ErrCategoryNotFound, categoryID)
	}
	ii := menu[ci].ItemIndex(itemID)
	if ii < 0 {
		return SaveResult{}, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	next := menu.Clone()
	next[ci].Items[ii].Img = src
	return m.commit(ctx, menu, next, domain.MenuEvent{Action: "product_image_set", CategoryID: categoryID, ItemID: itemID})
}

func (m *Mutator) RemoveProduct(ctx context.Context, categoryID, itemID string) (SaveResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	menu := m.state.Snapshot()
	ci := menu.CategoryIndex(categoryID)
	if ci < 0 {
		return SaveResult{}, nil
	}
	ii := menu[ci].ItemIndex(itemID)
	if ii < 0 {
		return SaveResult{}, nil
	}
	next := menu.Clone()
	items := next[ci].Items
	next[ci].Items = append(items[:ii:ii], items[ii+1:]...)
	return m.commit(ctx, menu, next, domain.MenuEvent{Action: "product_removed", CategoryID: categoryID, ItemID: itemID})
}

func (m *Mutator) ApplyCategoryDiscount(ctx context.Context, categoryID string, percent int) (SaveResult, error) {
	if percent <= 0 {
		return SaveResult{}, domain.NewValidationError("must be greater than zero", "percent")
	}
	percent = domain.ClampDiscount(percent)

	m.mu.Lock()
	defer m.mu.Unlock()

	menu := m.state.Snapshot()
	ci := menu.CategoryIndex(categoryID)
	if ci < 0 {
		return SaveResult{}, fmt.Errorf("%w: %s", domain.ErrCategoryNotFound, categoryID)
	}
	next := menu.Clone()
	for i := range next[ci].Items {
		next[ci].Items[i].Discount = percent
	}
	return m.commit(ctx, menu, next, domain.MenuEvent{Action: "category_discount", CategoryID: categoryID})
}

// ApplyGlobalDiscount sets percent (capped at 90) on every item that has no
// discount yet; existing discounts are left alone.
func (m *Mutator) ApplyGlobalDiscount(ctx context.Context, percent int) (SaveResult, error) {
	if percent < 0 {
		percent = 0
	}
	if percent > maxGlobalDiscount {
		percent = maxGlobalDiscount
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	menu := m.state.Snapshot()
	next := menu.Clone()
	for ci := range next {
		for ii := range next[ci].Items {
			if next[ci].Items[ii].Discount <= 0 {
				next[ci].Items[ii].Discount = percent
			}
		}
	}
	return m.commit(ctx, menu, next, domain.MenuEvent{Action: "global_discount"})
}

func (m *Mutator) ClearDiscounts(ctx context.Context) (SaveResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	menu := m.state.Snapshot()
	next := menu.Clone()
	for ci := range next {
		for ii := range next[ci].Items {
			next[ci].Items[ii].Discount = 0
		}
	}
	return m.commit(ctx, menu, next, domain.MenuEvent{Action: "discounts_cleared"})
}

// Reload replaces the live menu with whatever load returns. It holds the
// mutation lock so an edit in flight is never overwritten by a stale read.
func (m *Mutator) Reload(ctx context.Context, load func(context.Context) (domain.Menu, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	menu, err := load(ctx)
	if err != nil {
		return err
	}
	m.state.Replace(menu)
	return nil
}

// commit persists next locally, swaps it into the shared state and then tries
// the remote copy. Callers hold m.mu.
func (m *Mutator) commit(ctx context.Context, prev, next domain.Menu, event domain.MenuEvent) (SaveResult, error) {
	if reflect.DeepEqual(prev, next) {
		return SaveResult{}, nil
	}
	if err := m.store.SaveSnapshot(ctx, next); err != nil {
		return SaveResult{}, fmt.Errorf("persist menu locally: %w", err)
	}
	m.state.Replace(next)

	res := SaveResult{Changed: true, Remote: m.pushRemote(ctx, next)}
	res.Warning = remoteWarning(res.Remote)

	entry := m.log.WithFields(logrus.Fields{
		"action":   event.Action,
		"category": event.CategoryID,
		"item":     event.ItemID,
		"remote":   res.Remote,
	})
	if res.Degraded() {
		entry.Warn("menu saved locally only")
	} else {
		entry.Info("menu saved")
	}

	if m.publisher != nil {
		event.Type = domain.EventMenuUpdated
		event.Origin = m.origin
		event.Remote = string(res.Remote)
		event.Timestamp = m.now()
		if err := m.publisher.PublishMenuEvent(ctx, event); err != nil {
			m.log.WithError(err).Warn("publishing menu event failed")
		}
	}
	return res, nil
}

func (m *Mutator) pushRemote(ctx context.Context, menu domain.Menu) RemoteStatus {
	if m.remote == nil || m.creds == nil {
		return RemoteLocalOnly
	}
	token, err := m.creds.WriteCredential(ctx)
	if err != nil {
		m.log.WithError(err).Warn("reading write credential failed")
		return RemoteLocalOnly
	}
	if token == "" {
		return RemoteLocalOnly
	}

	err = m.remote.Write(ctx, menu, token)
	switch {
	case err == nil:
		return RemoteSynced
	case errors.Is(err, domain.ErrUnauthorized):
		m.log.WithError(err).Warn("remote rejected write credential")
		return RemoteUnauthorized
	case errors.Is(err, domain.ErrConflict):
		m.log.WithError(err).Warn("remote menu changed underneath us")
		return RemoteConflict
	default:
		m.log.WithError(err).Warn("remote write failed")
		return RemoteFailed
	}
}

func remoteWarning(status RemoteStatus) string {
	switch status {
	case RemoteLocalOnly:
		return "saved on this device only: no write credential configured"
	case RemoteUnauthorized:
		return "saved on this device only: the write credential was rejected"
	case RemoteConflict:
		return "saved on this device only: the shared menu was changed elsewhere, reload and redo the edit"
	case RemoteFailed:
		return "saved on this device only: the shared menu could not be reached"
	}
	return ""
}

func (m *Mutator) check(in interface{}) error {
	err := m.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError(err.Error())
	}
	fields := make([]string, 0, len(verrs))
	rules := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
		rules = append(rules, fe.Tag())
	}
	return domain.NewValidationError("failed rule "+strings.Join(rules, ", "), fields...)
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
