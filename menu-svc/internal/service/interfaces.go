package service

import (
	"context"
	"time"

	"cafe-menu/menu-svc/internal/domain"
)

type SnapshotStore interface {
	LoadSnapshot(ctx context.Context) (domain.Menu, error)
	SaveSnapshot(ctx context.Context, menu domain.Menu) error
	CachedAt(ctx context.Context) (time.Time, error)
	MarkFetched(ctx context.Context, at time.Time) error
	InvalidateCache(ctx context.Context) error
}

type SessionStore interface {
	AdminSession(ctx context.Context) (string, error)
	SetAdminSession(ctx context.Context, token string) error
	ClearAdminSession(ctx context.Context) error
	WriteCredential(ctx context.Context) (string, error)
	SetWriteCredential(ctx context.Context, token string) error
	PasswordVerifier(ctx context.Context) (string, error)
	SetPasswordVerifier(ctx context.Context, hash string) error
}

// Store is what the storage drivers provide.
type Store interface {
	SnapshotStore
	SessionStore
}

type Fetcher interface {
	Fetch(ctx context.Context) (domain.Menu, error)
}

type RemoteSource interface {
	Fetcher
	Write(ctx context.Context, menu domain.Menu, credential string) error
	ValidateCredential(ctx context.Context, token string) bool
}

type CredentialSource interface {
	WriteCredential(ctx context.Context) (string, error)
}

type MenuPublisher interface {
	PublishMenuEvent(ctx context.Context, event domain.MenuEvent) error
}

type PasswordVerifier interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

type MenuLoaderInterface interface {
	Load(ctx context.Context) domain.Menu
	Refresh(ctx context.Context) domain.Menu
	Stored(ctx context.Context) (domain.Menu, error)
}

// Reloader swaps in a freshly loaded menu without racing admin edits.
type Reloader interface {
	Reload(ctx context.Context, load func(context.Context) (domain.Menu, error)) error
}

type MutatorInterface interface {
	Reloader
	AddCategory(ctx context.Context, in CategoryInput) (domain.Category, SaveResult, error)
	RemoveCategory(ctx context.Context, id string) (SaveResult, error)
	UpsertProduct(ctx context.Context, in ProductInput) (domain.Item, SaveResult, error)
	SetProductImage(ctx context.Context, categoryID, itemID, src string) (SaveResult, error)
	RemoveProduct(ctx context.Context, categoryID, itemID string) (SaveResult, error)
	ApplyCategoryDiscount(ctx context.Context, categoryID string, percent int) (SaveResult, error)
	ApplyGlobalDiscount(ctx context.Context, percent int) (SaveResult, error)
	ClearDiscounts(ctx context.Context) (SaveResult, error)
}

type AuthenticatorInterface interface {
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context) error
	Authorized(ctx context.Context, token string) bool
	ChangePassword(ctx context.Context, current, next string) error
	SetWriteCredential(ctx context.Context, token string) error
}

var (
	_ MenuLoaderInterface    = (*MenuLoader)(nil)
	_ MutatorInterface       = (*Mutator)(nil)
	_ AuthenticatorInterface = (*Authenticator)(nil)
)
