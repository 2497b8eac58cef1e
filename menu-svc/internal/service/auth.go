package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"cafe-menu/menu-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type BcryptVerifier struct {
	Cost int
}

func (v BcryptVerifier) Hash(password string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(hash), err
}

func (v BcryptVerifier) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Authenticator gates the admin panel. The password verifier stored on the
// device overrides the configured default and is never pushed remotely.
type Authenticator struct {
	sessions    SessionStore
	remote      RemoteSource
	verifier    PasswordVerifier
	username    string
	defaultHash string
	log         logrus.FieldLogger
}

func NewAuthenticator(sessions SessionStore, remote RemoteSource, verifier PasswordVerifier, username, defaultHash string, log logrus.FieldLogger) *Authenticator {
	if verifier == nil {
		verifier = BcryptVerifier{}
	}
	return &Authenticator{
		sessions:    sessions,
		remote:      remote,
		verifier:    verifier,
		username:    username,
		defaultHash: defaultHash,
		log:         log.WithField("component", "auth"),
	}
}

func (a *Authenticator) Login(ctx context.Context, username, password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(a.username)) != 1 {
		return "", domain.ErrInvalidCredentials
	}
	ok, err := a.checkPassword(ctx, password)
	if err != nil {
		return "", err
	}
	if !ok {
		a.log.Warn("admin login rejected")
		return "", domain.ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := a.sessions.SetAdminSession(ctx, token); err != nil {
		return "", fmt.Errorf("store admin session: %w", err)
	}
	a.log.Info("admin logged in")
	return token, nil
}

func (a *Authenticator) Logout(ctx context.Context) error {
	return a.sessions.ClearAdminSession(ctx)
}

func (a *Authenticator) Authorized(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	current, err := a.sessions.AdminSession(ctx)
	if err != nil {
		a.log.WithError(err).Warn("reading admin session failed")
		return false
	}
	return current != "" && subtle.ConstantTimeCompare([]byte(current), []byte(token)) == 1
}

func (a *Authenticator) ChangePassword(ctx context.Context, current, next string) error {
	ok, err := a.checkPassword(ctx, current)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidCredentials
	}
	if len([]rune(next)) < minPasswordLength {
		return domain.NewValidationError(fmt.Sprintf("must be at least %d characters", minPasswordLength), "new_password")
	}
	hash, err := a.verifier.Hash(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := a.sessions.SetPasswordVerifier(ctx, hash); err != nil {
		return fmt.Errorf("store password verifier: %w", err)
	}
	a.log.Info("admin password changed on this device")
	return nil
}

// SetWriteCredential stores a remote write token after checking it against the remote. An empty
// token clears the stored one.
func (a *Authenticator) SetWriteCredential(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token != "" {
		if a.remote == nil || !a.remote.ValidateCredential(ctx, token) {
			return domain.ErrCredentialRejected
		}
	}
	if err := a.sessions.SetWriteCredential(ctx, token); err != nil {
		return fmt.Errorf("store write credential: %w", err)
	}
	return nil
}

func (a *Authenticator) checkPassword(ctx context.Context, password string) (bool, error) {
	hash, err := a.sessions.PasswordVerifier(ctx)
	if err != nil {
		return false, fmt.Errorf("read password verifier: %w", err)
	}
	if hash == "" {
		hash = a.defaultHash
	}
	if hash == "" {
		return false, nil
	}
	return a.verifier.Verify(hash, password), nil
}
