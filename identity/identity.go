// Package identity wraps the service that owns user credentials.
// Profiles live in the document store; identities live here.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/pickup-games/config"
	"github.com/Dosada05/pickup-games/db"
)

var (
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrWeakPassword       = errors.New("password is too short")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Provider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	// DeleteUser returns ErrIdentityNotFound when uid is unknown.
	DeleteUser(ctx context.Context, uid string) error
	VerifyToken(ctx context.Context, token string) (string, error)
}

// PasswordAuthenticator is implemented by providers that can issue tokens
// for an email/password pair themselves.
type PasswordAuthenticator interface {
	SignIn(ctx context.Context, email, password string) (string, error)
}

// New выбирает провайдера по конфигурации. store нужен только локальному провайдеру.
func New(ctx context.Context, cfg *config.Config, store db.Store) (Provider, error) {
	switch cfg.IdentityProvider {
	case config.IdentityFirebase:
		return NewFirebaseProvider(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
	case config.IdentityLocal:
		return NewLocalProvider(store, []byte(cfg.JWTSecretKey), cfg.JWTTTL), nil
	default:
		return nil, fmt.Errorf("unknown identity provider %q", cfg.IdentityProvider)
	}
}
