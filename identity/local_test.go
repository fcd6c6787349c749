package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/pickup-games/db"
)

func newTestProvider() *LocalProvider {
	return NewLocalProvider(db.NewMemoryStore(), []byte("test-secret"), time.Hour)
}

func TestLocalProvider_CreateSignInVerify(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider()

	uid, err := p.CreateUser(ctx, "Ann@Example.com", "secret123", "Ann")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	token, err := p.SignIn(ctx, "ann@example.com", "secret123")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	got, err := p.VerifyToken(ctx, token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if got != uid {
		t.Errorf("expected uid %q, got %q", uid, got)
	}
}

func TestLocalProvider_CreateUserRejects(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider()

	if _, err := p.CreateUser(ctx, "ann@example.com", "123", "Ann"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if _, err := p.CreateUser(ctx, "ann@example.com", "secret123", "Ann"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := p.CreateUser(ctx, "ann@example.com", "other-secret", "Ann 2"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLocalProvider_SignInWrongPassword(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider()
	if _, err := p.CreateUser(ctx, "ann@example.com", "secret123", "Ann"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if _, err := p.SignIn(ctx, "ann@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := p.SignIn(ctx, "bob@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLocalProvider_VerifyTokenRejects(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider()
	if _, err := p.CreateUser(ctx, "ann@example.com", "secret123", "Ann"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	token, err := p.SignIn(ctx, "ann@example.com", "secret123")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	other := NewLocalProvider(db.NewMemoryStore(), []byte("another-secret"), time.Hour)
	if _, err := other.VerifyToken(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected signature mismatch to be rejected, got %v", err)
	}
	if _, err := p.VerifyToken(ctx, "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected malformed token to be rejected, got %v", err)
	}

	p.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := p.VerifyToken(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected expired token to be rejected, got %v", err)
	}
}

func TestLocalProvider_DeleteUser(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider()
	uid, err := p.CreateUser(ctx, "ann@example.com", "secret123", "Ann")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := p.DeleteUser(ctx, uid); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if err := p.DeleteUser(ctx, uid); !errors.Is(err, ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound on second delete, got %v", err)
	}
	if _, err := p.SignIn(ctx, "ann@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected deleted identity to be unable to sign in, got %v", err)
	}
}
