package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/pickup-games/db"
	"github.com/Dosada05/pickup-games/utils"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const credentialsCollection = "credentials"

type credential struct {
	Email        string `json:"email" firestore:"email" bson:"email"`
	PasswordHash string `json:"passwordHash" firestore:"passwordHash" bson:"passwordHash"`
}

// LocalProvider хранит учетные данные в той же документной базе и выдает
// собственные HS256 токены. Используется без Firebase (mongo, memory).
type LocalProvider struct {
	store  db.Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewLocalProvider(store db.Store, secret []byte, ttl time.Duration) *LocalProvider {
	return &LocalProvider{
		store:  store,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (p *LocalProvider) CreateUser(ctx context.Context, email, password, _ string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < utils.MinPasswordLength {
		return "", ErrWeakPassword
	}

	existing, err := p.store.Find(ctx, credentialsCollection, "email", email)
	if err != nil {
		return "", fmt.Errorf("failed to look up credentials: %w", err)
	}
	if len(existing) > 0 {
		return "", ErrEmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	uid := uuid.NewString()
	err = p.store.Set(ctx, credentialsCollection, uid, map[string]any{
		"email":        email,
		"passwordHash": hash,
		"createdAt":    db.ServerTimestamp,
	})
	if err != nil {
		return "", fmt.Errorf("failed to store credentials: %w", err)
	}
	return uid, nil
}

func (p *LocalProvider) DeleteUser(ctx context.Context, uid string) error {
	if _, err := p.store.Get(ctx, credentialsCollection, uid); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrIdentityNotFound
		}
		return fmt.Errorf("failed to load credentials %s: %w", uid, err)
	}
	if err := p.store.Delete(ctx, credentialsCollection, uid); err != nil {
		return fmt.Errorf("failed to delete credentials %s: %w", uid, err)
	}
	return nil
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	docs, err := p.store.Find(ctx, credentialsCollection, "email", email)
	if err != nil {
		return "", fmt.Errorf("failed to look up credentials: %w", err)
	}
	if len(docs) == 0 {
		return "", ErrInvalidCredentials
	}

	var cred credential
	if err := docs[0].DataTo(&cred); err != nil {
		return "", fmt.Errorf("failed to decode credentials: %w", err)
	}
	if !utils.CheckPasswordHash(password, cred.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return p.issueToken(docs[0].ID())
}

func (p *LocalProvider) VerifyToken(_ context.Context, tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	// Срок проверяется по p.now, а не по часам парсера.
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(p.now()) {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (p *LocalProvider) issueToken(uid string) (string, error) {
	now := p.now()
	claims := jwt.RegisteredClaims{
		Subject:   uid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
