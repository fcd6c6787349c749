package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/pickup-games/identity"
	"github.com/Dosada05/pickup-games/models"
	"github.com/Dosada05/pickup-games/repositories"
)

type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	// Authenticate resolves a bearer token into the caller's profile.
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
	UID   string `json:"uid"`
}

type authService struct {
	userRepo repositories.UserRepository
	identity identity.Provider
}

func NewAuthService(userRepo repositories.UserRepository, provider identity.Provider) AuthService {
	return &authService{
		userRepo: userRepo,
		identity: provider,
	}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if err := requiredFields("email", input.Email, "password", input.Password); err != nil {
		return nil, err
	}

	authenticator, ok := s.identity.(identity.PasswordAuthenticator)
	if !ok {
		return nil, ErrPasswordLoginUnsupported
	}

	token, err := authenticator.SignIn(ctx, strings.TrimSpace(input.Email), input.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	user, err := s.Authenticate(ctx, token)
	if err != nil {
		// Учетка без профиля для клиента выглядит как неверные данные.
		if errors.Is(err, ErrAuthenticationFailed) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return &LoginResult{Token: token, UID: user.ID}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	uid, err := s.identity.VerifyToken(ctx, token)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidToken) {
			return nil, ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("failed to load user %s: %w", uid, err)
	}
	if user.Blacklisted {
		return nil, ErrUserBlacklisted
	}
	return user, nil
}
