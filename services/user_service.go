package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/pickup-games/identity"
	"github.com/Dosada05/pickup-games/models"
	"github.com/Dosada05/pickup-games/repositories"
	"github.com/Dosada05/pickup-games/utils"
)

const defaultLanguage = "en"

type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUsersByName(ctx context.Context, name string) ([]models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id string, role models.UserRole) error
	// UpdateUser merges fields into the profile. A non-admin caller may only
	// update their own profile and cannot touch role or blacklisted.
	UpdateUser(ctx context.Context, caller *models.User, id string, fields map[string]any) error
	DeleteUser(ctx context.Context, id string) error
	SetBlacklisted(ctx context.Context, id string, blacklisted bool) error
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type userService struct {
	userRepo repositories.UserRepository
	identity identity.Provider
	logger   *slog.Logger
}

func NewUserService(userRepo repositories.UserRepository, provider identity.Provider, logger *slog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		identity: provider,
		logger:   logger,
	}
}

var userUpdates = updateSanitizer{
	ignored: []string{"id", "uid", "createdAt", "updatedAt"},
}

// Эти поля меняются только администратором.
var adminOnlyUserFields = []string{"role", "blacklisted"}

// Register создает identity, затем профиль. Если профиль записать не удалось,
// identity удаляется, чтобы не оставлять учетку без профиля.
func (s *userService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)
	if err := requiredFields("email", email, "password", input.Password, "name", name); err != nil {
		return nil, err
	}
	if !utils.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < utils.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	uid, err := s.identity.CreateUser(ctx, email, input.Password, name)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrEmailTaken):
			return nil, ErrUserEmailConflict
		case errors.Is(err, identity.ErrWeakPassword):
			return nil, ErrPasswordTooShort
		default:
			return nil, fmt.Errorf("%w: %w", ErrUserCreationFailed, err)
		}
	}

	user := &models.User{
		ID:                 uid,
		UID:                uid,
		Email:              email,
		Name:               name,
		Role:               models.RolePlayer,
		Blacklisted:        false,
		GamesSignedUp:      []string{},
		GamesHistory:       []string{},
		LanguagePreference: defaultLanguage,
		PaymentMethods:     []map[string]string{},
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		cleanupCtx := context.WithoutCancel(ctx)
		if delErr := s.identity.DeleteUser(cleanupCtx, uid); delErr != nil && !errors.Is(delErr, identity.ErrIdentityNotFound) {
			s.logger.Error("failed to remove identity after profile write failure, manual cleanup required",
				"uid", uid, "profile_error", err, "identity_error", delErr)
		}
		return nil, fmt.Errorf("%w: %w", ErrUserCreationFailed, err)
	}

	s.logger.Info("user registered", "uid", uid)
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return user, nil
}

func (s *userService) GetUsersByName(ctx context.Context, name string) ([]models.User, error) {
	users, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by name: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return users, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) UpdateRole(ctx context.Context, id string, role models.UserRole) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	return s.update(ctx, id, map[string]any{"role": string(role)})
}

func (s *userService) UpdateUser(ctx context.Context, caller *models.User, id string, fields map[string]any) error {
	if !actsUnrestricted(caller) {
		if caller.ID != id {
			return ErrForbiddenOperation
		}
		for _, field := range adminOnlyUserFields {
			if _, ok := fields[field]; ok {
				return fmt.Errorf("%w: %s can only be changed by an admin", ErrForbiddenOperation, field)
			}
		}
	}

	sanitized, err := userUpdates.sanitize(fields)
	if err != nil {
		return err
	}
	if len(sanitized) == 0 {
		return ErrEmptyUpdate
	}
	if raw, ok := sanitized["role"]; ok {
		role, _ := raw.(string)
		if !models.UserRole(role).Valid() {
			return ErrInvalidRole
		}
	}
	if raw, ok := sanitized["blacklisted"]; ok {
		if _, isBool := raw.(bool); !isBool {
			return fmt.Errorf("%w: blacklisted must be a boolean", ErrValidationFailed)
		}
	}
	return s.update(ctx, id, sanitized)
}

func (s *userService) SetBlacklisted(ctx context.Context, id string, blacklisted bool) error {
	if err := s.update(ctx, id, map[string]any{"blacklisted": blacklisted}); err != nil {
		return err
	}
	s.logger.Info("user blacklist flag changed", "uid", id, "blacklisted", blacklisted)
	return nil
}

func (s *userService) update(ctx context.Context, id string, fields map[string]any) error {
	if err := s.userRepo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return nil
}

// DeleteUser удаляет профиль, затем identity. Если identity удалить не удалось,
// профиль восстанавливается и возвращается ошибка, чтобы запрос можно было повторить.
func (s *userService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: %w", ErrUserDeleteFailed, err)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: %w", ErrUserDeleteFailed, err)
	}

	err = s.identity.DeleteUser(ctx, id)
	if err == nil || errors.Is(err, identity.ErrIdentityNotFound) {
		s.logger.Info("user deleted", "uid", id)
		return nil
	}

	if restoreErr := s.userRepo.Restore(context.WithoutCancel(ctx), user); restoreErr != nil {
		s.logger.Error("profile deleted but identity remains, manual cleanup required",
			"uid", id, "identity_error", err, "restore_error", restoreErr)
	} else {
		s.logger.Warn("identity deletion failed, profile restored", "uid", id, "error", err)
	}
	return fmt.Errorf("%w: %w", ErrUserDeleteFailed, err)
}
