package services

import (
	"errors"
	"fmt"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации: все оборачивают ErrValidationFailed и дают 400.
	ErrValidationFailed  = errors.New("validation failed")
	ErrInvalidRole       = fmt.Errorf("%w: role must be one of admin, organizer, player", ErrValidationFailed)
	ErrInvalidEmail      = fmt.Errorf("%w: email address is not valid", ErrValidationFailed)
	ErrPasswordTooShort  = fmt.Errorf("%w: password is too short", ErrValidationFailed)
	ErrUserEmailConflict = fmt.Errorf("%w: email address is already in use", ErrValidationFailed)
	ErrEmptyUpdate       = fmt.Errorf("%w: update data is required", ErrValidationFailed)
	ErrUnsupportedPhoto  = fmt.Errorf("%w: photo must be a jpeg, png, webp or gif image", ErrValidationFailed)

	// Ошибки аутентификации и авторизации
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrAuthenticationFailed     = errors.New("authentication failed")
	ErrUserBlacklisted          = errors.New("user is blacklisted")
	ErrPasswordLoginUnsupported = errors.New("password login is not supported by the identity provider")
	ErrForbiddenOperation       = errors.New("operation not allowed for the current user")

	ErrUploadsDisabled = errors.New("file uploads are not configured")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound       = errors.New("user not found")
	ErrPitchNotFound      = errors.New("pitch not found")
	ErrGameNotFound       = errors.New("game not found")
	ErrUserOrGameNotFound = errors.New("user or game not found")

	// Ошибки коллабораторов (500)
	ErrUserCreationFailed = errors.New("failed to create user")
	ErrUserDeleteFailed   = errors.New("failed to delete user")
)
