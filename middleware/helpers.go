package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dosada05/pickup-games/models"
)

type contextKey string

const userContextKey contextKey = "user"

var ErrNoUserInContext = errors.New("user not found in context")

func withUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func GetUserFromContext(ctx context.Context) (*models.User, error) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	if !ok || user == nil {
		return nil, ErrNoUserInContext
	}
	return user, nil
}

func GetUserIDFromContext(ctx context.Context) (string, error) {
	user, err := GetUserFromContext(ctx)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	user, err := GetUserFromContext(ctx)
	if err != nil {
		return "", err
	}
	if !user.Role.Valid() {
		return "", errors.New("user has an invalid role")
	}
	return user.Role, nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
