package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Dosada05/pickup-games/models"
	"github.com/Dosada05/pickup-games/services"
)

// Authenticate проверяет Bearer-токен и кладет профиль пользователя в контекст.
func Authenticate(auth services.AuthService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			token = strings.TrimSpace(token)
			if !ok || token == "" {
				writeError(w, http.StatusUnauthorized, "missing or malformed authorization header")
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, services.ErrAuthenticationFailed):
					writeError(w, http.StatusUnauthorized, "invalid or expired token")
				case errors.Is(err, services.ErrUserBlacklisted):
					writeError(w, http.StatusForbidden, "user is blacklisted")
				default:
					logger.Error("authentication failed", "method", r.Method, "path", r.URL.Path, "error", err)
					writeError(w, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

// Authorize пропускает только пользователей с одной из ролей. Должен стоять после Authenticate.
func Authorize(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, err := GetUserRoleFromContext(r.Context())
			if err != nil {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "insufficient permissions")
		})
	}
}
