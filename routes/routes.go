package routes

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/pickup-games/handlers"
	"github.com/Dosada05/pickup-games/middleware"
	"github.com/Dosada05/pickup-games/models"
	"github.com/Dosada05/pickup-games/services"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/pickup-games/docs"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Pitch     *handlers.PitchHandler
	Game      *handlers.GameHandler
	Player    *handlers.PlayerHandler
	WebSocket *handlers.WebSocketHandler
	Dashboard *handlers.DashboardHandler
}

type Options struct {
	// RequireAuth включает проверку Bearer-токена и ролей на изменяющих маршрутах.
	RequireAuth    bool
	AllowedOrigins []string
	AuthService    services.AuthService
	Logger         *slog.Logger
}

func SetupRoutes(router chi.Router, opts Options, h Handlers) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	guard := newGuard(opts)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/user", func(r chi.Router) {
		r.Post("/register", h.User.Register)
		r.Post("/login", h.Auth.Login)

		r.With(guard(models.RoleAdmin)).Get("/users", h.User.ListUsers)

		r.Route("/user", func(r chi.Router) {
			r.Get("/{uid}", h.User.GetUser)
			r.Get("/name/{name}", h.User.GetUsersByName)

			r.With(guard()).Put("/update", h.User.UpdateUser)

			r.Group(func(r chi.Router) {
				r.Use(guard(models.RoleAdmin))

				r.Put("/role", h.User.UpdateRole)
				r.Delete("/{uid}", h.User.DeleteUser)
				r.Put("/blacklist/{uid}", h.User.Blacklist)
				r.Put("/unblacklist/{uid}", h.User.Unblacklist)
			})
		})
	})

	router.Route("/pitch", func(r chi.Router) {
		r.Get("/getpitches", h.Pitch.GetPitches)
		r.Get("/getpitch/{id}", h.Pitch.GetPitch)
		r.Get("/getpitch/name/{name}", h.Pitch.GetPitchesByName)

		r.Group(func(r chi.Router) {
			r.Use(guard(models.RoleAdmin))

			r.Post("/addpitch", h.Pitch.AddPitch)
			r.Put("/updatepitch/{id}", h.Pitch.UpdatePitch)
			r.Delete("/deletepitch/{id}", h.Pitch.DeletePitch)
			r.Put("/uploadphoto/{id}", h.Pitch.UploadPhoto)
		})
	})

	router.Route("/game", func(r chi.Router) {
		r.Get("/games", h.Game.GetGames)
		r.Get("/game/{id}", h.Game.GetGame)
		r.Get("/game/name/{name}", h.Game.GetGamesByName)

		r.Group(func(r chi.Router) {
			r.Use(guard(models.RoleOrganizer, models.RoleAdmin))

			r.Post("/addgame", h.Game.AddGame)
			r.Put("/updategame/{id}", h.Game.UpdateGame)
			r.Delete("/deletegame/{id}", h.Game.DeleteGame)
		})
	})

	router.Route("/player", func(r chi.Router) {
		r.Use(guard())

		r.Post("/join", h.Player.Join)
		r.Post("/finish", h.Player.Finish)
	})

	router.With(guard(models.RoleAdmin)).Get("/admin/dashboard", h.Dashboard.Stats)

	router.Get("/ws/games/{gameID}", h.WebSocket.ServeWs)
}

// newGuard возвращает фабрику middleware для защищенных маршрутов.
// Без ролей достаточно любого аутентифицированного пользователя.
// При выключенной аутентификации маршруты остаются публичными.
func newGuard(opts Options) func(roles ...models.UserRole) func(http.Handler) http.Handler {
	if !opts.RequireAuth {
		return func(...models.UserRole) func(http.Handler) http.Handler {
			return func(next http.Handler) http.Handler { return next }
		}
	}

	authenticate := middleware.Authenticate(opts.AuthService, opts.Logger)
	return func(roles ...models.UserRole) func(http.Handler) http.Handler {
		if len(roles) == 0 {
			return authenticate
		}
		authorize := middleware.Authorize(roles...)
		return func(next http.Handler) http.Handler {
			return authenticate(authorize(next))
		}
	}
}
