package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dosada05/pickup-games/db"
	"github.com/Dosada05/pickup-games/identity"
	"github.com/Dosada05/pickup-games/live"
	"github.com/Dosada05/pickup-games/repositories"
	"github.com/Dosada05/pickup-games/services"
	"github.com/Dosada05/pickup-games/storage"
	"github.com/go-chi/chi/v5"
)

var errStoreDown = errors.New("store unavailable")

// brokenStore fails every read of a whole collection.
type brokenStore struct {
	db.Store
}

func (brokenStore) All(context.Context, string) ([]db.Document, error) {
	return nil, errStoreDown
}

type stubUploader struct{}

func (stubUploader) Upload(_ context.Context, key, _ string, r io.Reader) (*storage.UploadResult, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}
	return &storage.UploadResult{Key: key, Location: "https://cdn.test/" + key}, nil
}

func (stubUploader) Delete(context.Context, string) error { return nil }

func (stubUploader) GetPublicURL(key string) string { return "https://cdn.test/" + key }

type testEnv struct {
	router http.Handler
	store  db.Store
	users  repositories.UserRepository
	games  repositories.GameRepository
}

type envOption func(*envConfig)

type envConfig struct {
	store    db.Store
	uploader storage.FileUploader
}

func withStore(s db.Store) envOption {
	return func(c *envConfig) { c.store = s }
}

func withUploader(u storage.FileUploader) envOption {
	return func(c *envConfig) { c.uploader = u }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	cfg := envConfig{store: db.NewMemoryStore()}
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider := identity.NewLocalProvider(cfg.store, []byte("test-secret"), time.Hour)

	userRepo := repositories.NewUserRepository(cfg.store)
	pitchRepo := repositories.NewPitchRepository(cfg.store)
	gameRepo := repositories.NewGameRepository(cfg.store)

	authService := services.NewAuthService(userRepo, provider)
	userService := services.NewUserService(userRepo, provider, logger)
	pitchService := services.NewPitchService(pitchRepo, cfg.uploader, logger)
	gameService := services.NewGameService(gameRepo, live.NopNotifier{}, logger)
	playerService := services.NewPlayerService(userRepo, gameRepo, live.NopNotifier{}, logger)

	authH := NewAuthHandler(authService)
	userH := NewUserHandler(userService)
	pitchH := NewPitchHandler(pitchService)
	gameH := NewGameHandler(gameService)
	playerH := NewPlayerHandler(playerService)

	r := chi.NewRouter()
	r.Post("/user/register", userH.Register)
	r.Post("/user/login", authH.Login)
	r.Get("/user/users", userH.ListUsers)
	r.Get("/user/user/{uid}", userH.GetUser)
	r.Get("/user/user/name/{name}", userH.GetUsersByName)
	r.Put("/user/user/role", userH.UpdateRole)
	r.Put("/user/user/update", userH.UpdateUser)
	r.Delete("/user/user/{uid}", userH.DeleteUser)
	r.Put("/user/user/blacklist/{uid}", userH.Blacklist)
	r.Put("/user/user/unblacklist/{uid}", userH.Unblacklist)

	r.Post("/pitch/addpitch", pitchH.AddPitch)
	r.Get("/pitch/getpitches", pitchH.GetPitches)
	r.Get("/pitch/getpitch/{id}", pitchH.GetPitch)
	r.Get("/pitch/getpitch/name/{name}", pitchH.GetPitchesByName)
	r.Put("/pitch/updatepitch/{id}", pitchH.UpdatePitch)
	r.Delete("/pitch/deletepitch/{id}", pitchH.DeletePitch)
	r.Put("/pitch/uploadphoto/{id}", pitchH.UploadPhoto)

	r.Post("/game/addgame", gameH.AddGame)
	r.Get("/game/games", gameH.GetGames)
	r.Get("/game/game/{id}", gameH.GetGame)
	r.Get("/game/game/name/{name}", gameH.GetGamesByName)
	r.Put("/game/updategame/{id}", gameH.UpdateGame)
	r.Delete("/game/deletegame/{id}", gameH.DeleteGame)

	r.Post("/player/join", playerH.Join)
	r.Post("/player/finish", playerH.Finish)

	return &testEnv{router: r, store: cfg.store, users: userRepo, games: gameRepo}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		js, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(js)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) register(t *testing.T, email, name string) string {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/user/register", map[string]string{
		"email": email, "password": "secret123", "name": name,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", email, rr.Code, rr.Body.String())
	}
	return decodeObject(t, rr)["uid"].(string)
}

func (e *testEnv) addGame(t *testing.T, maxParticipants int) string {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/game/addgame", map[string]any{
		"name":            "Friday five-a-side",
		"locationId":      "pitch-1",
		"organizerId":     "org-1",
		"amenities":       []string{"showers"},
		"startTime":       "2026-11-06T18:00:00Z",
		"duration":        90,
		"maxParticipants": maxParticipants,
		"format":          "5v5",
		"gender":          "mixed",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("addgame: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	return decodeObject(t, rr)["gameId"].(string)
}

func decodeObject(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return out
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return out
}

func newMemory() db.Store { return db.NewMemoryStore() }
