package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverFirestore = "firestore"
	DriverMongo     = "mongo"
	DriverMemory    = "memory"

	IdentityFirebase = "firebase"
	IdentityLocal    = "local"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort int
	LogLevel   slog.Level

	DocstoreDriver string

	FirebaseProjectID       string
	FirebaseCredentialsFile string

	MongoURI      string
	MongoDatabase string

	IdentityProvider string
	JWTSecretKey     string
	JWTTTL           time.Duration
	RequireAuth      bool

	CORSAllowedOrigins []string

	R2 R2Config
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

// Enabled reports whether pitch photo uploads can be served.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.BucketName != "" && c.PublicBaseURL != ""
}

func (c R2Config) partial() bool {
	set := 0
	for _, v := range []string{c.AccountID, c.AccessKeyID, c.SecretAccessKey, c.BucketName, c.PublicBaseURL} {
		if v != "" {
			set++
		}
	}
	return set > 0 && set < 5
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := intFromEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	level, err := parseLogLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerPort:              port,
		LogLevel:                level,
		DocstoreDriver:          strings.ToLower(envOrDefault("DOCSTORE_DRIVER", DriverFirestore)),
		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseCredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
		MongoURI:                os.Getenv("MONGO_URI"),
		MongoDatabase:           envOrDefault("MONGO_DATABASE", "pickup"),
		JWTSecretKey:            os.Getenv("JWT_SECRET_KEY"),
		CORSAllowedOrigins:      splitOrigins(envOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		R2: R2Config{
			AccountID:       os.Getenv("R2_ACCOUNT_ID"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
			BucketName:      os.Getenv("R2_BUCKET_NAME"),
			PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
		},
	}

	switch cfg.DocstoreDriver {
	case DriverFirestore:
	case DriverMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI environment variable is not set")
		}
	case DriverMemory:
	default:
		return nil, fmt.Errorf("unknown DOCSTORE_DRIVER %q (expected firestore, mongo or memory)", cfg.DocstoreDriver)
	}

	defaultIdentity := IdentityLocal
	if cfg.DocstoreDriver == DriverFirestore {
		defaultIdentity = IdentityFirebase
	}
	cfg.IdentityProvider = strings.ToLower(envOrDefault("IDENTITY_PROVIDER", defaultIdentity))
	switch cfg.IdentityProvider {
	case IdentityFirebase:
	case IdentityLocal:
		if cfg.JWTSecretKey == "" {
			return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
		}
	default:
		return nil, fmt.Errorf("unknown IDENTITY_PROVIDER %q (expected firebase or local)", cfg.IdentityProvider)
	}

	ttl, err := time.ParseDuration(envOrDefault("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL environment variable: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive, got %s", ttl)
	}
	cfg.JWTTTL = ttl

	requireAuth := os.Getenv("REQUIRE_AUTH")
	if requireAuth != "" {
		cfg.RequireAuth, err = strconv.ParseBool(requireAuth)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUIRE_AUTH environment variable: %w", err)
		}
	}

	if cfg.R2.partial() {
		return nil, fmt.Errorf("incomplete R2 configuration: set all of R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_BUCKET_NAME, R2_PUBLIC_BASE_URL or none")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intFromEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "", "INFO":
		return slog.LevelInfo, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", raw)
	}
}

// splitOrigins разбирает список origin'ов, разделённых запятой.
func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
