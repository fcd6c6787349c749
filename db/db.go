package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/pickup-games/config"
)

// ErrNotFound возвращается, когда документ с указанным id отсутствует.
var ErrNotFound = errors.New("document not found")

// Document is a single stored record.
type Document interface {
	ID() string
	DataTo(dst any) error
}

// Update sets Path (dot-separated for nested fields) to Value. Value may be a
// plain value or one of ServerTimestamp, ArrayUnion, ArrayRemove.
type Update struct {
	Path  string
	Value any
}

// Write is one document update inside a Batch.
type Write struct {
	Collection string
	ID         string
	Updates    []Update
}

// Store is the document database used by the repositories.
type Store interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	Find(ctx context.Context, collection, field string, value any) ([]Document, error)
	All(ctx context.Context, collection string) ([]Document, error)
	Create(ctx context.Context, collection string, data map[string]any) (string, error)
	Set(ctx context.Context, collection, id string, data map[string]any) error
	Update(ctx context.Context, collection, id string, updates []Update) error
	Delete(ctx context.Context, collection, id string) error
	// Batch applies all writes together. Firestore and memory stores are atomic,
	// Mongo is atomic only when the server supports transactions.
	Batch(ctx context.Context, writes []Write) error
	Close() error
}

type serverTimestamp struct{}

// ServerTimestamp is replaced by the store's current time when written.
var ServerTimestamp = serverTimestamp{}

type arrayUnion struct{ values []any }

type arrayRemove struct{ values []any }

// ArrayUnion adds values to an array field, skipping ones already present.
func ArrayUnion(values ...any) any {
	return arrayUnion{values: values}
}

// ArrayRemove removes every occurrence of values from an array field.
func ArrayRemove(values ...any) any {
	return arrayRemove{values: values}
}

// Connect открывает хранилище, выбранное в конфигурации, и проверяет соединение.
func Connect(cfg *config.Config, timeout time.Duration) (Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	switch cfg.DocstoreDriver {
	case config.DriverFirestore:
		return NewFirestoreStore(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
	case config.DriverMongo:
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported document store driver %q", cfg.DocstoreDriver)
	}
}
