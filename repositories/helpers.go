package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Dosada05/pickup-games/db"
)

const (
	usersCollection   = "users"
	pitchesCollection = "pitches"
	gamesCollection   = "games"
)

// mapNotFound подменяет db.ErrNotFound ошибкой конкретного репозитория.
func mapNotFound(err, notFoundError error) error {
	if errors.Is(err, db.ErrNotFound) {
		return notFoundError
	}
	return err
}

func decodeDocuments[T any](docs []db.Document, setID func(*T, string)) ([]T, error) {
	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := doc.DataTo(&item); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", doc.ID(), err)
		}
		setID(&item, doc.ID())
		items = append(items, item)
	}
	return items, nil
}

// mergeUpdates turns a partial document into field updates and stamps updatedAt.
// Keys are sorted so the resulting write is deterministic.
func mergeUpdates(fields map[string]any) []db.Update {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	updates := make([]db.Update, 0, len(keys)+1)
	for _, k := range keys {
		updates = append(updates, db.Update{Path: k, Value: fields[k]})
	}
	return append(updates, db.Update{Path: "updatedAt", Value: db.ServerTimestamp})
}

// countDocuments считает документы коллекции; пустой field означает все документы.
func countDocuments(ctx context.Context, store db.Store, collection, field string, value any) (int, error) {
	var (
		docs []db.Document
		err  error
	)
	if field == "" {
		docs, err = store.All(ctx, collection)
	} else {
		docs, err = store.Find(ctx, collection, field, value)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", collection, err)
	}
	return len(docs), nil
}
