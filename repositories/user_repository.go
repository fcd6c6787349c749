package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/pickup-games/db"
	"github.com/Dosada05/pickup-games/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	// Create writes a new profile under user.ID and reloads it, so CreatedAt is filled.
	Create(ctx context.Context, user *models.User) error
	// Restore writes a previously loaded profile back as-is.
	Restore(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByName(ctx context.Context, name string) ([]models.User, error)
	List(ctx context.Context) ([]models.User, error)
	// Count returns the number of documents where field equals value, or all of them when field is empty.
	Count(ctx context.Context, field string, value any) (int, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	AddSignedUpGame(ctx context.Context, id, gameID string) error
}

type userRepository struct {
	store db.Store
}

func NewUserRepository(store db.Store) UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return errors.New("user id is required")
	}
	data := userDocument(user)
	data["createdAt"] = db.ServerTimestamp

	if err := r.store.Set(ctx, usersCollection, user.ID, data); err != nil {
		return fmt.Errorf("failed to create user %s: %w", user.ID, err)
	}

	created, err := r.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}
	*user = *created
	return nil
}

func (r *userRepository) Restore(ctx context.Context, user *models.User) error {
	if err := r.store.Set(ctx, usersCollection, user.ID, userDocument(user)); err != nil {
		return fmt.Errorf("failed to restore user %s: %w", user.ID, err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	doc, err := r.store.Get(ctx, usersCollection, id)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}
	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", id, err)
	}
	user.ID = doc.ID()
	return &user, nil
}

func (r *userRepository) GetByName(ctx context.Context, name string) ([]models.User, error) {
	docs, err := r.store.Find(ctx, usersCollection, "name", name)
	if err != nil {
		return nil, fmt.Errorf("failed to find users by name: %w", err)
	}
	return decodeDocuments(docs, setUserID)
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	docs, err := r.store.All(ctx, usersCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return decodeDocuments(docs, setUserID)
}

func (r *userRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := r.store.Update(ctx, usersCollection, id, mergeUpdates(fields)); err != nil {
		return mapNotFound(err, ErrUserNotFound)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.store.Get(ctx, usersCollection, id); err != nil {
		return mapNotFound(err, ErrUserNotFound)
	}
	if err := r.store.Delete(ctx, usersCollection, id); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}

func (r *userRepository) AddSignedUpGame(ctx context.Context, id, gameID string) error {
	err := r.store.Update(ctx, usersCollection, id, []db.Update{
		{Path: "gamesSignedUp", Value: db.ArrayUnion(gameID)},
		{Path: "updatedAt", Value: db.ServerTimestamp},
	})
	if err != nil {
		return mapNotFound(err, ErrUserNotFound)
	}
	return nil
}

// gameToHistoryWrite moves gameID from the user's signed-up set into history.
func gameToHistoryWrite(userID, gameID string) db.Write {
	return db.Write{
		Collection: usersCollection,
		ID:         userID,
		Updates: []db.Update{
			{Path: "gamesSignedUp", Value: db.ArrayRemove(gameID)},
			{Path: "gamesHistory", Value: db.ArrayUnion(gameID)},
			{Path: "updatedAt", Value: db.ServerTimestamp},
		},
	}
}

func setUserID(u *models.User, id string) { u.ID = id }

func userDocument(u *models.User) map[string]any {
	data := map[string]any{
		"uid":                u.UID,
		"email":              u.Email,
		"name":               u.Name,
		"role":               string(u.Role),
		"blacklisted":        u.Blacklisted,
		"gamesSignedUp":      nonNilStrings(u.GamesSignedUp),
		"gamesHistory":       nonNilStrings(u.GamesHistory),
		"languagePreference": u.LanguagePreference,
		"paymentMethod":      nonNilMaps(u.PaymentMethods),
	}
	if u.CreatedAt != nil {
		data["createdAt"] = *u.CreatedAt
	}
	if u.UpdatedAt != nil {
		data["updatedAt"] = *u.UpdatedAt
	}
	return data
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilMaps(m []map[string]string) []map[string]string {
	if m == nil {
		return []map[string]string{}
	}
	return m
}

func (r *userRepository) Count(ctx context.Context, field string, value any) (int, error) {
	return countDocuments(ctx, r.store, usersCollection, field, value)
}
