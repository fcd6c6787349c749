package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/pickup-games/db"
	"github.com/Dosada05/pickup-games/models"
)

var ErrPitchNotFound = errors.New("pitch not found")

type PitchRepository interface {
	Create(ctx context.Context, pitch *models.Pitch) error
	GetByID(ctx context.Context, id string) (*models.Pitch, error)
	GetByName(ctx context.Context, name string) ([]models.Pitch, error)
	List(ctx context.Context) ([]models.Pitch, error)
	Count(ctx context.Context, field string, value any) (int, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

type pitchRepository struct {
	store db.Store
}

func NewPitchRepository(store db.Store) PitchRepository {
	return &pitchRepository{store: store}
}

func (r *pitchRepository) Create(ctx context.Context, pitch *models.Pitch) error {
	id, err := r.store.Create(ctx, pitchesCollection, map[string]any{
		"location":  pitch.Location,
		"name":      pitch.Name,
		"type":      pitch.Type,
		"createdAt": db.ServerTimestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to create pitch: %w", err)
	}
	pitch.ID = id
	return nil
}

func (r *pitchRepository) GetByID(ctx context.Context, id string) (*models.Pitch, error) {
	doc, err := r.store.Get(ctx, pitchesCollection, id)
	if err != nil {
		return nil, mapNotFound(err, ErrPitchNotFound)
	}
	var pitch models.Pitch
	if err := doc.DataTo(&pitch); err != nil {
		return nil, fmt.Errorf("failed to decode pitch %s: %w", id, err)
	}
	pitch.ID = doc.ID()
	return &pitch, nil
}

func (r *pitchRepository) GetByName(ctx context.Context, name string) ([]models.Pitch, error) {
	docs, err := r.store.Find(ctx, pitchesCollection, "name", name)
	if err != nil {
		return nil, fmt.Errorf("failed to find pitches by name: %w", err)
	}
	return decodeDocuments(docs, setPitchID)
}

func (r *pitchRepository) List(ctx context.Context) ([]models.Pitch, error) {
	docs, err := r.store.All(ctx, pitchesCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list pitches: %w", err)
	}
	return decodeDocuments(docs, setPitchID)
}

func (r *pitchRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := r.store.Update(ctx, pitchesCollection, id, mergeUpdates(fields)); err != nil {
		return mapNotFound(err, ErrPitchNotFound)
	}
	return nil
}

func (r *pitchRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.store.Get(ctx, pitchesCollection, id); err != nil {
		return mapNotFound(err, ErrPitchNotFound)
	}
	if err := r.store.Delete(ctx, pitchesCollection, id); err != nil {
		return fmt.Errorf("failed to delete pitch %s: %w", id, err)
	}
	return nil
}

func setPitchID(p *models.Pitch, id string) { p.ID = id }

func (r *pitchRepository) Count(ctx context.Context, field string, value any) (int, error) {
	return countDocuments(ctx, r.store, pitchesCollection, field, value)
}
