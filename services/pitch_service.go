package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Dosada05/pickup-games/models"
	"github.com/Dosada05/pickup-games/repositories"
	"github.com/Dosada05/pickup-games/storage"
)

const pitchPhotoPrefix = "pitches"

type PitchService interface {
	CreatePitch(ctx context.Context, input CreatePitchInput) (*models.Pitch, error)
	GetPitch(ctx context.Context, id string) (*models.Pitch, error)
	GetPitchesByName(ctx context.Context, name string) ([]models.Pitch, error)
	ListPitches(ctx context.Context) ([]models.Pitch, error)
	UpdatePitch(ctx context.Context, id string, fields map[string]any) error
	DeletePitch(ctx context.Context, id string) error
	UploadPhoto(ctx context.Context, id string, file io.Reader, contentType string) (*models.Pitch, error)
}

type CreatePitchInput struct {
	Address  string `json:"address"`
	GMapLink string `json:"gmaplink"`
	Name     string `json:"pitchname"`
	Type     string `json:"type"`
}

type pitchService struct {
	pitchRepo repositories.PitchRepository
	uploader  storage.FileUploader
	logger    *slog.Logger
}

// NewPitchService: uploader может быть nil, тогда загрузка фото отключена.
func NewPitchService(pitchRepo repositories.PitchRepository, uploader storage.FileUploader, logger *slog.Logger) PitchService {
	return &pitchService{
		pitchRepo: pitchRepo,
		uploader:  uploader,
		logger:    logger,
	}
}

var pitchUpdates = updateSanitizer{
	ignored: []string{"id", "createdAt", "updatedAt", "photoKey", "photoUrl"},
}

func (s *pitchService) CreatePitch(ctx context.Context, input CreatePitchInput) (*models.Pitch, error) {
	pitch := &models.Pitch{
		Location: models.PitchLocation{
			Address:  strings.TrimSpace(input.Address),
			GMapLink: strings.TrimSpace(input.GMapLink),
		},
		Name: strings.TrimSpace(input.Name),
		Type: strings.TrimSpace(input.Type),
	}
	err := requiredFields(
		"address", pitch.Location.Address,
		"gmaplink", pitch.Location.GMapLink,
		"pitchname", pitch.Name,
		"type", pitch.Type,
	)
	if err != nil {
		return nil, err
	}

	if err := s.pitchRepo.Create(ctx, pitch); err != nil {
		return nil, fmt.Errorf("failed to create pitch: %w", err)
	}
	return pitch, nil
}

func (s *pitchService) GetPitch(ctx context.Context, id string) (*models.Pitch, error) {
	pitch, err := s.pitchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPitchNotFound) {
			return nil, ErrPitchNotFound
		}
		return nil, fmt.Errorf("failed to get pitch %s: %w", id, err)
	}
	return pitch, nil
}

func (s *pitchService) GetPitchesByName(ctx context.Context, name string) ([]models.Pitch, error) {
	pitches, err := s.pitchRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get pitches by name: %w", err)
	}
	if len(pitches) == 0 {
		return nil, ErrPitchNotFound
	}
	return pitches, nil
}

func (s *pitchService) ListPitches(ctx context.Context) ([]models.Pitch, error) {
	pitches, err := s.pitchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pitches: %w", err)
	}
	return pitches, nil
}

func (s *pitchService) UpdatePitch(ctx context.Context, id string, fields map[string]any) error {
	sanitized, err := pitchUpdates.sanitize(fields)
	if err != nil {
		return err
	}
	if len(sanitized) == 0 {
		return ErrEmptyUpdate
	}
	return s.update(ctx, id, sanitized)
}

func (s *pitchService) update(ctx context.Context, id string, fields map[string]any) error {
	if err := s.pitchRepo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, repositories.ErrPitchNotFound) {
			return ErrPitchNotFound
		}
		return fmt.Errorf("failed to update pitch %s: %w", id, err)
	}
	return nil
}

func (s *pitchService) DeletePitch(ctx context.Context, id string) error {
	pitch, err := s.GetPitch(ctx, id)
	if err != nil {
		return err
	}
	if err := s.pitchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPitchNotFound) {
			return ErrPitchNotFound
		}
		return fmt.Errorf("failed to delete pitch %s: %w", id, err)
	}
	s.deletePhoto(ctx, pitch)
	return nil
}

// UploadPhoto загружает новое фото, сохраняет ключ и URL, затем удаляет старый объект.
func (s *pitchService) UploadPhoto(ctx context.Context, id string, file io.Reader, contentType string) (*models.Pitch, error) {
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}
	if !storage.IsImageContentType(contentType) {
		return nil, ErrUnsupportedPhoto
	}

	pitch, err := s.GetPitch(ctx, id)
	if err != nil {
		return nil, err
	}

	key := storage.ObjectKey(pitchPhotoPrefix, id, contentType)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload photo for pitch %s: %w", id, err)
	}

	err = s.update(ctx, id, map[string]any{
		"photoKey": result.Key,
		"photoUrl": result.Location,
	})
	if err != nil {
		if delErr := s.uploader.Delete(context.WithoutCancel(ctx), result.Key); delErr != nil {
			s.logger.Warn("failed to remove orphaned pitch photo", "pitch_id", id, "key", result.Key, "error", delErr)
		}
		return nil, err
	}

	s.deletePhoto(ctx, pitch)

	pitch.PhotoKey = result.Key
	pitch.PhotoURL = result.Location
	return pitch, nil
}

func (s *pitchService) deletePhoto(ctx context.Context, pitch *models.Pitch) {
	if s.uploader == nil || pitch.PhotoKey == "" {
		return
	}
	if err := s.uploader.Delete(ctx, pitch.PhotoKey); err != nil {
		s.logger.Warn("failed to delete pitch photo", "pitch_id", pitch.ID, "key", pitch.PhotoKey, "error", err)
	}
}
