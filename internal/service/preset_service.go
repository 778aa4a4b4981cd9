package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/contentdeskhq/contentdesk/internal/models"
	"github.com/contentdeskhq/contentdesk/internal/repository"
	"github.com/contentdeskhq/contentdesk/internal/transfer"
)

type PresetService interface {
	Create(ctx context.Context, pc *transfer.PresetCreation) (*models.StylePreset, error)
	Get(ctx context.Context, id string) (*models.StylePreset, error)
	List(ctx context.Context) ([]*models.StylePreset, error)
	Update(ctx context.Context, id string, pc *transfer.PresetCreation) error
	Remove(ctx context.Context, id string) error
}

type presetService struct {
	pr repository.StylePresetRepository
}

func NewPresetService(pr repository.StylePresetRepository) PresetService {
	return &presetService{pr: pr}
}

// Create stores the preset as given. Referenced training-image IDs are not
// validated; a preset may point at images that were deleted later.
func (s *presetService) Create(ctx context.Context, pc *transfer.PresetCreation) (*models.StylePreset, error) {
	if pc.Name == "" {
		err := errors.New("preset name cannot be empty")
		slog.Info(err.Error())
		return nil, err
	}

	preset := &models.StylePreset{
		ID:             uuid.NewString(),
		Name:           pc.Name,
		ImageIDs:       pc.ImageIDs,
		OutputStyle:    pc.OutputStyle,
		AspectRatio:    pc.AspectRatio,
		ReferenceCount: pc.ReferenceCount,
		UseBrandColors: pc.UseBrandColors,
	}
	if err := s.pr.Create(ctx, preset); err != nil {
		return nil, fmt.Errorf("error saving preset: %w", err)
	}
	return preset, nil
}

func (s *presetService) Get(ctx context.Context, id string) (*models.StylePreset, error) {
	preset, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if preset == nil {
		err = errors.New("Preset doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}
	return preset, nil
}

func (s *presetService) List(ctx context.Context) ([]*models.StylePreset, error) {
	presets, err := s.pr.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("Error listing presets")
	}
	return presets, nil
}

func (s *presetService) Update(ctx context.Context, id string, pc *transfer.PresetCreation) error {
	preset, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if preset == nil {
		err = errors.New("Preset doesn't exist")
		slog.Info(err.Error())
		return err
	}

	preset.Name = pc.Name
	preset.ImageIDs = pc.ImageIDs
	preset.OutputStyle = pc.OutputStyle
	preset.AspectRatio = pc.AspectRatio
	preset.ReferenceCount = pc.ReferenceCount
	preset.UseBrandColors = pc.UseBrandColors

	return s.pr.Update(ctx, preset)
}

func (s *presetService) Remove(ctx context.Context, id string) error {
	if err := s.pr.Remove(ctx, id); err != nil {
		return fmt.Errorf("Error removing preset")
	}
	return nil
}
