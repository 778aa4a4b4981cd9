package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/contentdeskhq/contentdesk/internal/models"
	"github.com/contentdeskhq/contentdesk/internal/repository"
)

type TrainingService interface {
	Upload(ctx context.Context, source string, file *multipart.FileHeader) (*models.TrainingImage, error)
	List(ctx context.Context) ([]*models.TrainingImage, error)
	Remove(ctx context.Context, id string) error
}

type trainingService struct {
	tr      repository.TrainingImageRepository
	storage *StorageService
}

func NewTrainingService(tr repository.TrainingImageRepository, storage *StorageService) TrainingService {
	return &trainingService{tr: tr, storage: storage}
}

func (s *trainingService) Upload(ctx context.Context, source string, file *multipart.FileHeader) (*models.TrainingImage, error) {
	if source != "personal" && source != "brand" {
		source = "personal"
	}

	fileBytes, mime, kind, err := readUpload(file)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if kind != models.MediaKindImage {
		err = errors.New("training uploads must be images")
		slog.Info(err.Error())
		return nil, err
	}

	name, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s", PrefixTrainingImages, name)
	url, err := s.storage.Upload(ctx, key, fileBytes, mime)
	if err != nil {
		return nil, fmt.Errorf("error uploading training image: %w", err)
	}

	img := &models.TrainingImage{
		ID:       uuid.NewString(),
		FileName: file.Filename,
		FileURL:  url,
		Source:   source,
	}
	if err := s.tr.Create(ctx, img); err != nil {
		return nil, fmt.Errorf("error saving training image: %w", err)
	}

	return img, nil
}

func (s *trainingService) List(ctx context.Context) ([]*models.TrainingImage, error) {
	images, err := s.tr.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("Error listing training images")
	}
	return images, nil
}

func (s *trainingService) Remove(ctx context.Context, id string) error {
	img, err := s.tr.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if img == nil {
		err = errors.New("Training image doesn't exist")
		slog.Info(err.Error())
		return err
	}

	if err := s.tr.Remove(ctx, id); err != nil {
		return fmt.Errorf("Error removing training image")
	}

	if key := storageKeyFromURL(img.FileURL); key != "" {
		if err := s.storage.Delete(ctx, key); err != nil {
			slog.Info("orphaned storage object left behind", "key", key)
		}
	}
	return nil
}
