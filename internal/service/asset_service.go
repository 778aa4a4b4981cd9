package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/contentdeskhq/contentdesk/internal/models"
	"github.com/contentdeskhq/contentdesk/internal/repository"
)

type AssetService interface {
	Upload(ctx context.Context, folder string, tags []string, file *multipart.FileHeader) (*models.BrandAsset, error)
	List(ctx context.Context, folder string) ([]*models.BrandAsset, error)
	Update(ctx context.Context, id string, folder *string, tags *[]string) error
	Remove(ctx context.Context, id string) error
}

type assetService struct {
	ar      repository.BrandAssetRepository
	storage *StorageService
}

func NewAssetService(ar repository.BrandAssetRepository, storage *StorageService) AssetService {
	return &assetService{ar: ar, storage: storage}
}

func (s *assetService) Upload(ctx context.Context, folder string, tags []string, file *multipart.FileHeader) (*models.BrandAsset, error) {
	if folder == "" {
		folder = "General"
	}

	fileBytes, mime, kind, err := readUpload(file)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	name, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s/%s", PrefixBrandAssets, folder, name)
	url, err := s.storage.Upload(ctx, key, fileBytes, mime)
	if err != nil {
		return nil, fmt.Errorf("error uploading asset: %w", err)
	}

	asset := &models.BrandAsset{
		ID:       uuid.NewString(),
		FileName: file.Filename,
		Kind:     kind,
		FileURL:  url,
		Folder:   folder,
		Tags:     tags,
		FileSize: int64(len(fileBytes)),
	}
	if err := s.ar.Create(ctx, asset); err != nil {
		return nil, fmt.Errorf("error saving asset: %w", err)
	}

	return asset, nil
}

func (s *assetService) List(ctx context.Context, folder string) ([]*models.BrandAsset, error) {
	assets, err := s.ar.List(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("Error listing brand assets")
	}
	return assets, nil
}

func (s *assetService) Update(ctx context.Context, id string, folder *string, tags *[]string) error {
	if id == "" {
		err := errors.New("asset id is not valid")
		slog.Info(err.Error())
		return err
	}
	return s.ar.Update(ctx, id, folder, tags)
}

// Remove deletes the database row and cascades to the storage object.
func (s *assetService) Remove(ctx context.Context, id string) error {
	asset, err := s.ar.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if asset == nil {
		err = errors.New("Asset doesn't exist")
		slog.Info(err.Error())
		return err
	}

	if err := s.ar.Remove(ctx, id); err != nil {
		return fmt.Errorf("Error removing asset")
	}

	if key := storageKeyFromURL(asset.FileURL); key != "" {
		if err := s.storage.Delete(ctx, key); err != nil {
			slog.Info("orphaned storage object left behind", "key", key)
		}
	}
	return nil
}

// storageKeyFromURL recovers the bucket key from a public URL by stripping
// the host part.
func storageKeyFromURL(url string) string {
	idx := strings.Index(url, "://")
	if idx < 0 {
		return ""
	}
	rest := url[idx+3:]
	slash := strings.Index(rest, "/")
	if slash < 0 {
		return ""
	}
	return rest[slash+1:]
}
