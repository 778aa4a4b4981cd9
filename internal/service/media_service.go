package service

import (
	"context"
	"fmt"
	"mime/multipart"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/contentdeskhq/contentdesk/internal/gateway"
	"github.com/contentdeskhq/contentdesk/internal/models"
)

// MediaService turns multipart uploads into MediaFile references attached to
// a post. Uploads go through the gateway so the legacy multipart endpoint
// covers a primary bucket outage.
type MediaService interface {
	ProcessUploads(ctx context.Context, files []*multipart.FileHeader) ([]models.MediaFile, error)
}

type mediaService struct {
	repo gateway.ContentRepository
}

func NewMediaService(repo gateway.ContentRepository) MediaService {
	return &mediaService{repo: repo}
}

func (s *mediaService) ProcessUploads(ctx context.Context, files []*multipart.FileHeader) ([]models.MediaFile, error) {
	var media []models.MediaFile
	for _, file := range files {
		fileBytes, mime, kind, err := readUpload(file)
		if err != nil {
			return nil, err
		}

		id, err := gonanoid.New()
		if err != nil {
			return nil, err
		}

		key := fmt.Sprintf("post-media/%s", id)
		url, err := s.repo.UploadMedia(ctx, key, fileBytes, mime)
		if err != nil {
			return nil, fmt.Errorf("error uploading file: %w", err)
		}

		media = append(media, models.MediaFile{
			ID:       id,
			FileName: file.Filename,
			Kind:     kind,
			FileURL:  url,
			FileSize: int64(len(fileBytes)),
		})
	}
	return media, nil
}
