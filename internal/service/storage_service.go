package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	cfg "github.com/contentdeskhq/contentdesk/configs"
)

// Key prefixes inside the media bucket.
const (
	PrefixTrainingImages  = "training-images/personal-photos"
	PrefixBrandAssets     = "brand-assets"
	PrefixGeneratedImages = "generated-images"
)

type StorageService struct {
	config cfg.Config
}

func NewStorageService(cfg cfg.Config) *StorageService {
	return &StorageService{config: cfg}
}

func (r *StorageService) client() *s3.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r.config.Storage.AccessKey, r.config.Storage.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		log.Fatal(err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.config.Storage.AccountID))
	})
}

// Upload puts the object into the media bucket and returns its public URL.
func (r *StorageService) Upload(ctx context.Context, key string, file []byte, filetype string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.config.Storage.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(filetype),
	}

	_, err := r.client().PutObject(ctx, input)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	return fmt.Sprintf("%s/%s", r.config.Storage.PublicURL, key), nil
}

// Delete removes the object; brand-asset deletion cascades here.
func (r *StorageService) Delete(ctx context.Context, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(r.config.Storage.BucketName),
		Key:    aws.String(key),
	}

	_, err := r.client().DeleteObject(ctx, input)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
