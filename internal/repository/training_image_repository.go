package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/contentdeskhq/contentdesk/internal/models"
)

type TrainingImageRepository interface {
	Create(ctx context.Context, img *models.TrainingImage) error
	GetByID(ctx context.Context, id string) (*models.TrainingImage, error)
	List(ctx context.Context) ([]*models.TrainingImage, error)
	Remove(ctx context.Context, id string) error
}

type trainingImageRepository struct {
	db *sql.DB
}

func NewTrainingImageRepository(db *sql.DB) TrainingImageRepository {
	return &trainingImageRepository{db: db}
}

func (r *trainingImageRepository) Create(ctx context.Context, img *models.TrainingImage) error {
	query := `
		INSERT INTO training_images (id, file_name, file_url, source)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, img.ID, img.FileName, img.FileURL, img.Source).Scan(&img.CreatedAt)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *trainingImageRepository) GetByID(ctx context.Context, id string) (*models.TrainingImage, error) {
	query := `SELECT id, file_name, file_url, source, created_at FROM training_images WHERE id = $1`

	var img models.TrainingImage
	err := r.db.QueryRowContext(ctx, query, id).Scan(&img.ID, &img.FileName, &img.FileURL, &img.Source, &img.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &img, nil
}

func (r *trainingImageRepository) List(ctx context.Context) ([]*models.TrainingImage, error) {
	query := `SELECT id, file_name, file_url, source, created_at FROM training_images ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var images []*models.TrainingImage
	for rows.Next() {
		var img models.TrainingImage
		if err := rows.Scan(&img.ID, &img.FileName, &img.FileURL, &img.Source, &img.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		images = append(images, &img)
	}
	return images, rows.Err()
}

func (r *trainingImageRepository) Remove(ctx context.Context, id string) error {
	query := `DELETE FROM training_images WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
