package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"github.com/contentdeskhq/contentdesk/internal/models"
)

type BrandAssetRepository interface {
	Create(ctx context.Context, asset *models.BrandAsset) error
	GetByID(ctx context.Context, id string) (*models.BrandAsset, error)
	List(ctx context.Context, folder string) ([]*models.BrandAsset, error)
	Update(ctx context.Context, id string, folder *string, tags *[]string) error
	Remove(ctx context.Context, id string) error
}

type brandAssetRepository struct {
	db *sql.DB
}

func NewBrandAssetRepository(db *sql.DB) BrandAssetRepository {
	return &brandAssetRepository{db: db}
}

func (r *brandAssetRepository) Create(ctx context.Context, asset *models.BrandAsset) error {
	query := `
		INSERT INTO brand_assets (id, file_name, kind, file_url, folder, tags, width, height, file_size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		asset.ID, asset.FileName, asset.Kind, asset.FileURL, asset.Folder,
		pq.Array(asset.Tags), asset.Width, asset.Height, asset.FileSize,
	).Scan(&asset.CreatedAt, &asset.UpdatedAt)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *brandAssetRepository) GetByID(ctx context.Context, id string) (*models.BrandAsset, error) {
	query := `
		SELECT id, file_name, kind, file_url, folder, tags, width, height, file_size, created_at, updated_at
		FROM brand_assets
		WHERE id = $1
	`

	var a models.BrandAsset
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.FileName, &a.Kind, &a.FileURL, &a.Folder,
		pq.Array(&a.Tags), &a.Width, &a.Height, &a.FileSize, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &a, nil
}

func (r *brandAssetRepository) List(ctx context.Context, folder string) ([]*models.BrandAsset, error) {
	query := `
		SELECT id, file_name, kind, file_url, folder, tags, width, height, file_size, created_at, updated_at
		FROM brand_assets
	`
	args := []interface{}{}
	if folder != "" {
		query += ` WHERE folder = $1`
		args = append(args, folder)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var assets []*models.BrandAsset
	for rows.Next() {
		var a models.BrandAsset
		err := rows.Scan(
			&a.ID, &a.FileName, &a.Kind, &a.FileURL, &a.Folder,
			pq.Array(&a.Tags), &a.Width, &a.Height, &a.FileSize, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		assets = append(assets, &a)
	}
	return assets, rows.Err()
}

func (r *brandAssetRepository) Update(ctx context.Context, id string, folder *string, tags *[]string) error {
	query := `
		UPDATE brand_assets
		SET folder = COALESCE($1, folder),
			tags = COALESCE($2, tags),
			updated_at = $3
		WHERE id = $4
	`

	var folderArg interface{}
	if folder != nil {
		folderArg = *folder
	}
	var tagsArg interface{}
	if tags != nil {
		tagsArg = pq.Array(*tags)
	}

	_, err := r.db.ExecContext(ctx, query, folderArg, tagsArg, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *brandAssetRepository) Remove(ctx context.Context, id string) error {
	query := `DELETE FROM brand_assets WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
