package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"github.com/contentdeskhq/contentdesk/internal/models"
)

type StylePresetRepository interface {
	Create(ctx context.Context, preset *models.StylePreset) error
	GetByID(ctx context.Context, id string) (*models.StylePreset, error)
	List(ctx context.Context) ([]*models.StylePreset, error)
	Update(ctx context.Context, preset *models.StylePreset) error
	Remove(ctx context.Context, id string) error
}

type stylePresetRepository struct {
	db *sql.DB
}

func NewStylePresetRepository(db *sql.DB) StylePresetRepository {
	return &stylePresetRepository{db: db}
}

func (r *stylePresetRepository) Create(ctx context.Context, preset *models.StylePreset) error {
	query := `
		INSERT INTO style_presets (id, name, image_ids, output_style, aspect_ratio, reference_count, use_brand_colors)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		preset.ID, preset.Name, pq.Array(preset.ImageIDs), preset.OutputStyle,
		preset.AspectRatio, preset.ReferenceCount, preset.UseBrandColors,
	).Scan(&preset.CreatedAt, &preset.UpdatedAt)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *stylePresetRepository) GetByID(ctx context.Context, id string) (*models.StylePreset, error) {
	query := `
		SELECT id, name, image_ids, output_style, aspect_ratio, reference_count, use_brand_colors, created_at, updated_at
		FROM style_presets
		WHERE id = $1
	`

	var p models.StylePreset
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, pq.Array(&p.ImageIDs), &p.OutputStyle,
		&p.AspectRatio, &p.ReferenceCount, &p.UseBrandColors, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &p, nil
}

func (r *stylePresetRepository) List(ctx context.Context) ([]*models.StylePreset, error) {
	query := `
		SELECT id, name, image_ids, output_style, aspect_ratio, reference_count, use_brand_colors, created_at, updated_at
		FROM style_presets
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var presets []*models.StylePreset
	for rows.Next() {
		var p models.StylePreset
		err := rows.Scan(
			&p.ID, &p.Name, pq.Array(&p.ImageIDs), &p.OutputStyle,
			&p.AspectRatio, &p.ReferenceCount, &p.UseBrandColors, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		presets = append(presets, &p)
	}
	return presets, rows.Err()
}

func (r *stylePresetRepository) Update(ctx context.Context, preset *models.StylePreset) error {
	query := `
		UPDATE style_presets
		SET name = $1, image_ids = $2, output_style = $3, aspect_ratio = $4,
			reference_count = $5, use_brand_colors = $6, updated_at = $7
		WHERE id = $8
	`

	_, err := r.db.ExecContext(ctx, query,
		preset.Name, pq.Array(preset.ImageIDs), preset.OutputStyle, preset.AspectRatio,
		preset.ReferenceCount, preset.UseBrandColors, time.Now(), preset.ID,
	)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *stylePresetRepository) Remove(ctx context.Context, id string) error {
	query := `DELETE FROM style_presets WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
