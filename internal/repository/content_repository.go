package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/contentdeskhq/contentdesk/internal/models"
	"github.com/contentdeskhq/contentdesk/internal/transfer"
)

type ContentItemRepository interface {
	ListPlatforms(ctx context.Context) ([]string, error)
	ListByPlatform(ctx context.Context, platform string) ([]*models.ContentPost, error)
	GetByID(ctx context.Context, id string) (*models.ContentPost, error)
	Create(ctx context.Context, post *models.ContentPost) error
	Update(ctx context.Context, id string, patch *transfer.PostPatch) error
	Remove(ctx context.Context, id string) error
}

type contentItemRepository struct {
	db *sql.DB
}

func NewContentItemRepository(db *sql.DB) ContentItemRepository {
	return &contentItemRepository{db: db}
}

const contentItemColumns = `id, platform, content_type, idea, caption, notes, media, tags, status,
	rejection_reason, approved_at, approved_by, sheet_gid, sheet_row, scheduled_time, created_at, updated_at`

func (r *contentItemRepository) ListPlatforms(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT platform FROM content_items ORDER BY platform`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var platforms []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		platforms = append(platforms, p)
	}
	return platforms, rows.Err()
}

func (r *contentItemRepository) ListByPlatform(ctx context.Context, platform string) ([]*models.ContentPost, error) {
	query := fmt.Sprintf(`SELECT %s FROM content_items WHERE platform = $1 ORDER BY scheduled_time`, contentItemColumns)

	rows, err := r.db.QueryContext(ctx, query, platform)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.ContentPost
	for rows.Next() {
		post, err := scanContentPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *contentItemRepository) GetByID(ctx context.Context, id string) (*models.ContentPost, error) {
	query := fmt.Sprintf(`SELECT %s FROM content_items WHERE id = $1`, contentItemColumns)

	row := r.db.QueryRowContext(ctx, query, id)
	post, err := scanContentPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *contentItemRepository) Create(ctx context.Context, post *models.ContentPost) error {
	query := `
		INSERT INTO content_items (id, platform, content_type, idea, caption, notes, media, tags, status,
			rejection_reason, sheet_gid, sheet_row, scheduled_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`

	media, err := json.Marshal(post.Media)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	err = r.db.QueryRowContext(ctx, query,
		post.ID, post.Platform, post.ContentType, post.Idea, post.Caption, post.Notes,
		media, pq.Array(post.Tags), post.Status, post.RejectionReason,
		post.SheetGID, post.SheetRow, post.ScheduledTime,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentItemRepository) Update(ctx context.Context, id string, patch *transfer.PostPatch) error {
	sets := []string{"updated_at = $1"}
	args := []interface{}{time.Now()}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Idea != nil {
		add("idea", *patch.Idea)
	}
	if patch.Caption != nil {
		add("caption", *patch.Caption)
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}
	if patch.ContentType != nil {
		add("content_type", *patch.ContentType)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.RejectionReason != nil {
		add("rejection_reason", *patch.RejectionReason)
	}
	if patch.ScheduledTime != nil {
		scheduled, err := time.Parse("2006-01-02T15:04", *patch.ScheduledTime)
		if err != nil {
			slog.Info(err.Error())
			return err
		}
		add("scheduled_time", scheduled)
	}
	if patch.Media != nil {
		media, err := json.Marshal(*patch.Media)
		if err != nil {
			slog.Info(err.Error())
			return err
		}
		add("media", media)
	}
	if patch.Tags != nil {
		add("tags", pq.Array(*patch.Tags))
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE content_items SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentItemRepository) Remove(ctx context.Context, id string) error {
	query := `DELETE FROM content_items WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContentPost(row rowScanner) (*models.ContentPost, error) {
	var post models.ContentPost
	var media []byte
	var approvedAt sql.NullTime
	var rejection, approvedBy, sheetGID sql.NullString
	var sheetRow sql.NullInt64

	err := row.Scan(
		&post.ID, &post.Platform, &post.ContentType, &post.Idea, &post.Caption, &post.Notes,
		&media, pq.Array(&post.Tags), &post.Status,
		&rejection, &approvedAt, &approvedBy, &sheetGID, &sheetRow,
		&post.ScheduledTime, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(media) > 0 {
		if err := json.Unmarshal(media, &post.Media); err != nil {
			return nil, err
		}
	}
	post.RejectionReason = rejection.String
	post.ApprovedBy = approvedBy.String
	post.SheetGID = sheetGID.String
	post.SheetRow = int(sheetRow.Int64)
	if approvedAt.Valid {
		post.ApprovedAt = &approvedAt.Time
	}

	return &post, nil
}
