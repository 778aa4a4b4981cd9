package models

import "time"

type ContentPost struct {
	ID              string      `db:"id" json:"id"`
	Platform        string      `db:"platform" json:"platform"`
	ContentType     string      `db:"content_type" json:"content_type"`
	Idea            string      `db:"idea" json:"idea"`
	Caption         string      `db:"caption" json:"caption"`
	Notes           string      `db:"notes" json:"notes"`
	Media           []MediaFile `db:"media" json:"media"`
	Tags            []string    `db:"tags" json:"tags"`
	Status          string      `db:"status" json:"status"` // draft, pending, approved, rejected
	RejectionReason string      `db:"rejection_reason" json:"rejection_reason,omitempty"`
	ApprovedAt      *time.Time  `db:"approved_at" json:"approved_at,omitempty"`
	ApprovedBy      string      `db:"approved_by" json:"approved_by,omitempty"`
	SheetGID        string      `db:"sheet_gid" json:"sheet_gid,omitempty"`
	SheetRow        int         `db:"sheet_row" json:"sheet_row,omitempty"`
	ScheduledTime   time.Time   `db:"scheduled_time" json:"scheduled_time"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`
}

type MediaFile struct {
	ID           string `json:"id"`
	FileName     string `json:"file_name"`
	Kind         string `json:"kind"` // image, video, document
	FileURL      string `json:"file_url"`
	FileSize     int64  `json:"file_size,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

const (
	PostStatusDraft    = "draft"
	PostStatusPending  = "pending"
	PostStatusApproved = "approved"
	PostStatusRejected = "rejected"
)

const (
	PlatformInstagram = "instagram"
	PlatformTiktok    = "tiktok"
	PlatformYoutube   = "youtube"
	PlatformLinkedin  = "linkedin"
)

const (
	ContentTypeReel     = "reel"
	ContentTypeStory    = "story"
	ContentTypePost     = "post"
	ContentTypeCarousel = "carousel"
	ContentTypeShort    = "short"
)

const (
	MediaKindImage    = "image"
	MediaKindVideo    = "video"
	MediaKindDocument = "document"
)
