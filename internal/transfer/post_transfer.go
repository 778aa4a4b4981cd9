package transfer

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/contentdeskhq/contentdesk/internal/models"
)

type PostCreation struct {
	Platform      string             `json:"platform"`
	ContentType   string             `json:"content_type"`
	Idea          string             `json:"idea"`
	Caption       string             `json:"caption"`
	Notes         string             `json:"notes"`
	ScheduledTime string             `json:"scheduled_time"`
	Media         []models.MediaFile `json:"media"`
	Tags          []string           `json:"tags"`
}

// PostPatch carries partial updates. Nil fields are left untouched.
type PostPatch struct {
	Idea            *string             `json:"idea,omitempty"`
	Caption         *string             `json:"caption,omitempty"`
	Notes           *string             `json:"notes,omitempty"`
	ScheduledTime   *string             `json:"scheduled_time,omitempty"`
	ContentType     *string             `json:"content_type,omitempty"`
	Status          *string             `json:"status,omitempty"`
	RejectionReason *string             `json:"rejection_reason,omitempty"`
	Media           *[]models.MediaFile `json:"media,omitempty"`
	Tags            *[]string           `json:"tags,omitempty"`
}

type CustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
