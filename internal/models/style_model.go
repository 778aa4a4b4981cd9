package models

import "time"

// StylePreset bundles generation parameters with a selection of training
// images. Referenced image IDs are not checked against the training-image
// table; dangling references are tolerated.
type StylePreset struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	ImageIDs       []string  `db:"image_ids" json:"image_ids"`
	OutputStyle    string    `db:"output_style" json:"output_style"`
	AspectRatio    string    `db:"aspect_ratio" json:"aspect_ratio"`
	ReferenceCount int       `db:"reference_count" json:"reference_count"`
	UseBrandColors bool      `db:"use_brand_colors" json:"use_brand_colors"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
