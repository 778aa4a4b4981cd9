package models

import "time"

type BrandAsset struct {
	ID        string    `db:"id" json:"id"`
	FileName  string    `db:"file_name" json:"file_name"`
	Kind      string    `db:"kind" json:"kind"`
	FileURL   string    `db:"file_url" json:"file_url"`
	Folder    string    `db:"folder" json:"folder"`
	Tags      []string  `db:"tags" json:"tags"`
	Width     int       `db:"width" json:"width,omitempty"`
	Height    int       `db:"height" json:"height,omitempty"`
	FileSize  int64     `db:"file_size" json:"file_size,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type TrainingImage struct {
	ID        string    `db:"id" json:"id"`
	FileName  string    `db:"file_name" json:"file_name"`
	FileURL   string    `db:"file_url" json:"file_url"`
	Source    string    `db:"source" json:"source"` // personal, brand
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
