package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SiteContentTable      = "site_content"
	SiteImagesTable       = "site_images"
	ReservationStatsTable = "reservation_stats"
)

type ContentType string

const (
	ContentText     ContentType = "text"
	ContentHTML     ContentType = "html"
	ContentMarkdown ContentType = "markdown"
)

type SiteContent struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
	Key         string      `db:"key" json:"key"`
	Title       string      `db:"title" json:"title"`
	Content     string      `db:"content" json:"content"`
	ContentType ContentType `db:"content_type" json:"content_type"`
	Section     string      `db:"section" json:"section"`
	IsActive    bool        `db:"is_active" json:"is_active"`
	UpdatedBy   string      `db:"updated_by" json:"updated_by,omitempty"`
}

// ContentUpdate carries the admin-editable fields of a SiteContent row.
type ContentUpdate struct {
	Title       string      `json:"title" validate:"required,max=200"`
	Content     string      `json:"content"`
	ContentType ContentType `json:"content_type" validate:"required,oneof=text html markdown"`
}

type SiteImage struct {
	ID         uuid.UUID `db:"id" json:"id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
	Key        string    `db:"key" json:"key" validate:"required"`
	Title      string    `db:"title" json:"title"`
	AltText    string    `db:"alt_text" json:"alt_text"`
	FilePath   string    `db:"file_path" json:"file_path" validate:"required"`
	FileSize   int       `db:"file_size" json:"file_size"`
	MimeType   string    `db:"mime_type" json:"mime_type"`
	Section    string    `db:"section" json:"section" validate:"required"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	UploadedBy string    `db:"uploaded_by" json:"uploaded_by,omitempty"`
}

type ReservationStats struct {
	Type                  Resource `json:"type"`
	TotalReservations     int      `json:"total_reservations"`
	ConfirmedReservations int      `json:"confirmed_reservations"`
	PendingReservations   int      `json:"pending_reservations"`
	CancelledReservations int      `json:"cancelled_reservations"`
}
