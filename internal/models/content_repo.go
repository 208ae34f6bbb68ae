package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

func (su *SupabaseRepo) ListContent(ctx context.Context) ([]SiteContent, error) {
	raw, _, err := su.supabaseClient.From(SiteContentTable).
		Select("*", "", false).
		Order("section", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list site content: %w", err)
	}

	var rows []SiteContent
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal site content: %w", err)
	}
	return rows, nil
}

func (su *SupabaseRepo) UpdateContent(ctx context.Context, id uuid.UUID, update ContentUpdate, updatedBy string) (*SiteContent, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	raw, _, err := su.supabaseClient.From(SiteContentTable).
		Update(map[string]interface{}{
			"title":        update.Title,
			"content":      update.Content,
			"content_type": update.ContentType,
			"updated_by":   updatedBy,
			"updated_at":   time.Now().UTC(),
		}, "representation", "").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update site content: %w", err)
	}

	var rows []SiteContent
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated content: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (su *SupabaseRepo) ListImages(ctx context.Context) ([]SiteImage, error) {
	raw, _, err := su.supabaseClient.From(SiteImagesTable).
		Select("*", "", false).
		Order("section", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list site images: %w", err)
	}

	var rows []SiteImage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal site images: %w", err)
	}
	return rows, nil
}

func (su *SupabaseRepo) CreateImage(ctx context.Context, img *SiteImage) (*SiteImage, error) {
	raw, _, err := su.supabaseClient.From(SiteImagesTable).
		Insert(img, false, "", "representation", "").
		Execute()
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("image key %q already exists", img.Key)
		}
		return nil, fmt.Errorf("failed to insert site image: %w", err)
	}

	var rows []SiteImage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal created image: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no image returned after insert")
	}
	return &rows[0], nil
}

func (su *SupabaseRepo) SetImageActive(ctx context.Context, id uuid.UUID, active bool) (*SiteImage, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	raw, _, err := su.supabaseClient.From(SiteImagesTable).
		Update(map[string]interface{}{
			"is_active":  active,
			"updated_at": time.Now().UTC(),
		}, "representation", "").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update site image: %w", err)
	}

	var rows []SiteImage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated image: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// ListStats reads the reservation_stats view, one row per resource.
func (su *SupabaseRepo) ListStats(ctx context.Context) ([]ReservationStats, error) {
	raw, _, err := su.supabaseClient.From(ReservationStatsTable).
		Select("*", "", false).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation stats: %w", err)
	}

	var rows []ReservationStats
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reservation stats: %w", err)
	}
	return rows, nil
}
