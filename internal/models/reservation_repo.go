package models

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

const reservationColumns = "*"

// isUniqueViolation recognises the PostgREST rendering of a Postgres 23505 error.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}

func normalizeSaltCave(rows []SaltCaveReservation) []SaltCaveReservation {
	for i := range rows {
		rows[i].Time = NormalizeSlot(rows[i].Time)
	}
	return rows
}

func (su *SupabaseRepo) ListSaltCaveByDate(ctx context.Context, date string) ([]SaltCaveReservation, error) {
	raw, _, err := su.supabaseClient.From(SaltCaveTable).
		Select(reservationColumns, "", false).
		Eq("date", date).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list salt cave reservations for %s: %w", date, err)
	}

	var rows []SaltCaveReservation
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal salt cave reservations: %w", err)
	}
	return normalizeSaltCave(rows), nil
}

// ListSaltCaveInRange returns reservations with from <= date <= to.
func (su *SupabaseRepo) ListSaltCaveInRange(ctx context.Context, from, to string) ([]SaltCaveReservation, error) {
	raw, _, err := su.supabaseClient.From(SaltCaveTable).
		Select(reservationColumns, "", false).
		Gte("date", from).
		Lte("date", to).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list salt cave reservations %s..%s: %w", from, to, err)
	}

	var rows []SaltCaveReservation
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal salt cave reservations: %w", err)
	}
	return normalizeSaltCave(rows), nil
}

// ListMotelOverlapping returns stays overlapping the half-open range [from, to).
func (su *SupabaseRepo) ListMotelOverlapping(ctx context.Context, from, to string) ([]MotelReservation, error) {
	raw, _, err := su.supabaseClient.From(MotelTable).
		Select(reservationColumns, "", false).
		Lt("check_in", to).
		Gt("check_out", from).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list motel reservations %s..%s: %w", from, to, err)
	}

	var rows []MotelReservation
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal motel reservations: %w", err)
	}
	return rows, nil
}

// CreateSaltCave inserts the row as-is. The table carries a unique index on
// (date, time), so a second booking of the same slot fails with ErrSlotTaken.
func (su *SupabaseRepo) CreateSaltCave(ctx context.Context, r *SaltCaveReservation) (*SaltCaveReservation, error) {
	raw, _, err := su.supabaseClient.From(SaltCaveTable).
		Insert(r, false, "", "representation", "").
		Execute()
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to insert salt cave reservation: %w", err)
	}

	var created []SaltCaveReservation
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal created reservation: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("no reservation returned after insert")
	}
	created[0].Time = NormalizeSlot(created[0].Time)
	return &created[0], nil
}

func (su *SupabaseRepo) CreateMotel(ctx context.Context, r *MotelReservation) (*MotelReservation, error) {
	raw, _, err := su.supabaseClient.From(MotelTable).
		Insert(r, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert motel reservation: %w", err)
	}

	var created []MotelReservation
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal created reservation: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("no reservation returned after insert")
	}
	return &created[0], nil
}

// decodeReservations turns a PostgREST array body into resource-tagged reservations.
func decodeReservations(resource Resource, raw []byte) ([]Reservation, error) {
	if resource == ResourceSaltCave {
		var rows []SaltCaveReservation
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, fmt.Errorf("failed to unmarshal salt cave reservations: %w", err)
		}
		out := make([]Reservation, 0, len(rows))
		for i := range normalizeSaltCave(rows) {
			out = append(out, Reservation{Resource: resource, SaltCave: &rows[i]})
		}
		return out, nil
	}

	var rows []MotelReservation
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal motel reservations: %w", err)
	}
	out := make([]Reservation, 0, len(rows))
	for i := range rows {
		out = append(out, Reservation{Resource: resource, Motel: &rows[i]})
	}
	return out, nil
}

func (su *SupabaseRepo) GetReservation(ctx context.Context, resource Resource, id uuid.UUID) (*Reservation, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	raw, _, err := su.supabaseClient.From(resource.Table()).
		Select(reservationColumns, "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation %s: %w", id, err)
	}

	rows, err := decodeReservations(resource, raw)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (su *SupabaseRepo) ListReservations(ctx context.Context, resource Resource) ([]Reservation, error) {
	raw, _, err := su.supabaseClient.From(resource.Table()).
		Select(reservationColumns, "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s reservations: %w", resource, err)
	}
	return decodeReservations(resource, raw)
}

func (su *SupabaseRepo) UpdateReservationStatus(ctx context.Context, resource Resource, id uuid.UUID, status ReservationStatus) (*Reservation, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	raw, _, err := su.supabaseClient.From(resource.Table()).
		Update(map[string]interface{}{"status": status}, "representation", "").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}

	rows, err := decodeReservations(resource, raw)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (su *SupabaseRepo) DeleteReservation(ctx context.Context, resource Resource, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("no valid UUID provided")
	}

	raw, _, err := su.supabaseClient.From(resource.Table()).
		Delete("representation", "").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	var deleted []map[string]interface{}
	if err := json.Unmarshal(raw, &deleted); err != nil {
		return fmt.Errorf("failed to unmarshal deleted reservation: %w", err)
	}
	if len(deleted) == 0 {
		return ErrNotFound
	}
	return nil
}
