package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/gogols/internal/metrics"
	"github.com/joshua-takyi/gogols/internal/models"
)

// BookingService owns the public write path. Reads go through the embedded
// AvailabilityService, so a BookingService satisfies booking.Store.
type BookingService struct {
	*AvailabilityService
	repo   models.ReservationRepo
	locker SlotLocker
	logger *slog.Logger
	now    func() time.Time
}

func NewBookingService(availability *AvailabilityService, repo models.ReservationRepo, locker SlotLocker, logger *slog.Logger) *BookingService {
	if locker == nil {
		locker = NewLocalSlotLocker()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BookingService{
		AvailabilityService: availability,
		repo:                repo,
		locker:              locker,
		logger:              logger,
		now:                 time.Now,
	}
}

func (bs *BookingService) reject(resource models.Resource, reason string) {
	metrics.ReservationRejects.WithLabelValues(string(resource), reason).Inc()
}

// SubmitSaltCave inserts one pending reservation. Under the slot lock the
// slot is re-checked; the store's unique index remains the final arbiter.
// There is exactly one write attempt.
func (bs *BookingService) SubmitSaltCave(ctx context.Context, r *models.SaltCaveReservation) (*models.SaltCaveReservation, error) {
	r.Time = models.NormalizeSlot(r.Time)
	r.Status = models.StatusPending
	if err := models.Validate.Struct(r); err != nil {
		bs.reject(models.ResourceSaltCave, "invalid")
		return nil, fmt.Errorf("invalid reservation data provided: %w", err)
	}
	if !models.IsSlot(r.Time) {
		bs.reject(models.ResourceSaltCave, "invalid")
		return nil, fmt.Errorf("invalid reservation data provided: %q is not a session time", r.Time)
	}

	release, ok, err := bs.locker.Acquire(ctx, r.Date, r.Time)
	if err != nil {
		return nil, err
	}
	if !ok {
		bs.reject(models.ResourceSaltCave, "slot_locked")
		return nil, models.ErrSlotTaken
	}
	defer release()

	existing, err := bs.repo.ListSaltCaveByDate(ctx, r.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to re-check slot: %w", err)
	}
	for _, e := range existing {
		if models.NormalizeSlot(e.Time) == r.Time {
			bs.reject(models.ResourceSaltCave, "slot_taken")
			return nil, models.ErrSlotTaken
		}
	}

	r.ID = uuid.New()
	r.CreatedAt = bs.now().UTC()
	created, err := bs.repo.CreateSaltCave(ctx, r)
	if err != nil {
		if errors.Is(err, models.ErrSlotTaken) {
			bs.reject(models.ResourceSaltCave, "slot_taken")
		}
		bs.logger.Error("salt cave insert failed", "date", r.Date, "time", r.Time, "error", err)
		return nil, err
	}

	metrics.ReservationsCreated.WithLabelValues(string(models.ResourceSaltCave)).Inc()
	bs.logger.Info("salt cave reservation created", "id", created.ID, "date", created.Date, "time", created.Time)
	return created, nil
}

// SubmitMotel inserts one pending stay.
func (bs *BookingService) SubmitMotel(ctx context.Context, r *models.MotelReservation) (*models.MotelReservation, error) {
	r.Status = models.StatusPending
	if err := models.Validate.Struct(r); err != nil {
		bs.reject(models.ResourceMotel, "invalid")
		return nil, fmt.Errorf("invalid reservation data provided: %w", err)
	}
	if r.CheckOut <= r.CheckIn {
		bs.reject(models.ResourceMotel, "invalid")
		return nil, fmt.Errorf("invalid reservation data provided: check_out must be after check_in")
	}

	r.ID = uuid.New()
	r.CreatedAt = bs.now().UTC()
	created, err := bs.repo.CreateMotel(ctx, r)
	if err != nil {
		bs.logger.Error("motel insert failed", "check_in", r.CheckIn, "error", err)
		return nil, err
	}

	metrics.ReservationsCreated.WithLabelValues(string(models.ResourceMotel)).Inc()
	bs.logger.Info("motel reservation created", "id", created.ID, "check_in", created.CheckIn, "check_out", created.CheckOut)
	return created, nil
}
