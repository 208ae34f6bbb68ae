package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshua-takyi/gogols/internal/booking"
	"github.com/joshua-takyi/gogols/internal/helpers"
	"github.com/joshua-takyi/gogols/internal/metrics"
	"github.com/joshua-takyi/gogols/internal/models"
)

// AvailabilityService runs the retried store reads behind calendars and slot boards.
type AvailabilityService struct {
	repo   models.ReservationRepo
	retry  helpers.RetryPolicy
	logger *slog.Logger
}

func NewAvailabilityService(repo models.ReservationRepo, retry helpers.RetryPolicy, logger *slog.Logger) *AvailabilityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AvailabilityService{
		repo:   repo,
		retry:  retry,
		logger: logger,
	}
}

func (as *AvailabilityService) onRetry(op string) func(error, time.Duration) {
	return func(err error, next time.Duration) {
		metrics.RecordRetry(op)
		as.logger.Warn("store read failed, retrying", "op", op, "error", err, "next", next)
	}
}

func (as *AvailabilityService) failOpen(resource models.Resource, op string, err error) {
	metrics.AvailabilityFailOpen.WithLabelValues(string(resource)).Inc()
	as.logger.Error("store read gave up", "op", op, "error", err)
}

// SaltCaveDay lists reservations on exactly date.
func (as *AvailabilityService) SaltCaveDay(ctx context.Context, date string) ([]models.SaltCaveReservation, error) {
	if _, err := models.ParseDate(date); err != nil {
		return nil, err
	}
	out, err := helpers.Retry(ctx, as.retry, func() ([]models.SaltCaveReservation, error) {
		return as.repo.ListSaltCaveByDate(ctx, date)
	}, as.onRetry("salt_cave_day"))
	if err != nil {
		as.failOpen(models.ResourceSaltCave, "salt_cave_day", err)
		return nil, fmt.Errorf("failed to fetch reservations for %s: %w", date, err)
	}
	return out, nil
}

// SaltCaveMonth reads the whole month with one range query and indexes it by day.
func (as *AvailabilityService) SaltCaveMonth(ctx context.Context, year int, month time.Month) (booking.DayLookup, error) {
	from, to := booking.MonthBounds(year, month)
	out, err := helpers.Retry(ctx, as.retry, func() ([]models.SaltCaveReservation, error) {
		return as.repo.ListSaltCaveInRange(ctx, from, to)
	}, as.onRetry("salt_cave_month"))
	if err != nil {
		as.failOpen(models.ResourceSaltCave, "salt_cave_month", err)
		return nil, fmt.Errorf("failed to fetch reservations for %s..%s: %w", from, to, err)
	}
	return booking.NewMonthIndex(year, month, out), nil
}

// MotelOverlapping lists stays that overlap [from, to).
func (as *AvailabilityService) MotelOverlapping(ctx context.Context, from, to string) ([]models.MotelReservation, error) {
	out, err := helpers.Retry(ctx, as.retry, func() ([]models.MotelReservation, error) {
		return as.repo.ListMotelOverlapping(ctx, from, to)
	}, as.onRetry("motel_overlapping"))
	if err != nil {
		as.failOpen(models.ResourceMotel, "motel_overlapping", err)
		return nil, fmt.Errorf("failed to fetch stays for %s..%s: %w", from, to, err)
	}
	return out, nil
}

// DayHasFreeSlot reports whether any of the 11 sessions on date is still open.
// On error the caller should treat the day as available.
func (as *AvailabilityService) DayHasFreeSlot(ctx context.Context, date string) (bool, error) {
	out, err := as.SaltCaveDay(ctx, date)
	if err != nil {
		return true, err
	}
	return booking.HasFreeSlot(out), nil
}
