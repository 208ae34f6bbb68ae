package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/gogols/internal/metrics"
	"github.com/joshua-takyi/gogols/internal/models"
	"github.com/joshua-takyi/gogols/internal/notify"
)

var ErrInvalidStatus = errors.New("invalid reservation status")

const notifyTimeout = 15 * time.Second

// ListQuery filters and orders the admin reservation list.
type ListQuery struct {
	Search string
	Status models.ReservationStatus
	Sort   string
	Dir    string
}

type AdminService struct {
	repo     models.ReservationRepo
	notifier notify.Notifier
	audit    auditor
	logger   *slog.Logger
}

func NewAdminService(repo models.ReservationRepo, notifier notify.Notifier, audit models.AuditRepo, logger *slog.Logger) *AdminService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{
		repo:     repo,
		notifier: notifier,
		audit:    auditor{repo: audit, logger: logger},
		logger:   logger,
	}
}

func matches(r models.Reservation, q ListQuery) bool {
	if q.Status != "" && r.Status() != q.Status {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(q.Search))
	if term == "" {
		return true
	}
	c := r.Customer()
	return strings.Contains(strings.ToLower(c.CustomerName), term) ||
		strings.Contains(strings.ToLower(c.CustomerEmail), term) ||
		strings.Contains(c.CustomerPhone, term)
}

// ListReservations returns the filtered list, newest first unless q says otherwise.
func (as *AdminService) ListReservations(ctx context.Context, resource models.Resource, q ListQuery) ([]models.Reservation, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, q.Status)
	}
	all, err := as.repo.ListReservations(ctx, resource)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s reservations: %w", resource, err)
	}

	out := make([]models.Reservation, 0, len(all))
	for _, r := range all {
		if matches(r, q) {
			out = append(out, r)
		}
	}

	field := q.Sort
	if field == "" {
		field = "created_at"
	}
	desc := !strings.EqualFold(q.Dir, "asc")
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].SortKey(field), out[j].SortKey(field)
		if desc {
			return a > b
		}
		return a < b
	})
	return out, nil
}

// ChangeStatus moves a reservation to any valid status. Setting the current
// status is a no-op. A move to confirmed from any other status sends one
// confirmation message; its failure is logged and never fails the update.
func (as *AdminService) ChangeStatus(ctx context.Context, actor string, resource models.Resource, id uuid.UUID, status models.ReservationStatus) (*models.Reservation, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	current, err := as.repo.GetReservation(ctx, resource, id)
	if err != nil {
		return nil, err
	}
	prev := current.Status()
	if prev == status {
		return current, nil
	}

	updated, err := as.repo.UpdateReservationStatus(ctx, resource, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}
	metrics.StatusChanges.WithLabelValues(string(resource), string(status)).Inc()
	as.logger.Info("reservation status changed", "resource", resource, "id", id, "from", prev, "to", status, "actor", actor)

	as.audit.record(ctx, &models.AuditEntry{
		Action:   models.AuditStatusChange,
		Resource: string(resource),
		TargetID: id.String(),
		Actor:    actor,
		Details:  map[string]string{"from": string(prev), "to": string(status)},
	})

	if status == models.StatusConfirmed && prev != models.StatusConfirmed {
		as.sendConfirmation(ctx, *updated)
	}
	return updated, nil
}

func (as *AdminService) sendConfirmation(ctx context.Context, r models.Reservation) {
	if as.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	err := as.notifier.SendConfirmation(ctx, r)
	metrics.RecordNotification(err == nil)
	if err != nil {
		as.logger.Error("confirmation notification failed", "resource", r.Resource, "id", r.ID(), "error", err)
		return
	}
	as.logger.Info("confirmation notification sent", "resource", r.Resource, "id", r.ID())
}

func (as *AdminService) DeleteReservation(ctx context.Context, actor string, resource models.Resource, id uuid.UUID) error {
	if err := as.repo.DeleteReservation(ctx, resource, id); err != nil {
		return err
	}
	as.logger.Info("reservation deleted", "resource", resource, "id", id, "actor", actor)
	as.audit.record(ctx, &models.AuditEntry{
		Action:   models.AuditDelete,
		Resource: string(resource),
		TargetID: id.String(),
		Actor:    actor,
	})
	return nil
}

func (as *AdminService) ListAudit(ctx context.Context, limit int64) ([]*models.AuditEntry, error) {
	entries, err := as.audit.list(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
