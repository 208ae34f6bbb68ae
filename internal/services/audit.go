package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/joshua-takyi/gogols/internal/models"
)

// auditor writes best-effort entries. A nil repo disables the log.
type auditor struct {
	repo   models.AuditRepo
	logger *slog.Logger
}

func (a auditor) record(ctx context.Context, entry *models.AuditEntry) {
	if a.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := a.repo.RecordAudit(ctx, entry); err != nil {
		a.logger.Warn("failed to record audit entry", "action", entry.Action, "target", entry.TargetID, "error", err)
	}
}

func (a auditor) list(ctx context.Context, limit int64) ([]*models.AuditEntry, error) {
	if a.repo == nil {
		return []*models.AuditEntry{}, nil
	}
	return a.repo.ListAudit(ctx, limit)
}
