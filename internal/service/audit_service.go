package service

import (
	"context"
	"time"

	"piggy-bank/internal/core/domain"
	"piggy-bank/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuditServiceImpl implements ports.AuditService. Writes are fire-and-forget:
// a failed audit insert is logged, never surfaced to the caller.
type AuditServiceImpl struct {
	auditRepo ports.AuditRepository
	log       zerolog.Logger
}

// NewAuditService creates a new AuditServiceImpl.
func NewAuditService(auditRepo ports.AuditRepository, log zerolog.Logger) *AuditServiceImpl {
	return &AuditServiceImpl{
		auditRepo: auditRepo,
		log:       log,
	}
}

// Log persists an audit entry asynchronously.
func (s *AuditServiceImpl) Log(ctx context.Context, entry *domain.AuditLog) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	go func() {
		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		if err := s.auditRepo.Create(writeCtx, entry); err != nil {
			s.log.Error().Err(err).
				Str("action", string(entry.Action)).
				Msg("failed to write audit log")
		}
	}()
}
