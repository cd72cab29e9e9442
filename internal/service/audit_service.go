package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/summer-school-api/internal/models"
	"github.com/noah-isme/summer-school-api/pkg/jobs"
)

type auditWriter interface {
	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error
}

// AuditService persists audit trail entries off the request path through a
// background queue, so a slow insert never delays the admin response.
type AuditService struct {
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewAuditService constructs AuditService over the given writer.
func NewAuditService(repo auditWriter, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AuditService{logger: logger}
	s.queue = jobs.NewQueue("audit", func(ctx context.Context, job jobs.Job) error {
		entry, ok := job.Payload.(*models.AuditLog)
		if !ok {
			s.logger.Warn("discarding audit job with unexpected payload", zap.String("job_id", job.ID))
			return nil
		}
		return repo.CreateAuditLog(ctx, entry)
	}, jobs.Options{Workers: 1, Logger: logger})
	return s
}

// Start begins background consumption.
func (s *AuditService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *AuditService) Stop() {
	s.queue.Stop()
}

// Record enqueues an audit entry. Entries are best effort: a full or stopped
// queue logs and drops rather than failing the caller.
func (s *AuditService) Record(entry *models.AuditLog) {
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    entry.Action,
		Payload: entry,
	})
	if err != nil {
		s.logger.Warn("audit entry dropped", zap.String("action", entry.Action), zap.Error(err))
	}
}
