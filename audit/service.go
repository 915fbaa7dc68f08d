// Package audit records refresh skip details in batched writes.
package audit

import (
	"context"
	"fmt"
	"sync"

	"github.com/kasuganosora/fe8rguide/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultBatchSize is used when New gets a non-positive batch size.
const DefaultBatchSize = 100

// Entry is one skipped record or link.
type Entry struct {
	Stage   string
	Reason  string
	Subject string
	Target  string
}

// Service buffers entries for one refresh run and writes them in batches.
type Service struct {
	db        *gorm.DB
	traceID   string
	batchSize int
	logger    *zap.Logger

	mu      sync.Mutex
	batch   []*model.RefreshSkip
	written int
}

// New creates a Service writing rows tagged with traceID.
func New(db *gorm.DB, traceID string, batchSize int, logger *zap.Logger) *Service {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Service{
		db:        db,
		traceID:   traceID,
		batchSize: batchSize,
		logger:    logger,
		batch:     make([]*model.RefreshSkip, 0, batchSize),
	}
}

// Log buffers an entry and writes the batch once it is full.
func (svc *Service) Log(ctx context.Context, e Entry) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.batch = append(svc.batch, &model.RefreshSkip{
		TraceID: svc.traceID,
		Stage:   e.Stage,
		Reason:  e.Reason,
		Subject: e.Subject,
		Target:  e.Target,
	})
	if len(svc.batch) >= svc.batchSize {
		return svc.flushLocked(ctx)
	}
	return nil
}

// Flush writes whatever is buffered.
func (svc *Service) Flush(ctx context.Context) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.flushLocked(ctx)
}

// Written returns how many rows have been stored so far.
func (svc *Service) Written() int {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.written
}

func (svc *Service) flushLocked(ctx context.Context) error {
	if len(svc.batch) == 0 {
		return nil
	}
	if err := svc.db.WithContext(ctx).Create(&svc.batch).Error; err != nil {
		svc.logger.Error("refresh skip batch write failed", zap.Int("rows", len(svc.batch)), zap.Error(err))
		return fmt.Errorf("audit: write %d skips: %w", len(svc.batch), err)
	}
	svc.written += len(svc.batch)
	svc.batch = make([]*model.RefreshSkip, 0, svc.batchSize)
	return nil
}
