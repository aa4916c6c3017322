package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/routeviz/routeviz/internal/domain"
	"github.com/routeviz/routeviz/internal/models"
)

// HistoryStore is the data-access interface HistoryService depends on.
type HistoryStore interface {
	ListRoutes(ctx context.Context, limit, offset int) ([]models.RouteHistoryEntry, bool, error)
	GetRoute(ctx context.Context, id uuid.UUID) (*models.RouteHistoryEntry, error)
	PurgeBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// Compile-time check: *HistoryService must satisfy domain.HistoryService.
var _ domain.HistoryService = (*HistoryService)(nil)

// HistoryService wraps HistoryStore with logging. A nil store means no
// database is configured and every call fails with models.ErrHistoryDisabled.
type HistoryService struct {
	store HistoryStore
	log   *logrus.Logger
	now   func() time.Time
}

// NewHistoryService creates a HistoryService.
func NewHistoryService(store HistoryStore, log *logrus.Logger) *HistoryService {
	return &HistoryService{store: store, log: log, now: time.Now}
}

// Enabled reports whether a history store is configured.
func (s *HistoryService) Enabled() bool { return s.store != nil }

// ListRoutes returns past comparisons, newest first.
func (s *HistoryService) ListRoutes(ctx context.Context, limit, offset int) ([]models.RouteHistoryEntry, bool, error) {
	s.log.WithFields(logrus.Fields{
		"limit":  limit,
		"offset": offset,
	}).Debug("history.list_routes")

	if s.store == nil {
		return nil, false, models.ErrHistoryDisabled
	}

	return s.store.ListRoutes(ctx, limit, offset)
}

// GetRoute returns one past comparison.
func (s *HistoryService) GetRoute(ctx context.Context, id uuid.UUID) (*models.RouteHistoryEntry, error) {
	s.log.WithField("route_id", id).Debug("history.get_route")

	if s.store == nil {
		return nil, models.ErrHistoryDisabled
	}

	return s.store.GetRoute(ctx, id)
}

// PurgeRoutes deletes comparisons recorded more than olderThan ago.
func (s *HistoryService) PurgeRoutes(ctx context.Context, olderThan time.Duration) (int, error) {
	if s.store == nil {
		return 0, models.ErrHistoryDisabled
	}

	if olderThan <= 0 {
		return 0, fmt.Errorf("purge window must be positive, got %s", olderThan)
	}

	cutoff := s.now().UTC().Add(-olderThan)

	deleted, err := s.store.PurgeBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging route history: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"deleted": deleted,
		"cutoff":  cutoff,
	}).Info("history.purged")

	return deleted, nil
}

// RunRetention purges entries older than olderThan every interval until ctx
// is canceled. It returns immediately when history is disabled or
// olderThan is zero.
func (s *HistoryService) RunRetention(ctx context.Context, interval, olderThan time.Duration) {
	if s.store == nil || olderThan <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.PurgeRoutes(ctx, olderThan); err != nil && ctx.Err() == nil {
			s.log.WithError(err).Warn("history retention pass failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
