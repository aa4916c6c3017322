// Package domain defines the service interfaces shared by the API layer and
// the services that implement them. Consumers should depend on these rather
// than re-declaring equivalent ones.
package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/routeviz/routeviz/internal/geo"
	"github.com/routeviz/routeviz/internal/models"
)

// RouteService runs both searches between two query points.
type RouteService interface {
	Compare(ctx context.Context, start, end geo.Point) (*models.RouteComparison, error)
}

// GraphService answers questions about the loaded road graph.
type GraphService interface {
	GraphStats(ctx context.Context) (*models.GraphStats, error)
	Nearest(ctx context.Context, p geo.Point) (*models.NearestResult, error)
	Node(ctx context.Context, id int64) (*models.NodeInfo, error)
}

// HistoryService reads and prunes past route comparisons.
type HistoryService interface {
	ListRoutes(ctx context.Context, limit, offset int) ([]models.RouteHistoryEntry, bool, error)
	GetRoute(ctx context.Context, id uuid.UUID) (*models.RouteHistoryEntry, error)
	PurgeRoutes(ctx context.Context, olderThan time.Duration) (int, error)
}

// RouteRecorder persists a route summary.
type RouteRecorder interface {
	RecordRoute(ctx context.Context, entry *models.RouteHistoryEntry) error
}
