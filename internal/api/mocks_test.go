package api_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/routeviz/routeviz/internal/geo"
	"github.com/routeviz/routeviz/internal/models"
	"github.com/routeviz/routeviz/internal/roadgraph"
)

type mockRouteService struct {
	compareFn func(ctx context.Context, start, end geo.Point) (*models.RouteComparison, error)
}

func (m *mockRouteService) Compare(ctx context.Context, start, end geo.Point) (*models.RouteComparison, error) {
	return m.compareFn(ctx, start, end)
}

type mockGraphService struct {
	statsFn   func(ctx context.Context) (*models.GraphStats, error)
	nearestFn func(ctx context.Context, p geo.Point) (*models.NearestResult, error)
	nodeFn    func(ctx context.Context, id int64) (*models.NodeInfo, error)
}

func (m *mockGraphService) GraphStats(ctx context.Context) (*models.GraphStats, error) {
	return m.statsFn(ctx)
}

func (m *mockGraphService) Nearest(ctx context.Context, p geo.Point) (*models.NearestResult, error) {
	return m.nearestFn(ctx, p)
}

func (m *mockGraphService) Node(ctx context.Context, id int64) (*models.NodeInfo, error) {
	return m.nodeFn(ctx, id)
}

type mockHistoryService struct {
	listFn  func(ctx context.Context, limit, offset int) ([]models.RouteHistoryEntry, bool, error)
	getFn   func(ctx context.Context, id uuid.UUID) (*models.RouteHistoryEntry, error)
	purgeFn func(ctx context.Context, olderThan time.Duration) (int, error)
}

func (m *mockHistoryService) ListRoutes(ctx context.Context, limit, offset int) ([]models.RouteHistoryEntry, bool, error) {
	return m.listFn(ctx, limit, offset)
}

func (m *mockHistoryService) GetRoute(ctx context.Context, id uuid.UUID) (*models.RouteHistoryEntry, error) {
	return m.getFn(ctx, id)
}

func (m *mockHistoryService) PurgeRoutes(ctx context.Context, olderThan time.Duration) (int, error) {
	return m.purgeFn(ctx, olderThan)
}

type loadedFlag bool

func (l loadedFlag) Loaded() (*roadgraph.Graph, bool) { return nil, bool(l) }
