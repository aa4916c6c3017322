// Package service provides business logic between API handlers, the road graph and data stores.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/routeviz/routeviz/internal/domain"
	"github.com/routeviz/routeviz/internal/geo"
	"github.com/routeviz/routeviz/internal/metrics"
	"github.com/routeviz/routeviz/internal/models"
	"github.com/routeviz/routeviz/internal/roadgraph"
	"github.com/routeviz/routeviz/internal/route"
	"github.com/routeviz/routeviz/internal/search"
)

// DefaultSampleStep keeps every tenth explored node in returned traces.
const DefaultSampleStep = 10

// GraphSource yields the shared road graph. *roadgraph.Provider satisfies it.
type GraphSource interface {
	Get(ctx context.Context) (*roadgraph.Graph, error)
}

// HistoryEnqueuer accepts route summaries for asynchronous storage.
type HistoryEnqueuer interface {
	Enqueue(entry *models.RouteHistoryEntry)
}

// EventPublisher broadcasts events to live subscribers. *ws.Hub satisfies it.
type EventPublisher interface {
	Publish(eventType string, data any)
}

// Compile-time check: *RouteService must satisfy domain.RouteService.
var _ domain.RouteService = (*RouteService)(nil)

// RouteService snaps query points to the graph, runs Dijkstra then A*, and
// measures the resulting route.
type RouteService struct {
	graphs     GraphSource
	history    HistoryEnqueuer
	events     EventPublisher
	sampleStep int
	log        *logrus.Logger
	now        func() time.Time
}

// NewRouteService creates a RouteService. history and events may be nil.
func NewRouteService(
	graphs GraphSource, history HistoryEnqueuer, events EventPublisher, sampleStep int, log *logrus.Logger,
) *RouteService {
	if sampleStep <= 0 {
		sampleStep = DefaultSampleStep
	}

	return &RouteService{
		graphs:     graphs,
		history:    history,
		events:     events,
		sampleStep: sampleStep,
		log:        log,
		now:        time.Now,
	}
}

// Compare runs both searches between the nodes nearest to start and end.
func (s *RouteService) Compare(ctx context.Context, start, end geo.Point) (*models.RouteComparison, error) {
	cmp, err := s.compare(ctx, start, end)
	if err != nil {
		metrics.RoutesTotal.WithLabelValues(outcome(err)).Inc()
		s.publish(models.EventRouteFailed, models.RouteFailure{Start: start, End: end, Code: outcome(err), Error: err.Error()})

		return nil, err
	}

	metrics.RoutesTotal.WithLabelValues("ok").Inc()

	summary := cmp.Summary()
	if s.history != nil {
		s.history.Enqueue(&summary)
	}

	s.publish(models.EventRouteComputed, summary)

	s.log.WithFields(logrus.Fields{
		"route_id":          cmp.ID,
		"start_node":        cmp.StartNode,
		"end_node":          cmp.EndNode,
		"distance":          cmp.Distance,
		"dijkstra_explored": cmp.Dijkstra.Explored,
		"astar_explored":    cmp.AStar.Explored,
	}).Debug("route.compare")

	return cmp, nil
}

func (s *RouteService) compare(ctx context.Context, start, end geo.Point) (*models.RouteComparison, error) {
	if !start.Valid() {
		return nil, fmt.Errorf("start %s: %w", start, models.ErrInvalidCoordinate)
	}

	if !end.Valid() {
		return nil, fmt.Errorf("end %s: %w", end, models.ErrInvalidCoordinate)
	}

	g, err := s.graphs.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading graph: %w", err)
	}

	startNode, startSnap, err := g.Nearest(start)
	if err != nil {
		return nil, fmt.Errorf("snapping start: %w", err)
	}

	endNode, endSnap, err := g.Nearest(end)
	if err != nil {
		return nil, fmt.Errorf("snapping end: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Dijkstra runs strictly before A*.
	dj, djTook, err := timed(models.AlgorithmDijkstra, func() (*search.Result, error) {
		return search.ShortestPath(g, startNode, endNode, search.LengthWeight)
	})
	if err != nil {
		return nil, fmt.Errorf("dijkstra: %w", err)
	}

	as, asTook, err := timed(models.AlgorithmAStar, func() (*search.Result, error) {
		return search.AStarPath(g, startNode, endNode, search.HaversineHeuristic(g), search.LengthWeight)
	})
	if err != nil {
		return nil, fmt.Errorf("astar: %w", err)
	}

	dist, err := route.Measure(g, as.Path, start, end)
	if err != nil {
		return nil, err
	}

	coords, err := route.Coordinates(g, as.Path)
	if err != nil {
		return nil, err
	}

	return &models.RouteComparison{
		ID:             uuid.New(),
		Start:          start,
		End:            end,
		StartNode:      startNode,
		EndNode:        endNode,
		StartSnapM:     startSnap,
		EndSnapM:       endSnap,
		Dijkstra:       s.run(models.AlgorithmDijkstra, dj, djTook),
		AStar:          s.run(models.AlgorithmAStar, as, asTook),
		DistanceMeters: dist.Meters(),
		Distance:       dist.String(),
		Efficiency:     models.Efficiency(dj.Explored, as.Explored),
		PathCoords:     coords,
		CreatedAt:      s.now().UTC(),
	}, nil
}

func timed(algorithm string, fn func() (*search.Result, error)) (*search.Result, time.Duration, error) {
	start := time.Now()
	res, err := fn()
	took := time.Since(start)

	metrics.SearchDuration.WithLabelValues(algorithm).Observe(took.Seconds())

	if err == nil {
		metrics.NodesExplored.WithLabelValues(algorithm).Observe(float64(res.Explored))
	}

	return res, took, err
}

func (s *RouteService) run(algorithm string, res *search.Result, took time.Duration) models.AlgorithmRun {
	return models.AlgorithmRun{
		Algorithm:  algorithm,
		Path:       res.Path,
		Explored:   res.Explored,
		Order:      Sample(res.Order, s.sampleStep),
		DurationMS: float64(took.Microseconds()) / 1000,
	}
}

func (s *RouteService) publish(eventType string, data any) {
	if s.events != nil {
		s.events.Publish(eventType, data)
	}
}

// Sample keeps every step-th element of ids, starting with the first.
func Sample(ids []int64, step int) []int64 {
	if step <= 1 {
		return ids
	}

	out := make([]int64, 0, (len(ids)+step-1)/step)
	for i := 0; i < len(ids); i += step {
		out = append(out, ids[i])
	}

	return out
}

// outcome labels a failed comparison for metrics and events.
func outcome(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidCoordinate):
		return "invalid_coordinate"
	case errors.Is(err, models.ErrNodeNotFound):
		return "node_not_found"
	case errors.Is(err, models.ErrNoPath):
		return "no_path"
	case errors.Is(err, models.ErrEmptyGraph):
		return "empty_graph"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
