package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/routeviz/routeviz/internal/geo"
)

// Algorithm names used in responses, metrics, and history.
const (
	AlgorithmDijkstra = "dijkstra"
	AlgorithmAStar    = "astar"
)

// Event types published on the WebSocket feed.
const (
	EventRouteComputed = "route.computed"
	EventRouteFailed   = "route.failed"
)

// RouteFailure is the payload of a route.failed event.
type RouteFailure struct {
	Start geo.Point `json:"start"`
	End   geo.Point `json:"end"`
	Code  string    `json:"code"`
	Error string    `json:"error"`
}

// RouteRequest is the payload for computing a route comparison.
type RouteRequest struct {
	Start *geo.Point `json:"start"`
	End   *geo.Point `json:"end"`
}

// Validate checks that both points are present and within range.
func (r *RouteRequest) Validate() error {
	if r.Start == nil {
		return fmt.Errorf("start is required")
	}

	if r.End == nil {
		return fmt.Errorf("end is required")
	}

	if !r.Start.Valid() {
		return fmt.Errorf("start: %w", ErrInvalidCoordinate)
	}

	if !r.End.Valid() {
		return fmt.Errorf("end: %w", ErrInvalidCoordinate)
	}

	return nil
}

// AlgorithmRun reports one search over the road graph.
type AlgorithmRun struct {
	Algorithm  string  `json:"algorithm"`
	Path       []int64 `json:"path"`
	Explored   int     `json:"explored"`
	Order      []int64 `json:"explored_order"`
	DurationMS float64 `json:"duration_ms"`
}

// RouteComparison is the outcome of running both searches for one pair of query points.
type RouteComparison struct {
	ID             uuid.UUID    `json:"id"`
	Start          geo.Point    `json:"start"`
	End            geo.Point    `json:"end"`
	StartNode      int64        `json:"start_node"`
	EndNode        int64        `json:"end_node"`
	StartSnapM     float64      `json:"start_snap_m"`
	EndSnapM       float64      `json:"end_snap_m"`
	Dijkstra       AlgorithmRun `json:"dijkstra"`
	AStar          AlgorithmRun `json:"astar"`
	DistanceMeters float64      `json:"distance_m"`
	Distance       string       `json:"distance"`
	Efficiency     float64      `json:"efficiency_pct"`
	PathCoords     []geo.Point  `json:"path_coords"`
	CreatedAt      time.Time    `json:"created_at"`
}

// Efficiency returns the percentage of nodes A* avoided exploring relative to Dijkstra.
// It is 0 when Dijkstra explored nothing.
func Efficiency(dijkstraExplored, astarExplored int) float64 {
	if dijkstraExplored <= 0 {
		return 0
	}

	return 100 * (1 - float64(astarExplored)/float64(dijkstraExplored))
}

// Summary strips the traces from a comparison for storage and event feeds.
func (r *RouteComparison) Summary() RouteHistoryEntry {
	return RouteHistoryEntry{
		ID:               r.ID,
		Start:            r.Start,
		End:              r.End,
		StartNode:        r.StartNode,
		EndNode:          r.EndNode,
		DistanceMeters:   r.DistanceMeters,
		PathNodes:        len(r.AStar.Path),
		DijkstraExplored: r.Dijkstra.Explored,
		AStarExplored:    r.AStar.Explored,
		DijkstraMS:       r.Dijkstra.DurationMS,
		AStarMS:          r.AStar.DurationMS,
		Efficiency:       r.Efficiency,
		CreatedAt:        r.CreatedAt,
	}
}
