package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/routeviz/routeviz/internal/geo"
)

// RouteHistoryEntry is the persisted summary of a route comparison.
type RouteHistoryEntry struct {
	ID               uuid.UUID `json:"id"`
	Start            geo.Point `json:"start"`
	End              geo.Point `json:"end"`
	StartNode        int64     `json:"start_node"`
	EndNode          int64     `json:"end_node"`
	DistanceMeters   float64   `json:"distance_m"`
	PathNodes        int       `json:"path_nodes"`
	DijkstraExplored int       `json:"dijkstra_explored"`
	AStarExplored    int       `json:"astar_explored"`
	DijkstraMS       float64   `json:"dijkstra_ms"`
	AStarMS          float64   `json:"astar_ms"`
	Efficiency       float64   `json:"efficiency_pct"`
	CreatedAt        time.Time `json:"created_at"`
}
