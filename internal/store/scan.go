package store

import (
	"github.com/routeviz/routeviz/internal/models"
)

// routeColumns lists the columns selected for route history queries.
const routeColumns = `id, start_lat, start_lon, end_lat, end_lon, start_node, end_node,
	distance_m, path_nodes, dijkstra_explored, astar_explored,
	dijkstra_ms, astar_ms, efficiency, created_at`

// scanRoute scans a single row into a models.RouteHistoryEntry.
func scanRoute(scan func(dest ...any) error) (*models.RouteHistoryEntry, error) {
	var e models.RouteHistoryEntry

	err := scan(
		&e.ID,
		&e.Start.Lat,
		&e.Start.Lon,
		&e.End.Lat,
		&e.End.Lon,
		&e.StartNode,
		&e.EndNode,
		&e.DistanceMeters,
		&e.PathNodes,
		&e.DijkstraExplored,
		&e.AStarExplored,
		&e.DijkstraMS,
		&e.AStarMS,
		&e.Efficiency,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.CreatedAt = e.CreatedAt.UTC()

	return &e, nil
}
