package client

import "time"

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// HealthResponse is returned by GET /api/v1/health.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Graph         string  `json:"graph"`
	Database      string  `json:"database"`
	SchemaVersion int     `json:"schema_version,omitempty"`
	GraphNodes    int     `json:"graph_nodes"`
	GraphEdges    int     `json:"graph_edges"`
	WSClients     int     `json:"ws_clients"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ReadyResponse is returned by GET /api/v1/ready.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// AlgorithmRun reports one search.
type AlgorithmRun struct {
	Algorithm  string  `json:"algorithm"`
	Path       []int64 `json:"path"`
	Explored   int     `json:"explored"`
	Order      []int64 `json:"explored_order"`
	DurationMS float64 `json:"duration_ms"`
}

// RouteComparison is the result of POST /api/v1/routes.
type RouteComparison struct {
	ID             string       `json:"id"`
	Start          Point        `json:"start"`
	End            Point        `json:"end"`
	StartNode      int64        `json:"start_node"`
	EndNode        int64        `json:"end_node"`
	StartSnapM     float64      `json:"start_snap_m"`
	EndSnapM       float64      `json:"end_snap_m"`
	Dijkstra       AlgorithmRun `json:"dijkstra"`
	AStar          AlgorithmRun `json:"astar"`
	DistanceMeters float64      `json:"distance_m"`
	Distance       string       `json:"distance"`
	Efficiency     float64      `json:"efficiency_pct"`
	PathCoords     []Point      `json:"path_coords"`
	CreatedAt      time.Time    `json:"created_at"`
}

// RouteSummary is a stored comparison without traces.
type RouteSummary struct {
	ID               string    `json:"id"`
	Start            Point     `json:"start"`
	End              Point     `json:"end"`
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

// ListOptions controls pagination of history listings.
type ListOptions struct {
	Limit  int
	Offset int
}

// GraphStats summarizes the server's road graph.
type GraphStats struct {
	Nodes     int    `json:"nodes"`
	Edges     int    `json:"edges"`
	MinCorner Point  `json:"min_corner"`
	MaxCorner Point  `json:"max_corner"`
	Source    string `json:"source,omitempty"`
}

// NearestResult is a point snapped to the closest graph node.
type NearestResult struct {
	Query     Point   `json:"query"`
	NodeID    int64   `json:"node_id"`
	Point     Point   `json:"point"`
	DistanceM float64 `json:"distance_m"`
}

// Arc is one outgoing edge of a node.
type Arc struct {
	To      int64   `json:"to"`
	Length  float64 `json:"length"`
	Name    string  `json:"name,omitempty"`
	Highway string  `json:"highway,omitempty"`
	Missing bool    `json:"missing,omitempty"`
	Blocked bool    `json:"blocked,omitempty"`
}

// NodeInfo describes a graph node and its outgoing arcs.
type NodeInfo struct {
	ID        int64 `json:"id"`
	Point     Point `json:"point"`
	Neighbors []Arc `json:"neighbors"`
}
