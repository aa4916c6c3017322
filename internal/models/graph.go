package models

import "github.com/routeviz/routeviz/internal/geo"

// GraphStats summarizes the loaded road graph.
type GraphStats struct {
	Nodes     int       `json:"nodes"`
	Edges     int       `json:"edges"`
	MinCorner geo.Point `json:"min_corner"`
	MaxCorner geo.Point `json:"max_corner"`
	Source    string    `json:"source,omitempty"`
}

// NodeInfo describes a single graph node and its outgoing arcs.
type NodeInfo struct {
	ID        int64     `json:"id"`
	Point     geo.Point `json:"point"`
	Neighbors []ArcInfo `json:"neighbors"`
}

// ArcInfo is one outgoing arc of a node.
type ArcInfo struct {
	To      int64   `json:"to"`
	Length  float64 `json:"length"`
	Name    string  `json:"name,omitempty"`
	Highway string  `json:"highway,omitempty"`
	Missing bool    `json:"missing,omitempty"`
	Blocked bool    `json:"blocked,omitempty"`
}

// NearestResult is a query point snapped to the closest graph node.
type NearestResult struct {
	Query     geo.Point `json:"query"`
	NodeID    int64     `json:"node_id"`
	Point     geo.Point `json:"point"`
	DistanceM float64   `json:"distance_m"`
}
