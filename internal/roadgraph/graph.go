// Package roadgraph holds the immutable road network the route searches run on.
//
// A Graph is built once through a Builder (or one of the file loaders) and is
// never mutated afterwards, so a single *Graph can be shared by any number of
// goroutines without locking.
package roadgraph

import (
	"fmt"

	"github.com/routeviz/routeviz/internal/geo"
	"github.com/routeviz/routeviz/internal/models"
)

// DefaultLength is the search cost of an edge that carries no length attribute.
const DefaultLength = 1.0

// Edge is a directed road segment between two nodes.
type Edge struct {
	From    int64
	To      int64
	Length  float64 // meters
	Missing bool    // no length attribute in the source data
	Blocked bool    // length present but null or unparseable; impassable
	Name    string
	Highway string
}

// cost is the value the parallel-edge policy compares.
func (e Edge) cost() (float64, bool) {
	switch {
	case e.Blocked:
		return 0, false
	case e.Missing:
		return DefaultLength, true
	default:
		return e.Length, true
	}
}

// Graph is a read-only directed road graph with node coordinates.
type Graph struct {
	ids    []int64
	index  map[int64]int32
	points []geo.Point
	arcs   [][]Edge
	edges  int
	source string
	tree   kdTree
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.ids) }

// EdgeCount returns the number of arcs left after parallel edges were collapsed.
func (g *Graph) EdgeCount() int { return g.edges }

// Source returns the name of the file or loader the graph came from.
func (g *Graph) Source() string { return g.source }

// HasNode reports whether id is a node of g.
func (g *Graph) HasNode(id int64) bool {
	_, ok := g.index[id]
	return ok
}

// Neighbors returns the outgoing arcs of id in first-insertion order.
// The returned slice is shared with the graph and must not be modified.
func (g *Graph) Neighbors(id int64) ([]Edge, error) {
	i, ok := g.index[id]
	if !ok {
		return nil, fmt.Errorf("node %d: %w", id, models.ErrNodeNotFound)
	}

	return g.arcs[i], nil
}

// Coordinate returns the location of id.
func (g *Graph) Coordinate(id int64) (geo.Point, error) {
	i, ok := g.index[id]
	if !ok {
		return geo.Point{}, fmt.Errorf("node %d: %w", id, models.ErrNodeNotFound)
	}

	return g.points[i], nil
}

// Edge returns the arc from -> to, if any.
func (g *Graph) Edge(from, to int64) (Edge, bool) {
	i, ok := g.index[from]
	if !ok {
		return Edge{}, false
	}

	for _, e := range g.arcs[i] {
		if e.To == to {
			return e, true
		}
	}

	return Edge{}, false
}

// NodeIDs returns a copy of all node ids in insertion order.
func (g *Graph) NodeIDs() []int64 {
	out := make([]int64, len(g.ids))
	copy(out, g.ids)

	return out
}

// Bounds returns the south-west and north-east corners of the node set.
func (g *Graph) Bounds() (minCorner, maxCorner geo.Point) {
	if len(g.points) == 0 {
		return geo.Point{}, geo.Point{}
	}

	minCorner, maxCorner = g.points[0], g.points[0]
	for _, p := range g.points[1:] {
		minCorner.Lat = min(minCorner.Lat, p.Lat)
		minCorner.Lon = min(minCorner.Lon, p.Lon)
		maxCorner.Lat = max(maxCorner.Lat, p.Lat)
		maxCorner.Lon = max(maxCorner.Lon, p.Lon)
	}

	return minCorner, maxCorner
}

// Stats summarizes the graph for the API.
func (g *Graph) Stats() models.GraphStats {
	lo, hi := g.Bounds()

	return models.GraphStats{
		Nodes:     g.Len(),
		Edges:     g.EdgeCount(),
		MinCorner: lo,
		MaxCorner: hi,
		Source:    g.source,
	}
}

// Nearest returns the node closest to p by great-circle distance and that distance in meters.
// Ties resolve to the node inserted first.
func (g *Graph) Nearest(p geo.Point) (int64, float64, error) {
	if len(g.ids) == 0 {
		return 0, 0, models.ErrEmptyGraph
	}

	i, d := g.tree.nearest(p)

	return g.ids[i], d, nil
}
