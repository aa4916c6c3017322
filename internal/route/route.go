// Package route turns a node path into a travel distance.
package route

import (
	"fmt"

	"github.com/routeviz/routeviz/internal/geo"
	"github.com/routeviz/routeviz/internal/models"
	"github.com/routeviz/routeviz/internal/roadgraph"
	"github.com/routeviz/routeviz/internal/search"
)

// Graph is the subset of *roadgraph.Graph that accounting needs.
type Graph interface {
	Coordinate(id int64) (geo.Point, error)
	Edge(from, to int64) (roadgraph.Edge, bool)
}

// Distance is a route length broken into its parts, all in meters.
type Distance struct {
	StartSnap float64 `json:"start_snap_m"`
	Path      float64 `json:"path_m"`
	EndSnap   float64 `json:"end_snap_m"`
}

// Meters returns the total distance.
func (d Distance) Meters() float64 { return d.StartSnap + d.Path + d.EndSnap }

// Km returns the total distance in kilometers.
func (d Distance) Km() float64 { return d.Meters() / 1000 }

// String formats the total as kilometers with two decimals, e.g. "1.08 km".
func (d Distance) String() string { return fmt.Sprintf("%.2f km", d.Km()) }

// Measure adds the length of every arc along path to the walk from start to the
// first node and from the last node to end. Arcs without a usable length add 0.
func Measure(g Graph, path []int64, start, end geo.Point) (Distance, error) {
	if len(path) == 0 {
		return Distance{}, models.ErrEmptyPath
	}

	first, err := g.Coordinate(path[0])
	if err != nil {
		return Distance{}, fmt.Errorf("measuring route: %w", err)
	}

	last, err := g.Coordinate(path[len(path)-1])
	if err != nil {
		return Distance{}, fmt.Errorf("measuring route: %w", err)
	}

	d := Distance{
		StartSnap: start.DistanceTo(first),
		EndSnap:   last.DistanceTo(end),
	}

	for i := 1; i < len(path); i++ {
		e, ok := g.Edge(path[i-1], path[i])
		if !ok {
			return Distance{}, fmt.Errorf("measuring route %d->%d: %w", path[i-1], path[i], models.ErrEdgeNotFound)
		}

		if !e.Missing && !e.Blocked {
			d.Path += e.Length
		}
	}

	return d, nil
}

// PathCost sums weight over the arcs of path, the same way the searches do.
func PathCost(g Graph, path []int64, weight search.WeightFunc) (float64, error) {
	if len(path) == 0 {
		return 0, models.ErrEmptyPath
	}

	if weight == nil {
		weight = search.LengthWeight
	}

	var total float64

	for i := 1; i < len(path); i++ {
		e, ok := g.Edge(path[i-1], path[i])
		if !ok {
			return 0, fmt.Errorf("path cost %d->%d: %w", path[i-1], path[i], models.ErrEdgeNotFound)
		}

		w, passable := weight(e)
		if !passable {
			return 0, fmt.Errorf("path cost %d->%d is impassable: %w", path[i-1], path[i], models.ErrNoPath)
		}

		total += w
	}

	return total, nil
}

// Coordinates maps a node path to points, for drawing.
func Coordinates(g Graph, path []int64) ([]geo.Point, error) {
	out := make([]geo.Point, 0, len(path))

	for _, id := range path {
		p, err := g.Coordinate(id)
		if err != nil {
			return nil, err
		}

		out = append(out, p)
	}

	return out, nil
}
