// Package search implements the two instrumented shortest-path searches:
// Dijkstra's algorithm and A*.
//
// Both return the reconstructed path together with the number of nodes they
// settled and the order in which they settled them, so that the two can be
// compared on the same source and target.
package search

import (
	"fmt"
	"slices"

	"github.com/routeviz/routeviz/internal/geo"
	"github.com/routeviz/routeviz/internal/models"
	"github.com/routeviz/routeviz/internal/roadgraph"
)

// Graph is the read-only view the searches need.
type Graph interface {
	HasNode(id int64) bool
	Neighbors(id int64) ([]roadgraph.Edge, error)
	Coordinate(id int64) (geo.Point, error)
}

// Result is the outcome of one search.
type Result struct {
	// Path runs from source to target inclusive.
	Path []int64
	// Cost is the accumulated weight of Path.
	Cost float64
	// Explored counts settled nodes. The target is not settled; the search
	// returns as soon as it is popped.
	Explored int
	// Order lists settled nodes in settle order; len(Order) == Explored.
	Order []int64
}

// WeightFunc returns the traversal cost of e, or false when e is impassable.
type WeightFunc func(e roadgraph.Edge) (float64, bool)

// LengthWeight costs an edge by its length in meters. Blocked edges are
// impassable and edges without a length cost roadgraph.DefaultLength.
func LengthWeight(e roadgraph.Edge) (float64, bool) {
	switch {
	case e.Blocked:
		return 0, false
	case e.Missing:
		return roadgraph.DefaultLength, true
	default:
		return e.Length, true
	}
}

// Heuristic estimates the remaining cost from node to target.
type Heuristic func(node, target int64) float64

// HaversineHeuristic estimates remaining cost as the great-circle distance
// between node coordinates. It never overestimates road length in meters.
func HaversineHeuristic(g Graph) Heuristic {
	return func(node, target int64) float64 {
		a, err := g.Coordinate(node)
		if err != nil {
			return 0
		}

		b, err := g.Coordinate(target)
		if err != nil {
			return 0
		}

		return a.DistanceTo(b)
	}
}

func checkEndpoints(g Graph, source, target int64) error {
	if !g.HasNode(source) {
		return fmt.Errorf("source %d: %w", source, models.ErrNodeNotFound)
	}

	if !g.HasNode(target) {
		return fmt.Errorf("target %d: %w", target, models.ErrNodeNotFound)
	}

	return nil
}

// settled maps each settled node to its parent. The source is its own parent.
type settled struct {
	parent map[int64]int64
	order  []int64
}

func newSettled() *settled {
	return &settled{parent: make(map[int64]int64)}
}

func (s *settled) has(id int64) bool {
	_, ok := s.parent[id]
	return ok
}

func (s *settled) add(id, parent int64) {
	s.parent[id] = parent
	s.order = append(s.order, id)
}

// result walks parent pointers back from the popped target entry.
func (s *settled) result(it item) *Result {
	path := []int64{it.node}

	if it.node != it.parent {
		for node := it.parent; ; {
			path = append(path, node)

			p := s.parent[node]
			if p == node {
				break
			}

			node = p
		}
	}

	slices.Reverse(path)

	return &Result{Path: path, Cost: it.cost, Explored: len(s.order), Order: s.order}
}

func relaxWeight(w WeightFunc, e roadgraph.Edge) (float64, bool, error) {
	cost, ok := w(e)
	if !ok {
		return 0, false, nil
	}

	if cost < 0 {
		return 0, false, fmt.Errorf("edge %d->%d weight %v: %w", e.From, e.To, cost, models.ErrNegativeWeight)
	}

	return cost, true, nil
}
