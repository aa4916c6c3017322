package search

import (
	"fmt"

	"github.com/routeviz/routeviz/internal/models"
)

// AStarPath runs A* from source to target, ordering the queue by accumulated
// cost plus h(node, target). A nil h behaves like Dijkstra's algorithm.
//
// Unlike ShortestPath, a neighbor is only pushed when its candidate cost is
// strictly lower than the best cost already queued for it.
func AStarPath(g Graph, source, target int64, h Heuristic, weight WeightFunc) (*Result, error) {
	if err := checkEndpoints(g, source, target); err != nil {
		return nil, err
	}

	if weight == nil {
		weight = LengthWeight
	}

	if h == nil {
		h = func(int64, int64) float64 { return 0 }
	}

	done := newSettled()
	queued := make(map[int64]float64)
	q := &queue{}
	q.push(item{node: source, parent: source})

	for q.Len() > 0 {
		cur := q.pop()

		if cur.node == target {
			return done.result(cur), nil
		}

		if done.has(cur.node) {
			continue
		}

		done.add(cur.node, cur.parent)

		arcs, err := g.Neighbors(cur.node)
		if err != nil {
			return nil, err
		}

		for _, e := range arcs {
			if done.has(e.To) {
				continue
			}

			w, ok, err := relaxWeight(weight, e)
			if err != nil {
				return nil, err
			}

			if !ok {
				continue
			}

			ncost := cur.cost + w
			if best, seen := queued[e.To]; seen && ncost >= best {
				continue
			}

			queued[e.To] = ncost
			q.push(item{priority: ncost + h(e.To, target), node: e.To, parent: cur.node, cost: ncost})
		}
	}

	return nil, fmt.Errorf("from %d to %d: %w", source, target, models.ErrNoPath)
}
