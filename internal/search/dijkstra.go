package search

import (
	"fmt"

	"github.com/routeviz/routeviz/internal/models"
)

// ShortestPath runs Dijkstra's algorithm from source to target.
//
// Every relaxation pushes a new queue entry, even when the neighbor is already
// queued at a lower cost; duplicates are dropped when popped. The search stops
// the first time target is popped.
func ShortestPath(g Graph, source, target int64, weight WeightFunc) (*Result, error) {
	if err := checkEndpoints(g, source, target); err != nil {
		return nil, err
	}

	if weight == nil {
		weight = LengthWeight
	}

	done := newSettled()
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
			q.push(item{priority: ncost, node: e.To, parent: cur.node, cost: ncost})
		}
	}

	return nil, fmt.Errorf("from %d to %d: %w", source, target, models.ErrNoPath)
}
