package roadgraph

import (
	"fmt"
	"math"

	"github.com/routeviz/routeviz/internal/geo"
	"github.com/routeviz/routeviz/internal/models"
)

// ParallelPolicy selects which of several edges between the same pair of nodes is kept.
type ParallelPolicy int

const (
	// ParallelMin keeps the cheapest edge; ties keep the first one added.
	ParallelMin ParallelPolicy = iota
	// ParallelFirst keeps whichever edge was added first.
	ParallelFirst
)

// ParseParallelPolicy maps "min" or "first" to a ParallelPolicy.
func ParseParallelPolicy(s string) (ParallelPolicy, error) {
	switch s {
	case "", "min":
		return ParallelMin, nil
	case "first":
		return ParallelFirst, nil
	default:
		return 0, fmt.Errorf("unknown parallel edge policy %q (want min or first)", s)
	}
}

// String implements fmt.Stringer.
func (p ParallelPolicy) String() string {
	if p == ParallelFirst {
		return "first"
	}

	return "min"
}

// Option configures a Builder.
type Option func(*Builder)

// WithUndirected makes every added edge also add its reverse.
func WithUndirected() Option {
	return func(b *Builder) { b.undirected = true }
}

// WithParallelPolicy sets how parallel edges are collapsed.
func WithParallelPolicy(p ParallelPolicy) Option {
	return func(b *Builder) { b.policy = p }
}

// WithSource records where the graph came from.
func WithSource(name string) Option {
	return func(b *Builder) { b.source = name }
}

// Builder accumulates nodes and edges and produces an immutable Graph.
// A Builder is not safe for concurrent use.
type Builder struct {
	undirected bool
	policy     ParallelPolicy
	source     string

	ids    []int64
	index  map[int64]int32
	points []geo.Point
	edges  []Edge
}

// NewBuilder creates an empty Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{index: make(map[int64]int32)}
	for _, o := range opts {
		o(b)
	}

	return b
}

// AddNode adds a node, or moves it if id was already added.
func (b *Builder) AddNode(id int64, p geo.Point) {
	if i, ok := b.index[id]; ok {
		b.points[i] = p
		return
	}

	b.index[id] = int32(len(b.ids)) //nolint:gosec // node counts stay far below MaxInt32.
	b.ids = append(b.ids, id)
	b.points = append(b.points, p)
}

// AddEdge adds a directed edge, and its reverse when the builder is undirected.
// Endpoints are checked in Build so nodes and edges may arrive in any order.
func (b *Builder) AddEdge(e Edge) error {
	if !e.Missing && !e.Blocked {
		if math.IsNaN(e.Length) || math.IsInf(e.Length, 0) {
			e.Blocked = true
		} else if e.Length < 0 {
			return fmt.Errorf("edge %d->%d length %v: %w", e.From, e.To, e.Length, models.ErrNegativeWeight)
		}
	}

	b.edges = append(b.edges, e)

	if b.undirected && e.From != e.To {
		rev := e
		rev.From, rev.To = e.To, e.From
		b.edges = append(b.edges, rev)
	}

	return nil
}

// Build collapses parallel edges, indexes coordinates, and returns the Graph.
func (b *Builder) Build() (*Graph, error) {
	g := &Graph{
		ids:    b.ids,
		index:  b.index,
		points: b.points,
		arcs:   make([][]Edge, len(b.ids)),
		source: b.source,
	}

	for _, e := range b.edges {
		from, ok := b.index[e.From]
		if !ok {
			return nil, fmt.Errorf("edge %d->%d source %d: %w", e.From, e.To, e.From, models.ErrNodeNotFound)
		}

		if _, ok := b.index[e.To]; !ok {
			return nil, fmt.Errorf("edge %d->%d target %d: %w", e.From, e.To, e.To, models.ErrNodeNotFound)
		}

		if b.insertArc(g.arcs, from, e) {
			g.edges++
		}
	}

	g.tree = newKdTree(g.points)

	// Hand ownership to the graph so later builder calls cannot mutate it.
	b.ids, b.points, b.edges = nil, nil, nil
	b.index = make(map[int64]int32)

	return g, nil
}

// insertArc places e in the adjacency of from, applying the parallel-edge policy.
// It reports whether a new arc was created.
func (b *Builder) insertArc(arcs [][]Edge, from int32, e Edge) bool {
	for i, existing := range arcs[from] {
		if existing.To != e.To {
			continue
		}

		if b.policy == ParallelMin && cheaper(e, existing) {
			arcs[from][i] = e
		}

		return false
	}

	arcs[from] = append(arcs[from], e)

	return true
}

// cheaper reports whether a is strictly cheaper than b; blocked edges are never cheaper.
func cheaper(a, b Edge) bool {
	ca, okA := a.cost()
	cb, okB := b.cost()

	switch {
	case !okA:
		return false
	case !okB:
		return true
	default:
		return ca < cb
	}
}
