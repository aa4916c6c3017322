package roadgraph

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeviz/routeviz/internal/geo"
	"github.com/routeviz/routeviz/internal/models"
)

func buildSquare(t *testing.T, opts ...Option) *Graph {
	t.Helper()

	b := NewBuilder(opts...)
	b.AddNode(1, geo.Point{Lat: 0, Lon: 0})
	b.AddNode(2, geo.Point{Lat: 0, Lon: 0.01})
	b.AddNode(3, geo.Point{Lat: 0.01, Lon: 0.01})
	b.AddNode(4, geo.Point{Lat: 0.01, Lon: 0})
	require.NoError(t, b.AddEdge(Edge{From: 1, To: 2, Length: 10}))
	require.NoError(t, b.AddEdge(Edge{From: 2, To: 3, Length: 10}))
	require.NoError(t, b.AddEdge(Edge{From: 1, To: 4, Length: 5}))
	require.NoError(t, b.AddEdge(Edge{From: 4, To: 3, Length: 30}))

	g, err := b.Build()
	require.NoError(t, err)

	return g
}

func TestGraphAccessors(t *testing.T) {
	g := buildSquare(t, WithSource("square"))

	assert.Equal(t, 4, g.Len())
	assert.Equal(t, 4, g.EdgeCount())
	assert.Equal(t, "square", g.Source())
	assert.True(t, g.HasNode(3))
	assert.False(t, g.HasNode(99))
	assert.Equal(t, []int64{1, 2, 3, 4}, g.NodeIDs())

	ns, err := g.Neighbors(1)
	require.NoError(t, err)
	require.Len(t, ns, 2)
	assert.Equal(t, int64(2), ns[0].To)
	assert.Equal(t, int64(4), ns[1].To)

	ns, err = g.Neighbors(3)
	require.NoError(t, err)
	assert.Empty(t, ns)

	_, err = g.Neighbors(99)
	require.ErrorIs(t, err, models.ErrNodeNotFound)

	p, err := g.Coordinate(2)
	require.NoError(t, err)
	assert.Equal(t, geo.Point{Lat: 0, Lon: 0.01}, p)

	_, err = g.Coordinate(99)
	require.ErrorIs(t, err, models.ErrNodeNotFound)

	e, ok := g.Edge(4, 3)
	require.True(t, ok)
	assert.InDelta(t, 30, e.Length, 1e-9)

	_, ok = g.Edge(3, 4)
	assert.False(t, ok)

	lo, hi := g.Bounds()
	assert.Equal(t, geo.Point{Lat: 0, Lon: 0}, lo)
	assert.Equal(t, geo.Point{Lat: 0.01, Lon: 0.01}, hi)

	stats := g.Stats()
	assert.Equal(t, 4, stats.Nodes)
	assert.Equal(t, 4, stats.Edges)
}

func TestBuilderUndirected(t *testing.T) {
	g := buildSquare(t, WithUndirected())

	assert.Equal(t, 8, g.EdgeCount())

	e, ok := g.Edge(3, 2)
	require.True(t, ok)
	assert.InDelta(t, 10, e.Length, 1e-9)
}

func TestBuilderParallelPolicy(t *testing.T) {
	tests := []struct {
		name   string
		policy ParallelPolicy
		edges  []Edge
		want   Edge
	}{
		{
			name:   "min keeps cheapest",
			policy: ParallelMin,
			edges:  []Edge{{From: 1, To: 2, Length: 7, Name: "a"}, {From: 1, To: 2, Length: 3, Name: "b"}},
			want:   Edge{From: 1, To: 2, Length: 3, Name: "b"},
		},
		{
			name:   "min tie keeps first",
			policy: ParallelMin,
			edges:  []Edge{{From: 1, To: 2, Length: 3, Name: "a"}, {From: 1, To: 2, Length: 3, Name: "b"}},
			want:   Edge{From: 1, To: 2, Length: 3, Name: "a"},
		},
		{
			name:   "min prefers passable over blocked",
			policy: ParallelMin,
			edges:  []Edge{{From: 1, To: 2, Blocked: true}, {From: 1, To: 2, Length: 900}},
			want:   Edge{From: 1, To: 2, Length: 900},
		},
		{
			name:   "first keeps first",
			policy: ParallelFirst,
			edges:  []Edge{{From: 1, To: 2, Length: 7, Name: "a"}, {From: 1, To: 2, Length: 3, Name: "b"}},
			want:   Edge{From: 1, To: 2, Length: 7, Name: "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(WithParallelPolicy(tt.policy))
			b.AddNode(1, geo.Point{})
			b.AddNode(2, geo.Point{Lat: 1})

			for _, e := range tt.edges {
				require.NoError(t, b.AddEdge(e))
			}

			g, err := b.Build()
			require.NoError(t, err)
			assert.Equal(t, 1, g.EdgeCount())

			got, ok := g.Edge(1, 2)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuilderErrors(t *testing.T) {
	b := NewBuilder()
	b.AddNode(1, geo.Point{})
	require.ErrorIs(t, b.AddEdge(Edge{From: 1, To: 1, Length: -1}), models.ErrNegativeWeight)

	require.NoError(t, b.AddEdge(Edge{From: 1, To: 2, Length: 1}))
	_, err := b.Build()
	require.ErrorIs(t, err, models.ErrNodeNotFound)
}

func TestParseParallelPolicy(t *testing.T) {
	p, err := ParseParallelPolicy("first")
	require.NoError(t, err)
	assert.Equal(t, ParallelFirst, p)

	p, err = ParseParallelPolicy("")
	require.NoError(t, err)
	assert.Equal(t, ParallelMin, p)
	assert.Equal(t, "min", p.String())

	_, err = ParseParallelPolicy("max")
	require.Error(t, err)
}

func TestNearestEmpty(t *testing.T) {
	g, err := NewBuilder().Build()
	require.NoError(t, err)

	_, _, err = g.Nearest(geo.Point{})
	require.ErrorIs(t, err, models.ErrEmptyGraph)
}

func TestNearestSquare(t *testing.T) {
	g := buildSquare(t)

	id, d, err := g.Nearest(geo.Point{Lat: 0.009, Lon: 0.0095})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.InDelta(t, geo.Distance(0.009, 0.0095, 0.01, 0.01), d, 1e-9)

	id, d, err = g.Nearest(geo.Point{Lat: 0, Lon: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Zero(t, d)
}

func TestNearestTieKeepsFirstInserted(t *testing.T) {
	b := NewBuilder()
	b.AddNode(7, geo.Point{Lat: 0, Lon: 1})
	b.AddNode(5, geo.Point{Lat: 0, Lon: -1})
	g, err := b.Build()
	require.NoError(t, err)

	id, _, err := g.Nearest(geo.Point{})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestNearestMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := NewBuilder()

	points := make([]geo.Point, 500)
	for i := range points {
		points[i] = geo.Point{Lat: 40 + rng.Float64(), Lon: -74 + rng.Float64()*1.5}
		b.AddNode(int64(i), points[i])
	}

	g, err := b.Build()
	require.NoError(t, err)

	for range 200 {
		q := geo.Point{Lat: 39.8 + rng.Float64()*1.4, Lon: -74.2 + rng.Float64()*2}

		wantID, wantD := int64(-1), 0.0
		for i, p := range points {
			if d := q.DistanceTo(p); wantID < 0 || d < wantD {
				wantID, wantD = int64(i), d
			}
		}

		id, d, err := g.Nearest(q)
		require.NoError(t, err)
		assert.Equal(t, wantID, id)
		assert.InDelta(t, wantD, d, 1e-9)
	}
}

func TestNearestAcrossAntimeridian(t *testing.T) {
	b := NewBuilder()
	b.AddNode(1, geo.Point{Lat: 0, Lon: -179.9})
	b.AddNode(2, geo.Point{Lat: 0, Lon: 170})
	b.AddNode(3, geo.Point{Lat: 0, Lon: 100})
	g, err := b.Build()
	require.NoError(t, err)

	id, _, err := g.Nearest(geo.Point{Lat: 0, Lon: 179.9})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}
