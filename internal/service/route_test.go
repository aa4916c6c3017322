package service

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/routeviz/routeviz/internal/geo"
	"github.com/routeviz/routeviz/internal/models"
	"github.com/routeviz/routeviz/internal/roadgraph"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return log
}

// testGraph is a 3x3 grid, 0.001 degrees apart, with great-circle edge lengths,
// plus an isolated node 10 far away.
func testGraph(t *testing.T) *roadgraph.Graph {
	t.Helper()

	const step = 0.001

	b := roadgraph.NewBuilder(roadgraph.WithUndirected(), roadgraph.WithSource("grid"))
	id := func(r, c int) int64 { return int64(r*3 + c + 1) }
	pt := func(r, c int) geo.Point { return geo.Point{Lat: 45 + float64(r)*step, Lon: 7 + float64(c)*step} }

	for r := range 3 {
		for c := range 3 {
			b.AddNode(id(r, c), pt(r, c))
		}
	}

	b.AddNode(10, geo.Point{Lat: 46, Lon: 8})

	for r := range 3 {
		for c := range 3 {
			if c < 2 {
				if err := b.AddEdge(roadgraph.Edge{From: id(r, c), To: id(r, c+1), Length: pt(r, c).DistanceTo(pt(r, c+1))}); err != nil {
					t.Fatal(err)
				}
			}

			if r < 2 {
				if err := b.AddEdge(roadgraph.Edge{From: id(r, c), To: id(r+1, c), Length: pt(r, c).DistanceTo(pt(r+1, c))}); err != nil {
					t.Fatal(err)
				}
			}
		}
	}

	g, err := b.Build()
	if err != nil {
		t.Fatalf("building graph: %v", err)
	}

	return g
}

func TestRouteService_Compare(t *testing.T) {
	g := testGraph(t)
	hist := &mockEnqueuer{}
	pub := &mockPublisher{}
	svc := NewRouteService(staticGraphs{g: g}, hist, pub, 1, testLogger())

	start := geo.Point{Lat: 45.00001, Lon: 7.00001}
	end := geo.Point{Lat: 45.002, Lon: 7.00201}

	cmp, err := svc.Compare(context.Background(), start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cmp.StartNode != 1 || cmp.EndNode != 9 {
		t.Fatalf("nodes = %d -> %d, want 1 -> 9", cmp.StartNode, cmp.EndNode)
	}

	if cmp.AStar.Path[0] != 1 || cmp.AStar.Path[len(cmp.AStar.Path)-1] != 9 {
		t.Errorf("astar path = %v", cmp.AStar.Path)
	}

	if len(cmp.Dijkstra.Path) != 5 || len(cmp.AStar.Path) != 5 {
		t.Errorf("path lengths = %d, %d, want 5", len(cmp.Dijkstra.Path), len(cmp.AStar.Path))
	}

	if cmp.AStar.Explored > cmp.Dijkstra.Explored {
		t.Errorf("astar explored %d > dijkstra %d", cmp.AStar.Explored, cmp.Dijkstra.Explored)
	}

	if len(cmp.Dijkstra.Order) != cmp.Dijkstra.Explored {
		t.Errorf("sample step 1 should keep the full trace")
	}

	want := models.Efficiency(cmp.Dijkstra.Explored, cmp.AStar.Explored)
	if cmp.Efficiency != want {
		t.Errorf("efficiency = %v, want %v", cmp.Efficiency, want)
	}

	pathLen := 0.0
	for i := 1; i < len(cmp.AStar.Path); i++ {
		e, _ := g.Edge(cmp.AStar.Path[i-1], cmp.AStar.Path[i])
		pathLen += e.Length
	}

	wantDist := cmp.StartSnapM + pathLen + cmp.EndSnapM
	if math.Abs(cmp.DistanceMeters-wantDist) > 1e-6 {
		t.Errorf("distance = %v, want %v", cmp.DistanceMeters, wantDist)
	}

	if cmp.Distance != "0.38 km" {
		t.Errorf("formatted distance = %q, want %q", cmp.Distance, "0.38 km")
	}

	if len(cmp.PathCoords) != len(cmp.AStar.Path) {
		t.Errorf("coords = %d, want %d", len(cmp.PathCoords), len(cmp.AStar.Path))
	}

	if len(hist.entries) != 1 || hist.entries[0].ID != cmp.ID {
		t.Errorf("history entries = %v", hist.entries)
	}

	if !reflect.DeepEqual(pub.types, []string{models.EventRouteComputed}) {
		t.Errorf("events = %v", pub.types)
	}
}

func TestRouteService_CompareSameNode(t *testing.T) {
	svc := NewRouteService(staticGraphs{g: testGraph(t)}, nil, nil, 0, testLogger())

	cmp, err := svc.Compare(context.Background(), geo.Point{Lat: 45, Lon: 7}, geo.Point{Lat: 45.0000001, Lon: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(cmp.AStar.Path, []int64{1}) {
		t.Errorf("path = %v, want [1]", cmp.AStar.Path)
	}

	if cmp.Efficiency != 0 {
		t.Errorf("efficiency = %v, want 0", cmp.Efficiency)
	}
}

func TestRouteService_CompareErrors(t *testing.T) {
	g := testGraph(t)
	empty, err := roadgraph.NewBuilder().Build()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		graphs  GraphSource
		start   geo.Point
		end     geo.Point
		wantErr error
		code    string
	}{
		{"invalid start", staticGraphs{g: g}, geo.Point{Lat: 91}, geo.Point{Lat: 45, Lon: 7}, models.ErrInvalidCoordinate, "invalid_coordinate"},
		{"invalid end", staticGraphs{g: g}, geo.Point{Lat: 45, Lon: 7}, geo.Point{Lon: 181}, models.ErrInvalidCoordinate, "invalid_coordinate"},
		{"no path", staticGraphs{g: g}, geo.Point{Lat: 45, Lon: 7}, geo.Point{Lat: 46, Lon: 8}, models.ErrNoPath, "no_path"},
		{"empty graph", staticGraphs{g: empty}, geo.Point{}, geo.Point{}, models.ErrEmptyGraph, "empty_graph"},
		{"load failure", staticGraphs{err: errors.New("boom")}, geo.Point{}, geo.Point{}, nil, "error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hist := &mockEnqueuer{}
			pub := &mockPublisher{}
			svc := NewRouteService(tc.graphs, hist, pub, 10, testLogger())

			_, err := svc.Compare(context.Background(), tc.start, tc.end)
			if err == nil {
				t.Fatal("expected error")
			}

			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}

			if len(hist.entries) != 0 {
				t.Errorf("failed comparison must not be recorded")
			}

			if len(pub.events) != 1 || pub.types[0] != models.EventRouteFailed {
				t.Fatalf("events = %v", pub.types)
			}

			if f := pub.events[0].(models.RouteFailure); f.Code != tc.code {
				t.Errorf("failure code = %q, want %q", f.Code, tc.code)
			}
		})
	}
}

func TestRouteService_CompareCanceled(t *testing.T) {
	svc := NewRouteService(staticGraphs{g: testGraph(t)}, nil, nil, 10, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Compare(ctx, geo.Point{Lat: 45, Lon: 7}, geo.Point{Lat: 45.002, Lon: 7.002})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestSample(t *testing.T) {
	ids := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	tests := []struct {
		step int
		want []int64
	}{
		{0, ids},
		{1, ids},
		{5, []int64{1, 6, 11}},
		{10, []int64{1, 11}},
		{100, []int64{1}},
	}

	for _, tc := range tests {
		if got := Sample(ids, tc.step); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Sample(step=%d) = %v, want %v", tc.step, got, tc.want)
		}
	}

	if got := Sample(nil, 10); len(got) != 0 {
		t.Errorf("Sample(nil) = %v", got)
	}
}
