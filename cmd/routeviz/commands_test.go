package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/routeviz/routeviz/client"
)

func newFakeServer(t *testing.T) string {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/routes", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Start client.Point `json:"start"`
			End   client.Point `json:"end"`
		}
		json.NewDecoder(r.Body).Decode(&req)              //nolint:errcheck
		json.NewEncoder(w).Encode(client.RouteComparison{ //nolint:errcheck
			ID:         "r-1",
			Start:      req.Start,
			End:        req.End,
			StartNode:  1,
			EndNode:    3,
			Dijkstra:   client.AlgorithmRun{Algorithm: "dijkstra", Path: []int64{1, 2, 3}, Explored: 8},
			AStar:      client.AlgorithmRun{Algorithm: "astar", Path: []int64{1, 2, 3}, Explored: 2},
			Distance:   "0.22 km",
			Efficiency: 75,
		})
	})
	mux.HandleFunc("GET /api/v1/routes", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"routes":   []client.RouteSummary{{ID: "r-1"}, {ID: "r-2"}},
			"has_more": false,
		})
	})
	mux.HandleFunc("DELETE /api/v1/routes", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer admin-key-0123456789" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"code":"unauthorized","message":"invalid api key"}`)) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(map[string]int{"deleted": 5, "retention_days": 7}) //nolint:errcheck
	})
	mux.HandleFunc("GET /api/v1/graph/nodes/7", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"node_not_found","message":"node not found"}`)) //nolint:errcheck
	})
	mux.HandleFunc("GET /api/v1/health", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(client.HealthResponse{ //nolint:errcheck
			Status: "ok", Version: "test", Graph: "loaded", GraphNodes: 4, GraphEdges: 4, Database: "not_configured",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestRouteCommand(t *testing.T) {
	url := newFakeServer(t)

	tests := []struct {
		format string
		want   []string
	}{
		{"table", []string{"ALGORITHM", "dijkstra", "astar", "route 1 -> 3: 0.22 km, A* explored 75.0% fewer nodes"}},
		{"json", []string{`"distance": "0.22 km"`, `"explored": 8`}},
		{"quiet", []string{"0.22 km\n"}},
	}

	for _, tc := range tests {
		out := captureOutput(t)
		if err := executeArgs(t, "--url", url, "--format", tc.format, "route", "45,7", "45.01,7.01"); err != nil {
			t.Fatalf("%s: route error: %v", tc.format, err)
		}
		for _, w := range tc.want {
			if !strings.Contains(out.String(), w) {
				t.Errorf("%s: output missing %q:\n%s", tc.format, w, out.String())
			}
		}
	}
}

func TestRouteCommandArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"one point", []string{"route", "45,7"}},
		{"bad point", []string{"route", "45;7", "45,7"}},
		{"out of range", []string{"route", "95,7", "45,7"}},
		{"bad format flag", []string{"--format", "xml", "route", "45,7", "45,7"}},
	}

	for _, tc := range tests {
		captureOutput(t)
		if err := executeArgs(t, append([]string{"--url", "http://127.0.0.1:1"}, tc.args...)...); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestHistoryListQuiet(t *testing.T) {
	url := newFakeServer(t)
	out := captureOutput(t)

	if err := executeArgs(t, "--url", url, "--format", "quiet", "history", "list"); err != nil {
		t.Fatalf("history list: %v", err)
	}
	if out.String() != "r-1\nr-2\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestGraphNodeNotFound(t *testing.T) {
	url := newFakeServer(t)
	captureOutput(t)

	err := executeArgs(t, "--url", url, "graph", "node", "7")
	if !client.IsNotFound(err) {
		t.Errorf("expected wrapped not-found error, got %v", err)
	}

	if err := executeArgs(t, "--url", url, "graph", "node", "seven"); err == nil {
		t.Error("expected error for non-numeric id")
	}
}

func TestDoctor(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	url := newFakeServer(t)
	out := captureOutput(t)

	if err := executeArgs(t, "--url", url, "doctor"); err != nil {
		t.Fatalf("doctor: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "4 nodes, 4 edges") {
		t.Errorf("output missing graph detail:\n%s", out.String())
	}

	captureOutput(t)
	if err := executeArgs(t, "--url", "http://127.0.0.1:1", "doctor"); err == nil {
		t.Error("expected doctor to fail against an unreachable server")
	}
}

func TestHistoryPurgeSendsAdminKey(t *testing.T) {
	url := newFakeServer(t)
	t.Setenv("ROUTEVIZ_ADMIN_KEY", "")

	captureOutput(t)
	if err := executeArgs(t, "--url", url, "history", "purge"); err == nil {
		t.Error("expected error without an admin key")
	}

	captureOutput(t)
	err := executeArgs(t, "--url", url, "history", "purge", "--admin-key", "wrong-key")
	if !client.IsUnauthorized(err) {
		t.Errorf("expected unauthorized error, got %v", err)
	}

	t.Setenv("ROUTEVIZ_ADMIN_KEY", "admin-key-0123456789")
	out := captureOutput(t)
	if err := executeArgs(t, "--url", url, "--format", "quiet", "history", "purge", "--retention-days", "7"); err != nil {
		t.Fatalf("history purge: %v", err)
	}
	if out.String() != "5\n" {
		t.Errorf("output = %q, want 5", out.String())
	}
}
