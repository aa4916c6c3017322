package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/routeviz/routeviz/internal/api"
	"github.com/routeviz/routeviz/internal/ws"
)

func TestHealth_Liveness(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	h := api.NewHealthHandler(nil, ws.NewHub(testLogger()), loadedFlag(true), testLogger(), "v1.2.3")
	r.GET("/health", h.Liveness)

	w := doRequest(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body["version"] != "v1.2.3" || body["graph"] != "loaded" || body["database"] != "not_configured" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestHealth_Readiness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		loaded bool
		want   int
	}{
		{"graph loaded", true, http.StatusOK},
		{"graph loading", false, http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		r := newTestRouter()
		h := api.NewHealthHandler(nil, nil, loadedFlag(tc.loaded), testLogger(), "dev")
		r.GET("/ready", h.Readiness)

		if w := doRequest(r, http.MethodGet, "/ready", ""); w.Code != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, w.Code)
		}
	}
}
