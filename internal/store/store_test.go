package store_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/routeviz/routeviz/internal/db"
	"github.com/routeviz/routeviz/internal/db/migrations"
	"github.com/routeviz/routeviz/internal/dbpool"
	"github.com/routeviz/routeviz/internal/geo"
	"github.com/routeviz/routeviz/internal/models"
	"github.com/routeviz/routeviz/internal/store"
)

var sharedBase *store.Base

// setupTestBase connects to TEST_DATABASE_URL and migrates it once per run.
func setupTestBase(t *testing.T) store.Base {
	t.Helper()

	if sharedBase != nil {
		return *sharedBase
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL, dbpool.Options{})
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		t.Fatalf("migrating test DB: %v", err)
	}

	sharedBase = &store.Base{Pool: pool, Log: log}

	return *sharedBase
}

func newEntry(createdAt time.Time) *models.RouteHistoryEntry {
	return &models.RouteHistoryEntry{
		ID:               uuid.New(),
		Start:            geo.Point{Lat: 48.85, Lon: 2.35},
		End:              geo.Point{Lat: 48.86, Lon: 2.36},
		StartNode:        1,
		EndNode:          2,
		DistanceMeters:   1080,
		PathNodes:        7,
		DijkstraExplored: 400,
		AStarExplored:    100,
		DijkstraMS:       1.5,
		AStarMS:          0.4,
		Efficiency:       75,
		CreatedAt:        createdAt,
	}
}

func cleanup(t *testing.T, base store.Base, ids ...uuid.UUID) {
	t.Helper()

	t.Cleanup(func() {
		for _, id := range ids {
			base.Pool.Exec(context.Background(), "DELETE FROM route_history WHERE id = $1", id) //nolint:errcheck
		}
	})
}

func TestHistoryStore_RecordAndGet(t *testing.T) {
	base := setupTestBase(t)
	s := store.NewHistoryStore(base)
	ctx := context.Background()

	e := newEntry(time.Now().UTC().Truncate(time.Microsecond))
	cleanup(t, base, e.ID)

	if err := s.RecordRoute(ctx, e); err != nil {
		t.Fatalf("RecordRoute: %v", err)
	}

	// Idempotent on id.
	if err := s.RecordRoute(ctx, e); err != nil {
		t.Fatalf("RecordRoute again: %v", err)
	}

	got, err := s.GetRoute(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}

	if got.DistanceMeters != e.DistanceMeters || got.AStarExplored != e.AStarExplored || got.Start != e.Start {
		t.Errorf("got %+v, want %+v", got, e)
	}

	if !got.CreatedAt.Equal(e.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, e.CreatedAt)
	}

	_, err = s.GetRoute(ctx, uuid.New())
	if !errors.Is(err, models.ErrRouteNotFound) {
		t.Errorf("GetRoute(missing) error = %v, want ErrRouteNotFound", err)
	}
}

func TestHistoryStore_ListAndPurge(t *testing.T) {
	base := setupTestBase(t)
	s := store.NewHistoryStore(base)
	ctx := context.Background()

	// Far in the future so concurrent rows from other tests sort after these.
	anchor := time.Now().UTC().Add(100 * 365 * 24 * time.Hour).Truncate(time.Second)

	var ids []uuid.UUID

	for i := range 3 {
		e := newEntry(anchor.Add(time.Duration(i) * time.Minute))
		ids = append(ids, e.ID)

		if err := s.RecordRoute(ctx, e); err != nil {
			t.Fatalf("RecordRoute: %v", err)
		}
	}

	cleanup(t, base, ids...)

	page, hasMore, err := s.ListRoutes(ctx, 2, 0)
	if err != nil {
		t.Fatalf("ListRoutes: %v", err)
	}

	if len(page) != 2 || !hasMore {
		t.Fatalf("page len = %d hasMore = %v, want 2 true", len(page), hasMore)
	}

	if page[0].ID != ids[2] || page[1].ID != ids[1] {
		t.Errorf("order = %v, %v; want newest first", page[0].ID, page[1].ID)
	}

	n, err := s.PurgeBefore(ctx, anchor.Add(90*time.Second))
	if err != nil {
		t.Fatalf("PurgeBefore: %v", err)
	}

	if n < 2 {
		t.Errorf("purged %d rows, want at least 2", n)
	}

	if _, err := s.GetRoute(ctx, ids[2]); err != nil {
		t.Errorf("newest entry should survive purge: %v", err)
	}
}
