package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/routeviz/routeviz/internal/models"
	"github.com/routeviz/routeviz/internal/roadgraph"
)

// staticGraphs serves a fixed graph or error.
type staticGraphs struct {
	g   *roadgraph.Graph
	err error
}

func (s staticGraphs) Get(context.Context) (*roadgraph.Graph, error) {
	return s.g, s.err
}

// mockRecorder records history writes.
type mockRecorder struct {
	mu      sync.Mutex
	entries []*models.RouteHistoryEntry

	err error
}

func (m *mockRecorder) RecordRoute(_ context.Context, entry *models.RouteHistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return m.err
}

func (m *mockRecorder) getEntries() []*models.RouteHistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]*models.RouteHistoryEntry, len(m.entries))
	copy(cp, m.entries)
	return cp
}

// mockEnqueuer records enqueued history entries synchronously.
type mockEnqueuer struct {
	mu      sync.Mutex
	entries []*models.RouteHistoryEntry
}

func (m *mockEnqueuer) Enqueue(entry *models.RouteHistoryEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
}

// mockPublisher records published events.
type mockPublisher struct {
	mu     sync.Mutex
	types  []string
	events []any
}

func (m *mockPublisher) Publish(eventType string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.types = append(m.types, eventType)
	m.events = append(m.events, data)
}

// mockHistoryStore returns configured responses.
type mockHistoryStore struct {
	listRoutes func(ctx context.Context, limit, offset int) ([]models.RouteHistoryEntry, bool, error)
	getRoute   func(ctx context.Context, id uuid.UUID) (*models.RouteHistoryEntry, error)
	purge      func(ctx context.Context, cutoff time.Time) (int, error)
}

func (m *mockHistoryStore) ListRoutes(ctx context.Context, limit, offset int) ([]models.RouteHistoryEntry, bool, error) {
	return m.listRoutes(ctx, limit, offset)
}

func (m *mockHistoryStore) GetRoute(ctx context.Context, id uuid.UUID) (*models.RouteHistoryEntry, error) {
	return m.getRoute(ctx, id)
}

func (m *mockHistoryStore) PurgeBefore(ctx context.Context, cutoff time.Time) (int, error) {
	return m.purge(ctx, cutoff)
}
