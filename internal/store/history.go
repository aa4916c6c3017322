package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/routeviz/routeviz/internal/models"
)

// HistoryStore reads and writes the route_history table.
type HistoryStore struct {
	Base
}

// NewHistoryStore creates a HistoryStore.
func NewHistoryStore(base Base) *HistoryStore {
	return &HistoryStore{Base: base}
}

// RecordRoute inserts a route summary. Re-recording the same id is a no-op.
func (s *HistoryStore) RecordRoute(ctx context.Context, e *models.RouteHistoryEntry) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.Pool.Exec(ctx, `
		INSERT INTO route_history (`+routeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO NOTHING`,
		e.ID, e.Start.Lat, e.Start.Lon, e.End.Lat, e.End.Lon, e.StartNode, e.EndNode,
		e.DistanceMeters, e.PathNodes, e.DijkstraExplored, e.AStarExplored,
		e.DijkstraMS, e.AStarMS, e.Efficiency, createdAt,
	)
	if err != nil {
		return fmt.Errorf("inserting route history: %w", err)
	}

	return nil
}

// ListRoutes returns route summaries newest first, with has_more pagination.
func (s *HistoryStore) ListRoutes(ctx context.Context, limit, offset int) ([]models.RouteHistoryEntry, bool, error) {
	limit, offset = clampPage(limit, offset)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx,
		`SELECT `+routeColumns+` FROM route_history
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`,
		limit+1, offset,
	)
	if err != nil {
		return nil, false, fmt.Errorf("querying route history: %w", err)
	}
	defer rows.Close()

	entries := make([]models.RouteHistoryEntry, 0, limit)

	for rows.Next() {
		e, err := scanRoute(rows.Scan)
		if err != nil {
			return nil, false, fmt.Errorf("scanning route history: %w", err)
		}

		entries = append(entries, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating route history: %w", err)
	}

	hasMore := len(entries) > limit
	if hasMore {
		entries = entries[:limit]
	}

	return entries, hasMore, nil
}

// GetRoute returns one route summary.
func (s *HistoryStore) GetRoute(ctx context.Context, id uuid.UUID) (*models.RouteHistoryEntry, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, `SELECT `+routeColumns+` FROM route_history WHERE id = $1`, id)

	e, err := scanRoute(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrRouteNotFound
		}

		return nil, fmt.Errorf("getting route %s: %w", id, err)
	}

	return e, nil
}

// PurgeBefore deletes summaries older than cutoff and returns how many were removed.
func (s *HistoryStore) PurgeBefore(ctx context.Context, cutoff time.Time) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.Pool.Exec(ctx, `DELETE FROM route_history WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging route history: %w", err)
	}

	return int(tag.RowsAffected()), nil
}
