package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/routeviz/routeviz/internal/domain"
	"github.com/routeviz/routeviz/internal/geo"
	"github.com/routeviz/routeviz/internal/models"
)

// Compile-time check: *GraphService must satisfy domain.GraphService.
var _ domain.GraphService = (*GraphService)(nil)

// GraphService exposes read-only lookups on the road graph.
type GraphService struct {
	graphs GraphSource
	log    *logrus.Logger
}

// NewGraphService creates a GraphService.
func NewGraphService(graphs GraphSource, log *logrus.Logger) *GraphService {
	return &GraphService{graphs: graphs, log: log}
}

// GraphStats returns node and edge counts and the bounding box.
func (s *GraphService) GraphStats(ctx context.Context) (*models.GraphStats, error) {
	g, err := s.graphs.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading graph: %w", err)
	}

	stats := g.Stats()

	return &stats, nil
}

// Nearest snaps p to the closest graph node.
func (s *GraphService) Nearest(ctx context.Context, p geo.Point) (*models.NearestResult, error) {
	s.log.WithField("point", p.String()).Debug("graph.nearest")

	if !p.Valid() {
		return nil, fmt.Errorf("point %s: %w", p, models.ErrInvalidCoordinate)
	}

	g, err := s.graphs.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading graph: %w", err)
	}

	id, dist, err := g.Nearest(p)
	if err != nil {
		return nil, err
	}

	node, err := g.Coordinate(id)
	if err != nil {
		return nil, err
	}

	return &models.NearestResult{Query: p, NodeID: id, Point: node, DistanceM: dist}, nil
}

// Node returns a node's coordinate and outgoing arcs.
func (s *GraphService) Node(ctx context.Context, id int64) (*models.NodeInfo, error) {
	s.log.WithField("node_id", id).Debug("graph.node")

	g, err := s.graphs.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading graph: %w", err)
	}

	p, err := g.Coordinate(id)
	if err != nil {
		return nil, err
	}

	arcs, err := g.Neighbors(id)
	if err != nil {
		return nil, err
	}

	info := &models.NodeInfo{ID: id, Point: p, Neighbors: make([]models.ArcInfo, 0, len(arcs))}
	for _, e := range arcs {
		info.Neighbors = append(info.Neighbors, models.ArcInfo{
			To:      e.To,
			Length:  e.Length,
			Name:    e.Name,
			Highway: e.Highway,
			Missing: e.Missing,
			Blocked: e.Blocked,
		})
	}

	return info, nil
}
