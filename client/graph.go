package client

import (
	"context"
	"net/url"
	"strconv"
)

// GraphService reads the server's road graph.
type GraphService struct {
	c *Client
}

// Stats returns node and edge counts and the bounding box.
func (s *GraphService) Stats(ctx context.Context) (*GraphStats, error) {
	var resp GraphStats
	if err := s.c.get(ctx, "/api/v1/graph/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Nearest snaps a point to the closest graph node.
func (s *GraphService) Nearest(ctx context.Context, p Point) (*NearestResult, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(p.Lon, 'f', -1, 64))
	var resp NearestResult
	if err := s.c.get(ctx, "/api/v1/graph/nearest", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Node returns a node with its outgoing arcs.
func (s *GraphService) Node(ctx context.Context, id int64) (*NodeInfo, error) {
	var resp NodeInfo
	if err := s.c.get(ctx, "/api/v1/graph/nodes/"+strconv.FormatInt(id, 10), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
