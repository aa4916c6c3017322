package client

import (
	"context"
	"net/url"
	"strconv"
)

// RouteService runs comparisons and reads route history.
type RouteService struct {
	c *Client
}

type compareRequest struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Compare runs Dijkstra and A* between two points on the server.
func (s *RouteService) Compare(ctx context.Context, start, end Point) (*RouteComparison, error) {
	var resp RouteComparison
	if err := s.c.post(ctx, "/api/v1/routes", compareRequest{Start: start, End: end}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type routeListResponse struct {
	Routes  []RouteSummary `json:"routes"`
	HasMore bool           `json:"has_more"`
}

// List returns stored comparisons, newest first.
func (s *RouteService) List(ctx context.Context, opts *ListOptions) ([]RouteSummary, bool, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Offset > 0 {
			params.Set("offset", strconv.Itoa(opts.Offset))
		}
	}
	var resp routeListResponse
	if err := s.c.get(ctx, "/api/v1/routes", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Routes, resp.HasMore, nil
}

// Get returns one stored comparison.
func (s *RouteService) Get(ctx context.Context, id string) (*RouteSummary, error) {
	var resp RouteSummary
	if err := s.c.get(ctx, "/api/v1/routes/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Purge deletes comparisons older than retentionDays. Returns count deleted.
func (s *RouteService) Purge(ctx context.Context, retentionDays int) (int, error) {
	params := url.Values{}
	if retentionDays > 0 {
		params.Set("retention_days", strconv.Itoa(retentionDays))
	}
	var resp struct {
		Deleted int `json:"deleted"`
	}
	if err := s.c.del(ctx, "/api/v1/routes", params, &resp); err != nil {
		return 0, err
	}
	return resp.Deleted, nil
}
