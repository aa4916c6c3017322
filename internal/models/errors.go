// Package models defines the data types shared across routeviz layers.
package models

import "errors"

// Sentinel errors for graph lookups and searches.
var (
	ErrNodeNotFound   = errors.New("node not found")
	ErrEdgeNotFound   = errors.New("edge not found")
	ErrNoPath         = errors.New("no path found")
	ErrEmptyGraph     = errors.New("graph has no nodes")
	ErrEmptyPath      = errors.New("path is empty")
	ErrNegativeWeight = errors.New("negative edge length")
)

// Sentinel errors for request validation.
var (
	ErrInvalidCoordinate = errors.New("coordinate out of range")
)

// Sentinel errors for route history.
var (
	ErrRouteNotFound   = errors.New("route not found")
	ErrHistoryDisabled = errors.New("route history is not configured")
)
