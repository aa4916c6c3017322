package api

import (
	"github.com/routeviz/routeviz/internal/domain"
)

// Handler dependencies are the domain interfaces; aliases keep handler
// signatures short and let tests supply mocks.
type (
	RouteService   = domain.RouteService
	GraphService   = domain.GraphService
	HistoryService = domain.HistoryService
)
