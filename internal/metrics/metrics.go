// Package metrics defines Prometheus metrics for routeviz.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "routeviz_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routeviz_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routeviz_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "routeviz_search_duration_seconds",
			Help:    "Shortest-path search duration in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"algorithm"},
	)

	NodesExplored = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "routeviz_nodes_explored",
			Help:    "Nodes settled per search",
			Buckets: prometheus.ExponentialBuckets(10, 4, 9),
		},
		[]string{"algorithm"},
	)

	RoutesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routeviz_routes_total",
			Help: "Route comparisons by outcome",
		},
		[]string{"outcome"},
	)

	HistoryQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "routeviz_history_queue_depth",
			Help: "Current route history queue depth",
		},
	)

	HistoryDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "routeviz_history_dropped_total",
			Help: "History records dropped because the queue was full",
		},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "routeviz_websocket_connections",
			Help: "Active WebSocket connections",
		},
	)

	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routeviz_events_published_total",
			Help: "WebSocket events published by type",
		},
		[]string{"type"},
	)

	GraphNodes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "routeviz_graph_nodes",
			Help: "Nodes in the loaded road graph",
		},
	)

	GraphEdges = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "routeviz_graph_edges",
			Help: "Arcs in the loaded road graph",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		SearchDuration, NodesExplored, RoutesTotal,
		HistoryQueueDepth, HistoryDropped,
		WSConnections, EventsPublished,
		GraphNodes, GraphEdges,
	)
}
