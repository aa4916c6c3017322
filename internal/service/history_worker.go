package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/routeviz/routeviz/internal/domain"
	"github.com/routeviz/routeviz/internal/metrics"
	"github.com/routeviz/routeviz/internal/models"
)

// recordTimeout bounds a single history write.
const recordTimeout = 10 * time.Second

// HistoryWorker buffers route summaries and writes them via a single goroutine.
type HistoryWorker struct {
	recorder domain.RouteRecorder
	log      *logrus.Logger
	jobs     chan *models.RouteHistoryEntry
}

// NewHistoryWorker creates a HistoryWorker with the given queue capacity.
func NewHistoryWorker(recorder domain.RouteRecorder, log *logrus.Logger, queueSize int) *HistoryWorker {
	if queueSize <= 0 {
		queueSize = 256
	}

	return &HistoryWorker{
		recorder: recorder,
		log:      log,
		jobs:     make(chan *models.RouteHistoryEntry, queueSize),
	}
}

// Enqueue adds an entry. Non-blocking; drops the entry if the queue is full.
func (w *HistoryWorker) Enqueue(entry *models.RouteHistoryEntry) {
	select {
	case w.jobs <- entry:
		metrics.HistoryQueueDepth.Set(float64(len(w.jobs)))
	default:
		metrics.HistoryDropped.Inc()
		w.log.WithField("route_id", entry.ID).Warn("history queue full, dropping entry")
	}
}

// Run writes entries until ctx is cancelled, then drains what is left.
func (w *HistoryWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case entry := <-w.jobs:
			w.process(entry)
		}
	}
}

func (w *HistoryWorker) drain() {
	for {
		select {
		case entry := <-w.jobs:
			w.process(entry)
		default:
			return
		}
	}
}

func (w *HistoryWorker) process(entry *models.RouteHistoryEntry) {
	metrics.HistoryQueueDepth.Set(float64(len(w.jobs)))

	// Runs after shutdown too, so it cannot use the worker's context.
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if err := w.recorder.RecordRoute(ctx, entry); err != nil {
		w.log.WithError(err).WithField("route_id", entry.ID).Warn("history record failed")
	}
}
