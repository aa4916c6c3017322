package roadgraph

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// LoadFunc produces a graph; it is called at most once per successful load.
type LoadFunc func(ctx context.Context) (*Graph, error)

// Provider lazily loads the road graph and shares it between callers.
// Concurrent first calls collapse into a single load. A failed load is not
// cached, so the next call retries.
type Provider struct {
	load  LoadFunc
	log   *logrus.Logger
	group singleflight.Group

	mu sync.RWMutex
	g  *Graph
}

// NewProvider creates a Provider around load.
func NewProvider(load LoadFunc, log *logrus.Logger) *Provider {
	return &Provider{load: load, log: log}
}

// Static returns a Provider that always yields g.
func Static(g *Graph) *Provider {
	return &Provider{g: g, log: logrus.StandardLogger()}
}

// Get returns the graph, loading it on first use. The shared load runs
// detached from ctx, so a caller that gives up only stops waiting; the load
// carries on for everyone else.
func (p *Provider) Get(ctx context.Context) (*Graph, error) {
	if g, ok := p.Loaded(); ok {
		return g, nil
	}

	loadCtx := context.WithoutCancel(ctx)

	ch := p.group.DoChan("graph", func() (any, error) {
		if g, ok := p.Loaded(); ok {
			return g, nil
		}

		start := time.Now()

		g, err := p.load(loadCtx)
		if err != nil {
			p.log.WithError(err).Error("loading road graph")
			return nil, err
		}

		p.mu.Lock()
		p.g = g
		p.mu.Unlock()

		p.log.WithFields(logrus.Fields{
			"nodes":  g.Len(),
			"edges":  g.EdgeCount(),
			"source": g.Source(),
			"took":   time.Since(start).String(),
		}).Info("road graph loaded")

		return g, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		return res.Val.(*Graph), nil
	}
}

// Loaded returns the graph if it has already been loaded.
func (p *Provider) Loaded() (*Graph, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.g, p.g != nil
}
