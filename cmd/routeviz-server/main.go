// Command routeviz-server serves the route comparison API over a road graph
// loaded from GRAPH_PATH.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/routeviz/routeviz/internal/api"
	"github.com/routeviz/routeviz/internal/config"
	"github.com/routeviz/routeviz/internal/db"
	"github.com/routeviz/routeviz/internal/db/migrations"
	"github.com/routeviz/routeviz/internal/dbpool"
	"github.com/routeviz/routeviz/internal/metrics"
	"github.com/routeviz/routeviz/internal/roadgraph"
	"github.com/routeviz/routeviz/internal/service"
	"github.com/routeviz/routeviz/internal/store"
	"github.com/routeviz/routeviz/internal/ws"
)

const (
	shutdownTimeout   = 10 * time.Second
	retentionInterval = time.Hour
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("routeviz-server exited")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	graphs := roadgraph.NewProvider(graphLoader(cfg, log), log)
	hub := ws.NewHub(log)

	var (
		pool    *dbpool.Pool
		worker  *service.HistoryWorker
		history service.HistoryStore
	)

	if cfg.HistoryEnabled() {
		pool, err = dbpool.NewPool(ctx, cfg.DatabaseURL.Value(), dbpool.Options{MaxConns: int32(cfg.DBMaxConns)})
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()

		if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
			return err
		}

		hs := store.NewHistoryStore(store.Base{Pool: pool, Log: log})
		history = hs
		worker = service.NewHistoryWorker(hs, log, cfg.HistoryQueue)
	} else {
		log.Info("DATABASE_URL not set, route history disabled")
	}

	var enqueuer service.HistoryEnqueuer
	if worker != nil {
		enqueuer = worker
	}

	routeSvc := service.NewRouteService(graphs, enqueuer, hub, cfg.TraceSampleStep, log)
	graphSvc := service.NewGraphService(graphs, log)
	historySvc := service.NewHistoryService(history, log)

	handler := api.NewRouter(ctx, &api.RouterDeps{
		Log:         log,
		Pool:        pool,
		Hub:         hub,
		Graphs:      graphs,
		Routes:      routeSvc,
		Graph:       graphSvc,
		History:     historySvc,
		CORSOrigins: cfg.CORSOrigins,
		WSOrigins:   cfg.OriginHosts(),
		Version:     config.Version,
		RateLimit:   cfg.RateLimit,
		RateBurst:   cfg.RateBurst,
		AdminAPIKey: cfg.AdminAPIKey.Value(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	// Preload so the first route request does not pay for parsing. A failure
	// here is retried on demand, so the server keeps running.
	g.Go(func() error {
		if _, err := graphs.Get(gctx); err != nil {
			log.WithError(err).Error("graph preload failed")
		}
		return nil
	})

	if worker != nil {
		g.Go(func() error {
			worker.Run(gctx)
			return nil
		})
		g.Go(func() error {
			return db.NewNotifyBridge(log, pool, hub).Run(gctx)
		})
		g.Go(func() error {
			historySvc.RunRetention(gctx, retentionInterval, cfg.HistoryRetention)
			return nil
		})
	}

	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"version": config.Version,
			"history": cfg.HistoryEnabled(),
			"admin":   cfg.AdminEnabled(),
		}).Info("routeviz-server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		hub.Shutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}
		log.Info("routeviz-server stopped")
		return nil
	})

	return g.Wait()
}

func graphLoader(cfg *config.Config, log *logrus.Logger) roadgraph.LoadFunc {
	return func(ctx context.Context) (*roadgraph.Graph, error) {
		format, err := roadgraph.ParseFormat(cfg.GraphFormat)
		if err != nil {
			return nil, err
		}
		policy, err := roadgraph.ParseParallelPolicy(cfg.ParallelEdges)
		if err != nil {
			return nil, err
		}

		start := time.Now()
		g, err := roadgraph.LoadFile(ctx, cfg.GraphPath, format, roadgraph.WithParallelPolicy(policy))
		if err != nil {
			return nil, err
		}

		metrics.GraphNodes.Set(float64(g.Len()))
		metrics.GraphEdges.Set(float64(g.EdgeCount()))
		log.WithFields(logrus.Fields{
			"path":  cfg.GraphPath,
			"nodes": g.Len(),
			"edges": g.EdgeCount(),
			"took":  time.Since(start).String(),
		}).Info("graph.loaded")

		return g, nil
	}
}
