// Package store provides data access for route history.
//
// Each store embeds Base for the shared pool and logger. The road graph itself
// is never stored in the database.
package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/routeviz/routeviz/internal/dbpool"
)

const defaultQueryTimeout = 30 * time.Second

// Base contains shared dependencies for all stores.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}
