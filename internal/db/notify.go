package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/routeviz/routeviz/internal/dbpool"
)

// ListenChannel is the channel the route_history insert trigger notifies on.
const ListenChannel = "route_history"

const (
	defaultEventType  = "route.recorded"
	initialBackoff    = 1 * time.Second
	maxBackoff        = 30 * time.Second
	backoffMultiplier = 2
	readDeadline      = 2 * time.Minute
)

// Publisher sends events to connected clients. *ws.Hub satisfies it.
type Publisher interface {
	Publish(eventType string, data any)
}

// NotifyBridge listens for route_history notifications and republishes them,
// so every server sharing the database sees routes recorded by the others.
type NotifyBridge struct {
	log  *logrus.Logger
	pool *dbpool.Pool
	pub  Publisher
}

// NewNotifyBridge creates a NotifyBridge wired to the given pool and publisher.
func NewNotifyBridge(log *logrus.Logger, pool *dbpool.Pool, pub Publisher) *NotifyBridge {
	return &NotifyBridge{log: log, pool: pool, pub: pub}
}

// Run listens until ctx is cancelled, reconnecting with jittered backoff.
func (b *NotifyBridge) Run(ctx context.Context) error {
	if err := b.pool.Ping(ctx); err != nil {
		return fmt.Errorf("notify bridge: database not reachable: %w", err)
	}

	backoff := initialBackoff

	for {
		err := b.subscribeAndForward(ctx)
		if err == nil || ctx.Err() != nil {
			return nil
		}

		b.log.WithError(err).WithField("retry_in", backoff).
			Warn("notify bridge connection lost, reconnecting")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}

		backoff = nextBackoff(backoff)
	}
}

func (b *NotifyBridge) subscribeAndForward(ctx context.Context) error {
	conn, err := b.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{ListenChannel}.Sanitize()); err != nil {
		return fmt.Errorf("executing LISTEN: %w", err)
	}

	b.log.WithField("channel", ListenChannel).Info("notify bridge listening")

	for {
		// Wake periodically so a dead socket is noticed.
		if err := conn.Conn().PgConn().Conn().SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
			return fmt.Errorf("setting read deadline: %w", err)
		}

		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}

			return fmt.Errorf("waiting for notification: %w", err)
		}

		b.handleNotification(n)
	}
}

// handleNotification republishes one payload; its "type" field names the event.
func (b *NotifyBridge) handleNotification(n *pgconn.Notification) {
	b.log.WithFields(logrus.Fields{
		"channel": n.Channel,
		"pid":     n.PID,
	}).Debug("notification received")

	var payload struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(n.Payload), &payload); err != nil {
		b.log.WithError(err).Warn("dropping malformed notification")
		return
	}

	eventType := payload.Type
	if eventType == "" {
		eventType = defaultEventType
	}

	b.pub.Publish(eventType, json.RawMessage(n.Payload))
}

// nextBackoff doubles the backoff with ±25% jitter, capped at maxBackoff.
func nextBackoff(current time.Duration) time.Duration {
	next := min(current*backoffMultiplier, maxBackoff)

	return time.Duration(float64(next) * (0.75 + rand.Float64()*0.5)) //nolint:gosec // jitter doesn't need crypto rand.
}
