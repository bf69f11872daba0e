package http

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/impactviz-service/internal/domain"
	"github.com/couchcryptid/impactviz-service/internal/observability"
)

const (
	defaultPublishQueueSize = 256
	publishTimeout          = 2 * time.Second
)

// publishQueue hands simulation events to a single background publisher so
// the request path never waits on the broker. Events arriving while the
// queue is full are dropped and counted.
type publishQueue struct {
	publisher EventPublisher
	metrics   *observability.Metrics
	logger    *slog.Logger

	mu     sync.RWMutex
	closed bool
	events chan domain.SimulationEvent
	done   chan struct{}
}

func newPublishQueue(publisher EventPublisher, size int, metrics *observability.Metrics, logger *slog.Logger) *publishQueue {
	if size <= 0 {
		size = defaultPublishQueueSize
	}
	q := &publishQueue{
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		events:    make(chan domain.SimulationEvent, size),
		done:      make(chan struct{}),
	}
	go q.run()
	return q
}

// enqueue never blocks. It reports whether the event was accepted.
func (q *publishQueue) enqueue(event domain.SimulationEvent) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return false
	}

	select {
	case q.events <- event:
		return true
	default:
		q.metrics.EventsPublished.WithLabelValues("dropped").Inc()
		q.logger.Warn("publish queue full, dropping simulation event", "event_id", event.ID)
		return false
	}
}

func (q *publishQueue) run() {
	defer close(q.done)
	for event := range q.events {
		q.publish(event)
	}
}

func (q *publishQueue) publish(event domain.SimulationEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := q.publisher.Publish(ctx, event); err != nil {
		q.metrics.EventsPublished.WithLabelValues("error").Inc()
		q.logger.Warn("publish simulation event failed", "event_id", event.ID, "error", err)
		return
	}
	q.metrics.EventsPublished.WithLabelValues("success").Inc()
}

// close stops accepting events and waits for queued ones to drain or ctx to end.
func (q *publishQueue) close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.events)
	}
	q.mu.Unlock()

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
