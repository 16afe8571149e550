package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/anrssnbv/flight-requests-backend/internal/api/metrics"
	"github.com/anrssnbv/flight-requests-backend/internal/core/domain"
	"github.com/anrssnbv/flight-requests-backend/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	persistTimeout = 10 * time.Second
)

// Dispatcher routes audit events to a fixed set of workers using consistent
// hashing on the request id, guaranteeing per-request event ordering in the
// audit trail.
type Dispatcher struct {
	workers []chan domain.RequestEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.RequestEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.RequestEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record sends an event to the worker responsible for its request id. When
// the worker's buffer is full the event is dropped with a warning; the audit
// trail must never block or fail the producing operation.
func (d *Dispatcher) Record(event domain.RequestEvent) {
	idx := d.shardIndex(event.RequestID)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().
			Str("request_id", event.RequestID).
			Str("type", string(event.Type)).
			Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a request id deterministically to a worker index.
func (d *Dispatcher) shardIndex(requestID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(requestID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.RequestEvent) {
	gauge := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			gauge.Set(float64(len(ch)))

			persistCtx, cancel := context.WithTimeout(context.Background(), persistTimeout)
			err := d.repo.InsertEvent(persistCtx, &event)
			cancel()
			if err != nil {
				d.log.Error().Err(err).
					Str("request_id", event.RequestID).
					Int("worker_id", id).
					Msg("audit event persistence failed")
				continue
			}
			metrics.AuditEventsTotal.WithLabelValues(string(event.Type)).Inc()
		}
	}
}
