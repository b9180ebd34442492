package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bhargav3929/myacademydask-sub000/internal/api/metrics"
	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
	"github.com/bhargav3929/myacademydask-sub000/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AuditWriter persists audit events off the request path. Events are routed
// to a fixed set of workers by hashing the organization id, so the events of
// one organization are appended in the order they were recorded.
type AuditWriter struct {
	workers []chan domain.AuditEvent
	repo    ports.AuditRepository
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewAuditWriter creates an AuditWriter with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditWriter(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditWriter {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	w := &AuditWriter{
		workers: make([]chan domain.AuditEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range w.workers {
		w.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return w
}

// Start launches the worker goroutines. Writes use ctx's values but not its
// cancellation, so Stop can drain queued events after ctx is done.
func (w *AuditWriter) Start(ctx context.Context) {
	base := context.WithoutCancel(ctx)
	for i, ch := range w.workers {
		w.wg.Add(1)
		go w.runWorker(base, i, ch)
	}
}

// Record queues an event without blocking. The event is dropped when the
// worker's buffer is full or the writer was stopped.
func (w *AuditWriter) Record(event domain.AuditEvent) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		metrics.AuditEventsTotal.WithLabelValues("dropped").Inc()
		w.log.Warn().Str("action", event.Action).Msg("audit writer stopped, event dropped")
		return
	}

	id := w.shardIndex(shardKey(event))
	select {
	case w.workers[id] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Inc()
	default:
		metrics.AuditEventsTotal.WithLabelValues("dropped").Inc()
		w.log.Warn().Str("action", event.Action).Int("worker_id", id).Msg("audit queue full, event dropped")
	}
}

// Stop closes the queues and waits until every queued event was written.
func (w *AuditWriter) Stop() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	for _, ch := range w.workers {
		close(ch)
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func shardKey(event domain.AuditEvent) string {
	if event.OrganizationID != "" {
		return event.OrganizationID
	}
	return event.TargetUID
}

// shardIndex maps a key deterministically to a worker index.
func (w *AuditWriter) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(w.workers)))
}

func (w *AuditWriter) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	defer w.wg.Done()
	depth := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id))

	for event := range ch {
		depth.Dec()
		start := time.Now()
		if err := w.repo.Append(ctx, &event); err != nil {
			metrics.AuditEventsTotal.WithLabelValues("failed").Inc()
			w.log.Error().Err(err).
				Str("action", event.Action).
				Str("target_uid", event.TargetUID).
				Int("worker_id", id).
				Msg("audit append failed")
			continue
		}
		metrics.AuditWriteDuration.Observe(time.Since(start).Seconds())
		metrics.AuditEventsTotal.WithLabelValues("written").Inc()
	}
}
