package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/SinghShreyansh/users-service/internal/api/metrics"
	"github.com/SinghShreyansh/users-service/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

var ErrDispatcherClosed = errors.New("dispatcher closed")

// Publisher delivers a change event to the outside world.
type Publisher interface {
	Publish(ctx context.Context, event domain.ChangeEvent) error
}

// Dispatcher routes change events to a fixed set of workers using consistent
// hashing on the record id, guaranteeing per-record event ordering.
// It implements ports.ChangeNotifier.
type Dispatcher struct {
	workers   []chan domain.ChangeEvent
	publisher Publisher
	log       zerolog.Logger
	now       func() time.Time

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, publisher Publisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan domain.ChangeEvent, numWorkers),
		publisher: publisher,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ChangeEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or after Close has drained their channel.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Notify enqueues a change event on the worker responsible for the record.
// It blocks only while that worker's buffer is full.
func (d *Dispatcher) Notify(ctx context.Context, kind domain.ChangeKind, payload domain.Projection) error {
	event := domain.ChangeEvent{
		Entity:     domain.EntityUsers,
		Kind:       kind,
		Payload:    payload,
		OccurredAt: d.now(),
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}

	idx := d.shardIndex(payload.ID())
	depth := metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx))
	depth.Inc()
	select {
	case d.workers[idx] <- event:
		return nil
	case <-ctx.Done():
		depth.Dec()
		return ctx.Err()
	}
}

// Close stops accepting events, lets workers drain what is queued and waits
// for them to exit.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps a record id deterministically to a worker index.
func (d *Dispatcher) shardIndex(id string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ChangeEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(label).Dec()
			d.publish(ctx, id, event)
		}
	}
}

func (d *Dispatcher) publish(ctx context.Context, worker int, event domain.ChangeEvent) {
	if err := d.publisher.Publish(ctx, event); err != nil {
		metrics.ChangeNotificationsTotal.WithLabelValues(string(event.Kind), "error").Inc()
		d.log.Error().Err(err).
			Str("kind", string(event.Kind)).
			Str("id", event.Payload.ID()).
			Int("worker_id", worker).
			Msg("change notification failed")
		return
	}
	metrics.ChangeNotificationsTotal.WithLabelValues(string(event.Kind), "ok").Inc()
}
