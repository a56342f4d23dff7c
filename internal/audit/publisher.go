package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	id "noesis/pkg/domain"
)

// Sink mirrors events to an external system (Kafka). The trail itself always
// lives in the Store; a sink failure is logged, never surfaced to the caller,
// because activity recording must not fail a profile write that already
// happened.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Publisher appends events to the store and optionally mirrors them to a
// sink. In async mode events pass through a buffered channel drained by a
// single worker, keeping the hot request path free of sink latency.
type Publisher struct {
	store  Store
	sink   Sink
	logger *slog.Logger

	buffer chan Event
	wg     sync.WaitGroup
	once   sync.Once

	mu     sync.RWMutex
	closed bool
}

type Option func(*Publisher)

// WithSink mirrors every event to the given sink.
func WithSink(sink Sink) Option {
	return func(p *Publisher) {
		p.sink = sink
	}
}

// WithAsyncBuffer enables asynchronous publishing with the given buffer size.
// When the buffer is full the event is written synchronously instead of being
// dropped.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.buffer = make(chan Event, size)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.buffer != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit records an event, filling in ID and timestamp when unset.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	if p.tryBuffer(event) {
		return nil
	}
	return p.write(ctx, event)
}

// List returns a user's activity trail in append order.
func (p *Publisher) List(ctx context.Context, userID id.UserID) ([]Event, error) {
	return p.store.ListByUser(ctx, userID)
}

// tryBuffer hands the event to the async worker. It reports false when async
// mode is off, the buffer is full, or the publisher is closed; the caller then
// writes synchronously, so Emit after Close still records the event.
func (p *Publisher) tryBuffer(event Event) bool {
	if p.buffer == nil {
		return false
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}

	select {
	case p.buffer <- event:
		return true
	default:
		return false
	}
}

// Close stops the async worker and drains buffered events.
func (p *Publisher) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()

		if p.buffer != nil {
			close(p.buffer)
			p.wg.Wait()
		}
	})
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.buffer {
		if err := p.write(context.Background(), event); err != nil {
			p.logger.Error("audit append failed", "action", event.Action, "error", err)
		}
	}
}

func (p *Publisher) write(ctx context.Context, event Event) error {
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	if p.sink != nil {
		if err := p.sink.Publish(ctx, event); err != nil {
			p.logger.Warn("audit sink publish failed", "action", event.Action, "error", err)
		}
	}
	return nil
}
