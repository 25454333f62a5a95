package status

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default poll intervals
const (
	MojangInterval  = 30 * time.Second
	NetworkInterval = 30 * time.Second
	ServerInterval  = 50 * time.Minute
)

// Poller refreshes a value at a fixed interval and hands it to a sink. A
// failed refresh keeps whatever the sink displayed last; if the very first
// refresh fails the sink receives the fallback value.
type Poller[T any] struct {
	name     string
	interval time.Duration
	fetch    func(context.Context) (T, error)
	sink     func(T)
	fallback T
	logger   *zap.Logger

	mu      sync.Mutex
	hasLast bool
	last    T
	cancel  context.CancelFunc
	done    chan struct{}
	refresh chan struct{}
}

// NewPoller creates a poller. It does nothing until Start.
func NewPoller[T any](name string, interval time.Duration, fetch func(context.Context) (T, error), sink func(T), fallback T, logger *zap.Logger) *Poller[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller[T]{
		name:     name,
		interval: interval,
		fetch:    fetch,
		sink:     sink,
		fallback: fallback,
		logger:   logger,
		refresh:  make(chan struct{}, 1),
	}
}

// Start refreshes immediately and then every interval until Stop or ctx is done
func (p *Poller[T]) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	done := p.done
	p.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.Refresh(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.Refresh(ctx)
			case <-p.refresh:
				p.Refresh(ctx)
			}
		}
	}()
}

// Trigger requests an out of band refresh on the polling goroutine
func (p *Poller[T]) Trigger() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// Stop halts the poller and waits for the polling goroutine
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Refresh fetches once and updates the sink
func (p *Poller[T]) Refresh(ctx context.Context) {
	value, err := p.fetch(ctx)
	if err != nil {
		p.logger.Warn("status refresh failed", zap.String("poller", p.name), zap.Error(err))
		p.mu.Lock()
		first := !p.hasLast
		p.mu.Unlock()
		if first {
			p.sink(p.fallback)
		}
		return
	}

	p.mu.Lock()
	p.hasLast = true
	p.last = value
	p.mu.Unlock()
	p.sink(value)
}

// lastValue returns the last successfully fetched value
func (p *Poller[T]) lastValue() (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last, p.hasLast
}
