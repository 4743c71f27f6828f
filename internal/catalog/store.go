package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/product"
	"storefront-be/internal/state"

	"go.uber.org/zap"
)

// DefaultDelay stands in for a network round trip.
const DefaultDelay = time.Second

type Metrics struct {
	Started      metrics.Counter
	Succeeded    metrics.Counter
	Failed       metrics.Counter
	Aborted      metrics.Counter
	LastDuration metrics.DurationGauge
}

// Store holds the product catalog and its load state machine:
// idle -> loading -> succeeded | failed.
type Store struct {
	source product.Source
	delay  time.Duration
	log    *zap.Logger
	state  *state.Store[State, action]

	mu         sync.Mutex
	generation uint64
	inFlight   bool
	cancel     context.CancelFunc
	done       chan struct{}

	Metrics Metrics
}

type Option func(*Store)

func WithDelay(d time.Duration) Option {
	return func(s *Store) {
		s.delay = d
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

func NewStore(source product.Source, opts ...Option) *Store {
	s := &Store{
		source: source,
		delay:  DefaultDelay,
		state:  state.New(initialState(), reduce, state.WithEqual[State, action](sameState)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Named("catalog")
	}
	return s
}

func (s *Store) Snapshot() state.Snapshot[State] {
	return s.state.Snapshot()
}

func (s *Store) Subscribe(l state.Listener[State]) func() {
	return s.state.Subscribe(l)
}

// Load starts loading the catalog from idle or failed and returns a channel
// closed when that attempt settles. While a load is in flight it returns
// the in-flight attempt's channel instead of starting another. Once the
// catalog has loaded, Load does nothing; use Reload to refresh it.
func (s *Store) Load(ctx context.Context) <-chan struct{} {
	return s.start(ctx, false)
}

// Reload is Load that also refreshes a succeeded catalog.
func (s *Store) Reload(ctx context.Context) <-chan struct{} {
	return s.start(ctx, true)
}

func (s *Store) start(ctx context.Context, refresh bool) <-chan struct{} {
	s.mu.Lock()
	if s.inFlight {
		done := s.done
		s.mu.Unlock()
		return done
	}
	if !refresh && s.state.Snapshot().State.Status == StatusSucceeded {
		s.mu.Unlock()
		return closedChan()
	}

	s.generation++
	gen := s.generation
	loadCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.inFlight = true
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	s.Metrics.Started.Inc()
	s.log.Debug("catalog load started", zap.Uint64("generation", gen))
	s.state.Dispatch(loadStarted{generation: gen})

	go s.run(loadCtx, gen, cancel, done)
	return done
}

// Cancel aborts the in-flight load, moving it to failed with ErrLoadAborted.
// It reports whether a load was actually aborted; a load whose result has
// already been committed is left alone.
func (s *Store) Cancel() bool {
	s.mu.Lock()
	if !s.inFlight {
		s.mu.Unlock()
		return false
	}
	gen := s.generation
	cancel := s.cancel
	s.inFlight = false
	s.cancel = nil
	s.mu.Unlock()

	aborted := s.state.Dispatch(loadFailed{generation: gen, err: ErrLoadAborted})
	if aborted {
		s.Metrics.Aborted.Inc()
		s.log.Info("catalog load cancelled", zap.Uint64("generation", gen))
	}
	cancel()
	return aborted
}

func (s *Store) run(ctx context.Context, gen uint64, cancel context.CancelFunc, done chan struct{}) {
	defer close(done)
	defer cancel()

	timer := metrics.StartTimer()
	items, err := s.fetch(ctx)
	elapsed := timer.ObserveInto(&s.Metrics.LastDuration)

	// A cancelled attempt never commits its result, even one that arrived.
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}

	if err != nil {
		err = classify(ctx, err)
		if s.state.Dispatch(loadFailed{generation: gen, err: err}) {
			if isAborted(err) {
				s.Metrics.Aborted.Inc()
			} else {
				s.Metrics.Failed.Inc()
			}
			s.log.Warn("catalog load failed",
				zap.Uint64("generation", gen),
				zap.Duration("duration", elapsed),
				zap.Error(err),
			)
		}
	} else if s.state.Dispatch(loadSucceeded{generation: gen, items: items}) {
		s.Metrics.Succeeded.Inc()
		s.log.Info("catalog loaded",
			zap.Uint64("generation", gen),
			zap.Int("count", len(items)),
			zap.Duration("duration", elapsed),
		)
	}

	s.mu.Lock()
	if s.generation == gen {
		s.inFlight = false
		s.cancel = nil
	}
	s.mu.Unlock()
}

func (s *Store) fetch(ctx context.Context) (items []product.Product, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSourcePanic, r)
		}
	}()

	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	items, err = s.source.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []product.Product{}
	}
	return items, nil
}

func closedChan() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
