package state

import (
	"slices"
	"sync"
)

// Reducer computes the next state from the current state and an action.
// It must not mutate prev.
type Reducer[S any, A any] func(prev S, action A) S

// Snapshot is an immutable view of a store at a given version.
type Snapshot[S any] struct {
	State   S
	Version uint64
}

// Listener is called after a change is committed. A listener must not
// dispatch to the store it is subscribed to.
type Listener[S any] func(Snapshot[S])

// Store is a single-writer, many-reader state container.
type Store[S any, A any] struct {
	mu        sync.Mutex
	notifyMu  sync.Mutex
	current   S
	version   uint64
	reduce    Reducer[S, A]
	equal     func(a, b S) bool
	listeners map[uint64]Listener[S]
	nextID    uint64
}

type Option[S any, A any] func(*Store[S, A])

// WithEqual makes Dispatch skip commits that produce an equal state,
// so the version only moves when something actually changed.
func WithEqual[S any, A any](equal func(a, b S) bool) Option[S, A] {
	return func(s *Store[S, A]) {
		s.equal = equal
	}
}

func New[S any, A any](initial S, reduce Reducer[S, A], opts ...Option[S, A]) *Store[S, A] {
	s := &Store[S, A]{
		current:   initial,
		reduce:    reduce,
		listeners: make(map[uint64]Listener[S]),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch applies action and reports whether a new state was committed.
func (s *Store[S, A]) Dispatch(action A) bool {
	// notifyMu keeps listener calls in commit order without holding mu,
	// so listeners are free to read Snapshot.
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	next := s.reduce(s.current, action)
	if s.equal != nil && s.equal(s.current, next) {
		s.mu.Unlock()
		return false
	}
	s.current = next
	s.version++
	snap := Snapshot[S]{State: s.current, Version: s.version}
	listeners := make([]Listener[S], 0, len(s.listeners))
	for _, id := range s.sortedIDs() {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
	return true
}

func (s *Store[S, A]) Snapshot() Snapshot[S] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot[S]{State: s.current, Version: s.version}
}

// Subscribe registers l and returns a function that removes it.
// Listeners run in subscription order.
func (s *Store[S, A]) Subscribe(l Listener[S]) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store[S, A]) sortedIDs() []uint64 {
	ids := make([]uint64, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
