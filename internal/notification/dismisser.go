package notification

import (
	"sync"
	"time"
)

// Timer is the part of *time.Timer the dismisser needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type pending struct {
	timer   Timer
	exiting bool
}

// Dismisser removes notifications from a Store once they expire: after the
// notification's duration it enters the exit phase, and ExitGrace later it
// is removed. Dismiss skips straight to the exit phase.
type Dismisser struct {
	store     *Store
	afterFunc AfterFunc
	grace     time.Duration

	mu      sync.Mutex
	pending map[string]*pending
}

type DismisserOption func(*Dismisser)

func WithAfterFunc(f AfterFunc) DismisserOption {
	return func(d *Dismisser) {
		d.afterFunc = f
	}
}

func WithGrace(grace time.Duration) DismisserOption {
	return func(d *Dismisser) {
		d.grace = grace
	}
}

func NewDismisser(store *Store, opts ...DismisserOption) *Dismisser {
	d := &Dismisser{
		store:     store,
		afterFunc: realAfterFunc,
		grace:     ExitGrace,
		pending:   make(map[string]*pending),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Schedule arms the expiry timer for n. Scheduling an id again restarts it.
func (d *Dismisser) Schedule(n Notification) {
	n = withDefaults(n)

	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[n.ID]; ok {
		p.timer.Stop()
	}
	d.pending[n.ID] = &pending{
		timer: d.afterFunc(n.Duration, func() { d.Dismiss(n.ID) }),
	}
}

// Dismiss starts the exit phase for id. Calling it again, or for an id that
// is already gone, does nothing beyond ensuring removal.
func (d *Dismisser) Dismiss(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.pending[id]
	if ok && p.exiting {
		return
	}
	if ok {
		p.timer.Stop()
	} else {
		p = &pending{}
		d.pending[id] = p
	}
	p.exiting = true
	p.timer = d.afterFunc(d.grace, func() { d.remove(id, p) })
}

// Exiting reports whether id is in its exit phase.
func (d *Dismisser) Exiting(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.pending[id]
	return ok && p.exiting
}

// Pending returns the number of notifications with a live timer.
func (d *Dismisser) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Stop cancels every timer. Entries already in the store stay there.
func (d *Dismisser) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for id, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, id)
	}
}

func (d *Dismisser) remove(id string, p *pending) {
	d.mu.Lock()
	if d.pending[id] == p {
		delete(d.pending, id)
	}
	d.mu.Unlock()

	d.store.Remove(id)
}
