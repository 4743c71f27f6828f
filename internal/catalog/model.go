package catalog

import "storefront-be/internal/product"

type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// State is the catalog load state. Items is shared between snapshots and
// must be treated as read-only.
type State struct {
	Status     Status            `json:"status"`
	Items      []product.Product `json:"items"`
	Error      string            `json:"error,omitempty"`
	Err        error             `json:"-"`
	Generation uint64            `json:"generation"`
}

func initialState() State {
	return State{Status: StatusIdle, Items: []product.Product{}}
}

// Product returns the loaded product with the given id.
func (s State) Product(id int) (product.Product, bool) {
	for _, p := range s.Items {
		if p.ID == id {
			return p, true
		}
	}
	return product.Product{}, false
}

// Aborted reports whether the last load was cancelled.
func (s State) Aborted() bool {
	return s.Status == StatusFailed && isAborted(s.Err)
}

type action interface {
	catalogAction()
}

type loadStarted struct {
	generation uint64
}

type loadSucceeded struct {
	generation uint64
	items      []product.Product
}

type loadFailed struct {
	generation uint64
	err        error
}

func (loadStarted) catalogAction()   {}
func (loadSucceeded) catalogAction() {}
func (loadFailed) catalogAction()    {}

func reduce(prev State, a action) State {
	switch a := a.(type) {
	case loadStarted:
		next := prev
		next.Status = StatusLoading
		next.Generation = a.generation
		next.Error = ""
		next.Err = nil
		return next

	case loadSucceeded:
		if !prev.awaiting(a.generation) {
			return prev
		}
		return State{
			Status:     StatusSucceeded,
			Items:      a.items,
			Generation: a.generation,
		}

	case loadFailed:
		if !prev.awaiting(a.generation) {
			return prev
		}
		next := prev
		next.Status = StatusFailed
		next.Err = a.err
		next.Error = failureMessage(a.err)
		return next
	}
	return prev
}

// awaiting reports whether a result for generation may still be applied.
func (s State) awaiting(generation uint64) bool {
	return s.Status == StatusLoading && s.Generation == generation
}

func sameState(a, b State) bool {
	return a.Status == b.Status &&
		a.Generation == b.Generation &&
		a.Error == b.Error &&
		sameItems(a.Items, b.Items)
}

func sameItems(a, b []product.Product) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
