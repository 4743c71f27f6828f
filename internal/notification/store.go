package notification

import (
	"slices"

	"storefront-be/internal/state"
)

type State struct {
	Items []Notification `json:"items"`
}

type Action interface {
	notificationAction()
}

// Add appends to the tail of the queue. Ids are not deduplicated.
type Add struct{ Notification Notification }

// Remove drops every entry with ID; unknown ids are ignored.
type Remove struct{ ID string }

func (Add) notificationAction()    {}
func (Remove) notificationAction() {}

func Reduce(prev State, a Action) State {
	switch a := a.(type) {
	case Add:
		items := slices.Clone(prev.Items)
		return State{Items: append(items, withDefaults(a.Notification))}
	case Remove:
		if !slices.ContainsFunc(prev.Items, func(n Notification) bool { return n.ID == a.ID }) {
			return prev
		}
		return State{Items: slices.DeleteFunc(slices.Clone(prev.Items), func(n Notification) bool {
			return n.ID == a.ID
		})}
	}
	return prev
}

func sameState(a, b State) bool {
	if len(a.Items) != len(b.Items) {
		return false
	}
	return len(a.Items) == 0 || &a.Items[0] == &b.Items[0]
}

// Store is the transient notification queue. It owns no timers; see
// Dismisser for timed removal.
type Store struct {
	state *state.Store[State, Action]
}

func NewStore() *Store {
	return &Store{
		state: state.New(State{Items: []Notification{}}, Reduce,
			state.WithEqual[State, Action](sameState)),
	}
}

func (s *Store) Snapshot() state.Snapshot[State] {
	return s.state.Snapshot()
}

func (s *Store) Subscribe(l state.Listener[State]) func() {
	return s.state.Subscribe(l)
}

func (s *Store) Add(n Notification) {
	s.state.Dispatch(Add{Notification: n})
}

func (s *Store) Remove(id string) {
	s.state.Dispatch(Remove{ID: id})
}
