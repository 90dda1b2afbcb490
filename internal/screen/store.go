package screen

import (
	"fmt"
	"sync"

	"github.com/colsched/colsched/pkg/collegeapi"
)

// EventKind names the mutation that produced an Event.
type EventKind int

const (
	EventGroupsLoading EventKind = iota
	EventGroupsLoaded
	EventGroupsFailed
	EventFilterChanged
	EventSelectionChanged
	EventScheduleLoading
	EventScheduleLoaded
	EventScheduleFailed
	// EventStaleDiscarded reports a schedule response dropped because a
	// newer fetch had been issued. The state itself is unchanged.
	EventStaleDiscarded
)

var eventNames = [...]string{
	EventGroupsLoading:    "groups_loading",
	EventGroupsLoaded:     "groups_loaded",
	EventGroupsFailed:     "groups_failed",
	EventFilterChanged:    "filter_changed",
	EventSelectionChanged: "selection_changed",
	EventScheduleLoading:  "schedule_loading",
	EventScheduleLoaded:   "schedule_loaded",
	EventScheduleFailed:   "schedule_failed",
	EventStaleDiscarded:   "stale_discarded",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return fmt.Sprintf("event(%d)", int(k))
	}
	return eventNames[k]
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is delivered to listeners after every store mutation.
type Event struct {
	Kind  EventKind `json:"kind"`
	State State     `json:"state"`
}

// Listener receives store events. Listeners run synchronously on the
// goroutine that mutated the store, outside the store lock, so they may
// read or mutate the store themselves.
type Listener func(Event)

// Store is the single owner of the screen State.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	order     []int
	nextID    int
}

// NewStore creates an idle store with no groups.
func NewStore() *Store {
	return &Store{listeners: make(map[int]Listener)}
}

// State returns a snapshot of the current state.
func (st *Store) State() State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state.clone()
}

// Subscribe registers l and returns a function removing it. Listeners
// are called in subscription order.
func (st *Store) Subscribe(l Listener) (unsubscribe func()) {
	st.mu.Lock()
	defer st.mu.Unlock()
	id := st.nextID
	st.nextID++
	st.listeners[id] = l
	st.order = append(st.order, id)
	var once sync.Once
	return func() {
		once.Do(func() {
			st.mu.Lock()
			defer st.mu.Unlock()
			delete(st.listeners, id)
			for i, v := range st.order {
				if v == id {
					st.order = append(st.order[:i], st.order[i+1:]...)
					break
				}
			}
		})
	}
}

// issueTicket supersedes every schedule fetch issued so far without
// emitting an event and returns the new ticket.
func (st *Store) issueTicket() uint64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state.ticket++
	return st.state.ticket
}

// selectedTicket is issueTicket for the selected group. It reports false,
// leaving the store untouched, when nothing is selected.
func (st *Store) selectedTicket() (uint64, collegeapi.Group, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.state.Selected == nil {
		return 0, collegeapi.Group{}, false
	}
	st.state.ticket++
	return st.state.ticket, *st.state.Selected, true
}

// update applies fn under the store lock. When fn reports a change the
// version is bumped and an Event of the given kind is delivered.
func (st *Store) update(kind EventKind, fn func(s *State) bool) (State, bool) {
	st.mu.Lock()
	if !fn(&st.state) {
		snap := st.state.clone()
		st.mu.Unlock()
		return snap, false
	}
	st.state.Version++
	snap := st.state.clone()
	listeners := make([]Listener, 0, len(st.order))
	for _, id := range st.order {
		listeners = append(listeners, st.listeners[id])
	}
	st.mu.Unlock()

	ev := Event{Kind: kind, State: snap}
	for _, l := range listeners {
		l(ev)
	}
	return snap, true
}
