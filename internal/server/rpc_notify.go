package server

import (
	"context"
	"sync"

	"github.com/colsched/colsched/internal/screen"
	"github.com/colsched/colsched/pkg/logger"
	"github.com/creachadair/jrpc2"
)

// MethodStateChanged is the push notification sent for every store event.
const MethodStateChanged = "state.changed"

// StateChangedNotification carries the event kind and the state right
// after the event.
type StateChangedNotification struct {
	Event screen.EventKind `json:"event"`
	Snapshot
}

// RPCNotifier keeps the set of connected WebSocket jrpc2 servers and
// broadcasts push notifications to all of them.
type RPCNotifier struct {
	mu      sync.RWMutex
	servers map[*jrpc2.Server]struct{}
	log     logger.Logger
}

// NewRPCNotifier creates an empty notifier. A nil logger discards.
func NewRPCNotifier(l logger.Logger) *RPCNotifier {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &RPCNotifier{
		servers: make(map[*jrpc2.Server]struct{}),
		log:     l,
	}
}

func (n *RPCNotifier) Register(srv *jrpc2.Server) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.servers[srv] = struct{}{}
}

func (n *RPCNotifier) Unregister(srv *jrpc2.Server) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.servers, srv)
}

// Broadcast pushes a notification to every registered server. Servers
// that fail to take it are dropped from the set.
func (n *RPCNotifier) Broadcast(method string, params any) {
	n.mu.RLock()
	servers := make([]*jrpc2.Server, 0, len(n.servers))
	for srv := range n.servers {
		servers = append(servers, srv)
	}
	n.mu.RUnlock()

	var failed []*jrpc2.Server
	for _, srv := range servers {
		if err := srv.Notify(context.Background(), method, params); err != nil {
			n.log.Warning("push %s failed: %v", method, err)
			failed = append(failed, srv)
		}
	}
	if len(failed) == 0 {
		return
	}
	n.mu.Lock()
	for _, srv := range failed {
		delete(n.servers, srv)
	}
	n.mu.Unlock()
}

// Count returns the number of registered servers.
func (n *RPCNotifier) Count() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.servers)
}

// pump forwards queued store events to the notifier until s.ctx is
// done. Listeners run on whichever goroutine mutated the store, so
// events can be queued out of version order; an event older than one
// already pushed is skipped and clients see versions strictly increase.
func (s *Server) pump() {
	defer close(s.pumpDone)
	var last uint64
	for {
		select {
		case <-s.ctx.Done():
			return
		case ev := <-s.events:
			if ev.State.Version <= last {
				s.log.Debug("skipping %s notification: version %d already superseded by %d", ev.Kind, ev.State.Version, last)
				continue
			}
			last = ev.State.Version
			s.notifier.Broadcast(MethodStateChanged, &StateChangedNotification{
				Event:    ev.Kind,
				Snapshot: newSnapshot(ev.State),
			})
		}
	}
}

// enqueue is the store listener. It never blocks the fetching goroutine;
// when the queue is full the event is dropped, which is harmless since
// every notification carries the whole state.
func (s *Server) enqueue(ev screen.Event) {
	select {
	case s.events <- ev:
	default:
		s.log.Warning("notification queue full, dropping %s (version %d)", ev.Kind, ev.State.Version)
	}
}
