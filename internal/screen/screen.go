package screen

import (
	"context"
	"sync"
	"time"

	"github.com/colsched/colsched/pkg/collegeapi"
	"github.com/colsched/colsched/pkg/logger"
)

type config struct {
	log          logger.Logger
	defaultGroup string
	requested    string
	timeout      time.Duration
}

// Option configures a Screen.
type Option func(*config)

// WithLogger sets the logger used by the loader.
func WithLogger(l logger.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithDefaultGroup overrides DefaultGroupName.
func WithDefaultGroup(name string) Option {
	return func(c *config) { c.defaultGroup = name }
}

// WithRequestedGroup makes the initial selection prefer name over the
// default group. An absent name falls back to the default group rule.
func WithRequestedGroup(name string) Option {
	return func(c *config) { c.requested = name }
}

// WithFetchTimeout bounds every fetch. Zero, the default, means no timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// Screen runs the schedule browsing workflow against a Source.
type Screen struct {
	*Selector
	Loader *Loader

	store       *Store
	log         logger.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	unsubscribe func()
}

// New creates a Screen. Nothing is fetched until Start is called.
func New(src collegeapi.Source, opts ...Option) *Screen {
	cfg := &config{log: logger.NewNopLogger()}
	for _, o := range opts {
		o(cfg)
	}
	store := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	s := &Screen{
		Selector: NewSelector(store),
		Loader:   NewLoader(store, src, cfg.log, cfg.defaultGroup, cfg.timeout),
		store:    store,
		log:      cfg.log,
		ctx:      ctx,
		cancel:   cancel,
	}
	s.Loader.requested = cfg.requested
	s.unsubscribe = store.Subscribe(s.onEvent)
	return s
}

// onEvent starts a schedule fetch whenever the selected group changes.
func (s *Screen) onEvent(ev Event) {
	if ev.Kind != EventSelectionChanged || ev.State.Selected == nil {
		return
	}
	group, ticket := *ev.State.Selected, ev.State.ticket
	s.log.Debug("selection changed to %s", group.GroupName)
	s.launch(func(ctx context.Context) {
		_ = s.Loader.loadSchedule(ctx, ticket, group)
	})
}

func (s *Screen) launch(fn func(ctx context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
}

// Start fetches the group list in the background.
func (s *Screen) Start() {
	s.launch(func(ctx context.Context) {
		_ = s.Loader.LoadGroups(ctx)
	})
}

// Retry re-fetches the selected group's schedule in the background.
func (s *Screen) Retry() error {
	ticket, group, err := s.Loader.beginRetry()
	if err != nil {
		return err
	}
	s.launch(func(ctx context.Context) {
		_ = s.Loader.fetchSchedule(ctx, ticket, group, "")
	})
	return nil
}

// Refresh re-fetches the selected group's schedule in the background the
// same way a selection change does. Unlike Retry, the error is cleared
// when the fetch starts.
func (s *Screen) Refresh() error {
	ticket, group, ok := s.store.selectedTicket()
	if !ok {
		return ErrNoSelection
	}
	s.launch(func(ctx context.Context) {
		_ = s.Loader.loadSchedule(ctx, ticket, group)
	})
	return nil
}

// Wait blocks until every fetch started so far, and every fetch those
// fetches triggered, has settled.
func (s *Screen) Wait() {
	s.wg.Wait()
}

// State returns a snapshot of the current state.
func (s *Screen) State() State {
	return s.store.State()
}

// Subscribe registers a listener for store events.
func (s *Screen) Subscribe(l Listener) (unsubscribe func()) {
	return s.store.Subscribe(l)
}

// Close stops reacting to selection changes, cancels fetches in flight
// and waits for them to return.
func (s *Screen) Close() {
	s.unsubscribe()
	s.cancel()
	s.wg.Wait()
}
