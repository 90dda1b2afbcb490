package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/colsched/colsched/internal/screen"
	"github.com/colsched/colsched/pkg/logger"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"
	"github.com/gorilla/mux"
)

const (
	PathRPC       = "/jsonrpc"
	PathWebSocket = "/jsonrpc/ws"

	eventQueueSize  = 128
	shutdownTimeout = 5 * time.Second
)

// ViewModel is the screen surface served over RPC. *screen.Screen
// implements it.
type ViewModel interface {
	State() screen.State
	Subscribe(l screen.Listener) (unsubscribe func())
	SetFilterText(text string)
	SelectByName(name string) error
	Retry() error
	Refresh() error
}

// Config holds the RPC endpoint settings.
type Config struct {
	Secret    string // bearer token; empty rejects every request
	Version   string
	Commit    string
	BuildType string
	Logger    logger.Logger
}

// Server serves a ViewModel over JSON-RPC.
type Server struct {
	vm       ViewModel
	cfg      Config
	log      logger.Logger
	methods  handler.Map
	bridge   jhttp.Bridge
	notifier *RPCNotifier

	ctx         context.Context
	cancel      context.CancelFunc
	events      chan screen.Event
	pumpDone    chan struct{}
	unsubscribe func()

	mu      sync.Mutex
	httpSrv *http.Server
	closed  bool
}

// New creates a Server and subscribes it to vm's events. Call Close to
// release it.
func New(vm ViewModel, cfg *Config) *Server {
	l := cfg.Logger
	if l == nil {
		l = logger.NewNopLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		vm:       vm,
		cfg:      *cfg,
		log:      l,
		notifier: NewRPCNotifier(l),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan screen.Event, eventQueueSize),
		pumpDone: make(chan struct{}),
	}
	s.methods = s.methodMap()
	s.bridge = jhttp.NewBridge(s.methods, nil)
	go s.pump()
	s.unsubscribe = vm.Subscribe(s.enqueue)
	return s
}

// Handler returns the HTTP handler serving both RPC endpoints.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Handle(PathRPC, requireToken(s.cfg.Secret, s.log, s.bridge)).Methods(http.MethodPost)
	r.Handle(PathWebSocket, requireToken(s.cfg.Secret, s.log, http.HandlerFunc(s.serveWS))).Methods(http.MethodGet)
	return r
}

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return http.ErrServerClosed
	}
	s.httpSrv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpSrv
	s.mu.Unlock()

	s.log.Info("serving json-rpc on %s", ln.Addr())
	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Shutdown stops accepting requests, disconnects WebSocket clients and
// waits for in-flight HTTP requests up to ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	srv := s.httpSrv
	s.mu.Unlock()

	s.cancel()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Close shuts the server down and releases the bridge and the event pump.
func (s *Server) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		s.log.Warning("shutdown: %v", err)
	}
	s.unsubscribe()
	<-s.pumpDone
	s.bridge.Close()
}

// Notifier returns the broadcast set of WebSocket clients.
func (s *Server) Notifier() *RPCNotifier {
	return s.notifier
}
