package tourstub

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

const (
	// ProtocolVersion identifies the stub contract version exposed via /health.
	ProtocolVersion = "1.0.0"
	// TourPath is the tour generation route. The route without the trailing
	// slash is served too.
	TourPath = "/tour/"
	// TraceHeader carries the request trace id. Incoming values are echoed back.
	TraceHeader = "X-Trace-ID"

	traceKey = "trace_id"
)

// ServerStatus reports runtime lifecycle states for the HTTP server.
type ServerStatus string

const (
	StatusStarting ServerStatus = "starting"
	StatusReady    ServerStatus = "ready"
	StatusDraining ServerStatus = "draining"
)

// Logger records stub status information. It matches logging.Logger's signature.
type Logger interface {
	Printf(format string, args ...any)
}

// Server is a local stand-in for the tour generation service.
type Server struct {
	settings Settings
	places   []Place
	logger   Logger
	clock    func() time.Time
	engine   *gin.Engine

	served   atomic.Int64
	rejected atomic.Int64

	mu        sync.RWMutex
	server    *http.Server
	listener  net.Listener
	status    ServerStatus
	startTime time.Time
}

// Option customizes server construction.
type Option func(*Server)

// WithLogger overrides the default no-op logger. Request lines from gin are
// routed to the same logger.
func WithLogger(l Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPlaces replaces the canned itinerary. An empty slice makes the stub
// answer with zero locations.
func WithPlaces(places []Place) Option {
	return func(s *Server) {
		if places != nil {
			s.places = append([]Place(nil), places...)
		}
	}
}

// WithLatency delays every tour response by d.
func WithLatency(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.settings.Latency = d
		}
	}
}

// WithClock allows tests to control timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Server) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewServer prepares a stub server using the provided settings.
func NewServer(settings Settings, opts ...Option) *Server {
	settings.normalize()
	s := &Server{
		settings: settings,
		places:   CharlestonPlaces(),
		logger:   nopLogger{},
		clock:    func() time.Time { return time.Now().UTC() },
		status:   StatusStarting,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.engine = s.routes()
	return s
}

// Handler exposes the router for in-process use such as httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.LoggerWithWriter(logWriter{s.logger}), gin.Recovery(), traceID())
	engine.GET("/health", s.handleHealth)
	engine.HEAD("/health", s.handleHealth)
	engine.POST(TourPath, s.handleTour)
	engine.POST(strings.TrimSuffix(TourPath, "/"), s.handleTour)
	return engine
}

// Start binds the TCP listener and begins serving HTTP traffic.
func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("tourstub: server is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return fmt.Errorf("tourstub: server already started")
	}
	addr := s.settings.Address()
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("tourstub: listen %s: %w", addr, err)
	}
	s.listener = listener
	s.startTime = s.clock()
	server := &http.Server{
		Handler:      s.engine,
		ReadTimeout:  s.settings.ReadTimeout,
		WriteTimeout: s.settings.WriteTimeout,
		IdleTimeout:  s.settings.IdleTimeout,
	}
	if ctx != nil {
		server.BaseContext = func(net.Listener) context.Context { return ctx }
	}
	s.server = server
	s.status = StatusReady
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Printf("tourstub: serve error: %v", err)
		}
	}()
	s.logger.Printf("tourstub: listening on %s", listener.Addr().String())
	return nil
}

// Shutdown stops accepting new connections and waits for in-flight requests to exit.
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil || s.server == nil {
		return nil
	}
	s.status = StatusDraining
	deadline := ctx
	if deadline == nil {
		var cancel context.CancelFunc
		deadline, cancel = context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
	}
	if err := s.server.Shutdown(deadline); err != nil {
		return err
	}
	s.listener = nil
	s.server = nil
	s.logger.Printf("tourstub: stopped after %d served, %d rejected", s.served.Load(), s.rejected.Load())
	return nil
}

// Addr returns the bound TCP address once the server has started.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// BaseURL returns the HTTP base URL (scheme + host:port) for the running server.
func (s *Server) BaseURL() string {
	addr := s.Addr()
	if addr == "" {
		return s.settings.URL()
	}
	return "http://" + addr
}

// TourURL returns the tour endpoint of the running server.
func (s *Server) TourURL() string {
	return s.BaseURL() + TourPath
}

// Status reports the server's lifecycle state.
func (s *Server) Status() ServerStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Served returns how many tours have been generated.
func (s *Server) Served() int64 { return s.served.Load() }

// Rejected returns how many requests were answered with a detail list.
func (s *Server) Rejected() int64 { return s.rejected.Load() }

func (s *Server) uptimeSeconds() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.startTime.IsZero() {
		return 0
	}
	return int64(s.clock().Sub(s.startTime).Seconds())
}

type healthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	Served        int64  `json:"served"`
	Rejected      int64  `json:"rejected"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:        string(s.Status()),
		Version:       ProtocolVersion,
		Served:        s.served.Load(),
		Rejected:      s.rejected.Load(),
		UptimeSeconds: s.uptimeSeconds(),
	})
}

func (s *Server) handleTour(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.settings.MaxBodyBytes)
	if err := c.Request.ParseForm(); err != nil {
		s.reject(c, []issue{{Loc: []string{"body"}, Msg: "invalid form body", Type: "value_error.form"}})
		return
	}
	form, issues := parseTourForm(c.Request.PostForm)
	if len(issues) > 0 {
		s.reject(c, issues)
		return
	}
	if !s.wait(c.Request.Context()) {
		return
	}
	resp := buildTour(form, s.places)
	s.served.Inc()
	s.logger.Printf("tourstub: [%s] tour %q with %d stop(s)", c.GetString(traceKey), resp.TourName, len(resp.Locations))
	c.JSON(http.StatusOK, resp)
}

func (s *Server) reject(c *gin.Context, issues []issue) {
	s.rejected.Inc()
	s.logger.Printf("tourstub: [%s] rejected: %s", c.GetString(traceKey), summarize(issues))
	c.JSON(http.StatusUnprocessableEntity, detailResponse{Detail: issues})
}

// wait blocks for the configured latency. It reports false if the client
// went away first.
func (s *Server) wait(ctx context.Context) bool {
	if s.settings.Latency <= 0 {
		return true
	}
	timer := time.NewTimer(s.settings.Latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func traceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(TraceHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(traceKey, id)
		c.Header(TraceHeader, id)
		c.Next()
	}
}

// logWriter adapts a Logger into the io.Writer gin's request logger expects.
type logWriter struct {
	logger Logger
}

func (w logWriter) Write(p []byte) (int, error) {
	w.logger.Printf("%s", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}
