package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
)

const (
	// DefaultRequestTimeout bounds a request when Config.RequestTimeout is zero.
	DefaultRequestTimeout = 60 * time.Second
	// DefaultMaxRequestBytes caps a request body when Config.MaxRequestBytes
	// is zero. Uploaded source files arrive in one multipart body.
	DefaultMaxRequestBytes = 32 << 20
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
	// RequestTimeout bounds each request. Generation requests wait on the
	// completion endpoint, so this must exceed the endpoint timeout.
	RequestTimeout time.Duration
	// MaxRequestBytes caps request bodies. Larger bodies fail with 413.
	MaxRequestBytes int64
	// Sessions reports the live session count for /healthz. Optional.
	Sessions func() int
}

// Server hosts the web surface. Feature packages mount their routes on
// Router.
type Server struct {
	cfg        Config
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with the shared middleware and health check.
func New(cfg Config) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.MaxRequestBytes <= 0 {
		cfg.MaxRequestBytes = DefaultMaxRequestBytes
	}
	s := &Server{cfg: cfg}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)
	r.Use(exceptUpgrades(
		middleware.RequestSize(s.cfg.MaxRequestBytes),
		rejectOversized(s.cfg.MaxRequestBytes),
		middleware.Timeout(s.cfg.RequestTimeout),
	))

	// Browsers load the page from the server itself; other origins only
	// in dev mode. PUT carries script uploads.
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", s.handleHealth)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{"status": "ok"}
	if s.cfg.Sessions != nil {
		body["sessions"] = s.cfg.Sessions()
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

// exceptUpgrades applies mws to every request but websocket handshakes.
// Event streams outlive any request timeout and carry no body.
func exceptUpgrades(mws ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limited := next
		for i := len(mws) - 1; i >= 0; i-- {
			limited = mws[i](limited)
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if websocket.IsWebSocketUpgrade(r) {
				next.ServeHTTP(w, r)
				return
			}
			limited.ServeHTTP(w, r)
		})
	}
}

// rejectOversized answers 413 up front when the declared length is over
// limit. Bodies without a length are still cut off by RequestSize.
func rejectOversized(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				http.Error(w, fmt.Sprintf("request body exceeds %d bytes", limit), http.StatusRequestEntityTooLarge)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		// Slide generation can hold a response open for the whole
		// request timeout.
		WriteTimeout: s.cfg.RequestTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("slideai: listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
