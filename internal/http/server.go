package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"presupuesto/internal/analytics"
	"presupuesto/internal/backend"
	applog "presupuesto/internal/log"
	"presupuesto/internal/middleware/ratelimit"
	"presupuesto/internal/middleware/security"
	"presupuesto/internal/middleware/trace"
	"presupuesto/internal/services"
)

// HeaderUserID carries the caller's numeric user id. Authentication happens
// upstream; this service trusts the header.
const HeaderUserID = "X-User-ID"

const readyTimeout = 5 * time.Second

// Dependencies are the collaborators the handlers call.
type Dependencies struct {
	Engine  *analytics.Engine
	Exports *services.ExportService
	// Store is pinged by the readiness probe; nil reports ready.
	Store  backend.Store
	Logger *applog.Logger
}

// Options tunes the middleware chain.
type Options struct {
	CORSAllowedOrigins []string
	// RateLimitPerMinute of 0 disables throttling.
	RateLimitPerMinute int
	TrustedProxies     []string
}

type Server struct {
	*http.Server

	engine  *analytics.Engine
	exports *services.ExportService
	store   backend.Store
	logger  *applog.Logger

	guard           *security.Guard
	traceMiddleware *trace.Middleware
	rateLimiter     *ratelimit.Limiter
	startedAt       time.Time
}

// NewServer builds the API server. The handler accepts HTTP/1.1 and
// cleartext HTTP/2.
func NewServer(addr string, deps Dependencies, opts Options) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP)
	}
	exports := deps.Exports
	if exports == nil {
		exports = services.NewExportService(nil, nil)
	}

	s := &Server{
		engine:    deps.Engine,
		exports:   exports,
		store:     deps.Store,
		logger:    logger,
		guard:     security.NewGuard(security.DefaultGuardConfig()),
		startedAt: time.Now(),
	}
	for _, cidr := range opts.TrustedProxies {
		if err := s.guard.AddTrustedProxy(cidr); err != nil {
			logger.Warn("Ignoring invalid trusted proxy", "cidr", cidr, applog.FieldError, err)
		}
	}
	s.traceMiddleware = trace.NewMiddleware(s.guard.ExtractClientIP)
	if opts.RateLimitPerMinute > 0 {
		s.rateLimiter = ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerWindow: opts.RateLimitPerMinute,
			Window:            time.Minute,
		})
	}

	s.Server = &http.Server{
		Addr:              addr,
		Handler:           h2c.NewHandler(s.routes(opts), &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(applog.Middleware(s.logger))
	r.Use(s.traceMiddleware.Middleware)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)
	r.Use(s.guard.Middleware(func(w http.ResponseWriter, r *http.Request, _ security.Reason) {
		ForbiddenError("request rejected").Write(w)
	}))
	r.Use(corsHandler(opts.CORSAllowedOrigins).Handler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NotFoundError("route not found").Write(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		MethodNotAllowedError("method not allowed").Write(w)
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", s.handleMetrics)

	r.Route("/api", func(r chi.Router) {
		if s.rateLimiter != nil {
			r.Use(s.rateLimiter.Middleware(s.rateLimitKey, func(w http.ResponseWriter, r *http.Request) {
				ErrorResponse(http.StatusTooManyRequests, CodeRateLimited, "rate limit exceeded, please try again later").Write(w)
			}))
		}
		r.Use(requireUser)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/dashboard", s.handleDashboard)
			r.Get("/charts", s.handleCharts)
			r.Get("/trends", s.handleTrends)
			r.Get("/predictions", s.handlePredictions)
			r.Get("/compare", s.handleCompare)
		})
		r.Route("/exports", func(r chi.Router) {
			r.Get("/data", s.handleExportData)
			r.Get("/csv", s.handleExportCSV)
			r.Get("/excel", s.handleExportExcel)
			r.Post("/sheets", s.handleExportSheets)
		})
	})

	return r
}

func corsHandler(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			HeaderUserID,
			trace.HeaderRequestID,
		},
		ExposedHeaders: []string{
			"Content-Disposition",
			"Retry-After",
			trace.HeaderRequestID,
		},
	})
}

// rateLimitKey throttles per client address. X-User-ID is caller supplied
// and would hand out a fresh budget per header value.
func (s *Server) rateLimitKey(r *http.Request) string {
	return "ip:" + s.guard.ExtractClientIP(r)
}

// Shutdown stops background workers and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	return s.Server.Shutdown(ctx)
}
