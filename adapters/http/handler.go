// Package http provides the HTTP handlers for the gateway.
package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/medplant/plantgate/adapters/metrics"
	_ "github.com/medplant/plantgate/docs/swagger" // swagger docs
	"github.com/medplant/plantgate/domain/session"
	"github.com/medplant/plantgate/ports"
)

// Version is set at build time via ldflags.
var Version = "dev"

// CookieConfig describes the session cookie the gateway issues.
type CookieConfig struct {
	Name     string
	MaxAge   time.Duration
	Secure   bool
	SameSite http.SameSite
}

// Handler provides the gateway endpoints.
type Handler struct {
	upstream ports.Upstream
	cookie   CookieConfig
	logger   zerolog.Logger
	metrics  *metrics.Collector
}

// Deps contains dependencies for the gateway handler.
type Deps struct {
	Upstream ports.Upstream
	Cookie   CookieConfig
	Logger   zerolog.Logger
	Metrics  *metrics.Collector
}

// NewHandler creates a new gateway handler.
func NewHandler(deps Deps) *Handler {
	cookie := deps.Cookie
	if cookie.Name == "" {
		cookie.Name = session.CookieName
	}
	if cookie.MaxAge == 0 {
		cookie.MaxAge = session.DefaultMaxAge
	}
	if cookie.SameSite == 0 {
		cookie.SameSite = http.SameSiteLaxMode
	}

	return &Handler{
		upstream: deps.Upstream,
		cookie:   cookie,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
	}
}

// RouterConfig holds optional configuration for the router.
type RouterConfig struct {
	Metrics       *metrics.Collector
	MetricsPath   string
	EnableOpenAPI bool
}

// NewRouter creates the main HTTP router.
func NewRouter(h *Handler, logger zerolog.Logger, cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(90 * time.Second))

	if cfg.Metrics != nil {
		r.Use(NewMetricsMiddleware(cfg.Metrics))

		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, promhttp.Handler())
	}

	// Health endpoints (no auth required)
	r.Get("/health", h.Liveness)
	r.Get("/health/live", h.Liveness)
	r.Get("/health/ready", h.Readiness)

	// OpenAPI/Swagger endpoints (if enabled)
	if cfg.EnableOpenAPI {
		r.Get("/.well-known/openapi.json", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			http.ServeFile(w, r, "docs/swagger/swagger.json")
		})
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/.well-known/openapi.json"),
		))
	}

	r.Get("/version", h.VersionInfo)

	// Gateway API
	r.Route("/api", func(r chi.Router) {
		// Public auth operations. Logout tolerates a missing session:
		// it clears the cookie either way.
		r.Post("/auth/login", h.Login)
		r.Post("/auth/signup", h.Signup)
		r.Post("/auth/logout", h.Logout)

		// Protected operations
		r.Group(func(r chi.Router) {
			r.Use(h.RequireSession)

			r.Get("/auth/validate", h.ValidateSession)

			r.Post("/identify", h.Identify)

			r.Get("/plants", h.SavedPlants)
			r.Get("/plants/{scientificName}", h.PlantDetails)

			r.Get("/user/identifications", h.Identifications)
			r.Delete("/user/identifications/{id}", h.DeleteIdentification)
			r.Post("/user/identifications/{id}/favorite", h.ToggleFavorite)

			r.Get("/user/stats", h.UserStats)
			r.Get("/user/progress", h.UserProgress)
			r.Get("/user/plant_of_the_day", h.PlantOfTheDay)
			r.Get("/user/activity_feed", h.ActivityFeed)
		})
	})

	return r
}

// Liveness handles liveness checks.
//
//	@Summary	Liveness probe
//	@Tags		Health
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/health [get]
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness handles readiness checks by probing the upstream.
//
//	@Summary	Readiness probe
//	@Tags		Health
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Failure	503	{object}	map[string]string
//	@Router		/health/ready [get]
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	if err := h.upstream.HealthCheck(r.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("upstream not reachable")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "upstream unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// VersionInfo returns the service version.
func (h *Handler) VersionInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "plantgate",
		"version": Version,
	})
}

// NewLoggingMiddleware creates a middleware that logs HTTP requests.
func NewLoggingMiddleware(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			// Skip logging for health checks and metrics
			if strings.HasPrefix(r.URL.Path, "/health") || r.URL.Path == "/metrics" {
				return
			}

			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("http request")
		})
	}
}

// NewMetricsMiddleware creates a middleware that records request metrics.
// The chi route pattern is the path label so cardinality stays bounded.
func NewMetricsMiddleware(m *metrics.Collector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.RequestsInFlight.Inc()
			defer m.RequestsInFlight.Dec()

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = "unmatched"
			}
			status := strconv.Itoa(ww.Status())

			m.RequestsTotal.WithLabelValues(r.Method, pattern, status).Inc()
			m.RequestDuration.WithLabelValues(r.Method, pattern, status).Observe(time.Since(start).Seconds())
		})
	}
}
