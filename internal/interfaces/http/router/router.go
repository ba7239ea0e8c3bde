// Package router assembles the gin engine and mounts handler routes under a
// versioned API prefix.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/neyamat7/pos-inventory-sub000/internal/infrastructure/logger"
	"github.com/neyamat7/pos-inventory-sub000/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// EngineConfig configures the middleware chain of NewEngine
type EngineConfig struct {
	ServiceName      string
	TracingEnabled   bool
	ProfilingEnabled bool
	CORSAllowOrigins []string
	MaxBodySize      int64
}

// NewEngine creates a gin engine with the standard middleware chain:
// recovery, request ID, tracing, request logging, CORS, body limit and
// profiling labels.
func NewEngine(cfg EngineConfig, zl *zap.Logger) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		logger.Recovery(zl),
		middleware.RequestID(),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName: cfg.ServiceName,
			Enabled:     cfg.TracingEnabled,
		}),
		middleware.SpanAttributes(),
		middleware.SpanErrorMarker(),
		logger.GinMiddleware(zl),
		middleware.CORS(cfg.CORSAllowOrigins),
		middleware.BodyLimit(cfg.MaxBodySize),
	)

	profiling := middleware.DefaultProfilingConfig()
	profiling.Enabled = cfg.ProfilingEnabled
	engine.Use(middleware.Profiling(profiling))
	return engine
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds registrars to be mounted by Setup
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup mounts every registrar under /api/<version>
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}
