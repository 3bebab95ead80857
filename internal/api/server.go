// Package api exposes the planner operations over HTTP for callers that do
// not run a Zeebe process, plus the health, readiness and metrics endpoints.
package api

import (
	"context"
	"net/http"

	"travel-planner-workers/internal/common/logger"
	"travel-planner-workers/internal/common/observability"
	allocatebudget "travel-planner-workers/internal/workers/travel/allocate-budget"
	builditinerary "travel-planner-workers/internal/workers/travel/build-itinerary"
	classifytravelintent "travel-planner-workers/internal/workers/travel/classify-travel-intent"
	composetravelplan "travel-planner-workers/internal/workers/travel/compose-travel-plan"
	estimatehotelcost "travel-planner-workers/internal/workers/travel/estimate-hotel-cost"
	estimatetransportcost "travel-planner-workers/internal/workers/travel/estimate-transport-cost"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers are the task handlers the HTTP routes delegate to. The same
// instances serve Zeebe jobs, so both paths share caches and validation.
type Handlers struct {
	Intent    *classifytravelintent.Handler
	Hotel     *estimatehotelcost.Handler
	Transport *estimatetransportcost.Handler
	Budget    *allocatebudget.Handler
	Itinerary *builditinerary.Handler
	Compose   *composetravelplan.Handler
}

// CheckFunc reports whether a dependency is ready.
type CheckFunc func(ctx context.Context) error

type Options struct {
	AppName        string
	AppVersion     string
	AllowedOrigins []string
	// ReadinessChecks run on GET /ready; any error makes the service unready.
	ReadinessChecks map[string]CheckFunc
}

type Server struct {
	handlers Handlers
	opts     Options
	obs      *observability.Observability
	logger   logger.Logger
}

func NewServer(handlers Handlers, opts Options, obs *observability.Observability, log logger.Logger) *Server {
	return &Server{
		handlers: handlers,
		opts:     opts,
		obs:      obs,
		logger:   log.WithFields(map[string]interface{}{"component": "http"}),
	}
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(s.corsConfig()))
	r.Use(requestID())
	r.Use(instrument(s.obs, s.logger))

	r.GET("/health", s.health)
	r.GET("/ready", s.ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	v1.POST("/intent", s.classify)
	v1.POST("/estimates/hotel", s.estimateHotel)
	v1.POST("/estimates/transport", s.estimateTransport)
	v1.POST("/budget/allocate", s.allocateBudget)
	v1.POST("/itinerary", s.buildItinerary)
	v1.POST("/plan", s.plan)

	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cfg.AllowHeaders = []string{"Content-Type", "Authorization", requestIDHeader}
	cfg.ExposeHeaders = []string{requestIDHeader}

	allowAll := len(s.opts.AllowedOrigins) == 0
	for _, origin := range s.opts.AllowedOrigins {
		if origin == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.opts.AllowedOrigins
	}
	return cfg
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": s.opts.AppName,
		"version": s.opts.AppVersion,
	})
}

func (s *Server) ready(c *gin.Context) {
	checks := gin.H{}
	ready := true
	for name, check := range s.opts.ReadinessChecks {
		if err := check(c.Request.Context()); err != nil {
			ready = false
			checks[name] = err.Error()
			continue
		}
		checks[name] = "ok"
	}

	status := http.StatusOK
	state := "ready"
	if !ready {
		status = http.StatusServiceUnavailable
		state = "not ready"
	}
	c.JSON(status, gin.H{"status": state, "checks": checks})
}
