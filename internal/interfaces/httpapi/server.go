// Package httpapi exposes the FNOL service over REST under /api.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fnoldesk/internal/domain/claims"
	"fnoldesk/internal/domain/docs"
	"fnoldesk/internal/domain/quality"
	"fnoldesk/internal/usecase/fnol"
)

const readHeaderTimeout = 10 * time.Second

// Service is the usecase surface the handlers call; *fnol.Service implements it.
type Service interface {
	ListClaims(ctx context.Context) ([]claims.Claim, error)
	CreateClaim(ctx context.Context, input fnol.CreateClaimInput) (claims.Claim, error)
	KPIMetrics(ctx context.Context) (claims.KPIMetrics, error)
	TrendAnalysis(ctx context.Context) (claims.TrendAnalysis, error)
	ListTestScripts(ctx context.Context) ([]quality.TestScript, error)
	UpdateTestScript(ctx context.Context, input fnol.UpdateTestScriptInput) error
	ListDefects(ctx context.Context) ([]quality.Defect, error)
	CreateDefect(ctx context.Context, input fnol.CreateDefectInput) (quality.Defect, error)
	UpdateDefectStatus(ctx context.Context, defectID string, status string) error
	ListRisks(ctx context.Context) ([]quality.Risk, error)
	BusinessRequirements(ctx context.Context) (docs.BusinessRequirements, error)
	UseCases(ctx context.Context) (docs.UseCaseList, error)
}

var _ Service = (*fnol.Service)(nil)

type Options struct {
	// CORSOrigins lists allowed origins; "*" allows any origin and echoes it back.
	CORSOrigins []string
	Logger      *slog.Logger
	Metrics     *Metrics
}

type Server struct {
	svc     Service
	metrics *Metrics
	engine  *gin.Engine
}

func NewServer(svc Service, opts Options) *Server {
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}

	engine := gin.New()
	engine.Use(
		requestContext(opts.Logger),
		accessLog(metrics),
		recovery(),
		cors.New(corsConfig(opts.CORSOrigins)),
	)

	s := &Server{
		svc:     svc,
		metrics: metrics,
		engine:  engine,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})
	s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := s.engine.Group("/api")
	{
		api.GET("/", s.handleRoot)

		api.GET("/claims", s.handleListClaims)
		api.POST("/claims", s.handleCreateClaim)
		api.GET("/claims/trend-analysis", s.handleTrendAnalysis)
		api.GET("/kpi-metrics", s.handleKPIMetrics)

		api.GET("/test-scripts", s.handleListTestScripts)
		api.PUT("/test-scripts/:script_id", s.handleUpdateTestScript)

		api.GET("/defects", s.handleListDefects)
		api.POST("/defects", s.handleCreateDefect)
		api.PUT("/defects/:defect_id/status", s.handleUpdateDefectStatus)

		api.GET("/risks", s.handleListRisks)

		api.GET("/brd", s.handleBRD)
		api.GET("/use-cases", s.handleUseCases)
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// HTTPServer wraps the handler in an *http.Server listening on addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	allowed := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			cfg.AllowOriginFunc = func(string) bool { return true }
			return cfg
		}
		allowed = append(allowed, origin)
	}
	if len(allowed) == 0 {
		cfg.AllowOriginFunc = func(string) bool { return true }
		return cfg
	}
	cfg.AllowOrigins = allowed
	return cfg
}
