// Package server exposes the answer-evaluation HTTP API consumed by the
// browser frontend. CORS is wide open: the frontend is served from a
// different local port than the API.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prepdeck/prepdeck/internal/ai"
	"github.com/prepdeck/prepdeck/internal/catalog"
	"github.com/prepdeck/prepdeck/internal/scoring"
	"github.com/prepdeck/prepdeck/internal/store"
)

// Server wires the evaluation routes.
type Server struct {
	engine    *gin.Engine
	evaluator *scoring.Evaluator
	catalog   *catalog.Catalog
	coach     ai.Coach
	store     *store.Store
	logger    *zap.Logger
}

// Config holds the server dependencies. Evaluator and Catalog are required;
// Coach and Store are optional features.
type Config struct {
	Evaluator *scoring.Evaluator
	Catalog   *catalog.Catalog
	Coach     ai.Coach
	Store     *store.Store
	Logger    *zap.Logger
}

// New builds the server and registers its routes.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	s := &Server{
		engine:    engine,
		evaluator: cfg.Evaluator,
		catalog:   cfg.Catalog,
		coach:     cfg.Coach,
		store:     cfg.Store,
		logger:    cfg.Logger,
	}

	engine.GET("/", s.home)
	engine.GET("/health", s.health)
	engine.POST("/evaluate-answer", s.evaluateAnswer)
	engine.GET("/sessions", s.listSessions)
	engine.GET("/sessions/:id", s.getSession)

	return s
}

// Handler returns the http handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves the API on the given address until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("evaluation api listening", zap.String("addr", addr))
	return s.engine.Run(addr)
}
