package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"genoscope/adapters/excel"
	"genoscope/app"
	"genoscope/internal"
	"genoscope/internal/config"
	"genoscope/ports"
)

// Server is the main JSON/HTML API for running enrichment analyses and
// working with stored runs.
type Server struct {
	router     *gin.Engine
	enrichment *app.EnrichmentService
	runs       *app.RunService
	resolver   ports.GeneResolver
	excel      *excel.Writer
	logger     *internal.Logger
}

// NewServer creates the web server and registers its routes.
func NewServer(cfg config.ServerConfig, enrichment *app.EnrichmentService, runs *app.RunService, resolver ports.GeneResolver, logger *internal.Logger) *Server {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	s := &Server{
		router:     gin.Default(),
		enrichment: enrichment,
		runs:       runs,
		resolver:   resolver,
		excel:      excel.NewWriter(),
		logger:     logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/help", s.handleHelp)

	s.router.GET("/api/species", s.handleSpecies)
	s.router.POST("/api/convert", s.handleConvert)

	s.router.POST("/api/runs", s.handleCreateRun)
	s.router.GET("/api/runs", s.handleListRuns)
	s.router.GET("/api/runs/:id", s.handleGetRun)
	s.router.POST("/api/runs/:id/simplify", s.handleSimplify)
	s.router.POST("/api/runs/:id/override", s.handleOverride)
	s.router.GET("/api/runs/:id/chart", s.handleChartData)
	s.router.GET("/api/runs/:id/chart.html", s.handleChartHTML)
	s.router.GET("/api/runs/:id/export.xlsx", s.handleExportExcel)
	s.router.GET("/api/runs/:id/kegg", s.handleKEGGLinks)
}

// Start runs the HTTP server on the given address.
func (s *Server) Start(addr string) error {
	s.logger.Info("[Server] Listening on %s", addr)
	return s.router.Run(addr)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
