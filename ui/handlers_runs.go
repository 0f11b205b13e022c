package ui

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"genoscope/app"
	"genoscope/domain/core"
	"genoscope/domain/enrich"
	"genoscope/domain/gene"
	"genoscope/internal/analysis"
	apperrors "genoscope/internal/errors"
	"genoscope/models"
)

// runResponse is the API shape for one run plus its presented table.
type runResponse struct {
	Run     models.RunSummary      `json:"run"`
	Options enrich.AssembleOptions `json:"options"`
	Table   enrich.Table           `json:"table"`
	Summary analysis.TableSummary  `json:"summary"`
	Message string                 `json:"message,omitempty"`
}

func (s *Server) handleCreateRun(c *gin.Context) {
	var req app.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	run, err := s.enrichment.Run(c.Request.Context(), req)
	if err != nil {
		s.renderError(c, err)
		return
	}

	table, err := run.View()
	if err != nil {
		s.renderError(c, err)
		return
	}

	resp := runResponse{
		Run:     run.Summary(),
		Options: run.Options,
		Table:   table,
		Summary: analysis.Summarize(table),
	}
	if len(table) == 0 {
		resp.Message = "no significant pathways"
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetRun(c *gin.Context) {
	run, table, err := s.runs.View(c.Request.Context(), core.RunID(c.Param("id")))
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, runResponse{
		Run:     run.Summary(),
		Options: run.Options,
		Table:   table,
		Summary: analysis.Summarize(table),
	})
}

func (s *Server) handleListRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	summaries, err := s.runs.ListRecent(c.Request.Context(), limit)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": summaries})
}

func (s *Server) handleSimplify(c *gin.Context) {
	var req struct {
		Tau float64 `json:"tau"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	table, err := s.runs.SetSimplify(c.Request.Context(), core.RunID(c.Param("id")), req.Tau)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"table": table, "summary": analysis.Summarize(table)})
}

func (s *Server) handleOverride(c *gin.Context) {
	var req struct {
		TermID string `json:"term_id"`
		Label  string `json:"label"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	table, err := s.runs.AddOverride(c.Request.Context(), core.RunID(c.Param("id")), req.TermID, req.Label)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"table": table, "summary": analysis.Summarize(table)})
}

func (s *Server) handleSpecies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"species": gene.AllSpecies()})
}

func (s *Server) handleKEGGLinks(c *gin.Context) {
	links, err := s.runs.KEGGLinks(c.Request.Context(), core.RunID(c.Param("id")))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"links": links})
}

// renderError maps the error taxonomy onto HTTP statuses.
func (s *Server) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := apperrors.GetCode(err)
	switch {
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
		code = apperrors.CodeNotFound
	case core.IsResolutionError(err):
		// No tokens resolved: user-visible empty state, not a server fault.
		status = http.StatusUnprocessableEntity
		code = apperrors.CodeResolutionFailure
	case core.IsMalformedResponseError(err):
		status = http.StatusBadGateway
		code = apperrors.CodeMalformedResponse
	case errors.Is(err, core.ErrUnknownSpecies), errors.Is(err, core.ErrInvalidThreshold):
		status = http.StatusBadRequest
		code = apperrors.CodeInvalidInput
	default:
		switch code {
		case apperrors.CodeInvalidInput:
			status = http.StatusBadRequest
		case apperrors.CodeExternalService:
			status = http.StatusBadGateway
		case apperrors.CodeNotFound:
			status = http.StatusNotFound
		}
	}

	if status >= http.StatusInternalServerError {
		log.Printf("[API] %d error: %v", status, err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
