package ui

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"genoscope/app"
	"genoscope/domain/core"
)

func (s *Server) handleExportExcel(c *gin.Context) {
	id := core.RunID(c.Param("id"))
	_, table, err := s.runs.View(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}

	data, err := s.excel.Write(table)
	if err != nil {
		s.renderError(c, err)
		return
	}

	filename := fmt.Sprintf("enrichment_%s.xlsx", id.String())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (s *Server) chartOptions(c *gin.Context) app.ChartOptions {
	opts := app.ChartOptions{SortBy: c.DefaultQuery("sort_by", "p_value")}
	if topN, err := strconv.Atoi(c.DefaultQuery("top_n", "20")); err == nil {
		opts.TopN = topN
	}
	return opts
}

func (s *Server) handleChartData(c *gin.Context) {
	chart, err := s.runs.Chart(c.Request.Context(), core.RunID(c.Param("id")), s.chartOptions(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, chart)
}

// handleChartHTML serves the self-contained interactive chart document,
// the downloadable "open in any browser" export.
func (s *Server) handleChartHTML(c *gin.Context) {
	chart, err := s.runs.Chart(c.Request.Context(), core.RunID(c.Param("id")), s.chartOptions(c))
	if err != nil {
		s.renderError(c, err)
		return
	}

	kind := c.DefaultQuery("type", "dot")
	html, err := RenderChartHTML(chart, kind)
	if err != nil {
		s.renderError(c, err)
		return
	}

	if c.Query("download") == "1" {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="enrichment_plot_%s.html"`, chart.RunID))
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
