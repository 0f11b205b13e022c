package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"genoscope/domain/gene"
)

// handleConvert exposes the plain ID-conversion feature: resolve pasted
// tokens and return the mapping table without running an enrichment query.
func (s *Server) handleConvert(c *gin.Context) {
	var req struct {
		RawText    string   `json:"raw_text"`
		Tokens     []string `json:"tokens,omitempty"`
		SpeciesKey string   `json:"species"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tokens := req.Tokens
	if len(tokens) == 0 {
		tokens = gene.ParseTokens(req.RawText)
	}
	if len(tokens) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no gene identifiers provided"})
		return
	}

	species := gene.DefaultSpecies()
	if req.SpeciesKey != "" {
		var err error
		species, err = gene.SpeciesByKey(req.SpeciesKey)
		if err != nil {
			s.renderError(c, err)
			return
		}
	}

	resolutions, err := s.resolver.Resolve(c.Request.Context(), tokens, species)
	if err != nil {
		s.renderError(c, err)
		return
	}

	_, _, diag := gene.BuildUniverse(resolutions)
	c.JSON(http.StatusOK, gin.H{
		"species":     species.Key,
		"resolutions": resolutions,
		"diagnostics": diag,
	})
}
