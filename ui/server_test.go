package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"genoscope/app"
	"genoscope/domain/enrich"
	"genoscope/domain/gene"
	"genoscope/internal/config"
	"genoscope/internal/session"
	"genoscope/ports"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stub collaborators so handler tests never touch the network.
type stubResolver struct {
	resolutions []gene.Resolution
	err         error
}

func (s *stubResolver) Resolve(ctx context.Context, tokens []string, species gene.Species) ([]gene.Resolution, error) {
	return s.resolutions, s.err
}

type stubEnricher struct {
	table enrich.Table
	err   error
}

func (s *stubEnricher) Profile(ctx context.Context, query ports.EnrichmentQuery) (enrich.Table, error) {
	return s.table, s.err
}

func newTestServer(t *testing.T, resolver ports.GeneResolver, enricher ports.Enricher) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cache := session.NewCache(4)
	defaults := config.EnrichmentConfig{Sources: []string{"KEGG", "GO:BP"}, Threshold: 0.05, Correction: "g_SCS", NoIEA: true}
	enrichment := app.NewEnrichmentService(resolver, enricher, cache, nil, defaults, nil)
	runs := app.NewRunService(cache, nil, nil)

	return NewServer(config.ServerConfig{GinMode: gin.TestMode}, enrichment, runs, resolver, nil)
}

func defaultStubs() (*stubResolver, *stubEnricher) {
	resolver := &stubResolver{resolutions: []gene.Resolution{
		{Token: "TP53", ID: "7157", Symbol: "TP53", Resolved: true},
		{Token: "EGFR", ID: "1956", Symbol: "EGFR", Resolved: true},
	}}
	enricher := &stubEnricher{table: enrich.Table{
		{
			Source:           "KEGG",
			TermID:           "KEGG:04110",
			Name:             "Cell cycle",
			PValue:           0.001,
			TermSize:         120,
			IntersectionSize: 2,
			Evidence:         []enrich.Evidence{enrich.SingleEvidence("IDA"), enrich.SingleEvidence("IMP")},
		},
	}}
	return resolver, enricher
}

func createRun(t *testing.T, server *Server) string {
	t.Helper()

	body := bytes.NewBufferString(`{"raw_text": "TP53\nEGFR"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/runs", body)
	req.Header.Set("Content-Type", "application/json")
	server.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Run struct {
			ID string `json:"id"`
		} `json:"run"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Run.ID)
	return resp.Run.ID
}

func TestCreateAndGetRun(t *testing.T) {
	resolver, enricher := defaultStubs()
	server := newTestServer(t, resolver, enricher)

	id := createRun(t, server)

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/runs/"+id, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Table enrich.Table `json:"table"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Table, 1)
	assert.Equal(t, []string{"TP53", "EGFR"}, resp.Table[0].Genes)
}

func TestCreateRunResolutionFailure(t *testing.T) {
	resolver := &stubResolver{resolutions: []gene.Resolution{{Token: "junk"}}}
	_, enricher := defaultStubs()
	server := newTestServer(t, resolver, enricher)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/runs", bytes.NewBufferString(`{"raw_text": "junk"}`))
	req.Header.Set("Content-Type", "application/json")
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "RESOLUTION_FAILURE")
}

func TestGetRunNotFound(t *testing.T) {
	resolver, enricher := defaultStubs()
	server := newTestServer(t, resolver, enricher)

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/runs/nonexistent", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOverrideEndpoint(t *testing.T) {
	resolver, enricher := defaultStubs()
	server := newTestServer(t, resolver, enricher)
	id := createRun(t, server)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/runs/%s/override", id),
		bytes.NewBufferString(`{"term_id": "KEGG:04110", "label": "BRCA1"}`))
	req.Header.Set("Content-Type", "application/json")
	server.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Table enrich.Table `json:"table"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Table, 1)
	assert.Equal(t, []string{"TP53", "EGFR", "BRCA1"}, resp.Table[0].Genes)
	assert.Equal(t, 3, resp.Table[0].IntersectionSize)
}

func TestSimplifyEndpointValidation(t *testing.T) {
	resolver, enricher := defaultStubs()
	server := newTestServer(t, resolver, enricher)
	id := createRun(t, server)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/runs/%s/simplify", id),
		bytes.NewBufferString(`{"tau": 2.0}`))
	req.Header.Set("Content-Type", "application/json")
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportExcelEndpoint(t *testing.T) {
	resolver, enricher := defaultStubs()
	server := newTestServer(t, resolver, enricher)
	id := createRun(t, server)

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/runs/%s/export.xlsx", id), nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestChartHTMLEndpoint(t *testing.T) {
	resolver, enricher := defaultStubs()
	server := newTestServer(t, resolver, enricher)
	id := createRun(t, server)

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/runs/%s/chart.html?type=bar", id), nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Plotly.newPlot")
}

func TestKEGGEndpoint(t *testing.T) {
	resolver, enricher := defaultStubs()
	server := newTestServer(t, resolver, enricher)
	id := createRun(t, server)

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/runs/%s/kegg", id), nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "kegg.jp/kegg-bin/show_pathway?hsa04110+7157+1956")
}

func TestConvertEndpoint(t *testing.T) {
	resolver, enricher := defaultStubs()
	server := newTestServer(t, resolver, enricher)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/convert", bytes.NewBufferString(`{"raw_text": "TP53\nEGFR"}`))
	req.Header.Set("Content-Type", "application/json")
	server.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"7157"`)
}

func TestHealthEndpoint(t *testing.T) {
	resolver, enricher := defaultStubs()
	server := newTestServer(t, resolver, enricher)

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
