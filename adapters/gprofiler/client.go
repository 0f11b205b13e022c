package gprofiler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"genoscope/domain/enrich"
	"genoscope/internal/errors"
	"genoscope/ports"
)

// Client runs pathway-enrichment queries against the g:Profiler g:GOSt
// endpoint. All statistics (p-values, multiple-testing correction) are
// computed server-side; this adapter only builds the request and
// normalizes the loose response shapes at the boundary.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an enrichment client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// profileRequest is the g:GOSt profile wire request. Query order carries
// the positional alignment for the returned evidence vectors.
type profileRequest struct {
	Organism                    string   `json:"organism"`
	Query                       []string `json:"query"`
	Sources                     []string `json:"sources"`
	UserThreshold               float64  `json:"user_threshold"`
	SignificanceThresholdMethod string   `json:"significance_threshold_method"`
	NoIEA                       bool     `json:"no_iea"`
	NoEvidences                 bool     `json:"no_evidences"`
}

// Profile submits the identifier universe and returns the normalized
// result table. A well-formed empty result is an empty table; a response
// missing the expected structure is a MalformedResponse error.
func (c *Client) Profile(ctx context.Context, query ports.EnrichmentQuery) (enrich.Table, error) {
	if len(query.Universe) == 0 {
		return enrich.Table{}, nil
	}

	payload := profileRequest{
		Organism:                    query.Species.Organism,
		Query:                       query.Universe.Strings(),
		Sources:                     query.Sources,
		UserThreshold:               query.Threshold,
		SignificanceThresholdMethod: query.Correction,
		NoIEA:                       query.NoIEA,
		NoEvidences:                 false, // evidence vectors are required for decoding
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode enrichment request: %w", err)
	}

	endpoint := c.baseURL + "/api/gost/profile/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.Printf("[GProfiler] Querying %d identifiers, sources=%v, threshold=%v", len(query.Universe), query.Sources, query.Threshold)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "enrichment service unreachable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read enrichment response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.ExternalService(fmt.Sprintf("enrichment service returned status %d", resp.StatusCode))
	}

	table, err := NormalizeResponse(raw, len(query.Universe))
	if err != nil {
		return nil, err
	}

	log.Printf("[GProfiler] Received %d result row(s)", len(table))
	return table, nil
}
