package mygene

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"genoscope/domain/gene"
	"genoscope/internal/errors"
)

const (
	queryScopes = "symbol,entrezgene,ensembl.gene,alias"
	queryFields = "symbol,entrezgene"

	// maxConcurrentBatches bounds parallel calls against the public API.
	maxConcurrentBatches = 4
)

// Client resolves free-text gene tokens to canonical Entrez IDs through
// the MyGene.info batch query endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	batchSize  int
}

// NewClient creates a resolver client. batchSize caps tokens per request
// (the service accepts at most 1000 per batch call).
func NewClient(baseURL string, timeout time.Duration, batchSize int) *Client {
	if batchSize < 1 || batchSize > 1000 {
		batchSize = 1000
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		batchSize:  batchSize,
	}
}

// Resolve maps tokens onto the canonical namespace for species. Tokens are
// trimmed before lookup; responses are matched back by the echoed query
// token, never by position. Unresolved tokens come back with
// Resolved=false so the bridge can count them.
func (c *Client) Resolve(ctx context.Context, tokens []string, species gene.Species) ([]gene.Resolution, error) {
	trimmed := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if t := strings.TrimSpace(token); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	if len(trimmed) == 0 {
		return nil, nil
	}

	batches := make([][]string, 0, (len(trimmed)+c.batchSize-1)/c.batchSize)
	for start := 0; start < len(trimmed); start += c.batchSize {
		end := start + c.batchSize
		if end > len(trimmed) {
			end = len(trimmed)
		}
		batches = append(batches, trimmed[start:end])
	}

	log.Printf("[MyGene] Resolving %d tokens in %d batch(es), species=%s", len(trimmed), len(batches), species.Organism)

	results := make([]map[string]gene.Resolution, len(batches))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentBatches)
	for i, batch := range batches {
		group.Go(func() error {
			resolved, err := c.resolveBatch(groupCtx, batch, species)
			if err != nil {
				return err
			}
			results[i] = resolved
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, errors.Wrap(err, "gene resolution request failed")
	}

	byToken := make(map[string]gene.Resolution, len(trimmed))
	for _, batchResult := range results {
		for token, res := range batchResult {
			// A token can echo multiple hits; the first resolved one wins.
			if existing, ok := byToken[token]; ok && existing.Resolved {
				continue
			}
			byToken[token] = res
		}
	}

	out := make([]gene.Resolution, 0, len(trimmed))
	for _, token := range trimmed {
		if res, ok := byToken[token]; ok {
			out = append(out, res)
		} else {
			out = append(out, gene.Resolution{Token: token})
		}
	}
	return out, nil
}

// resolveBatch performs one POST /v3/query call and indexes the answers by
// echoed token.
func (c *Client) resolveBatch(ctx context.Context, tokens []string, species gene.Species) (map[string]gene.Resolution, error) {
	form := url.Values{}
	form.Set("q", strings.Join(tokens, ","))
	form.Set("scopes", queryScopes)
	form.Set("fields", queryFields)
	form.Set("species", strconv.Itoa(species.TaxonID))

	endpoint := c.baseURL + "/v3/query"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("annotation service unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("annotation service returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("unexpected annotation response shape")
	}

	resolved := make(map[string]gene.Resolution, len(tokens))
	parsed.ForEach(func(_, hit gjson.Result) bool {
		token := hit.Get("query").String()
		if token == "" {
			return true
		}
		if hit.Get("notfound").Bool() {
			if _, seen := resolved[token]; !seen {
				resolved[token] = gene.Resolution{Token: token}
			}
			return true
		}

		// entrezgene arrives as a number or a string depending on the hit.
		entrez := hit.Get("entrezgene").String()
		if entrez == "" {
			if existing, seen := resolved[token]; !seen || !existing.Resolved {
				resolved[token] = gene.Resolution{Token: token}
			}
			return true
		}

		if existing, seen := resolved[token]; seen && existing.Resolved {
			return true
		}
		resolved[token] = gene.Resolution{
			Token:    token,
			ID:       gene.ID(entrez),
			Symbol:   hit.Get("symbol").String(),
			Resolved: true,
		}
		return true
	})

	return resolved, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
