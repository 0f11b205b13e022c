package app

import (
	"context"
	"fmt"
	"strings"

	"genoscope/domain/core"
	"genoscope/domain/enrich"
	"genoscope/internal/analysis"
)

const (
	shortNameLimit = 50
	defaultTopN    = 20

	minBubbleSize = 8
	maxBubbleSize = 34
)

// ChartPoint is one pathway in the chart payload. All cells are primitive
// so the renderer can serialize them directly.
type ChartPoint struct {
	Source           string  `json:"source"`
	TermID           string  `json:"term_id"`
	Name             string  `json:"name"`
	ShortName        string  `json:"short_name"`
	PValue           float64 `json:"p_value"`
	NegLog10P        float64 `json:"neg_log10_p"`
	IntersectionSize int     `json:"intersection_size"`
	BubbleSize       float64 `json:"bubble_size"`
	Genes            string  `json:"genes"`
}

// ChartData is the render-ready payload for the interactive chart.
type ChartData struct {
	RunID   core.RunID            `json:"run_id"`
	Title   string                `json:"title"`
	Points  []ChartPoint          `json:"points"`
	Summary analysis.TableSummary `json:"summary"`
}

// ChartOptions selects and orders the plotted subset.
type ChartOptions struct {
	TopN   int    `json:"top_n"`
	SortBy string `json:"sort_by"` // "p_value" (default) or "count"
}

// Chart builds the chart payload for a run: the top-N most significant
// rows of the presented table, least significant first so the strongest
// pathway renders at the top of a horizontal chart.
func (s *RunService) Chart(ctx context.Context, id core.RunID, opts ChartOptions) (*ChartData, error) {
	_, table, err := s.View(ctx, id)
	if err != nil {
		return nil, err
	}

	topN := opts.TopN
	if topN < 1 {
		topN = defaultTopN
	}
	if topN > len(table) {
		topN = len(table)
	}

	// The table arrives sorted ascending by p-value; slice then flip.
	plotted := table.Clone()[:topN]
	if opts.SortBy == "count" {
		sortByIntersection(plotted)
	}
	reverse(plotted)

	sizes := analysis.BubbleSizes(plotted, minBubbleSize, maxBubbleSize)
	points := make([]ChartPoint, len(plotted))
	for i, row := range plotted {
		points[i] = ChartPoint{
			Source:           row.Source,
			TermID:           row.TermID,
			Name:             row.Name,
			ShortName:        shorten(row.Name),
			PValue:           row.PValue,
			NegLog10P:        analysis.NegLog10(row.PValue),
			IntersectionSize: row.IntersectionSize,
			BubbleSize:       sizes[i],
			Genes:            strings.Join(row.Genes, "; "),
		}
	}

	return &ChartData{
		RunID:   id,
		Title:   fmt.Sprintf("Top %d Enriched Pathways", topN),
		Points:  points,
		Summary: analysis.Summarize(table),
	}, nil
}

// shorten truncates long pathway names for axis labels. Truncation counts
// runes, not bytes, so a multibyte character is never split.
func shorten(name string) string {
	runes := []rune(name)
	if len(runes) <= shortNameLimit {
		return name
	}
	return string(runes[:shortNameLimit]) + "..."
}

func sortByIntersection(table enrich.Table) {
	// Stable so p-value order breaks count ties.
	for i := 1; i < len(table); i++ {
		for j := i; j > 0 && table[j].IntersectionSize > table[j-1].IntersectionSize; j-- {
			table[j], table[j-1] = table[j-1], table[j]
		}
	}
}

func reverse(table enrich.Table) {
	for i, j := 0, len(table)-1; i < j; i, j = i+1, j-1 {
		table[i], table[j] = table[j], table[i]
	}
}
