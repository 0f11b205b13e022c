package app

import (
	"context"
	"fmt"
	"strings"

	"genoscope/domain/core"
)

// KEGGLink is a deep link into the external pathway-diagram viewer with
// the run's hit genes highlighted.
type KEGGLink struct {
	TermID string `json:"term_id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
}

// KEGGLinks builds pathway-viewer links for every KEGG row of the
// presented table. Pure string formatting over core output: the species
// KEGG prefix plus the numeric pathway suffix, followed by the raw hit
// identifiers to highlight.
func (s *RunService) KEGGLinks(ctx context.Context, id core.RunID) ([]KEGGLink, error) {
	run, table, err := s.View(ctx, id)
	if err != nil {
		return nil, err
	}

	links := make([]KEGGLink, 0)
	for _, row := range table {
		if row.Source != "KEGG" {
			continue
		}
		if !strings.HasPrefix(row.TermID, "KEGG:") {
			continue
		}
		suffix := strings.TrimPrefix(row.TermID, "KEGG:")
		if suffix == "" {
			continue
		}

		parts := make([]string, 0, len(row.Hits)+1)
		parts = append(parts, run.Species.KEGGPrefix+suffix)
		for _, hit := range row.Hits {
			parts = append(parts, hit.String())
		}

		links = append(links, KEGGLink{
			TermID: row.TermID,
			Name:   row.Name,
			URL:    fmt.Sprintf("https://www.kegg.jp/kegg-bin/show_pathway?%s", strings.Join(parts, "+")),
		})
	}
	return links, nil
}
