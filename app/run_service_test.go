package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"genoscope/domain/core"
	"genoscope/domain/enrich"
	"genoscope/domain/gene"
	"genoscope/internal/session"
	"genoscope/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedRun() *models.Run {
	now := time.Now().UTC()
	return &models.Run{
		ID:      core.NewRunID(),
		Species: gene.Species{Key: "human", TaxonID: 9606, Organism: "hsapiens", KEGGPrefix: "hsa"},
		Sources: []string{"KEGG", "GO:BP"},
		Universe: gene.Universe{
			"101", "102", "103",
		},
		Labels: gene.LabelMap{"101": "G101", "102": "G102", "103": "G103"},
		Raw: enrich.Table{
			{
				Source:           "KEGG",
				TermID:           "KEGG:04110",
				Name:             "Cell cycle",
				PValue:           0.001,
				TermSize:         120,
				IntersectionSize: 2,
				Evidence:         []enrich.Evidence{enrich.SingleEvidence("IDA"), enrich.SingleEvidence("IMP"), enrich.EmptyEvidence()},
			},
			{
				Source:           "GO:BP",
				TermID:           "GO:0008283",
				Name:             "cell population proliferation",
				PValue:           0.01,
				TermSize:         300,
				IntersectionSize: 2,
				Evidence:         []enrich.Evidence{enrich.SingleEvidence("IEA"), enrich.EmptyEvidence(), enrich.SingleEvidence("IDA")},
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newRunService(t *testing.T) (*RunService, *models.Run) {
	t.Helper()
	cache := session.NewCache(4)
	run := storedRun()
	cache.Put(run)
	return NewRunService(cache, nil, nil), run
}

func TestViewAssemblesTable(t *testing.T) {
	service, run := newRunService(t)

	_, table, err := service.View(context.Background(), run.ID)
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, []string{"G101", "G102"}, table[0].Genes)
}

func TestGetUnknownRun(t *testing.T) {
	service, _ := newRunService(t)

	_, err := service.Get(context.Background(), core.RunID("missing"))
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestSetSimplifyReducesView(t *testing.T) {
	service, run := newRunService(t)

	table, err := service.SetSimplify(context.Background(), run.ID, 0.3)
	require.NoError(t, err)
	require.Len(t, table, 1, "hit-set jaccard 1/3 > 0.3")
	assert.Equal(t, "KEGG:04110", table[0].TermID)

	// Turning it back off restores the full view from the raw table.
	table, err = service.SetSimplify(context.Background(), run.ID, 0)
	require.NoError(t, err)
	assert.Len(t, table, 2)
}

func TestSetSimplifyRejectsBadTau(t *testing.T) {
	service, run := newRunService(t)

	_, err := service.SetSimplify(context.Background(), run.ID, 1.5)
	assert.Error(t, err)
}

func TestAddOverrideIdempotent(t *testing.T) {
	service, run := newRunService(t)

	table, err := service.AddOverride(context.Background(), run.ID, "KEGG:04110", "X")
	require.NoError(t, err)
	assert.Equal(t, []string{"G101", "G102", "X"}, table[0].Genes)
	assert.Equal(t, 3, table[0].IntersectionSize)

	table, err = service.AddOverride(context.Background(), run.ID, "KEGG:04110", "X")
	require.NoError(t, err)
	assert.Equal(t, 3, table[0].IntersectionSize, "second identical override changes nothing")
}

func TestAddOverrideNoMatchKeepsTableIntact(t *testing.T) {
	service, run := newRunService(t)

	before, err := run.View()
	require.NoError(t, err)

	after, err := service.AddOverride(context.Background(), run.ID, "KEGG:99999", "X")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestOverrideDoesNotFeedTheReducer(t *testing.T) {
	service, run := newRunService(t)

	_, err := service.AddOverride(context.Background(), run.ID, "GO:0008283", "X")
	require.NoError(t, err)

	table, err := service.SetSimplify(context.Background(), run.ID, 0.3)
	require.NoError(t, err)
	require.Len(t, table, 1, "forced label is invisible to similarity reduction")
	assert.Equal(t, "KEGG:04110", table[0].TermID)
}

// Runs held in the cache are read by every handler; mutations must go
// through a private clone. Run with -race.
func TestConcurrentOverridesAndViews(t *testing.T) {
	service, run := newRunService(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		label := fmt.Sprintf("X%d", i)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := service.AddOverride(context.Background(), run.ID, "KEGG:04110", label)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, _, err := service.View(context.Background(), run.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	_, table, err := service.View(context.Background(), run.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, table[0].IntersectionSize, 3, "at least one override landed")
	assert.Empty(t, run.Options.Overrides, "the originally cached run is never mutated")
}

func TestChartPayload(t *testing.T) {
	service, run := newRunService(t)

	chart, err := service.Chart(context.Background(), run.ID, ChartOptions{TopN: 10})
	require.NoError(t, err)

	require.Len(t, chart.Points, 2)
	// Least significant first, so the strongest pathway renders on top.
	assert.Equal(t, "GO:0008283", chart.Points[0].TermID)
	assert.Equal(t, "KEGG:04110", chart.Points[1].TermID)
	assert.InDelta(t, 3.0, chart.Points[1].NegLog10P, 1e-9)
	assert.Equal(t, 2, chart.Summary.Rows)
}

func TestChartShortNames(t *testing.T) {
	assert.Equal(t, "short", shorten("short"))

	long := "a pathway name that is definitely much longer than fifty characters total"
	shortened := shorten(long)
	assert.Len(t, shortened, shortNameLimit+3)
	assert.True(t, len(shortened) < len(long))

	// Truncation counts runes; a multibyte name must stay valid UTF-8.
	multibyte := strings.Repeat("β", shortNameLimit+10)
	shortened = shorten(multibyte)
	assert.True(t, utf8.ValidString(shortened))
	assert.Equal(t, shortNameLimit+3, utf8.RuneCountInString(shortened))
}

func TestKEGGLinks(t *testing.T) {
	service, run := newRunService(t)

	links, err := service.KEGGLinks(context.Background(), run.ID)
	require.NoError(t, err)

	require.Len(t, links, 1, "only KEGG rows get pathway links")
	assert.Equal(t, "KEGG:04110", links[0].TermID)
	assert.Equal(t, "https://www.kegg.jp/kegg-bin/show_pathway?hsa04110+101+102", links[0].URL)
}
