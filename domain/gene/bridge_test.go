package gene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTokens(t *testing.T) {
	raw := "TP53\nEGFR\r\n  BRCA1  \n\nMYC,KRAS;\tPTEN\n"

	tokens := ParseTokens(raw)

	assert.Equal(t, []string{"TP53", "EGFR", "BRCA1", "MYC", "KRAS", "PTEN"}, tokens)
}

func TestParseTokensEmptyInput(t *testing.T) {
	assert.Empty(t, ParseTokens(""))
	assert.Empty(t, ParseTokens("\n\n  \n"))
}

func TestBuildUniverse(t *testing.T) {
	resolutions := []Resolution{
		{Token: "TP53", ID: "7157", Symbol: "TP53", Resolved: true},
		{Token: "EGFR", ID: "1956", Symbol: "EGFR", Resolved: true},
		{Token: "bogus", Resolved: false},
		{Token: "p53", ID: "7157", Symbol: "TP53", Resolved: true}, // alias of an already-seen ID
	}

	universe, labels, diag := BuildUniverse(resolutions)

	assert.Equal(t, Universe{"7157", "1956"}, universe, "duplicate IDs keep first occurrence")
	assert.Equal(t, "TP53", labels.Label("7157"))
	assert.Equal(t, 4, diag.Attempted)
	assert.Equal(t, 3, diag.Resolved)
	assert.Equal(t, 1, diag.Unresolved)
}

func TestBuildUniverseNothingResolved(t *testing.T) {
	universe, labels, diag := BuildUniverse([]Resolution{
		{Token: "junk1", Resolved: false},
		{Token: "junk2", Resolved: false},
	})

	assert.Empty(t, universe)
	assert.Empty(t, labels)
	assert.Equal(t, 2, diag.Attempted)
	assert.Equal(t, 0, diag.Resolved)
}

func TestLabelFallback(t *testing.T) {
	labels := LabelMap{"7157": "TP53"}

	assert.Equal(t, "TP53", labels.Label("7157"))
	assert.Equal(t, "1956", labels.Label("1956"), "unresolved label falls back to the ID string")

	var nilMap LabelMap
	assert.Equal(t, "42", nilMap.Label("42"))
}

func TestSpeciesRegistry(t *testing.T) {
	human, err := SpeciesByKey("human")
	require.NoError(t, err)
	assert.Equal(t, 9606, human.TaxonID)
	assert.Equal(t, "hsapiens", human.Organism)
	assert.Equal(t, "hsa", human.KEGGPrefix)

	_, err = SpeciesByKey("zebrafish")
	assert.Error(t, err)

	assert.Len(t, AllSpecies(), 3)
	assert.Equal(t, "human", DefaultSpecies().Key)
}
