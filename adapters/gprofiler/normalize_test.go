package gprofiler

import (
	"testing"

	"genoscope/domain/core"
	"genoscope/domain/enrich"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
	"result": [
		{
			"source": "GO:BP",
			"native": "GO:0008283",
			"name": "cell population proliferation",
			"p_value": 0.01,
			"term_size": 300,
			"intersection_size": 2,
			"intersections": [["IEA"], [], ["IDA","IMP"]]
		},
		{
			"source": "KEGG",
			"native": "KEGG:04110",
			"name": "Cell cycle",
			"p_value": 0.001,
			"term_size": 120,
			"intersection_size": 2,
			"intersections": [["IDA"], ["IMP"], []]
		}
	],
	"meta": {"query_metadata": {}}
}`

func TestNormalizeResponse(t *testing.T) {
	table, err := NormalizeResponse([]byte(sampleResponse), 3)
	require.NoError(t, err)
	require.Len(t, table, 2)

	// Normalization sorts ascending by p-value.
	assert.Equal(t, "KEGG:04110", table[0].TermID)
	assert.Equal(t, "KEGG", table[0].Source)
	assert.InDelta(t, 0.001, table[0].PValue, 1e-12)
	assert.Equal(t, 120, table[0].TermSize)
	assert.Equal(t, 2, table[0].IntersectionSize)

	require.Len(t, table[0].Evidence, 3)
	assert.True(t, table[0].Evidence[0].IsHit())
	assert.True(t, table[0].Evidence[1].IsHit())
	assert.False(t, table[0].Evidence[2].IsHit())

	// An empty code list is a non-hit position.
	assert.False(t, table[1].Evidence[1].IsHit())
}

func TestNormalizeEvidenceShapes(t *testing.T) {
	body := `{"result": [{
		"source": "GO:MF",
		"native": "GO:0003677",
		"name": "DNA binding",
		"p_value": 0.03,
		"term_size": 50,
		"intersection_size": 2,
		"intersections": [null, "IDA", ["IEA","ISS"], 42]
	}]}`

	table, err := NormalizeResponse([]byte(body), 4)
	require.NoError(t, err)
	require.Len(t, table, 1)
	require.Len(t, table[0].Evidence, 4)

	assert.Equal(t, enrich.EvidenceEmpty, table[0].Evidence[0].Kind)
	assert.Equal(t, enrich.EvidenceSingle, table[0].Evidence[1].Kind)
	assert.Equal(t, enrich.EvidenceList, table[0].Evidence[2].Kind)
	assert.Equal(t, []string{"IEA", "ISS"}, table[0].Evidence[2].Codes)
	assert.False(t, table[0].Evidence[3].IsHit(), "unrecognized scalar shapes are non-hits")
}

func TestNormalizeRowDegradation(t *testing.T) {
	body := `{"result": [
		{"source":"REAC","native":"REAC:123","name":"x","p_value":0.02,"term_size":10,"intersection_size":5},
		{"source":"REAC","native":"REAC:456","name":"y","p_value":0.03,"term_size":10,"intersection_size":4,"intersections":"oops"}
	]}`

	table, err := NormalizeResponse([]byte(body), 3)
	require.NoError(t, err, "row-level malformation never escalates to a table failure")
	require.Len(t, table, 2)

	assert.Nil(t, table[0].Evidence)
	assert.Equal(t, 5, table[0].IntersectionSize, "reported count survives degradation")
	assert.Nil(t, table[1].Evidence)
}

func TestNormalizeEmptyResultIsNotAnError(t *testing.T) {
	table, err := NormalizeResponse([]byte(`{"result": [], "meta": {}}`), 3)
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestNormalizeMalformedResponses(t *testing.T) {
	cases := map[string]string{
		"missing result key": `{"meta": {}}`,
		"result not a list":  `{"result": {"oops": true}}`,
		"not json":           `<html>502 Bad Gateway</html>`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NormalizeResponse([]byte(body), 3)
			assert.ErrorIs(t, err, core.ErrMalformedResponse)
		})
	}
}
