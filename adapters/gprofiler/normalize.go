package gprofiler

import (
	"log"

	"github.com/tidwall/gjson"

	"genoscope/domain/core"
	"genoscope/domain/enrich"
)

// NormalizeResponse converts the raw g:GOSt JSON body into the strict
// internal table schema. The service is loose about evidence shapes: a
// row's intersections entry may be an array of code lists, an array of
// plain strings, or absent entirely. Everything is normalized here into
// the Evidence tagged variant so the core never sees upstream drift.
//
// Contract violations at the table level (missing result key, result not a
// list) are MalformedResponse errors. Violations inside one row degrade
// that row to empty evidence instead; the reported intersection size is
// preserved as-is.
func NormalizeResponse(body []byte, universeSize int) (enrich.Table, error) {
	if !gjson.ValidBytes(body) {
		return nil, core.NewMalformedResponseError("response is not valid JSON")
	}

	parsed := gjson.ParseBytes(body)
	result := parsed.Get("result")
	if !result.Exists() {
		return nil, core.NewMalformedResponseError("missing result key")
	}
	if !result.IsArray() {
		return nil, core.NewMalformedResponseError("result is not a list")
	}

	table := make(enrich.Table, 0, int(result.Get("#").Int()))
	result.ForEach(func(_, rowJSON gjson.Result) bool {
		table = append(table, normalizeRow(rowJSON, universeSize))
		return true
	})

	table.SortByPValue()
	return table, nil
}

func normalizeRow(rowJSON gjson.Result, universeSize int) enrich.Row {
	row := enrich.Row{
		Source:           rowJSON.Get("source").String(),
		TermID:           rowJSON.Get("native").String(),
		Name:             rowJSON.Get("name").String(),
		PValue:           rowJSON.Get("p_value").Float(),
		TermSize:         int(rowJSON.Get("term_size").Int()),
		IntersectionSize: int(rowJSON.Get("intersection_size").Int()),
	}

	intersections := rowJSON.Get("intersections")
	if !intersections.Exists() || !intersections.IsArray() {
		// Row-level degradation: keep the row, drop its evidence.
		if intersections.Exists() {
			log.Printf("[GProfiler] Row %s has mis-shaped intersections, degrading to empty evidence", row.TermID)
		}
		return row
	}

	vector := make([]enrich.Evidence, 0, universeSize)
	intersections.ForEach(func(_, entry gjson.Result) bool {
		vector = append(vector, normalizeEvidence(entry))
		return true
	})
	row.Evidence = vector
	return row
}

// normalizeEvidence maps one intersections entry onto the tagged variant:
// null/absent -> Empty, plain string -> Single, list -> List.
func normalizeEvidence(entry gjson.Result) enrich.Evidence {
	switch entry.Type {
	case gjson.Null:
		return enrich.EmptyEvidence()
	case gjson.String:
		return enrich.SingleEvidence(entry.String())
	default:
		if entry.IsArray() {
			codes := make([]string, 0)
			entry.ForEach(func(_, code gjson.Result) bool {
				codes = append(codes, code.String())
				return true
			})
			return enrich.ListEvidence(codes)
		}
		return enrich.EmptyEvidence()
	}
}
