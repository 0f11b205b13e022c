package enrich

import (
	"genoscope/domain/gene"
)

// Override names one manual force-add to apply during assembly.
type Override struct {
	TermID string `json:"term_id"`
	Label  string `json:"label"`
}

// AssembleOptions configures one assembly pass.
// SimplifyTau <= 0 disables redundancy reduction.
type AssembleOptions struct {
	Overrides   []Override `json:"overrides,omitempty"`
	SimplifyTau float64    `json:"simplify_tau,omitempty"`
}

// Clone copies the options so a mutated copy never aliases the original's
// override list.
func (o AssembleOptions) Clone() AssembleOptions {
	out := o
	if o.Overrides != nil {
		out.Overrides = append([]Override(nil), o.Overrides...)
	}
	return out
}

// Assemble produces the final presented table: decode every row against
// the universe, apply any manual overrides, optionally reduce redundant
// rows, and return the result sorted ascending by p-value.
//
// The stage order is load-bearing: overrides run strictly after decoding
// (so they operate on the derived label lists) and reduction runs on raw
// hit sets (so forced labels never feed back into it). Row-level
// malformation has already degraded to empty hit data inside Decode, so
// assembly never fails on a bad row.
func Assemble(table Table, universe gene.Universe, labels gene.LabelMap, opts AssembleOptions) (Table, error) {
	out := DecodeTable(table, universe, labels)

	for _, ov := range opts.Overrides {
		out = ForceAdd(out, ov.TermID, ov.Label)
	}

	if opts.SimplifyTau > 0 {
		reduced, err := Simplify(out, opts.SimplifyTau)
		if err != nil {
			return nil, err
		}
		out = reduced
	}

	out.SortByPValue()
	return out, nil
}
