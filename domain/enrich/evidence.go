package enrich

// EvidenceKind tags the normalized shape of one evidence vector position.
// The external service is loose about shapes (absent, a single code, or a
// list of codes); the adapter normalizes into this variant before any core
// logic runs.
type EvidenceKind int

const (
	EvidenceEmpty EvidenceKind = iota
	EvidenceSingle
	EvidenceList
)

// Evidence is one position of a row's evidence vector. Positions align
// one-to-one with the identifier universe submitted in the query.
type Evidence struct {
	Kind  EvidenceKind `json:"kind"`
	Codes []string     `json:"codes,omitempty"`
}

// EmptyEvidence marks a non-hit position.
func EmptyEvidence() Evidence {
	return Evidence{Kind: EvidenceEmpty}
}

// SingleEvidence marks a hit carrying one evidence code.
func SingleEvidence(code string) Evidence {
	if code == "" {
		return EmptyEvidence()
	}
	return Evidence{Kind: EvidenceSingle, Codes: []string{code}}
}

// ListEvidence marks a hit carrying zero or more evidence codes. An empty
// or all-blank list is a non-hit.
func ListEvidence(codes []string) Evidence {
	kept := make([]string, 0, len(codes))
	for _, code := range codes {
		if code != "" {
			kept = append(kept, code)
		}
	}
	if len(kept) == 0 {
		return EmptyEvidence()
	}
	return Evidence{Kind: EvidenceList, Codes: kept}
}

// IsHit reports whether this position counts as a hit. The codes themselves
// are never interpreted beyond this boolean.
func (e Evidence) IsHit() bool {
	return e.Kind != EvidenceEmpty && len(e.Codes) > 0
}
