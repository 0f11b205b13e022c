package gene

// Resolution is the annotation service's answer for one input token.
// Responses are matched to tokens by the Token field, never by position.
type Resolution struct {
	Token    string `json:"token"`
	ID       ID     `json:"id"`
	Symbol   string `json:"symbol"`
	Resolved bool   `json:"resolved"`
}

// Diagnostics counts how the input token list fared during resolution.
type Diagnostics struct {
	Attempted  int `json:"attempted"`
	Resolved   int `json:"resolved"`
	Unresolved int `json:"unresolved"`
}

// BuildUniverse folds a batch of resolutions into the identifier universe
// and its label map. Unresolved tokens are dropped but counted; duplicate
// canonical IDs keep their first occurrence so the universe stays ordered
// and duplicate-free. The returned universe order is the order the
// enrichment query must use.
func BuildUniverse(resolutions []Resolution) (Universe, LabelMap, Diagnostics) {
	universe := make(Universe, 0, len(resolutions))
	labels := make(LabelMap, len(resolutions))
	seen := make(map[ID]bool, len(resolutions))

	diag := Diagnostics{Attempted: len(resolutions)}
	for _, res := range resolutions {
		if !res.Resolved || res.ID == "" {
			diag.Unresolved++
			continue
		}
		diag.Resolved++
		if seen[res.ID] {
			continue
		}
		seen[res.ID] = true
		universe = append(universe, res.ID)
		if res.Symbol != "" {
			labels[res.ID] = res.Symbol
		}
	}

	return universe, labels, diag
}
