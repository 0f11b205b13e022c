package gene

import (
	"fmt"

	"genoscope/domain/core"
)

// Species selects the organism for both external collaborators: the
// annotation service keys on the NCBI taxon ID, the enrichment service on
// its own organism code, and pathway deep links on the KEGG prefix.
type Species struct {
	Key        string `json:"key"`
	CommonName string `json:"common_name"`
	TaxonID    int    `json:"taxon_id"`
	Organism   string `json:"organism"`
	KEGGPrefix string `json:"kegg_prefix"`
}

var speciesRegistry = []Species{
	{Key: "human", CommonName: "Human (Homo sapiens)", TaxonID: 9606, Organism: "hsapiens", KEGGPrefix: "hsa"},
	{Key: "mouse", CommonName: "Mouse (Mus musculus)", TaxonID: 10090, Organism: "mmusculus", KEGGPrefix: "mmu"},
	{Key: "rat", CommonName: "Rat (Rattus norvegicus)", TaxonID: 10116, Organism: "rnorvegicus", KEGGPrefix: "rno"},
}

// Species lookup by key ("human", "mouse", "rat").
func SpeciesByKey(key string) (Species, error) {
	for _, s := range speciesRegistry {
		if s.Key == key {
			return s, nil
		}
	}
	return Species{}, fmt.Errorf("%w: %s", core.ErrUnknownSpecies, key)
}

// AllSpecies returns the supported species in registry order.
func AllSpecies() []Species {
	out := make([]Species, len(speciesRegistry))
	copy(out, speciesRegistry)
	return out
}

// DefaultSpecies is the species assumed when the caller does not pick one.
func DefaultSpecies() Species {
	return speciesRegistry[0]
}
