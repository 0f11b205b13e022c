package gene

import (
	"strings"
)

// ID is a canonical gene identifier (an Entrez gene ID in string form).
// One enrichment run uses exactly one canonical ID namespace.
type ID string

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// Universe is the ordered, deduplicated set of canonical identifiers
// submitted to the enrichment query. Order is significant: it defines the
// positional alignment with the evidence vectors returned by the service,
// so a Universe must not be reordered between query and decode.
type Universe []ID

// Contains reports whether id is a member of the universe.
func (u Universe) Contains(id ID) bool {
	for _, candidate := range u {
		if candidate == id {
			return true
		}
	}
	return false
}

// Strings returns the universe as plain strings, in order.
func (u Universe) Strings() []string {
	out := make([]string, len(u))
	for i, id := range u {
		out[i] = string(id)
	}
	return out
}

// LabelMap maps a canonical identifier to its human-readable symbol.
type LabelMap map[ID]string

// Label returns the symbol for id, falling back to the identifier's own
// string form when no symbol was resolved.
func (m LabelMap) Label(id ID) string {
	if m != nil {
		if label, ok := m[id]; ok && label != "" {
			return label
		}
	}
	return string(id)
}

// ParseTokens splits free-text user input into candidate gene tokens.
// Tokens may be separated by newlines, commas, semicolons, or tabs;
// surrounding whitespace is trimmed and empty tokens are dropped.
// Duplicates are preserved here - deduplication happens on canonical IDs.
func ParseTokens(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ',' || r == ';' || r == '\t'
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := strings.TrimSpace(field)
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
