package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)

	// Resolution errors
	ErrNoTokensResolved = errors.New("no input tokens resolved to canonical identifiers")
	ErrEmptyTokenList   = errors.New("empty token list")
	ErrUnknownSpecies   = errors.New("unknown species")

	// Enrichment service errors
	ErrMalformedResponse = errors.New("malformed enrichment response")
	ErrEmptyResultSet    = errors.New("no significant pathways")

	// Validation errors
	ErrInvalidThreshold = errors.New("similarity threshold out of range")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewResolutionError(attempted, resolved int) error {
	return fmt.Errorf("%w: %d of %d tokens resolved", ErrNoTokensResolved, resolved, attempted)
}

func NewMalformedResponseError(detail string) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, detail)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsResolutionError(err error) bool {
	return errors.Is(err, ErrNoTokensResolved)
}

func IsMalformedResponseError(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}
