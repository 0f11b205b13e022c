package core

import (
	"github.com/google/uuid"
)

// RunID identifies one query/response cycle of the pipeline.
type RunID string

// NewRunID generates a new unique run identifier.
func NewRunID() RunID {
	return RunID(uuid.New().String())
}

// String returns the string representation
func (id RunID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id RunID) IsEmpty() bool {
	return id == ""
}
