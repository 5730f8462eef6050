package domain

import "github.com/google/uuid"

// NewID returns an opaque identifier for questions and their
// sub-elements. Uniqueness only matters within one document, so a
// random UUID is plenty; no registry is kept.
func NewID() string {
	return uuid.NewString()
}
