// Package common holds the identifier and annotation primitives shared by
// every layer.
package common

import (
	"fmt"

	"github.com/google/uuid"
)

// ID identifies molecules and classification results. It is a UUID v4 in
// string form so it serializes naturally in JSON and SQL.
type ID string

// NewID generates a new random ID.
func NewID() ID {
	return ID(uuid.New().String())
}

// Validate reports whether the ID is a well-formed UUID.
func (id ID) Validate() error {
	if id == "" {
		return fmt.Errorf("ID cannot be empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return fmt.Errorf("invalid ID format: %w", err)
	}
	return nil
}

// Metadata is an open-ended annotation bag, used for SD data items and
// other free-form record properties.
type Metadata map[string]interface{}
