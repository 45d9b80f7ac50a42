// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package recommend

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a caller supplies input the engine
// cannot act on, such as a non-positive result size. Always wrapped; test
// with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// DataIntegrityError reports a catalog record that is missing a required
// attribute or carries a malformed one.
type DataIntegrityError struct {
	// BottleID identifies the offending record. Empty when the record has no id.
	BottleID string

	// Field is the attribute that failed the check (e.g. "price", "flavor.smoky").
	Field string

	// Reason is a short human-readable description of the failure.
	Reason string
}

// Error implements the error interface.
func (e *DataIntegrityError) Error() string {
	id := e.BottleID
	if id == "" {
		id = "<missing id>"
	}
	return fmt.Sprintf("bottle %s: %s: %s", id, e.Field, e.Reason)
}
