// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// ErrOptionNotFound is returned when a mutation references an option id
// that does not exist.
var ErrOptionNotFound = errors.New("option not found")

// ValidationError reports a locally rejected field. It never reaches the
// database.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// AsValidation unwraps a ValidationError if err carries one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// isUniqueViolation reports whether err is a uniqueness-constraint
// violation from either supported driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	// modernc.org/sqlite reports constraint failures by message only
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
