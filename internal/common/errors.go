// Package common defines shared constants and sentinel errors used across
// the lifeboard client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Session errors (undecodable or tampered stored session).
	ErrSessionInvalid = errors.New("invalid session")
)
