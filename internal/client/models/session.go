package models

import "time"

// SessionPointer is the durable marker of which identity is currently
// logged in. It is the single canonical shape for both write sites (login
// and verify); there is exactly one encoder for it (see the sessions
// package).
//
// A pointer that does not resolve to a verified identity in the registry is
// discarded, never repaired.
type SessionPointer struct {
	Email    string
	Verified bool
	IssuedAt time.Time
}
