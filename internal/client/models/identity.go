// Package models defines client-side data models for the lifeboard auth core.
package models

// Identity is a registered (possibly unverified) user record kept in the
// local registry. PasswordSecret is stored as entered; this is a mock of a
// backend credential store, not a security boundary.
type Identity struct {
	// ID is a globally unique identifier for the identity.
	ID string

	// Name is the display name entered at signup.
	Name string

	// Email is the registry key. It is stored normalized (trimmed,
	// lowercased); see NormalizeEmail.
	Email string

	// PasswordSecret is the signup password, compared by exact match.
	PasswordSecret string

	// Verified flips false→true once the one-time code is confirmed.
	// It is never flipped back.
	Verified bool
}

// Profile is the public-facing view of an authenticated identity, derived
// from a restored session or a fresh login/verify. It never carries the
// password secret.
type Profile struct {
	ID       string
	Name     string
	Email    string
	Verified bool
}

// ProfileOf extracts the public fields of an identity.
func ProfileOf(id Identity) Profile {
	return Profile{ID: id.ID, Name: id.Name, Email: id.Email, Verified: id.Verified}
}
