package models

import "strings"

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// The registry is keyed by the normalized form so "Ann@x.com" and
// "ann@x.com" cannot coexist as two identities.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
