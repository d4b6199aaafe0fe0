// Package identities persists the local user registry: the durable set of
// all registered (possibly unverified) identities.
package identities

import (
	"context"

	"github.com/dmitrijs2005/lifeboard/internal/client/models"
)

// Repository is the durable registry of identities. Identities are keyed by
// normalized email; records are inserted or replaced, never deleted.
type Repository interface {
	// GetAll returns every identity in the registry.
	GetAll(ctx context.Context) ([]models.Identity, error)

	// GetByEmail returns the identity for the given normalized email, or
	// common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.Identity, error)

	// Upsert inserts the identity, or replaces the record with the same email.
	Upsert(ctx context.Context, identity *models.Identity) error

	// MarkVerified flips the identity's verified flag to true.
	MarkVerified(ctx context.Context, email string) error
}
