package identities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lifeboard/internal/client/models"
	"github.com/dmitrijs2005/lifeboard/internal/common"
	"github.com/dmitrijs2005/lifeboard/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// GetAll lists every identity in the registry.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Identity, error) {
	query := `select id, name, email, password_secret, verified from identities`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select identities: %w", err)
	}
	defer rows.Close()

	var result []models.Identity
	for rows.Next() {
		var item models.Identity
		if err := rows.Scan(&item.ID, &item.Name, &item.Email, &item.PasswordSecret, &item.Verified); err != nil {
			return nil, fmt.Errorf("failed to scan identity row: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByEmail returns a single identity or common.ErrorNotFound.
func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.Identity, error) {
	query := `select id, name, email, password_secret, verified from identities where email = ?`
	row := r.db.QueryRowContext(ctx, query, email)

	item := &models.Identity{}
	if err := row.Scan(&item.ID, &item.Name, &item.Email, &item.PasswordSecret, &item.Verified); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get identity[%s]: %w", email, err)
	}
	return item, nil
}

// Upsert inserts an identity by email. On conflict the whole record is replaced.
func (r *SQLiteRepository) Upsert(ctx context.Context, identity *models.Identity) error {
	query := `
		INSERT INTO identities (id, name, email, password_secret, verified)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			id = excluded.id,
			name = excluded.name,
			password_secret = excluded.password_secret,
			verified = excluded.verified
	`
	_, err := r.db.ExecContext(ctx, query,
		identity.ID, identity.Name, identity.Email, identity.PasswordSecret, identity.Verified)
	if err != nil {
		return fmt.Errorf("failed to upsert identity: %w", err)
	}
	return nil
}

// MarkVerified flips verified to true. It expects exactly one row to be affected.
func (r *SQLiteRepository) MarkVerified(ctx context.Context, email string) error {
	query := `update identities set verified = 1 where email = ?`
	res, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return fmt.Errorf("failed to mark identity verified: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("wrong rows affected count: %d", ra)
	}
	return nil
}
