package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hungrynow/hungrynow/internal/domain"
	"github.com/hungrynow/hungrynow/pkg/database"
	apperrors "github.com/hungrynow/hungrynow/pkg/errors"
)

const addressColumns = `id, label, address_detail, latitude, longitude, is_default`

// AddressRepository implements repository.AddressRepository using
// PostgreSQL. Writes that set a default run in a transaction together with
// clearing the previous default.
type AddressRepository struct {
	db  database.DBTX
	now func() time.Time
}

// NewAddressRepository creates a new PostgreSQL-backed address repository.
func NewAddressRepository(db database.DBTX) *AddressRepository {
	return &AddressRepository{db: db, now: time.Now}
}

// Create inserts a new address for the user.
func (r *AddressRepository) Create(ctx context.Context, userID string, a *domain.Address) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if a.IsDefault {
		if _, err := tx.Exec(ctx,
			`UPDATE addresses SET is_default = false WHERE user_id = $1 AND is_default = true`,
			userID,
		); err != nil {
			return fmt.Errorf("unset default address: %w", err)
		}
	}

	query := `
		INSERT INTO addresses (id, user_id, label, address_detail, latitude, longitude, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := tx.Exec(ctx, query,
		a.ID, userID, a.Label, a.AddressDetail, a.Latitude, a.Longitude, a.IsDefault, r.now().UTC(),
	); err != nil {
		return fmt.Errorf("insert address: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID retrieves one of the user's addresses.
func (r *AddressRepository) GetByID(ctx context.Context, userID, id string) (*domain.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1 AND user_id = $2`

	var a domain.Address
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&a.ID, &a.Label, &a.AddressDetail, &a.Latitude, &a.Longitude, &a.IsDefault,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("address", id)
		}
		return nil, fmt.Errorf("get address: %w", err)
	}
	return &a, nil
}

// ListByUserID returns the user's addresses oldest first.
func (r *AddressRepository) ListByUserID(ctx context.Context, userID string) (_ []domain.Address, err error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY created_at ASC, id ASC`

	ctx, end := database.TraceQuery(ctx, "ListAddresses", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	addresses := []domain.Address{}
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.Label, &a.AddressDetail, &a.Latitude, &a.Longitude, &a.IsDefault); err != nil {
			return nil, fmt.Errorf("scan address row: %w", err)
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate address rows: %w", err)
	}
	return addresses, nil
}

// Update overwrites one of the user's addresses.
func (r *AddressRepository) Update(ctx context.Context, userID string, a *domain.Address) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if a.IsDefault {
		if _, err := tx.Exec(ctx,
			`UPDATE addresses SET is_default = false WHERE user_id = $1 AND id <> $2 AND is_default = true`,
			userID, a.ID,
		); err != nil {
			return fmt.Errorf("unset default address: %w", err)
		}
	}

	query := `
		UPDATE addresses
		SET label = $1, address_detail = $2, latitude = $3, longitude = $4, is_default = $5
		WHERE id = $6 AND user_id = $7`
	ct, err := tx.Exec(ctx, query,
		a.Label, a.AddressDetail, a.Latitude, a.Longitude, a.IsDefault, a.ID, userID,
	)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("address", a.ID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Delete removes one of the user's addresses.
func (r *AddressRepository) Delete(ctx context.Context, userID, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("address", id)
	}
	return nil
}
