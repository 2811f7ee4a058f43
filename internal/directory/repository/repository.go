package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pricebook_backend/platform/apperr"
)

const customerNotFoundMessage = "customer not found"

// Repo implements the directory repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new directory repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetCustomerByCaseReference resolves a case reference to its customer record.
func (r *Repo) GetCustomerByCaseReference(ctx context.Context, reference string) (Customer, error) {
	query := `
		SELECT cu.id, cu.external_id, cu.display_name, cu.product_id, cu.home_region
		FROM cases ca
		JOIN customers cu ON cu.id = ca.customer_id
		WHERE ca.reference = $1`

	var customer Customer
	if err := r.pool.QueryRow(ctx, query, reference).Scan(
		&customer.ID, &customer.ExternalID, &customer.DisplayName, &customer.ProductID, &customer.HomeRegion,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, apperr.NotFound(customerNotFoundMessage)
		}
		return Customer{}, fmt.Errorf("get customer by case reference: %w", err)
	}

	return customer, nil
}

// GetCustomersByExternalIDs retrieves customers for a batch of external ids.
func (r *Repo) GetCustomersByExternalIDs(ctx context.Context, externalIDs []string) ([]Customer, error) {
	query := `
		SELECT id, external_id, display_name, product_id, home_region
		FROM customers
		WHERE external_id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, externalIDs)
	if err != nil {
		return nil, fmt.Errorf("get customers by external ids: %w", err)
	}
	defer rows.Close()

	items := make([]Customer, 0, len(externalIDs))
	for rows.Next() {
		var customer Customer
		if err := rows.Scan(
			&customer.ID, &customer.ExternalID, &customer.DisplayName, &customer.ProductID, &customer.HomeRegion,
		); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		items = append(items, customer)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate customers: %w", rows.Err())
	}

	return items, nil
}
