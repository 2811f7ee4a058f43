package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repo implements the pricing catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new pricing catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// FindActiveEntries retrieves active price entries for the given product and
// region sets in one query. Amounts are selected as text and parsed into
// decimals so values round-trip without float drift.
func (r *Repo) FindActiveEntries(ctx context.Context, productIDs []uuid.UUID, regionCodes []string) ([]PriceEntry, error) {
	query := `
		SELECT e.id, e.product_id, p.name, e.catalog_id, c.region_code,
			e.unit_price::text, e.currency_code, e.contract_length,
			e.atm_fee_percent::text, e.replacement_cost::text
		FROM price_entries e
		JOIN products p ON p.id = e.product_id
		JOIN price_catalogs c ON c.id = e.catalog_id
		WHERE e.active AND p.active AND c.active
			AND e.product_id = ANY($1)
			AND c.region_code = ANY($2)
		ORDER BY c.region_code ASC, p.name ASC, e.contract_length ASC, e.id ASC`

	rows, err := r.pool.Query(ctx, query, productIDs, regionCodes)
	if err != nil {
		return nil, fmt.Errorf("find active price entries: %w", err)
	}
	defer rows.Close()

	items := make([]PriceEntry, 0)
	for rows.Next() {
		var entry PriceEntry
		var unitPrice string
		var atmFee, replacementCost *string
		if err := rows.Scan(
			&entry.ID, &entry.ProductID, &entry.ProductName, &entry.CatalogID, &entry.RegionCode,
			&unitPrice, &entry.CurrencyCode, &entry.ContractLength,
			&atmFee, &replacementCost,
		); err != nil {
			return nil, fmt.Errorf("scan price entry: %w", err)
		}

		if entry.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("parse unit price %q: %w", unitPrice, err)
		}
		if entry.ATMFeePercent, err = parseOptionalDecimal(atmFee); err != nil {
			return nil, fmt.Errorf("parse atm fee: %w", err)
		}
		if entry.ReplacementCost, err = parseOptionalDecimal(replacementCost); err != nil {
			return nil, fmt.Errorf("parse replacement cost: %w", err)
		}

		items = append(items, entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate price entries: %w", rows.Err())
	}

	return items, nil
}

func parseOptionalDecimal(value *string) (*decimal.Decimal, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := decimal.NewFromString(*value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
