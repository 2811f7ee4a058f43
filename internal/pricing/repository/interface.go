package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceEntry is one active catalog row linking a product to a region price
// book, denormalized with the product name and the catalog's region code.
type PriceEntry struct {
	ID              uuid.UUID        `db:"id"`
	ProductID       uuid.UUID        `db:"product_id"`
	ProductName     string           `db:"product_name"`
	CatalogID       uuid.UUID        `db:"catalog_id"`
	RegionCode      string           `db:"region_code"`
	UnitPrice       decimal.Decimal  `db:"unit_price"`
	CurrencyCode    string           `db:"currency_code"`
	ContractLength  string           `db:"contract_length"`
	ATMFeePercent   *decimal.Decimal `db:"atm_fee_percent"`
	ReplacementCost *decimal.Decimal `db:"replacement_cost"`
}

// Repository defines read-only access to the pricing catalog.
//
// FindActiveEntries accepts set-valued filters so a bulk resolution can be
// served by a single query. It returns entries whose own active flag, parent
// product, and parent catalog are all active, in stable order. An empty
// result is a valid outcome, not an error.
type Repository interface {
	FindActiveEntries(ctx context.Context, productIDs []uuid.UUID, regionCodes []string) ([]PriceEntry, error)
}
