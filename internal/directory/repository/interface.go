package repository

import (
	"context"

	"github.com/google/uuid"
)

// Customer is a directory record. ProductID and HomeRegion are nullable:
// a record may exist without the context needed to resolve pricing.
type Customer struct {
	ID          uuid.UUID  `db:"id"`
	ExternalID  string     `db:"external_id"`
	DisplayName string     `db:"display_name"`
	ProductID   *uuid.UUID `db:"product_id"`
	HomeRegion  *string    `db:"home_region"`
}

// Repository defines read-only access to the customer directory and the
// case/ticket store. Both are external record owners; this layer only
// resolves references to customer records.
type Repository interface {
	// GetCustomerByCaseReference resolves a case/ticket reference to its
	// customer record. Returns apperr.NotFound when either the case or the
	// customer does not exist.
	GetCustomerByCaseReference(ctx context.Context, reference string) (Customer, error)

	// GetCustomersByExternalIDs retrieves customers for a batch of external
	// identifiers in one query. Unknown identifiers are simply absent from
	// the result.
	GetCustomersByExternalIDs(ctx context.Context, externalIDs []string) ([]Customer, error)
}
