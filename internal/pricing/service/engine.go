package service

import (
	"context"

	"github.com/google/uuid"

	"pricebook_backend/internal/pricing/repository"
	"pricebook_backend/internal/pricing/transport"
	"pricebook_backend/platform/apperr"
)

const catalogUnavailableMessage = "pricing catalog unavailable"

// CustomerContext is the (product, region) pair needed to resolve pricing for
// one customer, keyed by the customer's external identifier.
type CustomerContext struct {
	CustomerKey string
	ProductID   uuid.UUID
	RegionCode  string
}

// Engine resolves (product, region) pairs into formatted price rows grouped
// by region. It is stateless; every call is one catalog query followed by
// in-memory assembly.
type Engine struct {
	repo repository.Repository
}

// NewEngine creates a resolution engine over the given catalog store.
func NewEngine(repo repository.Repository) *Engine {
	return &Engine{repo: repo}
}

// Resolve returns the price rows for a single (product, region) pair, grouped
// under the region code. An empty mapping means no pricing is configured; the
// caller decides whether that is an error.
func (e *Engine) Resolve(ctx context.Context, productID uuid.UUID, regionCode string) (transport.PricingData, error) {
	entries, err := e.repo.FindActiveEntries(ctx, []uuid.UUID{productID}, []string{regionCode})
	if err != nil {
		return nil, apperr.Unavailable(catalogUnavailableMessage, err)
	}

	data := make(transport.PricingData)
	for _, entry := range entries {
		data[entry.RegionCode] = append(data[entry.RegionCode], toPricingRow(entry))
	}
	return data, nil
}

// ResolveBatch resolves many customer contexts with a single catalog query
// keyed by the union of their products and regions. Contexts with no matching
// entries are absent from the result. A store fault fails the whole call;
// partial results are never returned.
func (e *Engine) ResolveBatch(ctx context.Context, contexts []CustomerContext) (map[string]transport.PricingData, error) {
	if len(contexts) == 0 {
		return map[string]transport.PricingData{}, nil
	}

	productIDs := make([]uuid.UUID, 0, len(contexts))
	regionCodes := make([]string, 0, len(contexts))
	seenProducts := make(map[uuid.UUID]struct{}, len(contexts))
	seenRegions := make(map[string]struct{}, len(contexts))
	for _, cc := range contexts {
		if _, ok := seenProducts[cc.ProductID]; !ok {
			seenProducts[cc.ProductID] = struct{}{}
			productIDs = append(productIDs, cc.ProductID)
		}
		if _, ok := seenRegions[cc.RegionCode]; !ok {
			seenRegions[cc.RegionCode] = struct{}{}
			regionCodes = append(regionCodes, cc.RegionCode)
		}
	}

	entries, err := e.repo.FindActiveEntries(ctx, productIDs, regionCodes)
	if err != nil {
		return nil, apperr.Unavailable(catalogUnavailableMessage, err)
	}

	results := make(map[string]transport.PricingData, len(contexts))
	for _, cc := range contexts {
		var data transport.PricingData
		for _, entry := range entries {
			if entry.ProductID != cc.ProductID || entry.RegionCode != cc.RegionCode {
				continue
			}
			if data == nil {
				data = make(transport.PricingData)
			}
			data[entry.RegionCode] = append(data[entry.RegionCode], toPricingRow(entry))
		}
		if data != nil {
			results[cc.CustomerKey] = data
		}
	}
	return results, nil
}

// toPricingRow formats one catalog entry. Entries differing only by contract
// length become separate rows; the engine never deduplicates.
func toPricingRow(entry repository.PriceEntry) transport.PricingRow {
	unitPrice := entry.UnitPrice
	return transport.PricingRow{
		ProductName:         entry.ProductName,
		CostPerMonth:        FormatAmount(&unitPrice, entry.CurrencyCode),
		ATMFee:              FormatFeePercent(entry.ATMFeePercent),
		CardReplacementCost: FormatAmount(entry.ReplacementCost, entry.CurrencyCode),
	}
}
