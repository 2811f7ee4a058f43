package transport

// PricingRow is one formatted line of a customer's price list.
type PricingRow struct {
	ProductName         string `json:"productName"`
	CostPerMonth        string `json:"costPerMonth"`
	ATMFee              string `json:"atmFee"`
	CardReplacementCost string `json:"cardReplacementCost"`
}

// PricingData maps a region code to its ordered price rows.
type PricingData map[string][]PricingRow

// PricingResult is the single-lookup response. Exactly one of PricingData and
// ErrorMessage is non-nil; the shape never varies across code paths.
type PricingResult struct {
	PricingData  PricingData `json:"pricingData"`
	ErrorMessage *string     `json:"errorMessage"`
}

// BulkPricingRequest carries the query parameters of the public bulk lookup.
type BulkPricingRequest struct {
	UUIDs string `form:"uuids" validate:"max=10000"`
}

// CustomerPricing is one successful bulk entry.
type CustomerPricing struct {
	ContactName string      `json:"contactName"`
	PricingData PricingData `json:"pricingData"`
}

// BulkPricingResponse is the public bulk lookup envelope. Partial failures are
// itemized in Errors while Success stays true; Success is false only for a
// blank request or an unexpected top-level fault.
type BulkPricingResponse struct {
	Success     bool                       `json:"success"`
	Message     string                     `json:"message"`
	SuccessData map[string]CustomerPricing `json:"successData,omitempty"`
	Errors      map[string]string          `json:"errors,omitempty"`
}
