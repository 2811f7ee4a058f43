package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	directory "pricebook_backend/internal/directory/repository"
	"pricebook_backend/internal/pricing/repository"
	"pricebook_backend/platform/apperr"
	"pricebook_backend/platform/config"
	"pricebook_backend/platform/logger"
)

// fakeDirectory stubs the customer directory and case store.
type fakeDirectory struct {
	byCaseRef    map[string]directory.Customer
	byExternalID map[string]directory.Customer
	caseErr      error
	batchErr     error
}

func (f *fakeDirectory) GetCustomerByCaseReference(_ context.Context, reference string) (directory.Customer, error) {
	if f.caseErr != nil {
		return directory.Customer{}, f.caseErr
	}
	customer, ok := f.byCaseRef[reference]
	if !ok {
		return directory.Customer{}, apperr.NotFound("customer not found")
	}
	return customer, nil
}

func (f *fakeDirectory) GetCustomersByExternalIDs(_ context.Context, externalIDs []string) ([]directory.Customer, error) {
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	customers := make([]directory.Customer, 0, len(externalIDs))
	for _, id := range externalIDs {
		if customer, ok := f.byExternalID[id]; ok {
			customers = append(customers, customer)
		}
	}
	return customers, nil
}

type reportedError struct {
	message    string
	actionName string
}

// fakeReporter records reported failures.
type fakeReporter struct {
	reports []reportedError
}

func (f *fakeReporter) Report(_ context.Context, message, actionName string) {
	f.reports = append(f.reports, reportedError{message: message, actionName: actionName})
}

func testLabels() config.Labels {
	return config.Labels{
		MissingContext: "Product or Home Country information is missing",
		NotFound:       "No contact found for the provided UUID.",
		NoPricing:      "No pricing information found for this customer.",
		GeneralError:   "An unexpected error occurred while retrieving pricing.",
	}
}

func newTestService(catalog repository.Repository, dir directory.Repository, reporter ErrorReporter, reportNoPricing bool) *Service {
	cfg := &config.Config{Labels: testLabels(), BulkReportNoPricing: reportNoPricing}
	return New(NewEngine(catalog), dir, reporter, cfg, logger.New("development"))
}

func customerWith(externalID, name string, productID *uuid.UUID, region *string) directory.Customer {
	return directory.Customer{
		ID:          uuid.New(),
		ExternalID:  externalID,
		DisplayName: name,
		ProductID:   productID,
		HomeRegion:  region,
	}
}

func strPtr(value string) *string { return &value }

func TestGetPricing_BlankReferenceIsContractViolation(t *testing.T) {
	svc := newTestService(&fakeCatalog{}, &fakeDirectory{}, &fakeReporter{}, false)

	for _, reference := range []string{"", "   "} {
		_, err := svc.GetPricing(context.Background(), reference)
		if err == nil {
			t.Fatalf("expected error for reference %q", reference)
		}
		if !apperr.Is(err, apperr.KindBadRequest) {
			t.Fatalf("expected bad request kind, got %v", apperr.GetKind(err))
		}
	}
}

func TestGetPricing_MissingRegionYieldsMissingContextMessage(t *testing.T) {
	productID := uuid.New()
	dir := &fakeDirectory{byCaseRef: map[string]directory.Customer{
		"CASE-1": customerWith("ext-1", "Ada Lovelace", &productID, nil),
	}}
	svc := newTestService(&fakeCatalog{}, dir, &fakeReporter{}, false)

	result, err := svc.GetPricing(context.Background(), "CASE-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PricingData != nil {
		t.Fatal("expected nil pricing data")
	}
	want := "Product or Home Country information is missing on the associated Contact."
	if result.ErrorMessage == nil || *result.ErrorMessage != want {
		t.Fatalf("expected %q, got %v", want, result.ErrorMessage)
	}
}

func TestGetPricing_UnknownCaseYieldsMissingContextMessage(t *testing.T) {
	svc := newTestService(&fakeCatalog{}, &fakeDirectory{}, &fakeReporter{}, false)

	result, err := svc.GetPricing(context.Background(), "CASE-UNKNOWN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ErrorMessage == nil || !strings.HasSuffix(*result.ErrorMessage, "on the associated Contact.") {
		t.Fatalf("expected missing context message, got %v", result.ErrorMessage)
	}
}

func TestGetPricing_NoEntriesYieldsNoPricingMessage(t *testing.T) {
	productID := uuid.New()
	dir := &fakeDirectory{byCaseRef: map[string]directory.Customer{
		"CASE-1": customerWith("ext-1", "Ada Lovelace", &productID, strPtr("DE")),
	}}
	svc := newTestService(&fakeCatalog{}, dir, &fakeReporter{}, false)

	result, err := svc.GetPricing(context.Background(), "CASE-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ErrorMessage == nil || *result.ErrorMessage != testLabels().NoPricing {
		t.Fatalf("expected no-pricing message, got %v", result.ErrorMessage)
	}
}

func TestGetPricing_Success(t *testing.T) {
	productID := uuid.New()
	catalog := &fakeCatalog{entries: []repository.PriceEntry{
		entry(productID, "Premium Card", "DE", "12 Months", "9.90", "EUR"),
	}}
	dir := &fakeDirectory{byCaseRef: map[string]directory.Customer{
		"CASE-1": customerWith("ext-1", "Ada Lovelace", &productID, strPtr("DE")),
	}}
	svc := newTestService(catalog, dir, &fakeReporter{}, false)

	result, err := svc.GetPricing(context.Background(), "CASE-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ErrorMessage != nil {
		t.Fatalf("expected no error message, got %q", *result.ErrorMessage)
	}
	rows := result.PricingData["DE"]
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ProductName != "Premium Card" || rows[0].CostPerMonth != "EUR 9.90" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

func TestGetPricing_FaultIsReportedAndGeneric(t *testing.T) {
	productID := uuid.New()
	catalog := &fakeCatalog{err: errors.New("connection refused")}
	dir := &fakeDirectory{byCaseRef: map[string]directory.Customer{
		"CASE-1": customerWith("ext-1", "Ada Lovelace", &productID, strPtr("DE")),
	}}
	reporter := &fakeReporter{}
	svc := newTestService(catalog, dir, reporter, false)

	result, err := svc.GetPricing(context.Background(), "CASE-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ErrorMessage == nil || *result.ErrorMessage != testLabels().GeneralError {
		t.Fatalf("expected general error label, got %v", result.ErrorMessage)
	}
	// The single-lookup path must not leak fault detail to the caller.
	if strings.Contains(*result.ErrorMessage, "connection refused") {
		t.Fatal("fault detail leaked into single-lookup response")
	}
	if len(reporter.reports) != 1 {
		t.Fatalf("expected 1 reported failure, got %d", len(reporter.reports))
	}
	if reporter.reports[0].actionName != "GetPricing" {
		t.Fatalf("unexpected action name %q", reporter.reports[0].actionName)
	}
}

func TestGetPricingBulk_PartitionsSuccessesAndErrors(t *testing.T) {
	productID := uuid.New()
	catalog := &fakeCatalog{entries: []repository.PriceEntry{
		entry(productID, "Premium Card", "DE", "12 Months", "9.90", "EUR"),
	}}
	dir := &fakeDirectory{byExternalID: map[string]directory.Customer{
		"A": customerWith("A", "Ada Lovelace", &productID, strPtr("DE")),
		"C": customerWith("C", "Charles Babbage", nil, strPtr("UK")),
	}}
	svc := newTestService(catalog, dir, &fakeReporter{}, false)

	response := svc.GetPricingBulk(context.Background(), []string{"A", "B", "C"})
	if !response.Success {
		t.Fatalf("expected success envelope, got %+v", response)
	}
	if response.Message != "Processed with errors." {
		t.Fatalf("unexpected message %q", response.Message)
	}
	if len(response.SuccessData) != 1 {
		t.Fatalf("expected 1 success entry, got %d", len(response.SuccessData))
	}
	success, ok := response.SuccessData["A"]
	if !ok {
		t.Fatal("expected success entry for A")
	}
	if success.ContactName != "Ada Lovelace" {
		t.Fatalf("unexpected contact name %q", success.ContactName)
	}
	if len(success.PricingData["DE"]) != 1 {
		t.Fatalf("expected 1 row for A, got %d", len(success.PricingData["DE"]))
	}
	if response.Errors["B"] != testLabels().NotFound {
		t.Fatalf("unexpected error for B: %q", response.Errors["B"])
	}
	if response.Errors["C"] != "missing product/region for id C" {
		t.Fatalf("unexpected error for C: %q", response.Errors["C"])
	}
}

func TestGetPricingBulk_BlankIDs(t *testing.T) {
	svc := newTestService(&fakeCatalog{}, &fakeDirectory{}, &fakeReporter{}, false)

	for _, ids := range [][]string{nil, {}, {""}, {" ", "  "}} {
		response := svc.GetPricingBulk(context.Background(), ids)
		if response.Success {
			t.Fatalf("expected failure for ids %v", ids)
		}
		if response.Message != MsgInvalidUUIDs {
			t.Fatalf("unexpected message %q", response.Message)
		}
		if response.Errors["error"] != MsgInvalidUUIDs {
			t.Fatalf("unexpected errors map: %v", response.Errors)
		}
		if len(response.SuccessData) != 0 {
			t.Fatal("expected no success data")
		}
	}
}

func TestGetPricingBulk_AllSuccessMessage(t *testing.T) {
	productID := uuid.New()
	catalog := &fakeCatalog{entries: []repository.PriceEntry{
		entry(productID, "Premium Card", "DE", "12 Months", "9.90", "EUR"),
	}}
	dir := &fakeDirectory{byExternalID: map[string]directory.Customer{
		"A": customerWith("A", "Ada Lovelace", &productID, strPtr("DE")),
	}}
	svc := newTestService(catalog, dir, &fakeReporter{}, false)

	response := svc.GetPricingBulk(context.Background(), []string{"A"})
	if !response.Success || response.Message != "Processed successfully." {
		t.Fatalf("unexpected envelope: %+v", response)
	}
	if len(response.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", response.Errors)
	}
}

func TestGetPricingBulk_NoPricingOmittedByDefault(t *testing.T) {
	productID := uuid.New()
	dir := &fakeDirectory{byExternalID: map[string]directory.Customer{
		"A": customerWith("A", "Ada Lovelace", &productID, strPtr("DE")),
	}}
	svc := newTestService(&fakeCatalog{}, dir, &fakeReporter{}, false)

	response := svc.GetPricingBulk(context.Background(), []string{"A"})
	if !response.Success {
		t.Fatalf("expected success envelope, got %+v", response)
	}
	if _, ok := response.SuccessData["A"]; ok {
		t.Fatal("expected A absent from success data")
	}
	if _, ok := response.Errors["A"]; ok {
		t.Fatal("expected A absent from errors by default")
	}
}

func TestGetPricingBulk_NoPricingItemizedWhenConfigured(t *testing.T) {
	productID := uuid.New()
	dir := &fakeDirectory{byExternalID: map[string]directory.Customer{
		"A": customerWith("A", "Ada Lovelace", &productID, strPtr("DE")),
	}}
	svc := newTestService(&fakeCatalog{}, dir, &fakeReporter{}, true)

	response := svc.GetPricingBulk(context.Background(), []string{"A"})
	if response.Errors["A"] != testLabels().NoPricing {
		t.Fatalf("expected itemized no-pricing error, got %v", response.Errors)
	}
}

func TestGetPricingBulk_FaultAppendsDetail(t *testing.T) {
	productID := uuid.New()
	catalog := &fakeCatalog{err: errors.New("timeout")}
	dir := &fakeDirectory{byExternalID: map[string]directory.Customer{
		"A": customerWith("A", "Ada Lovelace", &productID, strPtr("DE")),
	}}
	reporter := &fakeReporter{}
	svc := newTestService(catalog, dir, reporter, false)

	response := svc.GetPricingBulk(context.Background(), []string{"A"})
	if response.Success {
		t.Fatal("expected failure envelope")
	}
	// Unlike the single lookup, the bulk fault path includes the detail.
	if !strings.Contains(response.Message, "Details:") || !strings.Contains(response.Message, "timeout") {
		t.Fatalf("expected fault detail in message, got %q", response.Message)
	}
	if len(reporter.reports) != 1 || reporter.reports[0].actionName != "GetPricingBulk" {
		t.Fatalf("expected 1 reported bulk failure, got %+v", reporter.reports)
	}
}

func TestGetPricingBulk_RepeatedCallsAreIdentical(t *testing.T) {
	productID := uuid.New()
	catalog := &fakeCatalog{entries: []repository.PriceEntry{
		entry(productID, "Premium Card", "DE", "12 Months", "9.90", "EUR"),
		entry(productID, "Premium Card", "DE", "24 Months", "7.90", "EUR"),
	}}
	dir := &fakeDirectory{byExternalID: map[string]directory.Customer{
		"A": customerWith("A", "Ada Lovelace", &productID, strPtr("DE")),
	}}
	svc := newTestService(catalog, dir, &fakeReporter{}, false)

	first := svc.GetPricingBulk(context.Background(), []string{"A"})
	second := svc.GetPricingBulk(context.Background(), []string{"A"})

	firstRows := first.SuccessData["A"].PricingData["DE"]
	secondRows := second.SuccessData["A"].PricingData["DE"]
	if len(firstRows) != 2 || len(secondRows) != 2 {
		t.Fatalf("expected 2 rows each, got %d and %d", len(firstRows), len(secondRows))
	}
	for i := range firstRows {
		if firstRows[i] != secondRows[i] {
			t.Fatalf("row %d differs between identical calls: %+v vs %+v", i, firstRows[i], secondRows[i])
		}
	}
}
