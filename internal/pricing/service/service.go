package service

import (
	"context"
	"fmt"
	"strings"

	directory "pricebook_backend/internal/directory/repository"
	"pricebook_backend/internal/pricing/transport"
	"pricebook_backend/platform/apperr"
	"pricebook_backend/platform/config"
	"pricebook_backend/platform/logger"
)

const (
	msgEmptyReference    = "case reference is required"
	MsgInvalidUUIDs      = "Invalid or missing UUID(s)."
	msgProcessedOK       = "Processed successfully."
	msgProcessedErrors   = "Processed with errors."
	missingContextSuffix = " on the associated Contact."

	actionGetPricing     = "GetPricing"
	actionGetPricingBulk = "GetPricingBulk"
)

// ErrorReporter persists failure records best-effort.
type ErrorReporter interface {
	Report(ctx context.Context, message, actionName string)
}

// Service provides the single and bulk pricing lookups.
type Service struct {
	engine          *Engine
	directory       directory.Repository
	reporter        ErrorReporter
	labels          config.Labels
	reportNoPricing bool
	log             *logger.Logger
}

// New creates a new pricing lookup service. The label table and the
// no-pricing reporting switch come from configuration.
func New(engine *Engine, dir directory.Repository, reporter ErrorReporter, cfg config.PricingConfig, log *logger.Logger) *Service {
	return &Service{
		engine:          engine,
		directory:       dir,
		reporter:        reporter,
		labels:          cfg.GetLabels(),
		reportNoPricing: cfg.GetBulkReportNoPricing(),
		log:             log,
	}
}

// GetPricing resolves one case reference to its customer's price list.
//
// A blank reference is a contract violation and is returned on the error
// channel; every data condition (missing context, no pricing, unexpected
// fault) is returned inside the result with exactly one of PricingData and
// ErrorMessage set. The fault path deliberately exposes only the general
// label; the underlying error goes to the error log.
func (s *Service) GetPricing(ctx context.Context, reference string) (transport.PricingResult, error) {
	if strings.TrimSpace(reference) == "" {
		return transport.PricingResult{}, apperr.BadRequest(msgEmptyReference)
	}

	customer, err := s.directory.GetCustomerByCaseReference(ctx, reference)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return s.missingContextResult(reference), nil
		}
		return s.faultResult(ctx, reference, err), nil
	}

	if customer.ProductID == nil || customer.HomeRegion == nil || *customer.HomeRegion == "" {
		return s.missingContextResult(reference), nil
	}

	data, err := s.engine.Resolve(ctx, *customer.ProductID, *customer.HomeRegion)
	if err != nil {
		return s.faultResult(ctx, reference, err), nil
	}

	if len(data) == 0 {
		s.log.LookupFailure(actionGetPricing, reference, "no pricing configured")
		message := s.labels.NoPricing
		return transport.PricingResult{ErrorMessage: &message}, nil
	}

	return transport.PricingResult{PricingData: data}, nil
}

// GetPricingBulk resolves a batch of external customer identifiers in one
// pass: one directory query, one catalog query. The response always carries
// partial successes next to itemized per-id errors; only a blank request or
// an unexpected fault fails the call as a whole.
func (s *Service) GetPricingBulk(ctx context.Context, externalIDs []string) transport.BulkPricingResponse {
	ids := make([]string, 0, len(externalIDs))
	for _, id := range externalIDs {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	if len(ids) == 0 {
		return transport.BulkPricingResponse{
			Success: false,
			Message: MsgInvalidUUIDs,
			Errors:  map[string]string{"error": MsgInvalidUUIDs},
		}
	}

	customers, err := s.directory.GetCustomersByExternalIDs(ctx, ids)
	if err != nil {
		return s.bulkFault(ctx, err)
	}

	byExternalID := make(map[string]directory.Customer, len(customers))
	for _, customer := range customers {
		byExternalID[customer.ExternalID] = customer
	}

	successData := make(map[string]transport.CustomerPricing)
	errorsByID := make(map[string]string)
	contexts := make([]CustomerContext, 0, len(ids))
	for _, id := range ids {
		customer, ok := byExternalID[id]
		if !ok {
			errorsByID[id] = s.labels.NotFound
			continue
		}
		if customer.ProductID == nil || customer.HomeRegion == nil || *customer.HomeRegion == "" {
			errorsByID[id] = fmt.Sprintf("missing product/region for id %s", id)
			continue
		}
		contexts = append(contexts, CustomerContext{
			CustomerKey: id,
			ProductID:   *customer.ProductID,
			RegionCode:  *customer.HomeRegion,
		})
	}

	results, err := s.engine.ResolveBatch(ctx, contexts)
	if err != nil {
		return s.bulkFault(ctx, err)
	}

	for _, cc := range contexts {
		data, ok := results[cc.CustomerKey]
		if !ok {
			// A complete context with zero catalog entries is omitted from
			// both maps unless reporting is switched on.
			if s.reportNoPricing {
				errorsByID[cc.CustomerKey] = s.labels.NoPricing
			}
			continue
		}
		successData[cc.CustomerKey] = transport.CustomerPricing{
			ContactName: byExternalID[cc.CustomerKey].DisplayName,
			PricingData: data,
		}
	}

	message := msgProcessedOK
	if len(errorsByID) > 0 {
		message = msgProcessedErrors
	}
	return transport.BulkPricingResponse{
		Success:     true,
		Message:     message,
		SuccessData: successData,
		Errors:      errorsByID,
	}
}

func (s *Service) missingContextResult(reference string) transport.PricingResult {
	s.log.LookupFailure(actionGetPricing, reference, "missing pricing context")
	message := s.labels.MissingContext + missingContextSuffix
	return transport.PricingResult{ErrorMessage: &message}
}

func (s *Service) faultResult(ctx context.Context, reference string, err error) transport.PricingResult {
	s.log.Error("pricing lookup failed", "reference", reference, "error", err)
	s.reporter.Report(ctx, err.Error(), actionGetPricing)
	message := s.labels.GeneralError
	return transport.PricingResult{ErrorMessage: &message}
}

// bulkFault builds the top-level failure envelope. Unlike the single lookup,
// this path appends the fault detail to the user-facing message; the
// discrepancy is inherited behavior and kept on purpose.
func (s *Service) bulkFault(ctx context.Context, err error) transport.BulkPricingResponse {
	s.log.Error("bulk pricing lookup failed", "error", err)
	s.reporter.Report(ctx, err.Error(), actionGetPricingBulk)
	return transport.BulkPricingResponse{
		Success: false,
		Message: fmt.Sprintf("%s Details: %s", s.labels.GeneralError, err.Error()),
	}
}
