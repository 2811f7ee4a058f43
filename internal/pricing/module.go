// Package pricing provides the pricing bounded context module.
package pricing

import (
	directory "pricebook_backend/internal/directory/repository"
	"pricebook_backend/internal/errlog"
	apphttp "pricebook_backend/internal/http"
	"pricebook_backend/internal/pricing/handler"
	"pricebook_backend/internal/pricing/repository"
	"pricebook_backend/internal/pricing/service"
	"pricebook_backend/platform/config"
	"pricebook_backend/platform/logger"
	"pricebook_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the pricing bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the pricing module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, cfg *config.Config, log *logger.Logger) *Module {
	repo := repository.New(pool)
	dir := directory.New(pool)
	reporter := errlog.NewReporter(errlog.NewPGStore(pool), log)

	engine := service.NewEngine(repo)
	svc := service.New(engine, dir, reporter, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "pricing"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts pricing routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Internal lookup, invoked with a case/ticket reference
	ctx.V1.GET("/pricing/case/:reference", m.handler.GetCasePricing)

	// Public bulk lookup, rate limited
	ctx.Public.GET("/pricing", m.handler.GetBulkPricing)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
