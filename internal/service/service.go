package service

import (
	"github.com/jonboulle/clockwork"

	"tourdesk/internal/catalog"
	"tourdesk/internal/checkout"
)

type Services struct {
	Catalog  *CatalogService
	Checkout *CheckoutService
}

func NewServices(source catalog.Source, searcher Searcher, cfg checkout.Config, clock clockwork.Clock, notifier checkout.Notifier, gauge SessionGauge) *Services {
	catalogService := NewCatalogService(source, searcher)
	return &Services{
		Catalog:  catalogService,
		Checkout: NewCheckoutService(catalogService, cfg, clock, notifier, gauge),
	}
}
