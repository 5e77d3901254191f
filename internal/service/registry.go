package service

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"halalshop-backend/internal/observability"
)

// Registry aggregates the business services for handler injection.
type Registry struct {
	Shop *ShopService
}

// NewRegistry builds all services over the shared DB handle. The event
// publisher and metrics are optional and may be nil.
func NewRegistry(db *gorm.DB, events *ShopEventPublisher, metrics *observability.ShopMetrics, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		Shop: NewShopService(db, events, metrics, log),
	}
}
