// Package alerts entrega las alertas de stock bajo: al log estructurado y, si hay Redis, a un canal pub/sub.
package alerts

import (
	"context"

	"github.com/jhoicas/inventario-tiendas/internal/application/inventory"
	"github.com/jhoicas/inventario-tiendas/pkg/logger"
)

var _ inventory.AlertPublisher = (*LogPublisher)(nil)

// LogPublisher escribe cada alerta como un evento warn.
type LogPublisher struct {
	log *logger.Logger
}

// NewLogPublisher construye el publisher sobre log (nil -> descarta).
func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: logger.OrNop(log).Named("low_stock")}
}

// PublishLowStock nunca falla.
func (p *LogPublisher) PublishLowStock(_ context.Context, alert inventory.LowStockAlert) error {
	p.log.Warn().
		Str("store_id", alert.StoreID).
		Str("product_id", alert.ProductID).
		Str("product_name", alert.ProductName).
		Int64("remaining", alert.Remaining).
		Int64("threshold", alert.Threshold).
		Msg("stock bajo")
	return nil
}
