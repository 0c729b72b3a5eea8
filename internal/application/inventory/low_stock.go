package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/inventario-tiendas/pkg/logger"
)

// LowStockThreshold umbral fijo: por debajo de 10 unidades se emite alerta.
const LowStockThreshold int64 = 10

// LowStockAlert señal emitida tras una reducción que deja el producto bajo el umbral.
type LowStockAlert struct {
	StoreID     string    `json:"store_id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Remaining   int64     `json:"remaining"`
	Threshold   int64     `json:"threshold"`
	At          time.Time `json:"at"`
}

// EvaluateLowStock regla pura: hay alerta si y solo si CurrentQuantity < LowStockThreshold.
func EvaluateLowStock(p *entity.Product, at time.Time) (LowStockAlert, bool) {
	if p == nil || !p.IsLowStock(LowStockThreshold) {
		return LowStockAlert{}, false
	}
	return LowStockAlert{
		StoreID:     p.StoreID,
		ProductID:   p.ID,
		ProductName: p.Name,
		Remaining:   p.CurrentQuantity,
		Threshold:   LowStockThreshold,
		At:          at.UTC(),
	}, true
}

// LowStockNotifier evalúa la regla y reparte la alerta a los publishers configurados.
// No guarda estado. Un publisher que falla no afecta a los demás ni a la mutación ya confirmada.
type LowStockNotifier struct {
	publishers []AlertPublisher
	log        *logger.Logger
}

// NewLowStockNotifier construye el notificador. Sin publishers solo evalúa.
func NewLowStockNotifier(log *logger.Logger, publishers ...AlertPublisher) *LowStockNotifier {
	return &LowStockNotifier{publishers: publishers, log: logger.OrNop(log)}
}

// Notify evalúa p y, si corresponde, publica. Devuelve la alerta y si se disparó.
func (n *LowStockNotifier) Notify(ctx context.Context, p *entity.Product) (LowStockAlert, bool) {
	alert, fired := EvaluateLowStock(p, time.Now())
	if !fired || n == nil {
		return alert, fired
	}
	for _, pub := range n.publishers {
		if err := pub.PublishLowStock(ctx, alert); err != nil {
			n.log.Warn().Err(err).
				Str("store_id", alert.StoreID).
				Str("product_id", alert.ProductID).
				Msg("no se pudo publicar alerta de stock bajo")
		}
	}
	return alert, true
}
