package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Garantiza que el cambio de cantidad y su
// movimiento se confirmen juntos o no se confirmen.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// AlertPublisher canal de entrega de alertas de stock bajo (log, Redis, ...).
type AlertPublisher interface {
	PublishLowStock(ctx context.Context, alert LowStockAlert) error
}

// MovementReportGenerator genera la representación PDF del historial de movimientos.
type MovementReportGenerator interface {
	GenerateMovementsPDF(
		ctx context.Context,
		store *entity.Store,
		movements []*entity.StockMovement,
		from, to *time.Time,
	) ([]byte, error)
}
