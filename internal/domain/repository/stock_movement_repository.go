package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
)

// ProductBalance suma con signo de los movimientos de un producto.
type ProductBalance struct {
	ProductID string
	Net       int64
	Movements int
}

// StockMovementRepository define el puerto de persistencia para movimientos (append-only).
// No expone Update ni Delete.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error

	// ListByStore lista movimientos de la tienda con el nombre actual del producto (join),
	// ordenados por timestamp descendente y, en empates, por orden de inserción.
	// from/to nil = sin filtro por ese extremo.
	ListByStore(ctx context.Context, storeID string, from, to *time.Time) ([]*entity.StockMovement, error)

	// NetByProduct suma con signo (STOCK_IN +, SALE/MANUAL_REMOVAL -) agrupado por producto.
	NetByProduct(ctx context.Context, storeID string) ([]ProductBalance, error)
}
