package repository

import (
	"context"

	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las operaciones están acotadas a una tienda: (storeID, productID) es la identidad.
type ProductRepository interface {
	// GetByStoreAndID devuelve (nil, nil) si el producto no existe en esa tienda.
	GetByStoreAndID(ctx context.Context, storeID, productID string) (*entity.Product, error)
	ListByStore(ctx context.Context, storeID string) ([]*entity.Product, error)

	// UpsertIncrement crea el producto con CurrentQuantity = quantity, o si ya existe suma quantity
	// sin tocar el nombre. created indica cuál de los dos caminos se tomó.
	UpsertIncrement(ctx context.Context, product *entity.Product, quantity int64) (updated *entity.Product, created bool, err error)

	// DecrementIfSufficient resta quantity en una sola sentencia condicional
	// (current_quantity >= quantity). Devuelve domain.ErrNotFound si el producto no existe en la tienda
	// y domain.ErrInsufficientStock si no alcanza; en ambos casos no modifica nada.
	DecrementIfSufficient(ctx context.Context, storeID, productID string, quantity int64) (*entity.Product, error)
}
