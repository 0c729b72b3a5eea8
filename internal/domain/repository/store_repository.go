package repository

import (
	"context"

	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
)

// StoreRepository define el puerto de persistencia para Store (DIP).
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Store, error)
}
