package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-tiendas/internal/domain"
	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
)

// AuthorizeStore verifica que la tienda exista y pertenezca al usuario.
// Tienda inexistente -> ErrNotFound; de otro usuario -> ErrForbidden; sin usuario -> ErrUnauthorized.
func AuthorizeStore(ctx context.Context, stores repository.StoreRepository, userID, storeID string) (*entity.Store, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(storeID) == "" {
		return nil, fmt.Errorf("%w: store_id es requerido", domain.ErrInvalidInput)
	}
	store, err := stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: tienda %s", domain.ErrNotFound, storeID)
	}
	if !store.OwnedBy(userID) {
		return nil, domain.ErrForbidden
	}
	return store, nil
}
