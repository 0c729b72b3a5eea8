package usecase

import (
	"context"

	"github.com/jhoicas/inventario-tiendas/internal/application/dto"
	"github.com/jhoicas/inventario-tiendas/internal/application/inventory"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
)

// ProductUseCase consultas de productos. La cantidad solo cambia vía movimientos (inventory).
type ProductUseCase struct {
	repo      repository.ProductRepository
	storeRepo repository.StoreRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, storeRepo repository.StoreRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, storeRepo: storeRepo}
}

// ListByStore lista los productos de una tienda del usuario, ordenados por nombre.
func (uc *ProductUseCase) ListByStore(ctx context.Context, userID, storeID string) (*dto.ProductListResponse, error) {
	if _, err := inventory.AuthorizeStore(ctx, uc.storeRepo, userID, storeID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{Items: make([]dto.ProductResponse, 0, len(list))}
	for _, p := range list {
		out.Items = append(out.Items, dto.NewProductResponse(p))
	}
	out.Total = len(out.Items)
	return out, nil
}
