package dto

import (
	"time"

	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
)

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              string    `json:"id"`
	StoreID         string    `json:"store_id"`
	Name            string    `json:"name"`
	CurrentQuantity int64     `json:"current_quantity"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProductListResponse productos de una tienda.
type ProductListResponse struct {
	Total int               `json:"total"`
	Items []ProductResponse `json:"items"`
}

// NewProductResponse mapea la entidad a la salida HTTP.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		StoreID:         p.StoreID,
		Name:            p.Name,
		CurrentQuantity: p.CurrentQuantity,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
