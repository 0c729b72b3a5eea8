package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
)

// StockInRequest body para POST /api/stock-in.
type StockInRequest struct {
	ProductID string          `json:"product_id" validate:"required,max=100"`
	Name      string          `json:"name" validate:"required,max=200"`
	Quantity  decimal.Decimal `json:"quantity"`
	StoreID   string          `json:"store_id" validate:"required,max=100"`
}

// ReduceStockRequest body para POST /api/sale y POST /api/manual-removal.
type ReduceStockRequest struct {
	ProductID string          `json:"product_id" validate:"required,max=100"`
	Quantity  decimal.Decimal `json:"quantity"`
	StoreID   string          `json:"store_id" validate:"required,max=100"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	StoreID     string    `json:"store_id"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	Timestamp   time.Time `json:"timestamp"`
}

// LowStockResponse alerta incluida en la respuesta cuando la cantidad quedó bajo el umbral.
type LowStockResponse struct {
	Remaining int64 `json:"remaining"`
	Threshold int64 `json:"threshold"`
}

// StockMutationResponse salida de stock-in, venta y baja manual.
type StockMutationResponse struct {
	Message  string            `json:"message"`
	Product  ProductResponse   `json:"product"`
	Movement MovementResponse  `json:"movement"`
	Created  bool              `json:"created,omitempty"`
	LowStock *LowStockResponse `json:"low_stock,omitempty"`
}

// MovementListResponse historial de movimientos (sin paginación).
type MovementListResponse struct {
	Total int                `json:"total"`
	Items []MovementResponse `json:"items"`
}

// NewMovementResponse mapea la entidad a la salida HTTP.
func NewMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		StoreID:     m.StoreID,
		Type:        string(m.Type),
		Quantity:    m.Quantity,
		Timestamp:   m.Timestamp,
	}
}

// NewMovementListResponse mapea una lista de movimientos.
func NewMovementListResponse(list []*entity.StockMovement) MovementListResponse {
	items := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, NewMovementResponse(m))
	}
	return MovementListResponse{Total: len(items), Items: items}
}
