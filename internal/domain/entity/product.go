package entity

import (
	"math"
	"time"
)

// Product representa un producto dentro de una tienda.
// La identidad es (ID, StoreID): el ID lo asigna quien registra la entrada y es único por tienda.
// CurrentQuantity solo cambia a través del motor de movimientos y nunca es negativo.
type Product struct {
	ID              string
	StoreID         string
	Name            string
	CurrentQuantity int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsLowStock indica si la cantidad actual está por debajo del umbral dado.
func (p *Product) IsLowStock(threshold int64) bool {
	return p != nil && p.CurrentQuantity < threshold
}

// CanAdd indica si sumar quantity a la cantidad actual cabe en int64.
func (p *Product) CanAdd(quantity int64) bool {
	return p != nil && quantity >= 0 && p.CurrentQuantity <= math.MaxInt64-quantity
}
