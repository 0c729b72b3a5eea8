package entity

import "time"

// MovementType causa de un movimiento de inventario.
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementTypeStockIn       MovementType = "STOCK_IN"       // entrada
	MovementTypeSale          MovementType = "SALE"           // venta
	MovementTypeManualRemoval MovementType = "MANUAL_REMOVAL" // baja manual
)

// Valid indica si t es uno de los tipos conocidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeStockIn, MovementTypeSale, MovementTypeManualRemoval:
		return true
	}
	return false
}

// Reduces indica si el tipo descuenta stock (SALE, MANUAL_REMOVAL).
func (t MovementType) Reduces() bool {
	return t == MovementTypeSale || t == MovementTypeManualRemoval
}

// StockMovement registro inmutable (append-only) de un cambio de cantidad.
// Quantity es siempre la magnitud positiva; el signo lo da Type.
type StockMovement struct {
	ID        string
	Seq       int64 // orden de inserción, asignado por el almacén
	ProductID string
	StoreID   string
	Type      MovementType
	Quantity  int64
	Timestamp time.Time

	// ProductName se llena en lecturas con join sobre products (nombre actual, no copia histórica).
	ProductName string
}

// Signed devuelve la cantidad con signo: positiva para STOCK_IN, negativa para salidas.
func (m *StockMovement) Signed() int64 {
	if m.Type.Reduces() {
		return -m.Quantity
	}
	return m.Quantity
}
