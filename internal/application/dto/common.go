package dto

import (
	"math"

	"github.com/shopspring/decimal"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var maxQuantity = decimal.NewFromInt(math.MaxInt64)

// PositiveQuantity convierte la cantidad recibida a entero positivo.
// Rechaza cero, negativos, fracciones (2.5) y valores fuera de int64; 5 y "5.0" son válidos.
func PositiveQuantity(d decimal.Decimal) (int64, bool) {
	if !d.IsPositive() || !d.IsInteger() || d.GreaterThan(maxQuantity) {
		return 0, false
	}
	return d.IntPart(), true
}
