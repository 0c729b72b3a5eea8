package dto_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-tiendas/internal/application/dto"
)

func TestPositiveQuantity_EnteroPositivo(t *testing.T) {
	cases := map[string]struct {
		in   string
		want int64
		ok   bool
	}{
		"entero":        {"5", 5, true},
		"con decimales": {"5.0", 5, true},
		"fracción":      {"2.5", 0, false},
		"cero":          {"0", 0, false},
		"negativo":      {"-3", 0, false},
		"desborde":      {"9223372036854775808", 0, false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := dto.PositiveQuantity(decimal.RequireFromString(tc.in))
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
