package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-tiendas/internal/application/dto"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// parseBody decodifica el JSON y aplica las reglas `validate` del DTO.
// Si falla ya escribió la respuesta 400 y devuelve ok=false.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validate.Struct(out); err != nil {
		return false, badRequest(c, "VALIDATION", validationMessage(err))
	}
	return true, nil
}

// validationMessage arma un mensaje legible con el primer campo inválido.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "datos inválidos"
	}
	fe := verrs[0]
	field := toSnake(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " es requerido"
	case "email":
		return field + " debe ser un email válido"
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s excede el largo máximo (%s)", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s es demasiado corto", field)
	}
	return field + " inválido"
}

// toSnake ProductID -> product_id, para que el mensaje use el nombre del JSON.
func toSnake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 && (runes[i-1] < 'A' || runes[i-1] > 'Z') {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// quantityFrom valida que la cantidad sea un entero positivo. Escribe 400 si no.
func quantityFrom(c *fiber.Ctx, d decimal.Decimal) (int64, bool, error) {
	q, ok := dto.PositiveQuantity(d)
	if !ok {
		return 0, false, badRequest(c, "VALIDATION", "quantity debe ser un entero mayor que cero")
	}
	return q, true, nil
}

// parseDateParam acepta RFC3339 o YYYY-MM-DD (medianoche UTC). Vacío -> nil.
func parseDateParam(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida %q: use RFC3339 o YYYY-MM-DD", raw)
	}
	return &t, nil
}
