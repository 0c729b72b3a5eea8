package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-tiendas/internal/application/dto"
	"github.com/jhoicas/inventario-tiendas/internal/domain"
)

// statusByKind traduce la clasificación del dominio al código HTTP.
var statusByKind = map[domain.Kind]int{
	domain.KindValidation:        fiber.StatusBadRequest,
	domain.KindNotFound:          fiber.StatusNotFound,
	domain.KindInsufficientStock: fiber.StatusConflict,
	domain.KindUnauthorized:      fiber.StatusUnauthorized,
	domain.KindForbidden:         fiber.StatusForbidden,
	domain.KindDuplicate:         fiber.StatusConflict,
	domain.KindPersistence:       fiber.StatusServiceUnavailable,
}

// respondError escribe el ErrorResponse correspondiente a err.
// Los errores de persistencia e internos no exponen el detalle al cliente.
func respondError(c *fiber.Ctx, err error) error {
	kind := domain.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		kind, status = domain.KindInternal, fiber.StatusInternalServerError
	}
	msg := err.Error()
	switch kind {
	case domain.KindPersistence:
		msg = "almacén no disponible, intente más tarde"
	case domain.KindInternal:
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: string(kind), Message: msg})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
