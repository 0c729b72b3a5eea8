package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-tiendas/internal/application/usecase"
)

// ProductHandler lectura de productos de una tienda.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Listar productos de una tienda
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  true  "ID de la tienda"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	storeID := c.Query("store_id")
	if storeID == "" {
		return badRequest(c, "VALIDATION", "store_id es requerido")
	}
	out, err := h.uc.ListByStore(c.UserContext(), GetUserID(c), storeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
