package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-tiendas/internal/application/dto"
	"github.com/jhoicas/inventario-tiendas/internal/application/inventory"
)

// InventoryHandler entradas, ventas y bajas de stock (protegido).
type InventoryHandler struct {
	uc *inventory.RegisterMovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// StockIn godoc
// @Summary      Entrada de stock
// @Description  Crea el producto si no existe en la tienda; si existe suma la cantidad (el nombre no cambia).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInRequest  true  "product_id, name, quantity, store_id"
// @Success      201   {object}  dto.StockMutationResponse
// @Success      200   {object}  dto.StockMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/stock-in [post]
func (h *InventoryHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockInRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	qty, ok, err := quantityFrom(c, in.Quantity)
	if !ok {
		return err
	}
	res, err := h.uc.StockIn(c.UserContext(), inventory.StockInInput{
		UserID:    GetUserID(c),
		StoreID:   in.StoreID,
		ProductID: in.ProductID,
		Name:      in.Name,
		Quantity:  qty,
	})
	if err != nil {
		return respondError(c, err)
	}
	status, msg := fiber.StatusOK, "stock actualizado"
	if res.Created {
		status, msg = fiber.StatusCreated, "producto creado"
	}
	return c.Status(status).JSON(mutationResponse(msg, res))
}

// Sale godoc
// @Summary      Registrar venta
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReduceStockRequest  true  "product_id, quantity, store_id"
// @Success      200   {object}  dto.StockMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sale [post]
func (h *InventoryHandler) Sale(c *fiber.Ctx) error {
	return h.reduce(c, h.uc.Sale, "venta registrada")
}

// ManualRemoval godoc
// @Summary      Registrar baja manual
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReduceStockRequest  true  "product_id, quantity, store_id"
// @Success      200   {object}  dto.StockMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/manual-removal [post]
func (h *InventoryHandler) ManualRemoval(c *fiber.Ctx) error {
	return h.reduce(c, h.uc.ManualRemoval, "baja registrada")
}

type reduceFunc func(ctx context.Context, in inventory.ReduceStockInput) (*inventory.MutationResult, error)

func (h *InventoryHandler) reduce(c *fiber.Ctx, fn reduceFunc, msg string) error {
	var in dto.ReduceStockRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	qty, ok, err := quantityFrom(c, in.Quantity)
	if !ok {
		return err
	}
	res, err := fn(c.UserContext(), inventory.ReduceStockInput{
		UserID:    GetUserID(c),
		StoreID:   in.StoreID,
		ProductID: in.ProductID,
		Quantity:  qty,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mutationResponse(msg, res))
}

func mutationResponse(msg string, res *inventory.MutationResult) dto.StockMutationResponse {
	out := dto.StockMutationResponse{
		Message:  msg,
		Product:  dto.NewProductResponse(res.Product),
		Movement: dto.NewMovementResponse(res.Movement),
		Created:  res.Created,
	}
	if res.LowStock != nil {
		out.LowStock = &dto.LowStockResponse{
			Remaining: res.LowStock.Remaining,
			Threshold: res.LowStock.Threshold,
		}
	}
	return out
}
