package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-tiendas/internal/application/dto"
	"github.com/jhoicas/inventario-tiendas/internal/application/inventory"
)

// ReportHandler historial de movimientos (JSON y PDF).
type ReportHandler struct {
	uc *inventory.MovementQueryUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *inventory.MovementQueryUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockMovements godoc
// @Summary      Historial de movimientos de una tienda
// @Description  Más recientes primero. El rango solo se aplica si vienen start_date y end_date; con uno solo se devuelve todo.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        store_id    query  string  true   "ID de la tienda"
// @Param        start_date  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        end_date    query  string  false  "RFC3339 o YYYY-MM-DD"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/stock-movements [get]
func (h *ReportHandler) StockMovements(c *fiber.Ctx) error {
	f, ok, err := movementFilter(c)
	if !ok {
		return err
	}
	list, err := h.uc.ListMovements(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewMovementListResponse(list))
}

// StockMovementsPDF godoc
// @Summary      Historial de movimientos en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        store_id    query  string  true   "ID de la tienda"
// @Param        start_date  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        end_date    query  string  false  "RFC3339 o YYYY-MM-DD"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/stock-movements/pdf [get]
func (h *ReportHandler) StockMovementsPDF(c *fiber.Ctx) error {
	f, ok, err := movementFilter(c)
	if !ok {
		return err
	}
	pdfBytes, err := h.uc.ExportPDF(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("movimientos-%s-%s.pdf", f.StoreID, time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

func movementFilter(c *fiber.Ctx) (inventory.MovementFilter, bool, error) {
	storeID := c.Query("store_id")
	if storeID == "" {
		return inventory.MovementFilter{}, false, badRequest(c, "VALIDATION", "store_id es requerido")
	}
	start, err := parseDateParam(c.Query("start_date"))
	if err != nil {
		return inventory.MovementFilter{}, false, badRequest(c, "VALIDATION", err.Error())
	}
	end, err := parseDateParam(c.Query("end_date"))
	if err != nil {
		return inventory.MovementFilter{}, false, badRequest(c, "VALIDATION", err.Error())
	}
	return inventory.MovementFilter{
		UserID:    GetUserID(c),
		StoreID:   storeID,
		StartTime: start,
		EndTime:   end,
	}, true, nil
}
