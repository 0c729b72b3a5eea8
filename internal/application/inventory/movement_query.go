package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
)

// MovementQueryUseCase consulta de solo lectura del historial de movimientos de una tienda.
type MovementQueryUseCase struct {
	storeRepo repository.StoreRepository
	movRepo   repository.StockMovementRepository
	report    MovementReportGenerator
}

// NewMovementQueryUseCase construye el caso de uso. report puede ser nil si no se exporta PDF.
func NewMovementQueryUseCase(
	storeRepo repository.StoreRepository,
	movRepo repository.StockMovementRepository,
	report MovementReportGenerator,
) *MovementQueryUseCase {
	return &MovementQueryUseCase{storeRepo: storeRepo, movRepo: movRepo, report: report}
}

// MovementFilter filtro del historial. StartTime y EndTime son opcionales.
type MovementFilter struct {
	UserID    string
	StoreID   string
	StartTime *time.Time
	EndTime   *time.Time
}

// Window devuelve el rango efectivo. Solo se filtra si vienen ambos extremos;
// con uno solo se devuelve el historial completo (no se aplica rango abierto).
func (f MovementFilter) Window() (from, to *time.Time) {
	if f.StartTime == nil || f.EndTime == nil {
		return nil, nil
	}
	return f.StartTime, f.EndTime
}

// ListMovements devuelve los movimientos más recientes primero, con el nombre actual del producto.
func (uc *MovementQueryUseCase) ListMovements(ctx context.Context, f MovementFilter) ([]*entity.StockMovement, error) {
	if _, err := AuthorizeStore(ctx, uc.storeRepo, f.UserID, f.StoreID); err != nil {
		return nil, err
	}
	from, to := f.Window()
	list, err := uc.movRepo.ListByStore(ctx, f.StoreID, from, to)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.StockMovement{}
	}
	return list, nil
}

// ExportPDF genera el reporte PDF del mismo listado que ListMovements.
func (uc *MovementQueryUseCase) ExportPDF(ctx context.Context, f MovementFilter) ([]byte, error) {
	if uc.report == nil {
		return nil, fmt.Errorf("reporte PDF no configurado")
	}
	store, err := AuthorizeStore(ctx, uc.storeRepo, f.UserID, f.StoreID)
	if err != nil {
		return nil, err
	}
	from, to := f.Window()
	list, err := uc.movRepo.ListByStore(ctx, f.StoreID, from, to)
	if err != nil {
		return nil, err
	}
	return uc.report.GenerateMovementsPDF(ctx, store, list, from, to)
}
