package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/inventario-tiendas/internal/domain"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
)

// Discrepancy producto cuya cantidad no coincide con la suma de su historial.
type Discrepancy struct {
	ProductID       string `json:"product_id"`
	ProductName     string `json:"product_name"`
	CurrentQuantity int64  `json:"current_quantity"`
	LedgerNet       int64  `json:"ledger_net"`
	Movements       int    `json:"movements"`
}

// ReconcileReport resultado de recalcular una tienda desde sus movimientos.
type ReconcileReport struct {
	StoreID         string        `json:"store_id"`
	ProductsChecked int           `json:"products_checked"`
	Discrepancies   []Discrepancy `json:"discrepancies"`
}

// Consistent indica que toda cantidad coincide con su historial.
func (r *ReconcileReport) Consistent() bool {
	return len(r.Discrepancies) == 0
}

// ReconcileUseCase verifica la ley del libro: para cada producto,
// current_quantity == Σ STOCK_IN - Σ SALE - Σ MANUAL_REMOVAL.
type ReconcileUseCase struct {
	storeRepo   repository.StoreRepository
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) *ReconcileUseCase {
	return &ReconcileUseCase{storeRepo: storeRepo, productRepo: productRepo, movRepo: movRepo}
}

// Reconcile recorre los productos de la tienda y los compara con el neto de sus movimientos.
// Es una operación de operador (CLI): no verifica dueño.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, storeID string) (*ReconcileReport, error) {
	if storeID == "" {
		return nil, fmt.Errorf("%w: store_id es requerido", domain.ErrInvalidInput)
	}
	store, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: tienda %s", domain.ErrNotFound, storeID)
	}

	products, err := uc.productRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	balances, err := uc.movRepo.NetByProduct(ctx, storeID)
	if err != nil {
		return nil, err
	}
	netByID := make(map[string]repository.ProductBalance, len(balances))
	for _, b := range balances {
		netByID[b.ProductID] = b
	}

	report := &ReconcileReport{StoreID: storeID, ProductsChecked: len(products), Discrepancies: []Discrepancy{}}
	for _, p := range products {
		b := netByID[p.ID]
		delete(netByID, p.ID)
		if b.Net != p.CurrentQuantity {
			report.Discrepancies = append(report.Discrepancies, Discrepancy{
				ProductID:       p.ID,
				ProductName:     p.Name,
				CurrentQuantity: p.CurrentQuantity,
				LedgerNet:       b.Net,
				Movements:       b.Movements,
			})
		}
	}
	// Movimientos de productos que no existen en la tienda
	for id, b := range netByID {
		report.Discrepancies = append(report.Discrepancies, Discrepancy{
			ProductID: id,
			LedgerNet: b.Net,
			Movements: b.Movements,
		})
	}
	sort.Slice(report.Discrepancies, func(i, j int) bool {
		return report.Discrepancies[i].ProductID < report.Discrepancies[j].ProductID
	})
	return report, nil
}
