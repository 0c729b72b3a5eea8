package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-tiendas/internal/domain"
	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
	"github.com/jhoicas/inventario-tiendas/pkg/logger"
)

// RegisterMovementUseCase motor de mutación de stock: cada entrada, venta o baja ajusta la cantidad
// del producto y agrega su movimiento en la misma transacción.
type RegisterMovementUseCase struct {
	txRunner  TxRunner
	storeRepo repository.StoreRepository
	notifier  *LowStockNotifier
	log       *logger.Logger
	now       func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	storeRepo repository.StoreRepository,
	notifier *LowStockNotifier,
	log *logger.Logger,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:  txRunner,
		storeRepo: storeRepo,
		notifier:  notifier,
		log:       logger.OrNop(log).Named("inventory"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// StockInInput entrada de stock. Name solo se usa si el producto no existe todavía.
type StockInInput struct {
	UserID    string
	StoreID   string
	ProductID string
	Name      string
	Quantity  int64
}

// ReduceStockInput venta o baja manual.
type ReduceStockInput struct {
	UserID    string
	StoreID   string
	ProductID string
	Quantity  int64
}

// MutationResult producto actualizado, movimiento registrado y alerta (si hubo).
type MutationResult struct {
	Product  *entity.Product
	Movement *entity.StockMovement
	Created  bool
	LowStock *LowStockAlert
}

// StockIn crea el producto con la cantidad dada o suma a la existente, y registra STOCK_IN.
func (uc *RegisterMovementUseCase) StockIn(ctx context.Context, in StockInInput) (*MutationResult, error) {
	in.ProductID = strings.TrimSpace(in.ProductID)
	in.Name = entity.NormalizeName(in.Name)
	if in.ProductID == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: product_id y name son requeridos", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if _, err := AuthorizeStore(ctx, uc.storeRepo, in.UserID, in.StoreID); err != nil {
		return nil, err
	}

	now := uc.now()
	result := &MutationResult{}
	// Upsert + movimiento: ambos se confirman o ninguno (TxRunner.Run hace Commit/Rollback)
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		seed := &entity.Product{
			ID:              in.ProductID,
			StoreID:         in.StoreID,
			Name:            in.Name,
			CurrentQuantity: in.Quantity,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		product, created, err := productRepo.UpsertIncrement(ctx, seed, in.Quantity)
		if err != nil {
			return err
		}
		mov := newMovement(product, entity.MovementTypeStockIn, in.Quantity, now)
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		result.Product, result.Movement, result.Created = product, mov, created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Debug().
		Str("store_id", in.StoreID).
		Str("product_id", in.ProductID).
		Int64("quantity", in.Quantity).
		Int64("current_quantity", result.Product.CurrentQuantity).
		Bool("created", result.Created).
		Msg("entrada de stock registrada")
	return result, nil
}

// Sale registra una venta.
func (uc *RegisterMovementUseCase) Sale(ctx context.Context, in ReduceStockInput) (*MutationResult, error) {
	return uc.ReduceStock(ctx, in, entity.MovementTypeSale)
}

// ManualRemoval registra una baja manual.
func (uc *RegisterMovementUseCase) ManualRemoval(ctx context.Context, in ReduceStockInput) (*MutationResult, error) {
	return uc.ReduceStock(ctx, in, entity.MovementTypeManualRemoval)
}

// ReduceStock lógica común de SALE y MANUAL_REMOVAL.
// El chequeo de stock y el descuento son una sola sentencia condicional, así dos reducciones
// concurrentes nunca pasan ambas el chequeo con la misma cantidad previa.
// Errores: ErrInvalidInput, ErrNotFound (producto no está en la tienda), ErrInsufficientStock.
func (uc *RegisterMovementUseCase) ReduceStock(ctx context.Context, in ReduceStockInput, movType entity.MovementType) (*MutationResult, error) {
	if !movType.Reduces() {
		return nil, fmt.Errorf("%w: tipo %q no descuenta stock", domain.ErrInvalidInput, movType)
	}
	in.ProductID = strings.TrimSpace(in.ProductID)
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: product_id es requerido", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if _, err := AuthorizeStore(ctx, uc.storeRepo, in.UserID, in.StoreID); err != nil {
		return nil, err
	}

	now := uc.now()
	result := &MutationResult{}
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.DecrementIfSufficient(ctx, in.StoreID, in.ProductID, in.Quantity)
		if err != nil {
			return err
		}
		mov := newMovement(product, movType, in.Quantity, now)
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		result.Product, result.Movement = product, mov
		return nil
	})
	if err != nil {
		return nil, err
	}

	// La alerta sale después del Commit: una transacción revertida nunca notifica.
	if alert, fired := uc.notifier.Notify(ctx, result.Product); fired {
		result.LowStock = &alert
	}

	uc.log.Debug().
		Str("store_id", in.StoreID).
		Str("product_id", in.ProductID).
		Str("type", string(movType)).
		Int64("quantity", in.Quantity).
		Int64("current_quantity", result.Product.CurrentQuantity).
		Msg("salida de stock registrada")
	return result, nil
}

func newMovement(p *entity.Product, movType entity.MovementType, quantity int64, at time.Time) *entity.StockMovement {
	return &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   p.ID,
		StoreID:     p.StoreID,
		Type:        movType,
		Quantity:    quantity,
		Timestamp:   at,
		ProductName: p.Name,
	}
}
