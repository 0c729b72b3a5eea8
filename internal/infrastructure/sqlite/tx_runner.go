package sqlite

import (
	"context"

	"github.com/jhoicas/inventario-tiendas/internal/application/inventory"
	"github.com/jhoicas/inventario-tiendas/internal/domain"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return domain.Persistence("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewProductRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.Persistence("commit transaction", err)
	}
	return nil
}

// Repos sin transacción, para lecturas y para tiendas/usuarios.

// Products devuelve el repo de productos sobre la conexión.
func (d *DB) Products() *ProductRepo { return NewProductRepository(d.sql) }

// Movements devuelve el repo de movimientos sobre la conexión.
func (d *DB) Movements() *StockMovementRepo { return NewStockMovementRepository(d.sql) }

// Stores devuelve el repo de tiendas sobre la conexión.
func (d *DB) Stores() *StoreRepo { return NewStoreRepository(d.sql) }

// Users devuelve el repo de usuarios sobre la conexión.
func (d *DB) Users() *UserRepo { return NewUserRepository(d.sql) }
