package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/jhoicas/inventario-tiendas/internal/domain"
	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, store_id, name, current_quantity, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre SQLite.
type ProductRepo struct {
	q dbtx
}

// NewProductRepository construye el adaptador. Pasar *sql.DB o *sql.Tx.
func NewProductRepository(q dbtx) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByStoreAndID obtiene un producto de una tienda. (nil, nil) si no existe.
func (r *ProductRepo) GetByStoreAndID(ctx context.Context, storeID, productID string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE store_id = ? AND id = ?`, storeID, productID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Persistence("get product", err)
	}
	return p, nil
}

// ListByStore lista los productos de una tienda ordenados por nombre.
func (r *ProductRepo) ListByStore(ctx context.Context, storeID string) ([]*entity.Product, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE store_id = ? ORDER BY name, id`, storeID)
	if err != nil {
		return nil, domain.Persistence("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Persistence("scan product", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("list products", err)
	}
	return list, nil
}

// UpsertIncrement crea el producto o suma quantity. Debe llamarse dentro de una tx: la lectura previa
// y la escritura comparten la única conexión, así nadie se intercala.
func (r *ProductRepo) UpsertIncrement(ctx context.Context, product *entity.Product, quantity int64) (*entity.Product, bool, error) {
	existing, err := r.GetByStoreAndID(ctx, product.StoreID, product.ID)
	if err != nil {
		return nil, false, err
	}
	now := product.UpdatedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	if existing == nil {
		_, err := r.q.ExecContext(ctx, `
			INSERT INTO products (id, store_id, name, current_quantity, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			product.ID, product.StoreID, product.Name, quantity, toUnix(now), toUnix(now),
		)
		if err != nil {
			return nil, false, domain.Persistence("insert product", err)
		}
		return &entity.Product{
			ID:              product.ID,
			StoreID:         product.StoreID,
			Name:            product.Name,
			CurrentQuantity: quantity,
			CreatedAt:       fromUnix(toUnix(now)),
			UpdatedAt:       fromUnix(toUnix(now)),
		}, true, nil
	}

	// SQLite convierte a REAL una suma que desborda int64 en vez de fallar
	if !existing.CanAdd(quantity) {
		return nil, false, domain.ErrQuantityOverflow
	}
	res, err := r.q.ExecContext(ctx, `
		UPDATE products SET current_quantity = current_quantity + ?, updated_at = ?
		WHERE store_id = ? AND id = ? AND current_quantity <= ?`,
		quantity, toUnix(now), product.StoreID, product.ID, math.MaxInt64-quantity,
	)
	if err != nil {
		return nil, false, domain.Persistence("increment product", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, domain.Persistence("increment product", err)
	}
	if affected == 0 {
		return nil, false, domain.ErrQuantityOverflow
	}
	existing.CurrentQuantity += quantity
	existing.UpdatedAt = fromUnix(toUnix(now))
	return existing, false, nil
}

// DecrementIfSufficient descuenta solo si current_quantity >= quantity (UPDATE condicional).
func (r *ProductRepo) DecrementIfSufficient(ctx context.Context, storeID, productID string, quantity int64) (*entity.Product, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE products SET current_quantity = current_quantity - ?, updated_at = ?
		WHERE store_id = ? AND id = ? AND current_quantity >= ?`,
		quantity, toUnix(time.Now()), storeID, productID, quantity,
	)
	if err != nil {
		return nil, domain.Persistence("decrement product", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, domain.Persistence("decrement product", err)
	}

	p, err := r.GetByStoreAndID(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if affected == 0 {
		return nil, domain.ErrInsufficientStock
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	var created, updated int64
	if err := row.Scan(&p.ID, &p.StoreID, &p.Name, &p.CurrentQuantity, &created, &updated); err != nil {
		return nil, err
	}
	p.CreatedAt, p.UpdatedAt = fromUnix(created), fromUnix(updated)
	return &p, nil
}
