package postgres

import (
	"context"
	"errors"
	"math"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-tiendas/internal/domain"
	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, store_id, name, current_quantity, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByStoreAndID obtiene un producto de una tienda. (nil, nil) si no existe.
func (r *ProductRepo) GetByStoreAndID(ctx context.Context, storeID, productID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE store_id = $1 AND id = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, storeID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Persistence("get product", err)
	}
	return p, nil
}

// ListByStore lista los productos de una tienda ordenados por nombre.
func (r *ProductRepo) ListByStore(ctx context.Context, storeID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE store_id = $1 ORDER BY name, id`
	rows, err := r.q.Query(ctx, query, storeID)
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

// UpsertIncrement inserta el producto o suma quantity a la cantidad existente en una sola sentencia.
// En el camino de actualización el nombre no se toca. xmax = 0 identifica la fila recién insertada.
func (r *ProductRepo) UpsertIncrement(ctx context.Context, product *entity.Product, quantity int64) (*entity.Product, bool, error) {
	query := `
		INSERT INTO products (id, store_id, name, current_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (id, store_id)
		DO UPDATE SET current_quantity = products.current_quantity + EXCLUDED.current_quantity,
		              updated_at = EXCLUDED.updated_at
		WHERE products.current_quantity <= $6
		RETURNING ` + productColumns + `, (xmax = 0) AS inserted`
	var p entity.Product
	var inserted bool
	err := r.q.QueryRow(ctx, query,
		product.ID, product.StoreID, product.Name, quantity, product.UpdatedAt, int64(math.MaxInt64)-quantity,
	).Scan(&p.ID, &p.StoreID, &p.Name, &p.CurrentQuantity, &p.CreatedAt, &p.UpdatedAt, &inserted)
	switch {
	case err == nil:
	case errors.Is(err, pgx.ErrNoRows), isNumericOutOfRange(err):
		// El WHERE del DO UPDATE descartó la suma: no cabe en BIGINT
		return nil, false, domain.ErrQuantityOverflow
	default:
		return nil, false, domain.Persistence("upsert product", err)
	}
	return &p, inserted, nil
}

// DecrementIfSufficient descuenta solo si current_quantity >= quantity. Con READ COMMITTED, un UPDATE
// concurrente sobre la misma fila espera el commit del otro y reevalúa el WHERE sobre la versión nueva.
func (r *ProductRepo) DecrementIfSufficient(ctx context.Context, storeID, productID string, quantity int64) (*entity.Product, error) {
	query := `
		UPDATE products
		SET current_quantity = current_quantity - $3, updated_at = now()
		WHERE store_id = $1 AND id = $2 AND current_quantity >= $3
		RETURNING ` + productColumns
	p, err := scanProduct(r.q.QueryRow(ctx, query, storeID, productID, quantity))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.Persistence("decrement product", err)
	}

	// 0 filas: o no existe en la tienda o no alcanza
	var exists bool
	err = r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE store_id = $1 AND id = $2)`,
		storeID, productID,
	).Scan(&exists)
	if err != nil {
		return nil, domain.Persistence("check product", err)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	return nil, domain.ErrInsufficientStock
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.StoreID, &p.Name, &p.CurrentQuantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
