package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-tiendas/internal/domain"
	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación append-only sobre SQLite.
type StockMovementRepo struct {
	q dbtx
}

// NewStockMovementRepository construye el adaptador. Pasar *sql.DB o *sql.Tx.
func NewStockMovementRepository(q dbtx) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste el movimiento y completa Seq.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO stock_movements (id, product_id, store_id, type, quantity, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.ProductID, m.StoreID, string(m.Type), m.Quantity, toUnix(m.Timestamp),
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: movimiento %s/%d", domain.ErrInvalidInput, m.Type, m.Quantity)
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return domain.Persistence("create stock movement", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return domain.Persistence("create stock movement", err)
	}
	m.Seq = seq
	return nil
}

// ListByStore lista movimientos con el nombre actual del producto, más recientes primero.
func (r *StockMovementRepo) ListByStore(ctx context.Context, storeID string, from, to *time.Time) ([]*entity.StockMovement, error) {
	query := `
		SELECT m.seq, m.id, m.product_id, m.store_id, m.type, m.quantity, m.timestamp, COALESCE(p.name, '')
		FROM stock_movements m
		LEFT JOIN products p ON p.id = m.product_id AND p.store_id = m.store_id
		WHERE m.store_id = ?`
	args := []any{storeID}
	if from != nil {
		query += " AND m.timestamp >= ?"
		args = append(args, toUnix(*from))
	}
	if to != nil {
		query += " AND m.timestamp <= ?"
		args = append(args, toUnix(*to))
	}
	query += " ORDER BY m.timestamp DESC, m.seq ASC"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.Persistence("list stock movements", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var movType string
		var ts int64
		if err := rows.Scan(&m.Seq, &m.ID, &m.ProductID, &m.StoreID, &movType,
			&m.Quantity, &ts, &m.ProductName); err != nil {
			return nil, domain.Persistence("scan stock movement", err)
		}
		m.Type = entity.MovementType(movType)
		m.Timestamp = fromUnix(ts)
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("list stock movements", err)
	}
	return list, nil
}

// NetByProduct suma con signo los movimientos de cada producto de la tienda.
func (r *StockMovementRepo) NetByProduct(ctx context.Context, storeID string) ([]repository.ProductBalance, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT product_id,
		       COALESCE(SUM(CASE WHEN type = 'STOCK_IN' THEN quantity ELSE -quantity END), 0),
		       COUNT(*)
		FROM stock_movements
		WHERE store_id = ?
		GROUP BY product_id`, storeID)
	if err != nil {
		return nil, domain.Persistence("net by product", err)
	}
	defer rows.Close()
	var list []repository.ProductBalance
	for rows.Next() {
		var b repository.ProductBalance
		if err := rows.Scan(&b.ProductID, &b.Net, &b.Movements); err != nil {
			return nil, domain.Persistence("scan balance", err)
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("net by product", err)
	}
	return list, nil
}
