package postgres

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

// StockMovementRepo implementación append-only sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento y completa Seq con el orden de inserción asignado por la BD.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, store_id, type, quantity, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.ProductID, m.StoreID, string(m.Type), m.Quantity, m.Timestamp,
	).Scan(&m.Seq)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: movimiento %s/%d", domain.ErrInvalidInput, m.Type, m.Quantity)
		}
		return domain.Persistence("create stock movement", err)
	}
	return nil
}

// ListByStore lista movimientos con el nombre actual del producto, más recientes primero;
// en empate de timestamp conserva el orden de inserción.
func (r *StockMovementRepo) ListByStore(ctx context.Context, storeID string, from, to *time.Time) ([]*entity.StockMovement, error) {
	query := `
		SELECT m.seq, m.id, m.product_id, m.store_id, m.type, m.quantity, m.timestamp, COALESCE(p.name, '')
		FROM stock_movements m
		LEFT JOIN products p ON p.id = m.product_id AND p.store_id = m.store_id
		WHERE m.store_id = $1`
	args := []any{storeID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND m.timestamp >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND m.timestamp <= $%d", pos)
		args = append(args, *to)
	}
	query += " ORDER BY m.timestamp DESC, m.seq ASC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Persistence("list stock movements", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var movType string
		if err := rows.Scan(&m.Seq, &m.ID, &m.ProductID, &m.StoreID, &movType,
			&m.Quantity, &m.Timestamp, &m.ProductName); err != nil {
			return nil, domain.Persistence("scan stock movement", err)
		}
		m.Type = entity.MovementType(movType)
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("list stock movements", err)
	}
	return list, nil
}

// NetByProduct suma con signo los movimientos de cada producto de la tienda.
func (r *StockMovementRepo) NetByProduct(ctx context.Context, storeID string) ([]repository.ProductBalance, error) {
	query := `
		SELECT product_id,
		       COALESCE(SUM(CASE WHEN type = 'STOCK_IN' THEN quantity ELSE -quantity END), 0)::BIGINT,
		       COUNT(*)
		FROM stock_movements
		WHERE store_id = $1
		GROUP BY product_id`
	rows, err := r.q.Query(ctx, query, storeID)
	if err != nil {
		return nil, domain.Persistence("net by product", err)
	}
	defer rows.Close()
	var list []repository.ProductBalance
	for rows.Next() {
		var b repository.ProductBalance
		var count int64
		if err := rows.Scan(&b.ProductID, &b.Net, &count); err != nil {
			return nil, domain.Persistence("scan balance", err)
		}
		b.Movements = int(count)
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("net by product", err)
	}
	return list, nil
}
