package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-tiendas/internal/domain"
	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador de persistencia para tiendas.
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persiste una nueva tienda.
func (r *StoreRepo) Create(ctx context.Context, store *entity.Store) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO stores (id, name, user_id, created_at) VALUES ($1, $2, $3, $4)`,
		store.ID, store.Name, store.UserID, store.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return domain.Persistence("insert store", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	var s entity.Store
	err := r.q.QueryRow(ctx,
		`SELECT id, name, user_id, created_at FROM stores WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.UserID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Persistence("get store", err)
	}
	return &s, nil
}

// ListByUser lista las tiendas de un usuario, más recientes primero.
func (r *StoreRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Store, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, user_id, created_at FROM stores WHERE user_id = $1 ORDER BY created_at DESC, id`,
		userID,
	)
	if err != nil {
		return nil, domain.Persistence("list stores", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.UserID, &s.CreatedAt); err != nil {
			return nil, domain.Persistence("scan store", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("list stores", err)
	}
	return list, nil
}
