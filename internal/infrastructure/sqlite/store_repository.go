package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/inventario-tiendas/internal/domain"
	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación del puerto StoreRepository sobre SQLite.
type StoreRepo struct {
	q dbtx
}

// NewStoreRepository construye el adaptador.
func NewStoreRepository(q dbtx) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persiste una nueva tienda.
func (r *StoreRepo) Create(ctx context.Context, store *entity.Store) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO stores (id, name, user_id, created_at) VALUES (?, ?, ?, ?)`,
		store.ID, store.Name, store.UserID, toUnix(store.CreatedAt),
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
	s, err := scanStore(r.q.QueryRowContext(ctx,
		`SELECT id, name, user_id, created_at FROM stores WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Persistence("get store", err)
	}
	return s, nil
}

// ListByUser lista las tiendas de un usuario, más recientes primero.
func (r *StoreRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Store, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, name, user_id, created_at FROM stores WHERE user_id = ? ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, domain.Persistence("list stores", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, domain.Persistence("scan store", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("list stores", err)
	}
	return list, nil
}

func scanStore(row rowScanner) (*entity.Store, error) {
	var s entity.Store
	var created int64
	if err := row.Scan(&s.ID, &s.Name, &s.UserID, &created); err != nil {
		return nil, err
	}
	s.CreatedAt = fromUnix(created)
	return &s, nil
}
