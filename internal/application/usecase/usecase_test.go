package usecase_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-tiendas/internal/application/dto"
	"github.com/jhoicas/inventario-tiendas/internal/application/usecase"
	"github.com/jhoicas/inventario-tiendas/internal/domain"
	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/inventario-tiendas/internal/infrastructure/sqlite"
)

func openDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "uc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	now := time.Now().UTC()
	require.NoError(t, db.Users().Create(context.Background(), &entity.User{ID: "u1", Email: "u1@example.com", Name: "U1", CreatedAt: now, UpdatedAt: now}))
	return db
}

func TestStoreUseCase_CrearYListar(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	uc := usecase.NewStoreUseCase(db.Stores(), db.Users())

	first, err := uc.Create(ctx, "u1", dto.CreateStoreRequest{Name: " Norte "})
	require.NoError(t, err)
	assert.Equal(t, "Norte", first.Name)
	assert.Equal(t, "u1", first.UserID)
	_, err = uc.Create(ctx, "u1", dto.CreateStoreRequest{Name: "Sur"})
	require.NoError(t, err)

	list, err := uc.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	other, err := uc.ListByUser(ctx, "nadie")
	require.NoError(t, err)
	assert.Empty(t, other)

	_, err = uc.Create(ctx, "u1", dto.CreateStoreRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, "fantasma", dto.CreateStoreRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Create(ctx, "", dto.CreateStoreRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestProductUseCase_ListarPorTienda(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	now := time.Now().UTC()
	require.NoError(t, db.Stores().Create(ctx, &entity.Store{ID: "s1", Name: "Centro", UserID: "u1", CreatedAt: now}))
	for _, p := range []*entity.Product{
		{ID: "p2", StoreID: "s1", Name: "Sugar", CreatedAt: now, UpdatedAt: now},
		{ID: "p1", StoreID: "s1", Name: "Beans", CreatedAt: now, UpdatedAt: now},
	} {
		_, _, err := db.Products().UpsertIncrement(ctx, p, 4)
		require.NoError(t, err)
	}

	uc := usecase.NewProductUseCase(db.Products(), db.Stores())
	out, err := uc.ListByStore(ctx, "u1", "s1")
	require.NoError(t, err)
	require.Equal(t, 2, out.Total)
	assert.Equal(t, "Beans", out.Items[0].Name)
	assert.Equal(t, int64(4), out.Items[1].CurrentQuantity)

	_, err = uc.ListByStore(ctx, "u2", "s1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.ListByStore(ctx, "u1", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
