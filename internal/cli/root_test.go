package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-tiendas/internal/application/inventory"
	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/inventario-tiendas/internal/infrastructure/sqlite"
	"github.com/jhoicas/inventario-tiendas/internal/infrastructure/storage"
	"github.com/jhoicas/inventario-tiendas/pkg/config"
)

func sqliteConfig(path string) func() (*config.Config, error) {
	return func() (*config.Config, error) {
		return &config.Config{DB: config.DBConfig{Driver: config.DriverSQLite, SQLitePath: path}}, nil
	}
}

func run(t *testing.T, path string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(&RootOptions{loadConfig: sqliteConfig(path)})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// seedStore crea usuario + tienda y registra movimientos con el motor real.
func seedStore(t *testing.T, path string) (storeID string, db *sqlite.DB) {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	require.NoError(t, db.Users().Create(ctx, &entity.User{ID: "u1", Email: "a@b.co", Name: "A", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, db.Stores().Create(ctx, &entity.Store{ID: "s1", Name: "Centro", UserID: "u1", CreatedAt: now}))

	b := storage.FromSQLite(db)
	uc := inventory.NewRegisterMovementUseCase(b.Tx, b.Stores, nil, nil)
	_, err = uc.StockIn(ctx, inventory.StockInInput{UserID: "u1", StoreID: "s1", ProductID: "P1", Name: "Rice", Quantity: 50})
	require.NoError(t, err)
	_, err = uc.Sale(ctx, inventory.ReduceStockInput{UserID: "u1", StoreID: "s1", ProductID: "P1", Quantity: 20})
	require.NoError(t, err)
	return "s1", db
}

func TestRoot_ComandosRegistrados(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"migrate", "reconcile"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestRoot_FormatoInvalido(t *testing.T) {
	_, err := run(t, filepath.Join(t.TempDir(), "x.db"), "migrate", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formato inválido")
}

func TestMigrate_AplicaEsquema(t *testing.T) {
	out, err := run(t, filepath.Join(t.TempDir(), "inv.db"), "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "esquema aplicado (sqlite)")
}

func TestReconcile_Consistente(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inv.db")
	storeID, db := seedStore(t, path)
	require.NoError(t, db.Close())

	out, err := run(t, path, "reconcile", "--store", storeID)
	require.NoError(t, err)
	assert.Contains(t, out, "1 productos revisados")
	assert.Contains(t, out, "OK")
}

func TestReconcile_DiscrepanciaEnJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inv.db")
	storeID, db := seedStore(t, path)

	// Producto sin movimiento: rompe la ley del libro
	_, _, err := db.Products().UpsertIncrement(context.Background(),
		&entity.Product{ID: "P2", StoreID: storeID, Name: "Beans", UpdatedAt: time.Now()}, 7)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out, err := run(t, path, "reconcile", "--store", storeID, "--format", "json")
	require.ErrorIs(t, err, ErrDiscrepancies)

	var report inventory.ReconcileReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.ProductsChecked)
	require.Len(t, report.Discrepancies, 1)
	assert.Equal(t, "P2", report.Discrepancies[0].ProductID)
	assert.Equal(t, int64(7), report.Discrepancies[0].CurrentQuantity)
	assert.Equal(t, int64(0), report.Discrepancies[0].LedgerNet)
}

func TestReconcile_TiendaInexistente(t *testing.T) {
	out, err := run(t, filepath.Join(t.TempDir(), "inv.db"), "reconcile", "--store", "nope")
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestReconcile_RequiereFlagStore(t *testing.T) {
	_, err := run(t, filepath.Join(t.TempDir(), "inv.db"), "reconcile")
	require.Error(t, err)
}
