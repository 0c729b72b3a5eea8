package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-tiendas/internal/infrastructure/storage"
	"github.com/jhoicas/inventario-tiendas/pkg/config"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	b, err := storage.Open(ctx, config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "inv.db"),
	}, nil)
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, config.DriverSQLite, b.Driver)
	assert.NoError(t, b.Ping(ctx))
	assert.NoError(t, b.Migrate(ctx))

	list, err := b.Stores.ListByUser(ctx, "nadie")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := storage.Open(context.Background(), config.DBConfig{Driver: "oracle"}, nil)
	assert.ErrorContains(t, err, "oracle")
}

func TestClose_BackendNulo(t *testing.T) {
	var b *storage.Backend
	assert.NotPanics(t, b.Close)
}
