// Package storage abre el almacén configurado (PostgreSQL o SQLite) y expone sus repositorios
// detrás de los puertos del dominio. El llamador es dueño del ciclo de vida (Open / Close).
package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-tiendas/internal/application/inventory"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
	"github.com/jhoicas/inventario-tiendas/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-tiendas/internal/infrastructure/sqlite"
	"github.com/jhoicas/inventario-tiendas/pkg/config"
	"github.com/jhoicas/inventario-tiendas/pkg/logger"
)

// Backend repositorios y runner de transacciones de un almacén abierto.
type Backend struct {
	Driver    string
	Users     repository.UserRepository
	Stores    repository.StoreRepository
	Products  repository.ProductRepository
	Movements repository.StockMovementRepository
	Tx        inventory.TxRunner

	ping    func(ctx context.Context) error
	migrate func(ctx context.Context) error
	close   func()
}

// Open conecta al driver de cfg. Con AutoMigrate aplica el esquema en PostgreSQL;
// SQLite siempre lo aplica al abrir.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Backend, error) {
	log = logger.OrNop(log).Named("storage")
	switch cfg.Driver {
	case config.DriverPostgres, "":
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		b := fromPool(pool)
		if cfg.AutoMigrate {
			if err := b.Migrate(ctx); err != nil {
				pool.Close()
				return nil, err
			}
			log.Info().Msg("esquema PostgreSQL aplicado")
		}
		log.Info().Int("max_conns", int(pool.Config().MaxConns)).Msg("conectado a PostgreSQL")
		return b, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("conectado a SQLite")
		return FromSQLite(db), nil
	default:
		return nil, fmt.Errorf("driver de base de datos desconocido: %q", cfg.Driver)
	}
}

func fromPool(pool *pgxpool.Pool) *Backend {
	return &Backend{
		Driver:    config.DriverPostgres,
		Users:     postgres.NewUserRepository(pool),
		Stores:    postgres.NewStoreRepository(pool),
		Products:  postgres.NewProductRepository(pool),
		Movements: postgres.NewStockMovementRepository(pool),
		Tx:        postgres.NewTxRunner(pool),
		ping:      pool.Ping,
		migrate:   func(ctx context.Context) error { return postgres.Migrate(ctx, pool) },
		close:     pool.Close,
	}
}

// FromSQLite envuelve una base SQLite ya abierta (tests, CLI).
func FromSQLite(db *sqlite.DB) *Backend {
	return &Backend{
		Driver:    config.DriverSQLite,
		Users:     db.Users(),
		Stores:    db.Stores(),
		Products:  db.Products(),
		Movements: db.Movements(),
		Tx:        sqlite.NewTxRunner(db),
		ping:      db.Ping,
		migrate:   func(context.Context) error { return nil },
		close:     func() { _ = db.Close() },
	}
}

// Ping verifica la conexión.
func (b *Backend) Ping(ctx context.Context) error { return b.ping(ctx) }

// Migrate aplica el esquema embebido (idempotente).
func (b *Backend) Migrate(ctx context.Context) error { return b.migrate(ctx) }

// Close libera las conexiones.
func (b *Backend) Close() {
	if b != nil && b.close != nil {
		b.close()
	}
}
