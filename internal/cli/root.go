// Package cli comandos de operador de stockctl (migraciones y conciliación del libro de movimientos).
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-tiendas/internal/infrastructure/storage"
	"github.com/jhoicas/inventario-tiendas/pkg/config"
	"github.com/jhoicas/inventario-tiendas/pkg/logger"
)

// RootOptions flags globales.
type RootOptions struct {
	Driver     string // vacío = DB_DRIVER
	SQLitePath string // vacío = DB_SQLITE_PATH
	Format     string // "text" | "json"
	Verbose    bool

	// loadConfig se reemplaza en tests.
	loadConfig func() (*config.Config, error)
}

// ValidFormats formatos de salida admitidos.
var ValidFormats = []string{"text", "json"}

// NewRootCommand crea el comando raíz de stockctl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{loadConfig: config.Load})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stockctl",
		Short: "Herramientas de operador del inventario",
		Long:  "Aplica el esquema y concilia cantidades contra el libro de movimientos.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("formato inválido %q: debe ser uno de %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", "", "driver de base de datos (postgres|sqlite); por defecto DB_DRIVER")
	cmd.PersistentFlags().StringVar(&opts.SQLitePath, "sqlite", "", "ruta de la base SQLite; por defecto DB_SQLITE_PATH")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "formato de salida (text|json)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log detallado")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewReconcileCommand(opts))
	return cmd
}

// openBackend carga la configuración, aplica los flags y abre el almacén.
func openBackend(ctx context.Context, opts *RootOptions, stderr io.Writer) (*storage.Backend, error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, err
	}
	dbCfg := cfg.DB
	if opts.Driver != "" {
		dbCfg.Driver = opts.Driver
	}
	if opts.SQLitePath != "" {
		dbCfg.SQLitePath = opts.SQLitePath
	}
	// migrate aplica el esquema explícitamente
	dbCfg.AutoMigrate = false

	level := "warn"
	if opts.Verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: "cli", Level: level, Output: stderr})
	return storage.Open(ctx, dbCfg, log)
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
