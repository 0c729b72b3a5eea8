package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMigrateCommand aplica el esquema embebido del driver configurado.
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el esquema de base de datos (idempotente)",
		Example: `  stockctl migrate
  stockctl migrate --driver sqlite --sqlite ./data/inventario.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			backend, err := openBackend(ctx, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer backend.Close()

			if err := backend.Migrate(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "esquema aplicado (%s)\n", backend.Driver)
			return nil
		},
	}
}
