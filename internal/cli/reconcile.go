package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-tiendas/internal/application/inventory"
)

// ErrDiscrepancies se devuelve cuando la conciliación encuentra diferencias (exit code != 0).
var ErrDiscrepancies = fmt.Errorf("se encontraron discrepancias")

// NewReconcileCommand recalcula cada producto de una tienda desde sus movimientos.
func NewReconcileCommand(opts *RootOptions) *cobra.Command {
	var storeID string
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Compara current_quantity con la suma de movimientos de cada producto",
		Long: `Recorre los productos de la tienda y verifica que la cantidad actual sea igual a
entradas - ventas - bajas. Termina con error si hay alguna diferencia.`,
		Example: `  stockctl reconcile --store 5c3e...
  stockctl reconcile --store 5c3e... --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			backend, err := openBackend(ctx, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer backend.Close()

			uc := inventory.NewReconcileUseCase(backend.Stores, backend.Products, backend.Movements)
			report, err := uc.Reconcile(ctx, storeID)
			if err != nil {
				return err
			}
			if err := writeReport(cmd.OutOrStdout(), opts.Format, report); err != nil {
				return err
			}
			if !report.Consistent() {
				return fmt.Errorf("%w: %d en la tienda %s", ErrDiscrepancies, len(report.Discrepancies), storeID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&storeID, "store", "", "ID de la tienda (requerido)")
	_ = cmd.MarkFlagRequired("store")
	return cmd
}

func writeReport(w io.Writer, format string, r *inventory.ReconcileReport) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	fmt.Fprintf(w, "tienda %s: %d productos revisados\n", r.StoreID, r.ProductsChecked)
	if r.Consistent() {
		fmt.Fprintln(w, "OK: todas las cantidades coinciden con el historial")
		return nil
	}
	for _, d := range r.Discrepancies {
		name := d.ProductName
		if name == "" {
			name = "(sin producto)"
		}
		fmt.Fprintf(w, "  %s %s: cantidad=%d historial=%d movimientos=%d\n",
			d.ProductID, name, d.CurrentQuantity, d.LedgerNet, d.Movements)
	}
	return nil
}
