package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zeusmes/sapbridge/internal/script"
)

var crearCmd = &cobra.Command{
	Use:   "crear-orden",
	Short: "Create a process order (COR1) from the command line",
	Long: `Run the create-order transaction once and print the outcome.

Example:
  sapbridge crear-orden --producto MAT1 --lote L001 --cantidad 250`,
	RunE: runCrear,
}

func init() {
	rootCmd.AddCommand(crearCmd)
	crearCmd.Flags().String("producto", "", "Material code (required)")
	crearCmd.Flags().String("lote", "", "Batch/lot code (required)")
	crearCmd.Flags().String("casa", "", "Plant code (default from config)")
	crearCmd.Flags().String("cantidad", "", "Quantity (default from config)")
	crearCmd.Flags().String("linea", "", "Production version / line")
	crearCmd.Flags().String("descripcion", "", "Free-text description")
	_ = crearCmd.MarkFlagRequired("producto")
	_ = crearCmd.MarkFlagRequired("lote")
}

func runCrear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	b, _ := newBridge(cfg)

	req := script.OrderRequest{}
	req.Producto, _ = cmd.Flags().GetString("producto")
	req.Lote, _ = cmd.Flags().GetString("lote")
	req.Casa, _ = cmd.Flags().GetString("casa")
	req.Cantidad, _ = cmd.Flags().GetString("cantidad")
	req.Linea, _ = cmd.Flags().GetString("linea")
	req.Descripcion, _ = cmd.Flags().GetString("descripcion")

	out, err := b.CreateOrder(context.Background(), req)
	if err != nil {
		return err
	}
	printJSON(out)
	if !out.Success {
		return fmt.Errorf("la orden no se creó")
	}
	return nil
}
