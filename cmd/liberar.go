package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zeusmes/sapbridge/internal/script"
)

var liberarCmd = &cobra.Command{
	Use:   "liberar-orden",
	Short: "Release a process order (COR2) from the command line",
	Long: `Run the release-order transaction once and print the outcome.

Example:
  sapbridge liberar-orden --id-sap 000000100235`,
	RunE: runLiberar,
}

func init() {
	rootCmd.AddCommand(liberarCmd)
	liberarCmd.Flags().String("id-sap", "", "SAP order number (required unless allow_unkeyed_release is set)")
	liberarCmd.Flags().String("producto", "", "Material code (informational)")
}

func runLiberar(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	b, _ := newBridge(cfg)

	req := script.ReleaseRequest{}
	req.IDSAP, _ = cmd.Flags().GetString("id-sap")
	req.Producto, _ = cmd.Flags().GetString("producto")

	out, err := b.ReleaseOrder(context.Background(), req)
	if err != nil {
		return err
	}
	printJSON(out)
	if !out.Success {
		return fmt.Errorf("la orden no se liberó")
	}
	return nil
}
