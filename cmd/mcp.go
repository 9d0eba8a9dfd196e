package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zeusmes/sapbridge/internal/server"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing the SAP transactions as tools",
	Long: `Start a Model Context Protocol server with the tools sap_status,
crear_orden, and liberar_orden, sharing the same session gate as the HTTP
surface.

Transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	mcpCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	b, _ := newBridge(cfg)
	return server.NewMCP(log, b).Serve(transport, port)
}
