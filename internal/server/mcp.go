package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/zeusmes/sapbridge/internal/bridge"
	"github.com/zeusmes/sapbridge/internal/script"
	"github.com/zeusmes/sapbridge/internal/version"
)

// MCP exposes the bridge operations as MCP tools so agent clients can drive
// SAP without going through the Zeus REST surface. Tools share the bridge
// (and its session gate) with HTTP.
type MCP struct {
	log    zerolog.Logger
	bridge *bridge.Bridge
	mcp    *mcpserver.MCPServer
}

func NewMCP(logger zerolog.Logger, b *bridge.Bridge) *MCP {
	m := &MCP{log: logger, bridge: b}
	m.mcp = mcpserver.NewMCPServer("sapbridge", version.Version)
	m.registerTools()
	return m
}

// Serve starts the MCP server on the requested transport.
func (m *MCP) Serve(transport string, port int) error {
	switch transport {
	case "stdio":
		return mcpserver.ServeStdio(m.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(m.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", transport)
	}
}

func (m *MCP) registerTools() {
	m.mcp.AddTool(
		mcp.NewTool("sap_status",
			mcp.WithDescription("Check whether a live SAP GUI session is reachable"),
		),
		m.handleStatus,
	)

	m.mcp.AddTool(
		mcp.NewTool("crear_orden",
			mcp.WithDescription("Create a process order via SAP transaction COR1"),
			mcp.WithString("producto", mcp.Required(), mcp.Description("Material code")),
			mcp.WithString("lote", mcp.Required(), mcp.Description("Batch/lot code")),
			mcp.WithString("casa", mcp.Description("Plant code (default from config)")),
			mcp.WithString("cantidad", mcp.Description("Quantity (default from config)")),
			mcp.WithString("linea", mcp.Description("Production version / line")),
			mcp.WithString("descripcion", mcp.Description("Free-text description")),
		),
		m.handleCreateOrder,
	)

	m.mcp.AddTool(
		mcp.NewTool("liberar_orden",
			mcp.WithDescription("Release a process order via SAP transaction COR2"),
			mcp.WithString("id_sap", mcp.Description("SAP order number")),
			mcp.WithString("producto", mcp.Description("Material code (informational)")),
		),
		m.handleReleaseOrder,
	)
}

func (m *MCP) handleStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := m.bridge.Status(ctx)
	status := "disconnected"
	if st.Connected {
		status = "connected"
	}
	return mcp.NewToolResultText(toolJSON(statusResponse{Status: status, Message: st.Message})), nil
}

func (m *MCP) handleCreateOrder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	req := script.OrderRequest{
		Producto:    stringArg(args, "producto"),
		Lote:        stringArg(args, "lote"),
		Casa:        stringArg(args, "casa"),
		Cantidad:    stringArg(args, "cantidad"),
		Linea:       stringArg(args, "linea"),
		Descripcion: stringArg(args, "descripcion"),
	}
	out, err := m.bridge.CreateOrder(ctx, req)
	return m.toolOutcome(out, err), nil
}

func (m *MCP) handleReleaseOrder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	req := script.ReleaseRequest{
		IDSAP:    stringArg(args, "id_sap"),
		Producto: stringArg(args, "producto"),
	}
	out, err := m.bridge.ReleaseOrder(ctx, req)
	return m.toolOutcome(out, err), nil
}

func (m *MCP) toolOutcome(out script.Outcome, err error) *mcp.CallToolResult {
	if err != nil {
		return mcp.NewToolResultError(toolJSON(orderResponse{Message: err.Error()}))
	}
	body := toolJSON(orderResponse{Success: out.Success, Message: out.Message})
	if !out.Success {
		return mcp.NewToolResultError(body)
	}
	return mcp.NewToolResultText(body)
}

func toolJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"success":false,"message":%q}`, err.Error())
	}
	return string(b)
}

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return ""
}
