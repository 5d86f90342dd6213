// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sperez1989/basket/internal/contract"
)

// NewMCPServer initializes and configures the Basket MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Basket Insights Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_cpi_insights ---
	s.AddTool(mcp.NewTool("get_cpi_insights",
		mcp.WithDescription("Compare Canada's latest-year CPI against the OECD average per COICOP category."),
		mcp.WithString("data_dir", mcp.Description("Directory holding the OECD CSV exports (defaults to the configured data directory).")),
		mcp.WithString("categories", mcp.Description("Comma-separated COICOP category codes (e.g. 'CP01,CP041')."), mcp.Required()),
		mcp.WithNumber("from", mcp.Description("First year of the analysis window.")),
		mcp.WithNumber("to", mcp.Description("Last year of the analysis window.")),
	), h.handleGetCPIInsights)

	// --- 2. Tool: get_expenditure_insights ---
	s.AddTool(mcp.NewTool("get_expenditure_insights",
		mcp.WithDescription("Compare Canada's expenditure share and growth against the OECD average per COICOP category."),
		mcp.WithString("data_dir", mcp.Description("Directory holding the OECD CSV exports.")),
		mcp.WithString("categories", mcp.Description("Comma-separated COICOP category codes."), mcp.Required()),
		mcp.WithNumber("from", mcp.Description("First year of the analysis window.")),
		mcp.WithNumber("to", mcp.Description("Last year of the analysis window.")),
	), h.handleGetExpenditureInsights)

	// --- 3. Tool: get_cluster_peers ---
	s.AddTool(mcp.NewTool("get_cluster_peers",
		mcp.WithDescription("List the country clusters and Canada's peer countries."),
		mcp.WithString("data_dir", mcp.Description("Directory holding the OECD CSV exports.")),
	), h.handleGetClusterPeers)

	// --- 4. Tool: get_cluster_cpi_insights ---
	s.AddTool(mcp.NewTool("get_cluster_cpi_insights",
		mcp.WithDescription("Compare Canada's latest-year CPI against the cluster averages per COICOP category."),
		mcp.WithString("data_dir", mcp.Description("Directory holding the OECD CSV exports.")),
		mcp.WithString("categories", mcp.Description("Comma-separated COICOP category codes."), mcp.Required()),
		mcp.WithNumber("from", mcp.Description("First year of the analysis window.")),
		mcp.WithNumber("to", mcp.Description("Last year of the analysis window.")),
	), h.handleGetClusterCPIInsights)

	// --- 5. Tool: get_cluster_expenditure_insights ---
	s.AddTool(mcp.NewTool("get_cluster_expenditure_insights",
		mcp.WithDescription("Compare Canada's latest-year expenditure share and growth against the cluster averages per COICOP category."),
		mcp.WithString("data_dir", mcp.Description("Directory holding the OECD CSV exports.")),
		mcp.WithString("categories", mcp.Description("Comma-separated COICOP category codes."), mcp.Required()),
		mcp.WithNumber("from", mcp.Description("First year of the analysis window.")),
		mcp.WithNumber("to", mcp.Description("Last year of the analysis window.")),
	), h.handleGetClusterExpenditureInsights)

	return s
}

// StartMCPServer starts the Basket MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
