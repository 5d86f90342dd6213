package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sperez1989/basket/core"
	"github.com/sperez1989/basket/internal/contract"
	"github.com/sperez1989/basket/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// applyCommonArgs clones the base config and applies the arguments shared by
// every tool: data directory, category selection, and year window.
func (h *toolHandler) applyCommonArgs(request mcp.CallToolRequest) *contract.Config {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("data_dir", ""); d != "" {
		cfg.DataDir = d
	}
	if c := request.GetString("categories", ""); c != "" {
		cfg.Categories = contract.SplitCategories(c)
	}
	if f := request.GetInt("from", 0); f > 0 {
		cfg.FromYear = f
	}
	if t := request.GetInt("to", 0); t > 0 {
		cfg.ToYear = t
	}
	return cfg
}

// loadFiltered loads the dataset and clamps the configured year window to
// its bounds.
func (h *toolHandler) loadFiltered(cfg *contract.Config) (*schema.Dataset, core.YearRange, error) {
	ds, err := core.LoadDataset(cfg, h.mgr.GetDatasetStore())
	if err != nil {
		return nil, core.YearRange{}, err
	}
	minYear, ok := ds.MinYear()
	if !ok {
		return ds, core.YearRange{From: cfg.FromYear, To: cfg.ToYear}, nil
	}
	maxYear, _ := ds.MaxYear()
	return ds, core.ClampYearRange(cfg.FromYear, cfg.ToYear, minYear, maxYear), nil
}

func (h *toolHandler) handleGetCPIInsights(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.applyCommonArgs(request)
	if len(cfg.Categories) == 0 {
		return mcp.NewToolResultError("at least one COICOP category is required"), nil
	}

	ds, yr, err := h.loadFiltered(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load dataset: %v", err)), nil
	}

	filtered := core.FilterSeries(ds.Series, cfg.Categories, yr)
	result := core.DeriveCPI(filtered, cfg.Categories)

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetExpenditureInsights(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.applyCommonArgs(request)
	if len(cfg.Categories) == 0 {
		return mcp.NewToolResultError("at least one COICOP category is required"), nil
	}

	ds, yr, err := h.loadFiltered(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load dataset: %v", err)), nil
	}

	filtered := core.FilterSeries(ds.Series, cfg.Categories, yr)
	result := core.DeriveExpenditure(filtered, cfg.Categories, yr)

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetClusterPeers(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.applyCommonArgs(request)

	ds, _, err := h.loadFiltered(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load dataset: %v", err)), nil
	}

	result := core.DeriveClusters(ds)

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetClusterCPIInsights(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.applyCommonArgs(request)
	if len(cfg.Categories) == 0 {
		return mcp.NewToolResultError("at least one COICOP category is required"), nil
	}

	ds, yr, err := h.loadFiltered(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load dataset: %v", err)), nil
	}

	filtered := core.FilterClusterSeries(ds.ClusterCPI, cfg.Categories, yr)
	result := core.DeriveClusterCPI(filtered, cfg.Categories)

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetClusterExpenditureInsights(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.applyCommonArgs(request)
	if len(cfg.Categories) == 0 {
		return mcp.NewToolResultError("at least one COICOP category is required"), nil
	}

	ds, yr, err := h.loadFiltered(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load dataset: %v", err)), nil
	}

	filtered := core.FilterClusterExpenditure(ds.ClusterExp, cfg.Categories, yr)
	result := core.DeriveClusterExpenditure(filtered, cfg.Categories)

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
