package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/sift/internal/config"
	"github.com/hpungsan/sift/internal/errors"
	"github.com/hpungsan/sift/internal/filter"
	"github.com/hpungsan/sift/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{db: db, cfg: cfg}
}

// ValueRequest represents the arguments for tools addressed by value.
type ValueRequest struct {
	Value string `json:"value"`
}

// QueryRequest represents the arguments for query.
type QueryRequest struct {
	Query string `json:"query"`
}

// HandleAnalyze handles the analyze tool call.
func (h *Handlers) HandleAnalyze(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ValueRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidInput(err.Error())), nil
	}

	result, err := ops.Analyze(ops.AnalyzeInput{Value: input.Value})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleCreate handles the create tool call.
func (h *Handlers) HandleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ValueRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidInput(err.Error())), nil
	}

	result, err := ops.Create(ctx, h.db, h.cfg, ops.CreateInput{Value: input.Value})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleFetch handles the fetch tool call.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ValueRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidInput(err.Error())), nil
	}

	result, err := ops.Fetch(ctx, h.db, ops.FetchInput{Value: input.Value})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleDelete handles the delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ValueRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidInput(err.Error())), nil
	}

	result, err := ops.Delete(ctx, h.db, ops.DeleteInput{Value: input.Value})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleFilter handles the filter tool call. Arguments share filter.Set's
// JSON shape, so they decode straight into it.
func (h *Handlers) HandleFilter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	set, err := decode[filter.Set](req)
	if err != nil {
		return errorResult(errors.NewInvalidParameters("arguments", err.Error())), nil
	}
	if err := filter.Check(set); err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Filter(ctx, h.db, ops.FilterInput{Filters: set})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleQuery handles the query tool call.
func (h *Handlers) HandleQuery(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[QueryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidInput(err.Error())), nil
	}

	result, err := ops.Query(ctx, h.db, ops.QueryInput{Query: input.Query})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// errorResult creates an MCP error result from an error.
func errorResult(err error) *mcp.CallToolResult {
	sErr := errors.As(err)

	errorObj := map[string]any{
		"code":    sErr.Code,
		"message": sErr.Message,
		"status":  sErr.Status,
	}
	// Only include details for non-internal errors to avoid leaking
	// SQL errors or file paths
	if sErr.Code != errors.ErrInternal && len(sErr.Details) > 0 {
		errorObj["details"] = sErr.Details
	}

	content, _ := json.Marshal(map[string]any{"error": errorObj})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return errorResult(errors.NewInternal(err)), nil
	}
	return mcp.NewToolResultText(string(content)), nil
}
