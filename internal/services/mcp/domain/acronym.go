// Package domain defines the MCP tools exposed over the acronym repository.
package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/acrobot/internal/services/acronym/storage"
)

// GetInput represents the MCP tool input for exact key lookup.
type GetInput struct {
	Key string `json:"key" jsonschema:"acronym key to look up"`
}

// GetResult represents the MCP tool output for exact key lookup.
type GetResult struct {
	Status string   `json:"status" jsonschema:"OK or NO_KEY"`
	Values []string `json:"values" jsonschema:"stored values for the key"`
}

// AddInput represents the MCP tool input for storing values.
type AddInput struct {
	Key    string   `json:"key" jsonschema:"acronym key"`
	Values []string `json:"values" jsonschema:"values to associate with the key"`
}

// AddResult represents the MCP tool output for storing values.
type AddResult struct {
	Status string `json:"status" jsonschema:"OK or NO_VALUES"`
}

// RemoveInput represents the MCP tool input for removing specific values.
type RemoveInput struct {
	Key    string   `json:"key" jsonschema:"acronym key"`
	Values []string `json:"values" jsonschema:"values to remove; all must be present"`
}

// RemoveResult represents the MCP tool output for removing specific values.
type RemoveResult struct {
	Status string `json:"status" jsonschema:"OK, NO_KEY, or NO_VALUES"`
}

// DeleteInput represents the MCP tool input for deleting a key.
type DeleteInput struct {
	Key string `json:"key" jsonschema:"acronym key to delete"`
}

// DeleteResult represents the MCP tool output for deleting a key.
type DeleteResult struct {
	Status string `json:"status" jsonschema:"OK or NO_KEY"`
}

// ListInput represents the MCP tool input for sampling keys.
type ListInput struct{}

// ListResult represents the MCP tool output for sampling keys.
type ListResult struct {
	Status string   `json:"status" jsonschema:"always OK"`
	Keys   []string `json:"keys" jsonschema:"random sample of at most 10 stored keys"`
}

// SearchInput represents the MCP tool input for fuzzy search.
type SearchInput struct {
	Term string `json:"term" jsonschema:"case-insensitive search term"`
}

// SearchResult represents the MCP tool output for fuzzy search.
type SearchResult struct {
	Status string   `json:"status" jsonschema:"OK or NO_KEY"`
	Keys   []string `json:"keys" jsonschema:"matching keys, best match first"`
}

// GetTool defines the MCP tool schema for exact lookup.
func GetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "acro_get",
		Description: "Returns every value stored under an acronym key",
	}
}

// AddTool defines the MCP tool schema for storing values.
func AddTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "acro_add",
		Description: "Stores values under an acronym key; re-adding present values is a no-op",
	}
}

// RemoveTool defines the MCP tool schema for removing values.
func RemoveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "acro_remove",
		Description: "Removes specific values from a key, all or nothing",
	}
}

// DeleteTool defines the MCP tool schema for deleting a key.
func DeleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "acro_delete",
		Description: "Deletes an acronym key and every value stored under it",
	}
}

// ListTool defines the MCP tool schema for sampling keys.
func ListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "acro_list",
		Description: "Returns a random sample of at most 10 stored keys",
	}
}

// SearchTool defines the MCP tool schema for fuzzy search.
func SearchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "acro_search",
		Description: "Fuzzy-searches keys and values, best match first",
	}
}

// GetHandler executes an exact lookup request.
func GetHandler(repo storage.Repository) mcp.ToolHandlerFor[GetInput, GetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetInput) (*mcp.CallToolResult, GetResult, error) {
		result, err := repo.Get(ctx, input.Key)
		if err != nil {
			return nil, GetResult{}, fmt.Errorf("acro get failed: %w", err)
		}
		return nil, GetResult{Status: result.Status.String(), Values: result.Values}, nil
	}
}

// AddHandler executes a store request.
func AddHandler(repo storage.Repository) mcp.ToolHandlerFor[AddInput, AddResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AddInput) (*mcp.CallToolResult, AddResult, error) {
		result, err := repo.Add(ctx, input.Key, input.Values)
		if err != nil {
			return nil, AddResult{}, fmt.Errorf("acro add failed: %w", err)
		}
		return nil, AddResult{Status: result.Status.String()}, nil
	}
}

// RemoveHandler executes a value-removal request.
func RemoveHandler(repo storage.Repository) mcp.ToolHandlerFor[RemoveInput, RemoveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RemoveInput) (*mcp.CallToolResult, RemoveResult, error) {
		result, err := repo.Remove(ctx, input.Key, input.Values)
		if err != nil {
			return nil, RemoveResult{}, fmt.Errorf("acro remove failed: %w", err)
		}
		return nil, RemoveResult{Status: result.Status.String()}, nil
	}
}

// DeleteHandler executes a key-deletion request.
func DeleteHandler(repo storage.Repository) mcp.ToolHandlerFor[DeleteInput, DeleteResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteResult, error) {
		result, err := repo.Delete(ctx, input.Key)
		if err != nil {
			return nil, DeleteResult{}, fmt.Errorf("acro delete failed: %w", err)
		}
		return nil, DeleteResult{Status: result.Status.String()}, nil
	}
}

// ListHandler executes a key-sampling request.
func ListHandler(repo storage.Repository) mcp.ToolHandlerFor[ListInput, ListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ListInput) (*mcp.CallToolResult, ListResult, error) {
		result, err := repo.ListKeys(ctx)
		if err != nil {
			return nil, ListResult{}, fmt.Errorf("acro list failed: %w", err)
		}
		return nil, ListResult{Status: result.Status.String(), Keys: result.Values}, nil
	}
}

// SearchHandler executes a fuzzy-search request.
func SearchHandler(repo storage.Repository) mcp.ToolHandlerFor[SearchInput, SearchResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchResult, error) {
		result, err := repo.Search(ctx, input.Term)
		if err != nil {
			return nil, SearchResult{}, fmt.Errorf("acro search failed: %w", err)
		}
		return nil, SearchResult{Status: result.Status.String(), Keys: result.Values}, nil
	}
}
