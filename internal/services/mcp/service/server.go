// Package service hosts the acronym MCP server.
package service

import (
	"context"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/acrobot/internal/services/acronym/storage"
	"github.com/louisbranch/acrobot/internal/services/acronym/storage/sqlite"
	"github.com/louisbranch/acrobot/internal/services/mcp/domain"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Acrobot MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
)

// Config configures the MCP server.
type Config struct {
	DBPath    string
	Transport TransportKind
}

// New creates a configured MCP server over the given repository.
func New(repo storage.Repository) *mcp.Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerAcronymTools(mcpServer, repo)
	return mcpServer
}

func registerAcronymTools(mcpServer *mcp.Server, repo storage.Repository) {
	mcp.AddTool(mcpServer, domain.GetTool(), domain.GetHandler(repo))
	mcp.AddTool(mcpServer, domain.AddTool(), domain.AddHandler(repo))
	mcp.AddTool(mcpServer, domain.RemoveTool(), domain.RemoveHandler(repo))
	mcp.AddTool(mcpServer, domain.DeleteTool(), domain.DeleteHandler(repo))
	mcp.AddTool(mcpServer, domain.ListTool(), domain.ListHandler(repo))
	mcp.AddTool(mcpServer, domain.SearchTool(), domain.SearchHandler(repo))
}

// Run opens the acronym store and serves MCP until the context ends.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	if cfg.Transport != TransportStdio {
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open acronym store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close acronym store: %v", err)
		}
	}()

	return New(store).Run(ctx, &mcp.StdioTransport{})
}
