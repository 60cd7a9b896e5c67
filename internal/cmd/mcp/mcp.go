// Package mcp parses MCP service flags and launches the MCP server.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/acrobot/internal/platform/cmd"
	"github.com/louisbranch/acrobot/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	DBPath    string `env:"ACROBOT_DB_PATH" envDefault:"acrobot.db"`
	Transport string `env:"ACROBOT_MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "MCP transport (stdio)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the acronym MCP service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(runCtx context.Context) error {
		return service.Run(runCtx, service.Config{
			DBPath:    cfg.DBPath,
			Transport: service.TransportKind(cfg.Transport),
		})
	})
}
