package commands

import (
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/MaximilianKoestler/hcloud-openapi/internal/mcpserver"
)

// Serve returns the serve command, which runs the MCP server over stdio.
func Serve() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the MCP server over stdio",
		Description: `Exposes the parse, normalize, and dedupe tools to MCP clients.
Defaults are read from HCLOUD_OPENAPI_* environment variables.`,
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return mcpserver.Run(ctx)
		},
	}
}
