package servecmder

import (
	"context"
	"fmt"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/onrampdev/onramp/cmd/analyzer/app"
	"github.com/onrampdev/onramp/pkg/analyzer/mcpserver"
)

const serveLongDesc string = `Serve the analyzer's operations as MCP tools.

The default stdio transport is what MCP clients like editors and agent
runtimes spawn directly. The http transport serves the streamable MCP
endpoint at /mcp for remote clients.

Examples:
  analyzer serve
  analyzer serve --transport http --listen :8090`

const serveShortDesc string = "Serve analysis tools over MCP"

type serveCommander struct {
	transport string
	listen    string
}

func NewServeCmd(newApp app.Provider) *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return cmder.run(cmd.Context(), a)
		},
	}

	cmd.Flags().StringVarP(&cmder.transport, "transport", "t", "", "MCP transport: stdio or http (overrides config)")
	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", "", "HTTP listen address (overrides config)")

	return cmd
}

func (c *serveCommander) run(ctx context.Context, a *app.App) error {
	transport := c.transport
	if transport == "" {
		transport = a.Config.MCP.Transport
	}
	listen := c.listen
	if listen == "" {
		listen = a.Config.MCP.Listen
	}

	server := mcpserver.New(a.Analyzer, a.Version, a.Logger)

	switch transport {
	case "stdio":
		return server.Run(ctx)

	case "http":
		fiberApp := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			StreamRequestBody:     true,
		})

		fiberApp.Get("/health", func(fc *fiber.Ctx) error {
			return fc.JSON(map[string]string{"status": "ok"})
		})
		fiberApp.All("/mcp", adaptor.HTTPHandler(server.Handler()))

		a.Logger.Info("serving MCP over HTTP",
			zap.String("listen", listen),
			zap.String("endpoint", "/mcp"),
		)
		return fiberApp.Listen(listen)

	default:
		return fmt.Errorf("unknown transport %q, use 'stdio' or 'http'", transport)
	}
}
