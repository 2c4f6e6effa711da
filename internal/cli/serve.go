package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tatianab/bby/internal/engine"
	"github.com/tatianab/bby/internal/mcpserver"
	"github.com/tatianab/bby/internal/models"
	"github.com/tatianab/bby/internal/story"
	"github.com/tatianab/bby/internal/telemetry"
)

func newServeCommand(a *app) *cobra.Command {
	var opts mcpserver.HTTPOptions

	cmd := &cobra.Command{
		Use:   "serve <file>",
		Short: "Serve a story as an MCP tool over HTTP",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().StringVar(&opts.Addr, "addr", "127.0.0.1:8080", "address to listen on")
	cmd.Flags().StringVar(&opts.Path, "path", "/mcp", "HTTP path of the MCP endpoint")
	cmd.Flags().StringVar(&opts.Token, "token", "", "bearer token clients must send")
	cmd.Flags().StringSliceVar(&opts.Origins, "origin", nil, "allowed browser origins")
	cmd.Flags().BoolVar(&opts.JSONResponse, "json", false, "answer with JSON instead of event streams")
	cmd.Flags().BoolVar(&opts.Stateless, "stateless", false, "do not track MCP sessions")

	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		load := func() (*models.World, error) {
			return story.Load(args[0])
		}

		server, err := mcpserver.NewServer(load, a.log,
			engine.WithLogger(a.log),
			engine.WithTracer(telemetry.Tracer("engine")),
		)
		if err != nil {
			return err
		}
		return server.Run(ctx, opts)
	})
	return cmd
}
