package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tatianab/bby/internal/config"
	"github.com/tatianab/bby/internal/console"
	"github.com/tatianab/bby/internal/engine"
	"github.com/tatianab/bby/internal/story"
	"github.com/tatianab/bby/internal/telemetry"
	"github.com/tatianab/bby/internal/tui"
)

func newPlayCommand(a *app) *cobra.Command {
	var ui string

	cmd := &cobra.Command{
		Use:   "play <file>",
		Short: "Play a story",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().StringVar(&ui, "ui", "", "front end to use: plain or tui (default from BBY_UI)")

	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
		defer stop()

		if ui == "" {
			ui = a.cfg.UI
		}
		if ui != config.UIPlain && ui != config.UITUI {
			return fmt.Errorf("unknown ui %q", ui)
		}

		world, err := story.Load(args[0])
		if err != nil {
			return err
		}
		a.log.WithField("story", world.Story.Title).Info("starting game")

		game := engine.NewGame(world,
			engine.WithLogger(a.log),
			engine.WithTracer(telemetry.Tracer("engine")),
		)

		if ui == config.UITUI {
			return tui.Run(ctx, game)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Starting game: %s\n", args[0])
		renderer := console.NewRenderer(out,
			console.WithWrapWidth(a.cfg.WrapWidth),
			console.WithTypingDelay(a.cfg.TypingDelay),
		)
		return engine.NewLoop(game, lineReader(cmd), renderer).Run(ctx)
	})
	return cmd
}

// reader uses the terminal when stdin has not been redirected by the caller.
func lineReader(cmd *cobra.Command) engine.LineReader {
	if in := cmd.InOrStdin(); in != os.Stdin {
		return console.NewReader(in, cmd.OutOrStdout(), console.Prompt)
	}
	return console.NewStdinReader(console.Prompt)
}
