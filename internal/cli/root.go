// Package cli wires the bby commands together.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	perrors "github.com/pixil98/go-errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tatianab/bby/internal/config"
	"github.com/tatianab/bby/internal/logging"
	"github.com/tatianab/bby/internal/telemetry"
)

// reportedError has already been shown to the user.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

// app is the state shared by every command of one run.
type app struct {
	cfg       *config.Config
	log       logrus.FieldLogger
	sessionID string

	closers []func(context.Context) error
}

func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "bby",
		Short:         "Play, write and check interactive fiction stories",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.AddCommand(
		newPlayCommand(a),
		newCreateCommand(a),
		newValidateCommand(a),
		newServeCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	// A game owns the terminal, so its logs only go to a file.
	var fallback io.Writer = cmd.ErrOrStderr()
	if cmd.Name() == "play" {
		fallback = io.Discard
	}

	logger, closeLog, err := logging.New(cfg.LogLevel, cfg.LogFile, fallback)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, func(context.Context) error { return closeLog() })

	a.sessionID = uuid.NewString()
	a.log = logger.WithFields(logrus.Fields{
		"session": a.sessionID,
		"command": cmd.Name(),
	})

	shutdown, err := telemetry.Setup(cmd.Context(), a.sessionID)
	if err != nil {
		_ = a.close(cmd.Context())
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	a.closers = append(a.closers, shutdown)

	a.log.Debug("starting")
	return nil
}

// run wraps a command so the logger and tracer are closed however it ends.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		closeErr := a.close(context.WithoutCancel(cmd.Context()))
		if err != nil {
			return err
		}
		return closeErr
	}
}

// close runs the closers in reverse order and reports every failure.
func (a *app) close(ctx context.Context) error {
	el := perrors.NewErrorList()
	for i := len(a.closers) - 1; i >= 0; i-- {
		el.Add(a.closers[i](ctx))
	}
	a.closers = nil
	return el.Err()
}

// Execute runs the bby command line and returns the process exit code.
func Execute(ctx context.Context) int {
	return execute(ctx, NewRootCommand())
}

// Play runs "bby play" in the TUI with the given arguments. It backs the
// short "go run . <story file>" entry point.
func Play(ctx context.Context, args []string) int {
	root := NewRootCommand()
	root.SetArgs(append([]string{"play", "--ui", config.UITUI}, args...))
	return execute(ctx, root)
}

func execute(ctx context.Context, root *cobra.Command) int {
	if err := root.ExecuteContext(ctx); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
