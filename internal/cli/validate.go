package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tatianab/bby/internal/story"
)

func newValidateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a story file loads",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Validating story: %s\n", args[0])

		world, err := story.Load(args[0])
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ Invalid story file: %v\n", err)
			return reportedError{err}
		}

		fmt.Fprintln(out, "✓ Story file is valid! :D")
		problems := story.Lint(world)
		for _, p := range problems {
			fmt.Fprintf(out, "  warning: %s\n", p)
		}
		a.log.WithField("warnings", len(problems)).Debug("story validated")
		return nil
	})
	return cmd
}
