package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tatianab/bby/internal/generator"
	"github.com/tatianab/bby/internal/scaffold"
	"github.com/tatianab/bby/internal/story"
)

func newCreateCommand(a *app) *cobra.Command {
	var (
		formatName string
		dir        string
		hint       string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new story from the starter template",
		Long: "Create a new story from the starter template. With --hint and " +
			"GEMINI_API_KEY set, the story is written by Gemini instead.",
		Args: cobra.ExactArgs(1),
	}
	cmd.Flags().StringVar(&formatName, "format", "toml", "story format: yaml, toml or ini")
	cmd.Flags().StringVar(&dir, "dir", ".", "directory to create the story in")
	cmd.Flags().StringVar(&hint, "hint", "", "theme for a generated story")

	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		name := args[0]
		format, err := story.ParseFormat(formatName)
		if err != nil {
			return err
		}

		var path string
		if hint == "" {
			path, err = scaffold.Create(dir, name, format)
		} else {
			path, err = a.generate(cmd, dir, name, format, hint)
		}
		if err != nil {
			return err
		}

		a.log.WithField("path", path).Info("story created")
		fmt.Fprintf(cmd.OutOrStdout(), "Created new story '%s'! :D\n%s\n", name, path)
		return nil
	})
	return cmd
}

func (a *app) generate(cmd *cobra.Command, dir, name string, format story.Format, hint string) (string, error) {
	if a.cfg.GeminiAPIKey == "" {
		return "", fmt.Errorf("--hint needs GEMINI_API_KEY to be set")
	}
	if format != story.FormatYAML && cmd.Flags().Changed("format") {
		return "", fmt.Errorf("generated stories are always yaml")
	}

	gen, err := generator.NewGenerator(cmd.Context(), a.cfg.GeminiAPIKey, a.cfg.GeminiModel)
	if err != nil {
		return "", fmt.Errorf("creating generator: %w", err)
	}
	defer gen.Close()

	a.log.WithField("hint", hint).Info("generating story")
	data, err := gen.Generate(cmd.Context(), hint)
	if err != nil {
		return "", fmt.Errorf("generating story: %w", err)
	}
	return scaffold.Write(dir, name, story.FormatYAML, data)
}
