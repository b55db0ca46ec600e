package analyzecmder

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/onrampdev/onramp/cmd/analyzer/app"
)

const analyzeLongDesc string = `Analyze a GitHub repository for structure, complexity,
and beginner-friendliness.

Fetches the repository's metadata, contents, languages, recent commits and
open issues, then prints a markdown report with a 0-100 beginner-friendliness
score and the factors behind it.

Examples:
  analyzer analyze golang/go
  analyzer analyze rust-lang/rustlings --debug`

const analyzeShortDesc string = "Analyze a repository's beginner-friendliness"

func NewAnalyzeCmd(newApp app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <owner/repo>",
		Short: analyzeShortDesc,
		Long:  analyzeLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			owner, repo, ok := strings.Cut(args[0], "/")
			if !ok || owner == "" || repo == "" {
				return fmt.Errorf("invalid repository %q, use 'owner/repo'", args[0])
			}

			heading := color.New(color.FgCyan, color.Bold)
			heading.Fprintf(cmd.ErrOrStderr(), "Analyzing %s/%s...\n", owner, repo)

			report, err := a.Analyzer.AnalyzeRepository(cmd.Context(), owner, repo)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}
}
