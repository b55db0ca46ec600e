package resourcescmder

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/onrampdev/onramp/cmd/analyzer/app"
)

const resourcesLongDesc string = `Extract beginner-friendly resources from a repository.

Scans the repository's top-level files for READMEs, tutorials, guides,
contribution and setup documentation, and prints a preview of each.

Examples:
  analyzer resources golang/go`

const resourcesShortDesc string = "List a repository's beginner documentation"

func NewResourcesCmd(newApp app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "resources <owner/repo>",
		Short: resourcesShortDesc,
		Long:  resourcesLongDesc,
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
			heading.Fprintf(cmd.ErrOrStderr(), "Collecting resources for %s/%s...\n", owner, repo)

			report, err := a.Analyzer.BeginnerResources(cmd.Context(), owner, repo)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}
}
