package issuescmder

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/onrampdev/onramp/cmd/analyzer/app"
)

const issuesLongDesc string = `Find good first issues for beginners in a repository.

Scans the open issues for beginner-oriented labels (good first issue,
help wanted, documentation, ...) and prints the newest candidates with
labels, comment counts, and a short description.

Examples:
  analyzer issues kubernetes/kubernetes`

const issuesShortDesc string = "Suggest good first issues"

func NewIssuesCmd(newApp app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "issues <owner/repo>",
		Short: issuesShortDesc,
		Long:  issuesLongDesc,
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
			heading.Fprintf(cmd.ErrOrStderr(), "Scanning issues in %s/%s...\n", owner, repo)

			report, err := a.Analyzer.GoodFirstIssues(cmd.Context(), owner, repo)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}
}
