package comparecmder

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/onrampdev/onramp/cmd/analyzer/app"
)

const compareLongDesc string = `Compare repositories by beginner-friendliness.

Analyzes up to five repositories and ranks them by score. Repositories can
be given as separate arguments or comma-separated.

Examples:
  analyzer compare golang/go rust-lang/rust
  analyzer compare microsoft/vscode,facebook/react`

const compareShortDesc string = "Compare repositories by beginner-friendliness"

func NewCompareCmd(newApp app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <owner/repo> [owner/repo...]",
		Short: compareShortDesc,
		Long:  compareLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			repos := strings.Join(args, ",")

			heading := color.New(color.FgCyan, color.Bold)
			heading.Fprintf(cmd.ErrOrStderr(), "Comparing %s...\n", repos)

			report, err := a.Analyzer.CompareRepositories(cmd.Context(), repos)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}
}
