package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	analyzecmder "github.com/onrampdev/onramp/cmd/analyzer/analyze"
	"github.com/onrampdev/onramp/cmd/analyzer/app"
	comparecmder "github.com/onrampdev/onramp/cmd/analyzer/compare"
	issuescmder "github.com/onrampdev/onramp/cmd/analyzer/issues"
	resourcescmder "github.com/onrampdev/onramp/cmd/analyzer/resources"
	servecmder "github.com/onrampdev/onramp/cmd/analyzer/serve"
)

const version = "1.0.0"

const rootLongDesc = `onramp analyzer inspects GitHub repositories and rates how
beginner-friendly they are: documentation signals, metadata quality, language
choice, and project maturity.

Run it as a one-shot CLI (analyze, resources, issues, compare) or serve the
same operations as MCP tools (serve).`

func main() {
	// A .env file is a convenient place for GITHUB_ACCESS_TOKEN.
	_ = godotenv.Load()

	var (
		cfgFile string
		debug   bool
	)

	root := &cobra.Command{
		Use:           "analyzer",
		Short:         "Analyze GitHub repositories for beginner-friendliness",
		Long:          rootLongDesc,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	newApp := app.Provider(func() (*app.App, error) {
		return app.Load(cfgFile, debug, version)
	})

	root.AddCommand(
		analyzecmder.NewAnalyzeCmd(newApp),
		resourcescmder.NewResourcesCmd(newApp),
		issuescmder.NewIssuesCmd(newApp),
		comparecmder.NewCompareCmd(newApp),
		servecmder.NewServeCmd(newApp),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
