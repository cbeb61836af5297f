package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stratagem/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "stratagem",
	Short: "Evidence-led move sequencing for contentious legal matters",
	Long: "Stratagem turns a case evidence snapshot into an ordered sequence of\n" +
		"investigative moves: what to request, what to force on the record, and\n" +
		"when expert spend is actually justified.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logging.Init(logging.ParseLevel(rootFlags.logLevel), rootFlags.logFormat)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(domainsCmd)
	rootCmd.AddCommand(plansCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
