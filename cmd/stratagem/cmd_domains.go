package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stratagem/internal/format"
	"stratagem/pkg/evidence"
)

var domainsFlags struct {
	format string
}

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List practice areas with an evidence model",
	RunE:  runDomains,
}

func init() {
	domainsCmd.Flags().StringVar(&domainsFlags.format, "format", "ascii", "Output format (ascii, markdown)")
}

func runDomains(cmd *cobra.Command, _ []string) error {
	mode, err := tableMode(domainsFlags.format)
	if err != nil {
		return err
	}

	tb := format.NewTable(mode)
	tb.Header("Domain", "Display Name", "Items", "Rules", "Deadlines", "Tightest", "Failure Modes")
	for _, d := range evidence.Domains() {
		m := evidence.ModelFor(d)
		tb.Row(string(d), m.DisplayName, len(m.ExpectedItems),
			len(m.NormalPatterns)+len(m.GovernanceRules), len(m.Deadlines),
			tightestDeadline(m), len(m.FailureModes))
	}
	fmt.Fprintln(cmd.OutOrStdout(), tb.String())
	return nil
}

// tightestDeadline formats the domain's shortest deadline window, or "-"
// when the domain tracks none.
func tightestDeadline(m *evidence.Model) string {
	days := 0
	for _, d := range m.Deadlines {
		if days == 0 || d.Days < days {
			days = d.Days
		}
	}
	if days == 0 {
		return "-"
	}
	return format.FmtDays(days)
}
