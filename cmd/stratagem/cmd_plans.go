package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"stratagem/internal/format"
	"stratagem/internal/store"
)

var plansFlags struct {
	dbPath string
	planID string
}

var plansCmd = &cobra.Command{
	Use:   "plans [case-id]",
	Short: "List saved plans, or the versions of one case",
	Long: `Without arguments, lists every case with saved plans. With a case id,
lists that case's plan versions. With --id, prints one saved plan as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlans,
}

func init() {
	f := plansCmd.Flags()
	f.StringVar(&plansFlags.dbPath, "db", store.DefaultDBPath, "SQLite database path")
	f.StringVar(&plansFlags.planID, "id", "", "Print one saved plan as JSON")
}

func runPlans(cmd *cobra.Command, args []string) error {
	st, err := store.Open(plansFlags.dbPath)
	if err != nil {
		return err
	}
	defer st.Close()
	out := cmd.OutOrStdout()

	if plansFlags.planID != "" {
		rec, err := st.GetPlan(plansFlags.planID)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("no plan with id %s", plansFlags.planID)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	if len(args) == 1 {
		recs, err := st.ListPlans(args[0])
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Fprintf(out, "No saved plans for case %s\n", args[0])
			return nil
		}
		tb := format.NewTable(format.ASCII)
		tb.Header("Version", "Plan ID", "Created", "Moves", "Warnings")
		for _, rec := range recs {
			tb.Row(rec.Version, rec.ID, rec.CreatedAt, len(rec.Plan.Moves), len(rec.Plan.Warnings))
		}
		fmt.Fprintln(out, tb.String())
		return nil
	}

	cases, err := st.ListCases()
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		fmt.Fprintln(out, "No saved plans.")
		return nil
	}
	tb := format.NewTable(format.ASCII)
	tb.Header("Case", "Domain", "Plans", "Latest", "Updated")
	for _, cs := range cases {
		tb.Row(cs.CaseID, cs.Domain, cs.PlanCount, cs.LatestVersion, cs.UpdatedAt)
	}
	fmt.Fprintln(out, tb.String())
	return nil
}
