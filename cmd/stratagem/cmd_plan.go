package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"stratagem/internal/display"
	"stratagem/internal/logging"
	"stratagem/internal/store"
	"stratagem/pkg/planner"
)

var planFlags struct {
	format string
	now    string
	save   bool
	dbPath string
}

var planCmd = &cobra.Command{
	Use:   "plan <case-file>",
	Short: "Generate a move sequence from a case snapshot",
	Long: `Reads a case snapshot (YAML or JSON), runs the planning pipeline, and
prints the ordered move sequence with observations, warnings, and the cost
panel. With --save the plan is persisted as a new immutable version.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	f := planCmd.Flags()
	f.StringVar(&planFlags.format, "format", "ascii", "Output format (ascii, markdown, json)")
	f.StringVar(&planFlags.now, "now", "", "Evaluation date YYYY-MM-DD (default today)")
	f.BoolVar(&planFlags.save, "save", false, "Persist the generated plan")
	f.StringVar(&planFlags.dbPath, "db", store.DefaultDBPath, "SQLite database path")
}

func runPlan(cmd *cobra.Command, args []string) error {
	logger := logging.New("plan")

	in, err := loadInput(args[0])
	if err != nil {
		return err
	}
	if err := resolveNow(&in, planFlags.now); err != nil {
		return err
	}

	seq, err := planner.Plan(in)
	if err != nil {
		return fmt.Errorf("plan %s: %w", in.CaseID, err)
	}
	logger.Info("plan generated",
		"case_id", seq.CaseID, "domain", seq.Domain,
		"observations", len(seq.Observations), "moves", len(seq.Moves))

	out := cmd.OutOrStdout()
	if planFlags.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(seq); err != nil {
			return fmt.Errorf("encode plan: %w", err)
		}
	} else {
		mode, err := tableMode(planFlags.format)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, display.Render(seq, mode))
	}

	if planFlags.save {
		st, err := store.Open(planFlags.dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		rec, err := st.SavePlan(seq)
		if err != nil {
			return fmt.Errorf("save plan: %w", err)
		}
		fmt.Fprintf(out, "Saved plan %s (case %s, version %d)\n", rec.ID, rec.CaseID, rec.Version)
	}
	return nil
}
