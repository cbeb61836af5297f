package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"stratagem/internal/format"
	"stratagem/internal/logging"
	"stratagem/internal/store"
	"stratagem/pkg/planner"
)

var batchFlags struct {
	parallel int
	save     bool
	dbPath   string
	now      string
}

var batchCmd = &cobra.Command{
	Use:   "batch <case-file>...",
	Short: "Plan many case snapshots and print a summary table",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.IntVar(&batchFlags.parallel, "parallel", 4, "Number of parallel workers")
	f.BoolVar(&batchFlags.save, "save", false, "Persist each generated plan")
	f.StringVar(&batchFlags.dbPath, "db", store.DefaultDBPath, "SQLite database path")
	f.StringVar(&batchFlags.now, "now", "", "Evaluation date YYYY-MM-DD (default today)")
}

type batchResult struct {
	path string
	seq  *planner.MoveSequence
	err  error
}

func runBatch(cmd *cobra.Command, args []string) error {
	logger := logging.New("batch")

	var st store.Store
	if batchFlags.save {
		sqlStore, err := store.Open(batchFlags.dbPath)
		if err != nil {
			return err
		}
		defer sqlStore.Close()
		st = sqlStore
	}

	results := make([]batchResult, len(args))
	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(batchFlags.parallel)
	for i, path := range args {
		g.Go(func() error {
			results[i] = planOne(path)
			return nil
		})
	}
	_ = g.Wait()

	tb := format.NewTable(format.ASCII)
	tb.Header("Case File", "Case", "Obs", "Moves", "Warnings", "Status")
	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			tb.Row(format.Truncate(r.path, 40), "-", "-", "-", "-", r.err.Error())
			continue
		}
		status := "ok"
		if st != nil {
			rec, err := st.SavePlan(r.seq)
			if err != nil {
				failed++
				status = fmt.Sprintf("save failed: %v", err)
			} else {
				status = fmt.Sprintf("saved v%d", rec.Version)
			}
		}
		tb.Row(format.Truncate(r.path, 40), r.seq.CaseID,
			len(r.seq.Observations), len(r.seq.Moves), len(r.seq.Warnings), status)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tb.String())

	logger.Info("batch complete", "total", len(args), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d case files failed", failed, len(args))
	}
	return nil
}

func planOne(path string) batchResult {
	in, err := loadInput(path)
	if err != nil {
		return batchResult{path: path, err: err}
	}
	if err := resolveNow(&in, batchFlags.now); err != nil {
		return batchResult{path: path, err: err}
	}
	seq, err := planner.Plan(in)
	if err != nil {
		return batchResult{path: path, err: err}
	}
	return batchResult{path: path, seq: seq}
}
