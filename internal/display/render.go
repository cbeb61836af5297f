package display

import (
	"fmt"
	"strings"

	"stratagem/internal/format"
	"stratagem/pkg/planner"
)

// Render builds the full human-readable report for a plan: observations,
// the move table, warnings, cost panel, and the review verdict.
func Render(seq *planner.MoveSequence, mode format.Mode) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Case %s (%s), generated %s\n\n",
		seq.CaseID, seq.Domain, format.FmtDate(seq.GeneratedAt))

	if len(seq.Observations) == 0 {
		b.WriteString("No observations.\n")
	} else {
		b.WriteString(ObservationsTable(seq.Observations, mode))
		b.WriteString("\n\n")
	}

	if len(seq.Moves) == 0 {
		b.WriteString("No moves.\n")
	} else {
		fmt.Fprintf(&b, "Phases: %s\n\n", PhasePath(phaseRun(seq.Moves)))
		b.WriteString(MovesTable(seq.Moves, mode))
		b.WriteString("\n\n")
		b.WriteString(CostPanel(seq.Cost, mode))
		b.WriteString("\n")
	}

	for _, w := range seq.Warnings {
		fmt.Fprintf(&b, "\nWARNING: %s", w)
	}
	if len(seq.Warnings) > 0 {
		b.WriteString("\n")
	}

	if seq.Review != nil {
		b.WriteString("\n")
		b.WriteString(ReviewPanel(seq.Review))
	}
	return b.String()
}

// ObservationsTable renders the detected anomalies.
func ObservationsTable(obs []planner.Observation, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Header("ID", "Kind", "Leverage", "Description")
	for _, o := range obs {
		tb.Row(o.ID, Kind(o.Kind), LeverageName(o.Leverage), format.Truncate(o.Description, 70))
	}
	tb.Columns(format.ColumnConfig{Number: 4, MaxWidth: 72})
	return tb.String()
}

// MovesTable renders the sequenced moves with dependencies and forks.
func MovesTable(moves []planner.Move, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Header("#", "Phase", "Action", "Deps", "Cost", "Letter", "Fork")
	total := 0
	for _, m := range moves {
		total += m.Cost
		tb.Row(m.Order, PhaseShort(m.Phase), format.Truncate(m.Action, 60),
			depList(m.Dependencies), format.FmtCost(m.Cost),
			format.BoolMark(m.Letter != nil), Fork(m.Fork))
	}
	tb.Footer("", "", "", "", format.FmtCost(total), "", "")
	tb.Columns(
		format.ColumnConfig{Number: 1, Align: format.AlignRight},
		format.ColumnConfig{Number: 3, MaxWidth: 62},
		format.ColumnConfig{Number: 5, Align: format.AlignRight},
	)
	return tb.String()
}

// phaseRun collapses the move sequence into its distinct phase progression.
func phaseRun(moves []planner.Move) []planner.Phase {
	var ps []planner.Phase
	for _, m := range moves {
		if len(ps) == 0 || ps[len(ps)-1] != m.Phase {
			ps = append(ps, m.Phase)
		}
	}
	return ps
}

// CostPanel renders the spend economics.
func CostPanel(ca planner.CostAnalysis, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Header("Cost Analysis", "")
	tb.Row("Cost before expert spend", format.FmtCost(ca.CostBeforeExpertSpend))
	if ca.ExpertSpendTrigger != "" {
		tb.Row("Expert spend trigger", format.Truncate(ca.ExpertSpendTrigger, 70))
	}
	tb.Row("Spend avoided if gap confirmed", format.FmtCost(ca.SpendAvoidedIfGapConfirmed))
	tb.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight, MaxWidth: 72})
	return tb.String()
}

// ReviewPanel renders the reviewer verdict and its conditions as plain text.
func ReviewPanel(r *planner.Review) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Verdict: %s\n", r.Verdict)
	writeConditions(&b, "Win if", r.WinConditions)
	writeConditions(&b, "Kill if", r.KillConditions)
	writeConditions(&b, "Escalate if", r.EscalationTriggers)
	return b.String()
}

func writeConditions(b *strings.Builder, label string, conds []string) {
	for _, c := range conds {
		fmt.Fprintf(b, "%s: %s\n", label, c)
	}
}

func depList(deps []int) string {
	if len(deps) == 0 {
		return "-"
	}
	parts := make([]string, len(deps))
	for i, d := range deps {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return strings.Join(parts, ",")
}
