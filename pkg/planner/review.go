package planner

import (
	"fmt"
	"sort"
)

// reviewPanelMax caps how many win/kill conditions the panel carries; beyond
// that it stops being a senior reviewer's note and becomes a dump.
const reviewPanelMax = 3

// buildReview synthesizes the senior-reviewer panel: a one-line verdict on
// the evidential posture plus the explicit conditions that win or kill the
// case and the triggers that justify escalation pressure. Empty plans get
// no panel.
func buildReview(seq *MoveSequence, anchors CaseAnchors) *Review {
	if len(seq.Observations) == 0 || len(seq.Moves) == 0 {
		return nil
	}

	critical, high := 0, 0
	for _, o := range seq.Observations {
		switch o.Leverage {
		case LeverageCritical:
			critical++
		case LeverageHigh:
			high++
		}
	}

	var verdict string
	switch {
	case critical > 0:
		verdict = fmt.Sprintf(
			"Evidence posture strongly favours disclosure pressure: %d critical and %d high-leverage anomalies are unexplained on the current record.",
			critical, high)
	case high > 0:
		verdict = fmt.Sprintf(
			"Evidence posture favours early disclosure pressure: %d high-leverage anomalies are unexplained.", high)
	default:
		verdict = "Evidence posture is thin: the anomalies found are low-leverage and the plan is exploratory."
	}
	verdict += anchors.outcomeClause()

	// Top-leverage angles contribute the win/kill conditions.
	type ranked struct {
		angle InvestigationAngle
		lev   int
		idx   int
	}
	obsByID := make(map[string]Observation, len(seq.Observations))
	for _, o := range seq.Observations {
		obsByID[o.ID] = o
	}
	rs := make([]ranked, 0, len(seq.Angles))
	for i, a := range seq.Angles {
		rs = append(rs, ranked{angle: a, lev: obsByID[a.ObservationID].Leverage.Rank(), idx: i})
	}
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].lev != rs[j].lev {
			return rs[i].lev > rs[j].lev
		}
		return rs[i].idx < rs[j].idx
	})
	if len(rs) > reviewPanelMax {
		rs = rs[:reviewPanelMax]
	}

	r := &Review{Verdict: verdict}
	for _, x := range rs {
		r.WinConditions = append(r.WinConditions, x.angle.ConfirmationCondition)
		r.KillConditions = append(r.KillConditions, x.angle.KillCondition)
	}
	for _, m := range seq.Moves {
		if m.Phase == PhaseEscalation {
			r.EscalationTriggers = append(r.EscalationTriggers,
				fmt.Sprintf("silence or a bare denial in response to move %d", m.Order))
		}
	}
	if len(r.EscalationTriggers) == 0 {
		r.EscalationTriggers = append(r.EscalationTriggers,
			fmt.Sprintf("no substantive reply to any request within %d days of service", letterReplyDays))
	}
	return r
}
