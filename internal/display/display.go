// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans.
// Use these functions in CLI output, markdown reports, logs, and docs.
// Keep raw codes for JSON fields, map keys, and equality comparisons.
package display

import (
	"fmt"
	"strings"

	"stratagem/pkg/planner"
)

// --- Observation Kinds ---

var kinds = map[planner.ObservationKind]string{
	planner.KindEvidenceGap:          "Evidence Gap",
	planner.KindTimelineAnomaly:      "Timeline Anomaly",
	planner.KindInconsistency:        "Inconsistency",
	planner.KindGovernanceGap:        "Governance Gap",
	planner.KindCommunicationPattern: "Communication Pattern",
}

// Kind returns the human-readable name for an observation kind.
// Unknown codes are returned as-is.
func Kind(k planner.ObservationKind) string {
	if name, ok := kinds[k]; ok {
		return name
	}
	return string(k)
}

// --- Phases ---

var phases = map[planner.Phase]string{
	planner.PhaseInformationExtraction: "Information Extraction",
	planner.PhaseCommitmentForcing:     "Commitment Forcing",
	planner.PhaseEscalation:            "Escalation",
	planner.PhaseExpertSpend:           "Expert Spend",
}

// shortPhase maps each phase to a compact code for dense tables.
var shortPhase = map[planner.Phase]string{
	planner.PhaseInformationExtraction: "INFO",
	planner.PhaseCommitmentForcing:     "COMMIT",
	planner.PhaseEscalation:            "ESCALATE",
	planner.PhaseExpertSpend:           "EXPERT",
}

// PhaseName returns the human-readable name for a phase code.
func PhaseName(p planner.Phase) string {
	if name, ok := phases[p]; ok {
		return name
	}
	return string(p)
}

// PhaseShort returns a compact tag for a phase, e.g. "INFO".
func PhaseShort(p planner.Phase) string {
	if short, ok := shortPhase[p]; ok {
		return short
	}
	return string(p)
}

// PhasePath converts a slice of phases to a human-readable path.
// [info, commit, expert] -> "Information Extraction -> Commitment Forcing -> Expert Spend"
func PhasePath(ps []planner.Phase) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = PhaseName(p)
	}
	return strings.Join(names, " → ")
}

// --- Leverage ---

var leverages = map[planner.Leverage]string{
	planner.LeverageLow:      "Low",
	planner.LeverageMedium:   "Medium",
	planner.LeverageHigh:     "High",
	planner.LeverageCritical: "CRITICAL",
}

// LeverageName returns the display form of a leverage grade.
func LeverageName(l planner.Leverage) string {
	if name, ok := leverages[l]; ok {
		return name
	}
	return string(l)
}

// --- Commitment ---

var commitments = map[planner.Commitment]string{
	planner.CommitmentLow:    "Low",
	planner.CommitmentMedium: "Medium",
	planner.CommitmentHigh:   "High",
}

// CommitmentName returns the display form of a commitment grade.
func CommitmentName(c planner.Commitment) string {
	if name, ok := commitments[c]; ok {
		return name
	}
	return string(c)
}

// Fork humanizes a fork point as "admit→2 deny→3 silence→4".
// Returns "" for a nil fork.
func Fork(f *planner.ForkPoint) string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("admit→%d deny→%d silence→%d", f.IfAdmit, f.IfDeny, f.IfSilence)
}
