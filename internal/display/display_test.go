package display

import (
	"strings"
	"testing"
	"time"

	"stratagem/internal/format"
	"stratagem/pkg/evidence"
	"stratagem/pkg/planner"
)

func TestKind(t *testing.T) {
	cases := []struct {
		code planner.ObservationKind
		want string
	}{
		{planner.KindEvidenceGap, "Evidence Gap"},
		{planner.KindTimelineAnomaly, "Timeline Anomaly"},
		{planner.KindInconsistency, "Inconsistency"},
		{planner.KindGovernanceGap, "Governance Gap"},
		{planner.KindCommunicationPattern, "Communication Pattern"},
		{"something_else", "something_else"},
	}
	for _, tc := range cases {
		if got := Kind(tc.code); got != tc.want {
			t.Errorf("Kind(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestPhaseNames(t *testing.T) {
	if got := PhaseName(planner.PhaseExpertSpend); got != "Expert Spend" {
		t.Errorf("PhaseName = %q", got)
	}
	if got := PhaseShort(planner.PhaseInformationExtraction); got != "INFO" {
		t.Errorf("PhaseShort = %q", got)
	}
	if got := PhaseName("weird"); got != "weird" {
		t.Errorf("unknown phase should pass through, got %q", got)
	}
}

func TestPhasePath(t *testing.T) {
	got := PhasePath([]planner.Phase{
		planner.PhaseInformationExtraction,
		planner.PhaseCommitmentForcing,
	})
	want := "Information Extraction → Commitment Forcing"
	if got != want {
		t.Errorf("PhasePath = %q, want %q", got, want)
	}
}

func TestFork(t *testing.T) {
	if got := Fork(nil); got != "" {
		t.Errorf("Fork(nil) = %q, want empty", got)
	}
	got := Fork(&planner.ForkPoint{IfAdmit: 2, IfDeny: 3, IfSilence: 4})
	if !strings.Contains(got, "admit→2") || !strings.Contains(got, "silence→4") {
		t.Errorf("Fork = %q", got)
	}
}

func renderedPlan(t *testing.T) *planner.MoveSequence {
	t.Helper()
	seq, err := planner.Plan(planner.Input{
		CaseID: "EMP-0042",
		Domain: evidence.DomainEmployment,
		Documents: []planner.Document{
			{ID: "d1", Name: "dismissal letter", ExtractedFacts: "dismissed; the same manager heard both the dismissal and the appeal"},
		},
		Now: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	return seq
}

func TestRender_ASCII(t *testing.T) {
	seq := renderedPlan(t)
	out := Render(seq, format.ASCII)

	if !strings.Contains(out, "EMP-0042") {
		t.Errorf("expected case id in report:\n%s", out)
	}
	if !strings.Contains(out, "INFO") {
		t.Errorf("expected a phase tag in report:\n%s", out)
	}
	if !strings.Contains(out, "Phases: Information Extraction") {
		t.Errorf("expected the phase progression line in report:\n%s", out)
	}
	if !strings.Contains(out, "✓") {
		t.Errorf("expected a letter mark in the moves table:\n%s", out)
	}
	if !strings.Contains(out, "Cost before expert spend") {
		t.Errorf("expected cost panel in report:\n%s", out)
	}
	if !strings.Contains(out, "Verdict:") {
		t.Errorf("expected review verdict in report:\n%s", out)
	}
}

func TestRender_MarkdownEmptyPlan(t *testing.T) {
	seq, err := planner.Plan(planner.Input{
		CaseID: "GEN-0000",
		Domain: evidence.DomainGeneric,
		Now:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	out := Render(seq, format.Markdown)
	if !strings.Contains(out, "No moves.") {
		t.Errorf("expected empty-plan notice:\n%s", out)
	}
	if !strings.Contains(out, "WARNING:") {
		t.Errorf("expected warning in report:\n%s", out)
	}
}
