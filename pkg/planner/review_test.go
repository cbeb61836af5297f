package planner

import (
	"strings"
	"testing"
)

func reviewSeq() *MoveSequence {
	return &MoveSequence{
		Observations: []Observation{
			{ID: "obs-001", Kind: KindEvidenceGap, Leverage: LeverageHigh},
		},
		Angles: []InvestigationAngle{{
			ID:                    "ang-001",
			ObservationID:         "obs-001",
			ConfirmationCondition: "nothing is produced",
			KillCondition:         "a complete record is produced",
		}},
		Moves: []Move{{Order: 1, AngleID: "ang-001", Phase: PhaseInformationExtraction}},
	}
}

func TestBuildReviewVerdictCitesOutcome(t *testing.T) {
	r := buildReview(reviewSeq(), CaseAnchors{Outcome: "dismissed"})
	if r == nil {
		t.Fatal("non-empty plan should produce a review")
	}
	if !strings.Contains(r.Verdict, `"dismissed" outcome`) {
		t.Errorf("verdict should name what the case turns on: %q", r.Verdict)
	}

	plain := buildReview(reviewSeq(), CaseAnchors{})
	if strings.Contains(plain.Verdict, "outcome") {
		t.Errorf("anchorless verdict should make no outcome claim: %q", plain.Verdict)
	}
}

func TestBuildReviewConditionsAndTriggers(t *testing.T) {
	r := buildReview(reviewSeq(), CaseAnchors{})
	if len(r.WinConditions) != 1 || r.WinConditions[0] != "nothing is produced" {
		t.Errorf("win conditions = %v", r.WinConditions)
	}
	if len(r.KillConditions) != 1 || r.KillConditions[0] != "a complete record is produced" {
		t.Errorf("kill conditions = %v", r.KillConditions)
	}
	if len(r.EscalationTriggers) != 1 {
		t.Fatalf("a plan without escalation moves should still get a fallback trigger: %v", r.EscalationTriggers)
	}
}

func TestBuildReviewEmptyPlan(t *testing.T) {
	if r := buildReview(&MoveSequence{}, CaseAnchors{Outcome: "dismissed"}); r != nil {
		t.Errorf("empty plan should carry no review, got %+v", r)
	}
}
