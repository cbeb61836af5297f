package planner

import (
	"testing"
)

func angleFor(obs Observation) []InvestigationAngle {
	return []InvestigationAngle{{
		ID:                    "ang-001",
		ObservationID:         obs.ID,
		TargetedRequest:       "Please provide the record.",
		ConfirmationCondition: "nothing is produced",
		KillCondition:         "a complete record is produced",
		ExpectedResponse:      "production or silence",
	}}
}

func TestGenerateMovesLowLeverageYieldsSingleInfoMove(t *testing.T) {
	obs := Observation{ID: "obs-001", Kind: KindEvidenceGap, Leverage: LeverageMedium, WhatShouldExist: "a log"}
	drafts := generateMoves(angleFor(obs), []Observation{obs}, oneItemModel(), CaseAnchors{})
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(drafts))
	}
	m := drafts[0].move
	if m.Phase != PhaseInformationExtraction || m.Commitment != CommitmentLow {
		t.Errorf("got phase=%s commitment=%s", m.Phase, m.Commitment)
	}
	if m.Cost != 40 {
		t.Errorf("cost = %d, want the model's information cost", m.Cost)
	}
}

func TestGenerateMovesHighLeverageAddsCommitmentForcing(t *testing.T) {
	obs := Observation{ID: "obs-001", Kind: KindEvidenceGap, Leverage: LeverageHigh, WhatShouldExist: "a log", WhyUnusual: "The log should exist"}
	drafts := generateMoves(angleFor(obs), []Observation{obs}, oneItemModel(), CaseAnchors{})
	if len(drafts) != 2 {
		t.Fatalf("expected info + commitment drafts, got %d", len(drafts))
	}
	commit := drafts[1]
	if commit.move.Phase != PhaseCommitmentForcing {
		t.Errorf("phase = %s", commit.move.Phase)
	}
	if len(commit.deps) != 1 || commit.deps[0] != 0 {
		t.Errorf("commitment move must depend on the info move, deps = %v", commit.deps)
	}
}

func TestGenerateMovesCriticalGovernanceAddsEscalationAndExpert(t *testing.T) {
	obs := Observation{ID: "obs-001", Kind: KindGovernanceGap, Leverage: LeverageCritical, WhatShouldExist: "appeal record", WhyUnusual: "the appeal was not independent"}
	drafts := generateMoves(angleFor(obs), []Observation{obs}, oneItemModel(), CaseAnchors{})
	var phases []Phase
	for _, d := range drafts {
		phases = append(phases, d.move.Phase)
	}
	want := []Phase{PhaseInformationExtraction, PhaseCommitmentForcing, PhaseEscalation, PhaseExpertSpend}
	if len(phases) != len(want) {
		t.Fatalf("phases = %v, want %v", phases, want)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("draft %d phase = %s, want %s", i, phases[i], want[i])
		}
	}
	expert := drafts[len(drafts)-1]
	if expert.move.Cost != 1000 {
		t.Errorf("expert cost = %d, want the model's expert cost", expert.move.Cost)
	}
	if len(expert.deps) != 2 {
		t.Errorf("expert deps = %v, want info and commitment", expert.deps)
	}
}

func TestGenerateMovesHighInconsistencyGetsExpert(t *testing.T) {
	obs := Observation{ID: "obs-001", Kind: KindInconsistency, Leverage: LeverageHigh, WhatShouldExist: "the true record", WhyUnusual: "two dates claimed"}
	drafts := generateMoves(angleFor(obs), []Observation{obs}, oneItemModel(), CaseAnchors{})
	found := false
	for _, d := range drafts {
		if d.move.Phase == PhaseExpertSpend {
			found = true
		}
	}
	if !found {
		t.Error("a high-leverage inconsistency should warrant expert spend")
	}
}

func TestGenerateMovesEveryAngleYieldsAtLeastOneMove(t *testing.T) {
	observations := []Observation{
		{ID: "obs-001", Kind: KindEvidenceGap, Leverage: LeverageLow, WhatShouldExist: "a"},
		{ID: "obs-002", Kind: KindCommunicationPattern, Leverage: LeverageMedium, WhatShouldExist: "b"},
	}
	angles := []InvestigationAngle{
		{ID: "ang-001", ObservationID: "obs-001", TargetedRequest: "q1"},
		{ID: "ang-002", ObservationID: "obs-002", TargetedRequest: "q2"},
	}
	drafts := generateMoves(angles, observations, oneItemModel(), CaseAnchors{})
	seen := make(map[string]bool)
	for _, d := range drafts {
		seen[d.move.AngleID] = true
	}
	for _, a := range angles {
		if !seen[a.ID] {
			t.Errorf("angle %s produced no move", a.ID)
		}
	}
}
