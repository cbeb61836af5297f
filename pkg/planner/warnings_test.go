package planner

import (
	"strings"
	"testing"
)

func TestSynthesizeWarningsNoSignal(t *testing.T) {
	warnings := synthesizeWarnings(nil, false)
	if len(warnings) != 1 {
		t.Fatalf("expected exactly the no-signal warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "no evidential signal") {
		t.Errorf("warning = %q", warnings[0])
	}
}

func TestSynthesizeWarningsExpertSpendWithoutInformation(t *testing.T) {
	moves := []Move{
		{Order: 1, Phase: PhaseCommitmentForcing},
		{Order: 2, Phase: PhaseExpertSpend, Dependencies: []int{1}},
	}
	warnings := synthesizeWarnings(moves, true)
	if len(warnings) != 2 {
		t.Fatalf("expected both moves flagged, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "move 1") || !strings.Contains(warnings[0], "forces a commitment") {
		t.Errorf("warnings[0] = %q", warnings[0])
	}
	if !strings.Contains(warnings[1], "move 2") || !strings.Contains(warnings[1], "expert spend") {
		t.Errorf("warnings[1] = %q", warnings[1])
	}
}

func TestSynthesizeWarningsQuietWhenDependenciesWired(t *testing.T) {
	moves := []Move{
		{Order: 1, Phase: PhaseInformationExtraction},
		{Order: 2, Phase: PhaseCommitmentForcing, Dependencies: []int{1}},
		{Order: 3, Phase: PhaseExpertSpend, Dependencies: []int{1, 2}},
	}
	if warnings := synthesizeWarnings(moves, true); len(warnings) != 0 {
		t.Errorf("properly sequenced moves should raise nothing, got %v", warnings)
	}
}

func TestAnalyzeCostExpertTrigger(t *testing.T) {
	moves := []Move{
		{Order: 1, Phase: PhaseInformationExtraction, AngleID: "ang-001", Cost: 40},
		{Order: 2, Phase: PhaseCommitmentForcing, AngleID: "ang-001", Cost: 60},
		{Order: 3, Phase: PhaseExpertSpend, AngleID: "ang-001", Cost: 1000},
		{Order: 4, Phase: PhaseExpertSpend, AngleID: "ang-002", Cost: 800},
	}
	angles := []InvestigationAngle{
		{ID: "ang-001", KillCondition: "a complete record is produced"},
		{ID: "ang-002", KillCondition: "a later condition that must not win"},
	}
	ca := analyzeCost(moves, angles)
	if ca.CostBeforeExpertSpend != 100 {
		t.Errorf("cost before expert = %d, want 100", ca.CostBeforeExpertSpend)
	}
	if ca.SpendAvoidedIfGapConfirmed != 1000 {
		t.Errorf("spend avoided = %d, want the first expert move's cost", ca.SpendAvoidedIfGapConfirmed)
	}
	if ca.ExpertSpendTrigger != "a complete record is produced" {
		t.Errorf("trigger = %q, want the first expert angle's kill condition", ca.ExpertSpendTrigger)
	}
}

func TestAnalyzeCostNoExpertMove(t *testing.T) {
	moves := []Move{
		{Order: 1, Phase: PhaseInformationExtraction, Cost: 40},
		{Order: 2, Phase: PhaseCommitmentForcing, Cost: 60},
	}
	ca := analyzeCost(moves, nil)
	if ca.CostBeforeExpertSpend != 100 {
		t.Errorf("cost before expert = %d, want the whole plan", ca.CostBeforeExpertSpend)
	}
	if ca.SpendAvoidedIfGapConfirmed != 0 || ca.ExpertSpendTrigger != "" {
		t.Errorf("no expert move should leave the trigger empty: %+v", ca)
	}
}
