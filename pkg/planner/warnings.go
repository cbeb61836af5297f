package planner

import "fmt"

// synthesizeWarnings scans the final sequence for strategic defects worth a
// fee earner's attention. These are advisory; structural defects are the
// validator's job and fail the plan outright.
func synthesizeWarnings(moves []Move, hadSignal bool) []string {
	var warnings []string
	if !hadSignal {
		warnings = append(warnings,
			"no evidential signal found in the snapshot: the documents and timeline were empty or matched nothing in the evidence model; the plan is empty")
		return warnings
	}

	byOrder := make(map[int]*Move, len(moves))
	for i := range moves {
		byOrder[moves[i].Order] = &moves[i]
	}

	for _, m := range moves {
		switch m.Phase {
		case PhaseExpertSpend:
			if !hasPredecessorPhase(m, byOrder, PhaseInformationExtraction) {
				warnings = append(warnings, fmt.Sprintf(
					"move %d commits expert spend before any information-extraction step has tested the underlying gap", m.Order))
			}
		case PhaseCommitmentForcing:
			if !hasPredecessorPhase(m, byOrder, PhaseInformationExtraction) {
				warnings = append(warnings, fmt.Sprintf(
					"move %d forces a commitment with no supporting information-extraction predecessor", m.Order))
			}
		}
	}
	return warnings
}

// hasPredecessorPhase reports whether any declared dependency of m has the
// given phase.
func hasPredecessorPhase(m Move, byOrder map[int]*Move, phase Phase) bool {
	for _, dep := range m.Dependencies {
		if p, ok := byOrder[dep]; ok && p.Phase == phase {
			return true
		}
	}
	return false
}

// analyzeCost derives the plan's spend economics. costBeforeExpertSpend is
// the sum of costs strictly before the first expert move; the trigger is the
// kill condition of the angle feeding that move; the avoidable spend is the
// expert move's own cost.
func analyzeCost(moves []Move, angles []InvestigationAngle) CostAnalysis {
	var ca CostAnalysis
	firstExpert := -1
	for i, m := range moves {
		if m.Phase == PhaseExpertSpend {
			firstExpert = i
			break
		}
	}
	if firstExpert < 0 {
		for _, m := range moves {
			ca.CostBeforeExpertSpend += m.Cost
		}
		return ca
	}
	for _, m := range moves[:firstExpert] {
		ca.CostBeforeExpertSpend += m.Cost
	}
	expert := moves[firstExpert]
	ca.SpendAvoidedIfGapConfirmed = expert.Cost
	for _, a := range angles {
		if a.ID == expert.AngleID {
			ca.ExpertSpendTrigger = a.KillCondition
			break
		}
	}
	return ca
}
