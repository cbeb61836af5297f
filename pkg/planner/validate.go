package planner

import "fmt"

// Validate enforces the structural contract on a computed sequence before it
// leaves the pipeline. A failure here is a programming defect in generation
// or sequencing: the plan is rejected whole, never patched up.
//
// Checked invariants:
//   - move orders are exactly 1..n ascending
//   - every dependency is strictly less than its move's order (acyclicity)
//   - phases are non-decreasing along the sequence
//   - every fork target is an existing order strictly after its move
//   - every move traces to exactly one angle, every angle to exactly one
//     observation, and every observation cites a model rule or input fact
//   - no negative cost, and the cost analysis sums correctly
func Validate(seq *MoveSequence) error {
	for i, m := range seq.Moves {
		if m.Order != i+1 {
			return fmt.Errorf("%w: position %d has order %d", ErrOrderSequence, i+1, m.Order)
		}
		if m.Cost < 0 {
			return fmt.Errorf("%w: move %d cost %d", ErrNegativeCost, m.Order, m.Cost)
		}
		for _, dep := range m.Dependencies {
			if dep <= 0 || dep >= m.Order {
				return fmt.Errorf("%w: move %d depends on %d", ErrDependencyOrder, m.Order, dep)
			}
		}
		if i > 0 && m.Phase.Rank() < seq.Moves[i-1].Phase.Rank() {
			return fmt.Errorf("%w: move %d (%s) follows %s", ErrPhaseOrder, m.Order, m.Phase, seq.Moves[i-1].Phase)
		}
		if m.Fork != nil {
			for _, target := range []int{m.Fork.IfAdmit, m.Fork.IfDeny, m.Fork.IfSilence} {
				if target <= m.Order || target > len(seq.Moves) {
					return fmt.Errorf("%w: move %d forks to %d", ErrForkTarget, m.Order, target)
				}
			}
		}
	}

	angleByID := make(map[string]int, len(seq.Angles))
	for _, a := range seq.Angles {
		angleByID[a.ID]++
	}
	obsByID := make(map[string]int, len(seq.Observations))
	for _, o := range seq.Observations {
		obsByID[o.ID]++
	}
	for _, m := range seq.Moves {
		if angleByID[m.AngleID] != 1 {
			return fmt.Errorf("%w: move %d angle %q matched %d angles", ErrTraceability, m.Order, m.AngleID, angleByID[m.AngleID])
		}
	}
	for _, a := range seq.Angles {
		if obsByID[a.ObservationID] != 1 {
			return fmt.Errorf("%w: angle %s observation %q matched %d observations", ErrTraceability, a.ID, a.ObservationID, obsByID[a.ObservationID])
		}
	}
	for _, o := range seq.Observations {
		if o.ModelRef == "" && len(o.SourceDocumentIDs) == 0 && len(o.RelatedDates) == 0 {
			return fmt.Errorf("%w: observation %s cites no model rule or input fact", ErrTraceability, o.ID)
		}
	}

	if seq.Cost.CostBeforeExpertSpend < 0 {
		return fmt.Errorf("%w: negative cost before expert spend", ErrNegativeCost)
	}
	if seq.FirstExpertIndex() >= 0 {
		sum := 0
		for _, m := range seq.Moves {
			if m.Phase == PhaseExpertSpend {
				break
			}
			sum += m.Cost
		}
		if seq.Cost.CostBeforeExpertSpend != sum {
			return fmt.Errorf("%w: cost before expert spend %d, moves sum to %d", ErrNegativeCost, seq.Cost.CostBeforeExpertSpend, sum)
		}
	}

	return nil
}
