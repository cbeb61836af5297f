package planner

import "errors"

// Validation sentinels. These mark programming defects in move generation or
// sequencing, not user-facing conditions: a plan that trips one is discarded
// whole rather than silently repaired.
var (
	// ErrOrderSequence is returned when move orders are not the unique
	// ascending sequence 1..n.
	ErrOrderSequence = errors.New("planner: move orders not strictly ascending from 1")

	// ErrDependencyOrder is returned when a move depends on an order not
	// strictly less than its own (including cycles, which cannot exist
	// under this check).
	ErrDependencyOrder = errors.New("planner: dependency does not precede move")

	// ErrPhaseOrder is returned when phases regress along the sequence.
	ErrPhaseOrder = errors.New("planner: phase not monotonic across sequence")

	// ErrForkTarget is returned when a fork point names a missing order or
	// one not strictly after the forking move.
	ErrForkTarget = errors.New("planner: fork point target invalid")

	// ErrTraceability is returned when a move, angle, or observation lacks
	// its 1:1 origin link.
	ErrTraceability = errors.New("planner: broken traceability chain")

	// ErrNegativeCost is returned when any move carries a negative cost.
	ErrNegativeCost = errors.New("planner: negative move cost")
)
