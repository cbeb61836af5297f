package planner

import (
	"stratagem/pkg/evidence"
)

// Plan runs the full pipeline over a case snapshot: model lookup, anomaly
// detection, hypothesis generation, move generation and sequencing, fork
// attachment, counter-move annotation, correspondence rendering, and
// warning/cost synthesis.
//
// Plan never fails on ordinary bad input — missing domains fall back to the
// generic model, empty snapshots produce an empty plan with a warning, and
// unparseable dates are skipped. The only error path is an internal contract
// violation caught by validation, which is a programming defect; callers
// should treat it as total pipeline failure, not a partial plan.
func Plan(in Input) (*MoveSequence, error) {
	model := evidence.ModelFor(in.Domain)
	anchors := extractAnchors(in)

	observations := detect(in, model, anchors)
	angles := generateAngles(observations, model, anchors)
	moves := sequenceMoves(generateMoves(angles, observations, model, anchors))
	attachForks(moves)
	annotateCounterMoves(moves, model)
	renderLetters(moves, angles, observations, model, in.CaseID)

	seq := &MoveSequence{
		CaseID:       in.CaseID,
		Domain:       model.Domain,
		GeneratedAt:  in.Now,
		Observations: observations,
		Angles:       angles,
		Moves:        moves,
		Warnings:     synthesizeWarnings(moves, len(observations) > 0),
		Cost:         analyzeCost(moves, angles),
	}
	seq.Review = buildReview(seq, anchors)

	if err := Validate(seq); err != nil {
		return nil, err
	}
	return seq, nil
}
