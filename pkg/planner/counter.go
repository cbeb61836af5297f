package planner

import "stratagem/pkg/evidence"

// genericFailureMode is the fallback prediction when nothing in the model's
// taxonomy matches strongly enough. Never absent: a weak match always
// resolves here rather than to no prediction at all.
var genericFailureMode = evidence.FailureMode{
	ID:             "generic-delay",
	Label:          "delayed or incomplete response",
	LikelyResponse: "acknowledges the request, then provides a partial response after chasing",
	LawfulReply:    "restate the request with a fixed deadline and record that an adverse inference will be invited from continued non-compliance",
}

// annotateCounterMoves predicts the counterparty's likely non-compliant
// response for each reply-drawing move by fuzzy-matching the requested
// evidence against the model's failure-mode taxonomy. Word-overlap scoring
// against counterMatchThreshold; ties break toward the earlier taxonomy
// entry so output stays deterministic. Models without a taxonomy produce no
// annotations — the counter-move panel is a domain extension, not a default.
func annotateCounterMoves(moves []Move, model *evidence.Model) {
	if len(model.FailureModes) == 0 {
		return
	}
	for i := range moves {
		if moves[i].Phase == PhaseExpertSpend {
			continue // expert work product draws no counterparty response
		}
		fm := bestFailureMode(moves[i].EvidenceRequested, model)
		moves[i].Counter = &CounterMove{
			LikelyResponse:  fm.LikelyResponse,
			FailurePattern:  fm.Label,
			LawfulNextReply: fm.LawfulReply,
		}
	}
}

// bestFailureMode scores every taxonomy entry and returns the strongest
// match above the threshold, else the generic pattern.
func bestFailureMode(requested string, model *evidence.Model) evidence.FailureMode {
	best := genericFailureMode
	bestScore := counterMatchThreshold
	for _, fm := range model.FailureModes {
		score := overlapRatio(requested, fm.Keywords)
		if score > bestScore {
			best = fm
			bestScore = score
		}
	}
	return best
}
