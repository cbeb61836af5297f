package planner

import (
	"testing"

	"stratagem/pkg/evidence"
)

func taxonomyModel() *evidence.Model {
	m := oneItemModel()
	m.FailureModes = []evidence.FailureMode{
		{
			ID:             "cannot-locate",
			Label:          "document cannot be located",
			Keywords:       []string{"policy", "report", "handbook"},
			LikelyResponse: "asserts the document cannot be located",
			LawfulReply:    "request a statement describing the search",
		},
		{
			ID:             "late-reconstruction",
			Label:          "record reconstructed after the event",
			Keywords:       []string{"minutes", "notes", "metadata"},
			LikelyResponse: "produces a typed note created later",
			LawfulReply:    "request the native file with metadata",
		},
	}
	return m
}

func TestAnnotateCounterMovesMatchesStrongestPattern(t *testing.T) {
	moves := []Move{{Order: 1, Phase: PhaseInformationExtraction, EvidenceRequested: "contemporaneous minutes and notes"}}
	annotateCounterMoves(moves, taxonomyModel())
	if moves[0].Counter == nil {
		t.Fatal("expected a counter-move annotation")
	}
	if moves[0].Counter.FailurePattern != "record reconstructed after the event" {
		t.Errorf("pattern = %q", moves[0].Counter.FailurePattern)
	}
	if moves[0].Counter.LawfulNextReply == "" {
		t.Error("lawful next reply must be filled")
	}
}

func TestAnnotateCounterMovesGenericFallback(t *testing.T) {
	moves := []Move{{Order: 1, Phase: PhaseInformationExtraction, EvidenceRequested: "something entirely unrelated"}}
	annotateCounterMoves(moves, taxonomyModel())
	if moves[0].Counter == nil {
		t.Fatal("weak match must still resolve to the generic pattern, never to nothing")
	}
	if moves[0].Counter.FailurePattern != genericFailureMode.Label {
		t.Errorf("pattern = %q, want generic", moves[0].Counter.FailurePattern)
	}
}

func TestAnnotateCounterMovesThresholdBoundary(t *testing.T) {
	// One of three keywords matched: ratio 1/3 < threshold -> generic.
	moves := []Move{{Order: 1, Phase: PhaseInformationExtraction, EvidenceRequested: "the policy"}}
	annotateCounterMoves(moves, taxonomyModel())
	if moves[0].Counter.FailurePattern != genericFailureMode.Label {
		t.Errorf("ratio below threshold should fall back, got %q", moves[0].Counter.FailurePattern)
	}

	// Two of three matched: ratio 2/3 > threshold -> taxonomy entry.
	moves = []Move{{Order: 1, Phase: PhaseInformationExtraction, EvidenceRequested: "the policy handbook"}}
	annotateCounterMoves(moves, taxonomyModel())
	if moves[0].Counter.FailurePattern != "document cannot be located" {
		t.Errorf("ratio above threshold should match, got %q", moves[0].Counter.FailurePattern)
	}
}

func TestAnnotateCounterMovesSkipsExpertMoves(t *testing.T) {
	moves := []Move{{Order: 1, Phase: PhaseExpertSpend, EvidenceRequested: "policy handbook"}}
	annotateCounterMoves(moves, taxonomyModel())
	if moves[0].Counter != nil {
		t.Error("expert moves draw no counterparty response")
	}
}

func TestAnnotateCounterMovesNoTaxonomyNoAnnotation(t *testing.T) {
	moves := []Move{{Order: 1, Phase: PhaseInformationExtraction, EvidenceRequested: "policy handbook"}}
	annotateCounterMoves(moves, oneItemModel())
	if moves[0].Counter != nil {
		t.Error("models without a taxonomy must not annotate")
	}
}
