package planner

import (
	"testing"
	"time"

	"stratagem/pkg/evidence"
)

func pairModel(maxGap int) *evidence.Model {
	return &evidence.Model{
		Domain:      "test",
		DisplayName: "Test",
		EventPairs: []evidence.EventPair{{
			Label:          "report to investigation",
			FirstKeywords:  []string{"report"},
			SecondKeywords: []string{"investigation"},
			MaxGapDays:     maxGap,
		}},
	}
}

func TestDetectEventPairDelayOverThreshold(t *testing.T) {
	in := Input{Timeline: []TimelineEvent{
		{Date: "2024-01-01", Description: "incident report filed"},
		{Date: "2024-02-15", Description: "investigation opened"},
	}}
	obs := detectEventPairDelays(in, pairModel(14), CaseAnchors{})
	if len(obs) != 1 {
		t.Fatalf("expected exactly 1 timeline anomaly, got %d", len(obs))
	}
	if obs[0].Kind != KindTimelineAnomaly {
		t.Errorf("kind = %s", obs[0].Kind)
	}
	if len(obs[0].RelatedDates) != 2 || obs[0].RelatedDates[0] != "2024-01-01" || obs[0].RelatedDates[1] != "2024-02-15" {
		t.Errorf("related dates = %v, want both event dates", obs[0].RelatedDates)
	}
}

func TestDetectEventPairDelayWithinThresholdIsSilent(t *testing.T) {
	in := Input{Timeline: []TimelineEvent{
		{Date: "2024-01-01", Description: "incident report filed"},
		{Date: "2024-01-10", Description: "investigation opened"},
	}}
	if obs := detectEventPairDelays(in, pairModel(14), CaseAnchors{}); len(obs) != 0 {
		t.Fatalf("expected no anomaly inside threshold, got %d", len(obs))
	}
}

func TestDetectEventPairSkipsUnparseableDates(t *testing.T) {
	in := Input{Timeline: []TimelineEvent{
		{Date: "sometime in January", Description: "incident report filed"},
		{Date: "2024-02-15", Description: "investigation opened"},
	}}
	// The report event has no usable date, so no pairing can be computed.
	if obs := detectEventPairDelays(in, pairModel(14), CaseAnchors{}); len(obs) != 0 {
		t.Fatalf("unparseable date should be skipped, got %d observations", len(obs))
	}
}

func TestDetectDateInconsistency(t *testing.T) {
	in := Input{Timeline: []TimelineEvent{
		{Date: "2024-03-01", Description: "disciplinary hearing held"},
		{Date: "2024-03-12", Description: "Disciplinary hearing held"},
	}}
	obs := detectDateInconsistencies(in, nil, CaseAnchors{})
	if len(obs) != 1 {
		t.Fatalf("expected 1 inconsistency, got %d", len(obs))
	}
	if obs[0].Kind != KindInconsistency {
		t.Errorf("kind = %s", obs[0].Kind)
	}
	if len(obs[0].RelatedDates) != 2 {
		t.Errorf("related dates = %v", obs[0].RelatedDates)
	}
}

func TestDetectDateInconsistencyIgnoresAgreeingDuplicates(t *testing.T) {
	in := Input{Timeline: []TimelineEvent{
		{Date: "2024-03-01", Description: "hearing held"},
		{Date: "2024-03-01", Description: "hearing held"},
	}}
	if obs := detectDateInconsistencies(in, nil, CaseAnchors{}); len(obs) != 0 {
		t.Fatalf("same-date duplicates are not inconsistent, got %d", len(obs))
	}
}

func TestDetectLateAuthorship(t *testing.T) {
	m := &evidence.Model{Domain: "test", DisplayName: "Test", LateAuthorshipDays: 30}
	in := Input{
		Documents: []Document{{
			ID:        "d1",
			Name:      "minutes of disciplinary hearing",
			CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		}},
		Timeline: []TimelineEvent{
			{Date: "2024-03-01", Description: "disciplinary hearing held"},
		},
	}
	obs := detectLateAuthorship(in, m, CaseAnchors{})
	if len(obs) != 1 {
		t.Fatalf("expected 1 contemporaneity flag, got %d", len(obs))
	}
	if obs[0].Kind != KindTimelineAnomaly {
		t.Errorf("kind = %s", obs[0].Kind)
	}
	if len(obs[0].SourceDocumentIDs) != 1 || obs[0].SourceDocumentIDs[0] != "d1" {
		t.Errorf("source docs = %v", obs[0].SourceDocumentIDs)
	}
}

func TestDetectLateAuthorshipWithinWindowIsSilent(t *testing.T) {
	m := &evidence.Model{Domain: "test", DisplayName: "Test", LateAuthorshipDays: 30}
	in := Input{
		Documents: []Document{{
			ID:        "d1",
			Name:      "minutes of disciplinary hearing",
			CreatedAt: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		}},
		Timeline: []TimelineEvent{
			{Date: "2024-03-01", Description: "disciplinary hearing held"},
		},
	}
	if obs := detectLateAuthorship(in, m, CaseAnchors{}); len(obs) != 0 {
		t.Fatalf("prompt authorship should not flag, got %d", len(obs))
	}
}

func TestDetectLateAuthorshipNeedsWordOverlap(t *testing.T) {
	m := &evidence.Model{Domain: "test", DisplayName: "Test", LateAuthorshipDays: 30}
	in := Input{
		Documents: []Document{{
			ID:        "d1",
			Name:      "unrelated invoice",
			CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		}},
		Timeline: []TimelineEvent{
			{Date: "2024-03-01", Description: "disciplinary hearing held"},
		},
	}
	if obs := detectLateAuthorship(in, m, CaseAnchors{}); len(obs) != 0 {
		t.Fatalf("unlinked document should not flag, got %d", len(obs))
	}
}
