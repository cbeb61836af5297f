package planner

import (
	"fmt"
	"strings"
	"time"

	"stratagem/pkg/evidence"
)

// datedEvent is a timeline event whose date parsed.
type datedEvent struct {
	when time.Time
	raw  TimelineEvent
}

// datedEvents extracts the parseable subset of the timeline, preserving
// input order. Unparseable dates are simply absent here — skipping them is
// the documented behavior, not an error.
func datedEvents(timeline []TimelineEvent) []datedEvent {
	var out []datedEvent
	for _, ev := range timeline {
		if t, ok := parseDate(ev.Date); ok {
			out = append(out, datedEvent{when: t, raw: ev})
		}
	}
	return out
}

// detectEventPairDelays computes deltas between semantically paired events
// (e.g. report -> action) and flags gaps beyond the model threshold. One
// observation per pair rule at most: the first qualifying pairing wins.
func detectEventPairDelays(in Input, model *evidence.Model, _ CaseAnchors) []Observation {
	events := datedEvents(in.Timeline)
	var out []Observation
	for _, pair := range model.EventPairs {
		first, second, ok := findPairing(events, pair)
		if !ok {
			continue
		}
		gap := daysBetween(first.when, second.when)
		if gap <= pair.MaxGapDays {
			continue
		}
		out = append(out, Observation{
			Kind: KindTimelineAnomaly,
			Description: fmt.Sprintf("%d days elapsed between %q and %q; the expected interval for %s is %d days.",
				gap, first.raw.Description, second.raw.Description, pair.Label, pair.MaxGapDays),
			WhyUnusual:      fmt.Sprintf("a gap of this length in %s is well outside normal handling", pair.Label),
			WhatShouldExist: "records explaining what happened during the gap",
			Leverage:        LeverageHigh,
			ModelRef:        "pair:" + pair.Label,
			RelatedDates:    []string{first.raw.Date, second.raw.Date},
		})
	}
	return out
}

// findPairing locates the first event matching the pair's first keywords and
// the earliest subsequent event matching the second keywords.
func findPairing(events []datedEvent, pair evidence.EventPair) (first, second datedEvent, ok bool) {
	fi := -1
	for i, ev := range events {
		if containsAny(ev.raw.Description, pair.FirstKeywords) {
			fi = i
			break
		}
	}
	if fi < 0 {
		return datedEvent{}, datedEvent{}, false
	}
	for _, ev := range events[fi+1:] {
		if !ev.when.Before(events[fi].when) && containsAny(ev.raw.Description, pair.SecondKeywords) {
			return events[fi], ev, true
		}
	}
	return datedEvent{}, datedEvent{}, false
}

// detectDateInconsistencies finds duplicate-subject statements carrying
// divergent dates: two timeline entries describing the same event but dated
// differently.
func detectDateInconsistencies(in Input, _ *evidence.Model, _ CaseAnchors) []Observation {
	type claim struct {
		date string
		when time.Time
		desc string
	}
	seen := make(map[string]claim)
	var out []Observation
	for _, ev := range datedEvents(in.Timeline) {
		key := subjectKey(ev.raw.Description)
		if key == "" {
			continue
		}
		prev, dup := seen[key]
		if !dup {
			seen[key] = claim{date: ev.raw.Date, when: ev.when, desc: ev.raw.Description}
			continue
		}
		if prev.when.Equal(ev.when) {
			continue
		}
		out = append(out, Observation{
			Kind: KindInconsistency,
			Description: fmt.Sprintf("Two dates are claimed for the same event %q: %s and %s.",
				prev.desc, prev.date, ev.raw.Date),
			WhyUnusual:      "a single event cannot have happened on two dates; at least one account is wrong",
			WhatShouldExist: "a contemporaneous record fixing the true date",
			Leverage:        LeverageHigh,
			RelatedDates:    []string{prev.date, ev.raw.Date},
		})
	}
	return out
}

// subjectKey normalizes an event description for duplicate detection.
func subjectKey(desc string) string {
	words := tokenize(desc)
	if len(words) == 0 {
		return ""
	}
	return strings.Join(words, " ")
}

// detectLateAuthorship flags documents created long after the event they
// purport to describe (contemporaneity check). The link between document and
// event is word overlap; the lag threshold comes from the model.
func detectLateAuthorship(in Input, model *evidence.Model, _ CaseAnchors) []Observation {
	if model.LateAuthorshipDays <= 0 {
		return nil
	}
	events := datedEvents(in.Timeline)
	var out []Observation
	for _, doc := range in.Documents {
		if doc.CreatedAt.IsZero() {
			continue
		}
		for _, ev := range events {
			if sharedWords(doc.Name+" "+doc.ExtractedFacts, ev.raw.Description) < lateAuthorshipMinShared {
				continue
			}
			lag := daysBetween(ev.when, doc.CreatedAt)
			if lag <= model.LateAuthorshipDays {
				continue
			}
			out = append(out, Observation{
				Kind: KindTimelineAnomaly,
				Description: fmt.Sprintf("Document %q was created %d days after the event it describes (%q, %s).",
					doc.Name, lag, ev.raw.Description, ev.raw.Date),
				WhyUnusual:        "a record made this long after the fact is a reconstruction, not a contemporaneous account",
				WhatShouldExist:   "a record created at or near the time of the event",
				Leverage:          LeverageHigh,
				SourceDocumentIDs: []string{doc.ID},
				RelatedDates:      []string{ev.raw.Date, doc.CreatedAt.Format("2006-01-02")},
			})
			break // one late-authorship flag per document
		}
	}
	return out
}
