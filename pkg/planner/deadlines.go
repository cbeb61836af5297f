package planner

import (
	"fmt"

	"stratagem/pkg/evidence"
)

// deadlineWarningWindowDays is how far ahead of a statutory deadline the
// detector starts flagging it as imminent.
const deadlineWarningWindowDays = 30

// detectDeadlines is the statutory-deadline sub-detector. It runs the
// model's deadline rules against the timeline: a trigger event starts the
// clock, and unless a compliance event follows, an expired or imminent
// deadline becomes an observation. Same output contract as every other
// detector; the rest of the pipeline cannot tell it apart.
func detectDeadlines(in Input, model *evidence.Model, _ CaseAnchors) []Observation {
	if in.Now.IsZero() {
		return nil // no reference point; deadline arithmetic would be fiction
	}
	events := datedEvents(in.Timeline)
	text := snapshotText(in)
	var out []Observation
	for _, dl := range model.Deadlines {
		var trigger *datedEvent
		for i := range events {
			if containsAny(events[i].raw.Description, dl.TriggerKeywords) {
				trigger = &events[i]
				break
			}
		}
		if trigger == nil {
			continue
		}
		if len(dl.MetKeywords) > 0 && containsAny(text, dl.MetKeywords) {
			continue
		}
		due := trigger.when.AddDate(0, 0, dl.Days)
		daysLeft := daysBetween(in.Now, due)
		switch {
		case daysLeft < 0:
			out = append(out, Observation{
				Kind: KindTimelineAnomaly,
				Description: fmt.Sprintf("The %s (%s) expired on %s, %d days ago, with no compliance step in the record.",
					dl.Name, dl.Authority, due.Format("2006-01-02"), -daysLeft),
				WhyUnusual:      "the limitation clock ran from the trigger event and nothing in the record stops it",
				WhatShouldExist: "a protective step taken before expiry, or advice recording why none was needed",
				Leverage:        LeverageCritical,
				ModelRef:        "deadline:" + dl.Name,
				RelatedDates:    []string{trigger.raw.Date, due.Format("2006-01-02")},
			})
		case daysLeft <= deadlineWarningWindowDays:
			out = append(out, Observation{
				Kind: KindTimelineAnomaly,
				Description: fmt.Sprintf("The %s (%s) falls due on %s, in %d days.",
					dl.Name, dl.Authority, due.Format("2006-01-02"), daysLeft),
				WhyUnusual:      "the deadline is inside the warning window and no compliance step appears in the record",
				WhatShouldExist: "a diarised protective step before the due date",
				Leverage:        LeverageCritical,
				ModelRef:        "deadline:" + dl.Name,
				RelatedDates:    []string{trigger.raw.Date, due.Format("2006-01-02")},
			})
		}
	}
	return out
}
