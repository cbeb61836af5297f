package planner

import (
	"fmt"
	"strings"

	"stratagem/pkg/evidence"
)

// toAngle converts one observation into a falsifiable investigation angle.
// Pure and total: every observation kind has a branch, and an unrecognized
// kind falls through to the generic hypothesis rather than erroring.
func toAngle(obs Observation, model *evidence.Model, anchors CaseAnchors) InvestigationAngle {
	angle := InvestigationAngle{
		ObservationID: obs.ID,
	}

	switch obs.Kind {
	case KindEvidenceGap:
		angle.Hypothesis = fmt.Sprintf(
			"If proper procedure was followed concerning %s, a %s exists and can be produced on request.",
			anchors.phrase(), obs.WhatShouldExist)
		angle.ConfirmationCondition = fmt.Sprintf(
			"No %s is produced, or what is produced post-dates the events it should record.", obs.WhatShouldExist)
		angle.KillCondition = fmt.Sprintf(
			"A complete, contemporaneous %s is produced and is consistent with the counterparty's account.", obs.WhatShouldExist)
		angle.ExpectedResponse = "production of the document, an admission it does not exist, or silence"

	case KindTimelineAnomaly:
		angle.Hypothesis = fmt.Sprintf(
			"The gap in the timeline (%s) is unexplained because nothing was done during it.",
			strings.Join(obs.RelatedDates, " to "))
		if anchors.LongestDelayDays > 0 {
			angle.Hypothesis += fmt.Sprintf(
				" The longest silence on the record runs %d days.", anchors.LongestDelayDays)
		}
		angle.ConfirmationCondition = "no records are produced covering the gap period"
		angle.KillCondition = "contemporaneous records account for the gap with legitimate activity"
		angle.ExpectedResponse = "partial records, an explanation letter, or silence"

	case KindInconsistency:
		angle.Hypothesis = "The conflicting accounts cannot both be true; the counterparty's version was assembled after the event."
		angle.ConfirmationCondition = "the counterparty cannot identify a contemporaneous record fixing the disputed fact"
		angle.KillCondition = "a contemporaneous record resolves the conflict in the counterparty's favour"
		angle.ExpectedResponse = "an attempt to reconcile the accounts, or reliance on recollection alone"

	case KindGovernanceGap:
		angle.Hypothesis = "The decision was made outside the counterparty's own governance safeguards, and no record can show otherwise."
		angle.ConfirmationCondition = "the counterparty cannot identify who exercised the safeguard or produce the record of it"
		angle.KillCondition = "records show the safeguard was exercised by the right person at the right time"
		angle.ExpectedResponse = "a justification of the process used, or an admission of the departure"

	case KindCommunicationPattern:
		angle.Hypothesis = "The silence is tactical: a substantive answer exists and is unhelpful to the counterparty."
		angle.ConfirmationCondition = "a direct question with a stated reply deadline again draws no substantive answer"
		angle.KillCondition = "a prompt, complete answer is given that survives comparison with the record"
		angle.ExpectedResponse = "a holding reply, a partial answer, or continued silence"

	default:
		// Unrecognized kind: generic procedural hypothesis, never an error.
		angle.Hypothesis = fmt.Sprintf(
			"If proper procedure was followed, records concerning %s should exist.", anchors.phrase())
		angle.ConfirmationCondition = "no such records are produced"
		angle.KillCondition = "complete records are produced and hold up"
		angle.ExpectedResponse = "production, refusal, or silence"
	}

	angle.TargetedRequest = targetedRequest(obs, model)
	return angle
}

// targetedRequest picks the model's probe question when the observation
// overlaps an expected item's label; otherwise it synthesizes a generic
// request from what should exist. "No match" is a distinct branch from
// "matched an item with an empty probe" — the latter cannot occur because
// model validation requires probe questions.
func targetedRequest(obs Observation, model *evidence.Model) string {
	if item, ok := matchItem(obs, model); ok {
		return item.ProbeQuestion
	}
	if obs.WhatShouldExist != "" {
		return fmt.Sprintf("Please provide all %s, or confirm in writing that none exist.", obs.WhatShouldExist)
	}
	return "Please provide all records relating to the matters described above, or confirm in writing that none exist."
}

// matchItem finds the expected item whose label overlaps the observation
// text. A direct model reference wins; otherwise substring match on label.
func matchItem(obs Observation, model *evidence.Model) (*evidence.ExpectedItem, bool) {
	if id, ok := strings.CutPrefix(obs.ModelRef, "item:"); ok {
		return model.ItemByID(id)
	}
	text := strings.ToLower(obs.Description + " " + obs.WhatShouldExist)
	for i := range model.ExpectedItems {
		if strings.Contains(text, strings.ToLower(model.ExpectedItems[i].Label)) {
			return &model.ExpectedItems[i], true
		}
	}
	return nil, false
}

// generateAngles maps observations to angles 1:1, assigning stable ids.
func generateAngles(observations []Observation, model *evidence.Model, anchors CaseAnchors) []InvestigationAngle {
	out := make([]InvestigationAngle, 0, len(observations))
	for i, obs := range observations {
		angle := toAngle(obs, model, anchors)
		angle.ID = fmt.Sprintf("ang-%03d", i+1)
		out = append(out, angle)
	}
	return out
}
