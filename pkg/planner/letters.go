package planner

import (
	"fmt"
	"strings"

	"stratagem/pkg/evidence"
)

// letterReplyDays is the reply period stated in rendered correspondence.
const letterReplyDays = 14

// renderLetter produces ready-to-send correspondence for a move, or nil for
// escalation and expert moves — those are not simple information requests
// and are drafted by the fee earner, not a template. Pure text assembly.
func renderLetter(m Move, angle InvestigationAngle, obs Observation, model *evidence.Model, caseID string) *Letter {
	if m.Phase == PhaseEscalation || m.Phase == PhaseExpertSpend {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear Sirs,\n\n")
	fmt.Fprintf(&b, "We write further to our client's matter (our ref: %s).\n\n", caseID)
	if item, ok := matchItem(obs, model); ok {
		fmt.Fprintf(&b, "Our review of the available records notes the absence of the %s, which we would expect to have been %s.\n\n",
			item.Label, item.WhenExpected)
	} else {
		fmt.Fprintf(&b, "Our review of the available records notes the following: %s\n\n", obs.Description)
	}
	fmt.Fprintf(&b, "%s\n\n", angle.TargetedRequest)
	if m.Phase == PhaseCommitmentForcing {
		fmt.Fprintf(&b, "Please confirm or deny the above in terms. A failure to answer will be relied on.\n\n")
	}
	fmt.Fprintf(&b, "We look forward to your substantive response within %d days.\n\nYours faithfully,\n", letterReplyDays)

	return &Letter{
		Recipient: model.Recipient,
		Subject:   fmt.Sprintf("Request for disclosure: %s (ref %s)", m.EvidenceRequested, caseID),
		Body:      b.String(),
	}
}

// renderLetters fills in correspondence across the sequence.
func renderLetters(moves []Move, angles []InvestigationAngle, observations []Observation, model *evidence.Model, caseID string) {
	angleByID := make(map[string]InvestigationAngle, len(angles))
	for _, a := range angles {
		angleByID[a.ID] = a
	}
	obsByID := make(map[string]Observation, len(observations))
	for _, o := range observations {
		obsByID[o.ID] = o
	}
	for i := range moves {
		angle, ok := angleByID[moves[i].AngleID]
		if !ok {
			continue
		}
		moves[i].Letter = renderLetter(moves[i], angle, obsByID[angle.ObservationID], model, caseID)
	}
}
