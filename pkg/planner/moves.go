package planner

import (
	"fmt"

	"stratagem/pkg/evidence"
)

// draftMove is a move before sequencing: deps reference indices into the
// draft slice, not final orders. The sequencer translates both.
type draftMove struct {
	move Move
	deps []int
}

// generateMoves converts angles into draft moves. Each angle yields at least
// one move; leverage and kind decide whether commitment, escalation, or
// expert moves follow. Phase assignment is the core economic rule: cheap,
// non-committal requests come first, paid expert work last.
func generateMoves(angles []InvestigationAngle, observations []Observation, model *evidence.Model, anchors CaseAnchors) []draftMove {
	obsByID := make(map[string]Observation, len(observations))
	for _, o := range observations {
		obsByID[o.ID] = o
	}

	var drafts []draftMove
	for _, angle := range angles {
		obs := obsByID[angle.ObservationID]
		gain := obs.Leverage
		if gain.Rank() == 0 && gain != LeverageLow {
			gain = LeverageMedium
		}

		infoIdx := len(drafts)
		drafts = append(drafts, draftMove{move: Move{
			AngleID:           angle.ID,
			Phase:             PhaseInformationExtraction,
			Action:            fmt.Sprintf("Send a targeted disclosure request testing the %s hypothesis concerning %s.", obs.Kind, anchors.phrase()),
			EvidenceRequested: requestedEvidence(obs),
			QuestionItForces:  angle.TargetedRequest,
			ExpectedOpponentResponse: angle.ExpectedResponse,
			WhyNow: "cheapest available test of the hypothesis; every later move is better informed by the answer",
			CostOfBeingOutOfOrder: "later moves would commit position or spend money on a question a letter could have answered",
			Cost:              model.Costs.Information,
			Commitment:        CommitmentLow,
			InformationGain:   gain,
		}})

		commitIdx := -1
		if gain.Rank() >= LeverageHigh.Rank() {
			commitIdx = len(drafts)
			drafts = append(drafts, draftMove{
				move: Move{
					AngleID:           angle.ID,
					Phase:             PhaseCommitmentForcing,
					Action:            "Put the counterparty to a formal election: confirm or deny, in writing, with a stated reply deadline.",
					EvidenceRequested: requestedEvidence(obs),
					QuestionItForces:  fmt.Sprintf("Does the counterparty stand by its account given that %s", lowerFirst(obs.WhyUnusual)+"?"),
					ExpectedOpponentResponse: "an admission, a denial that can later be tested, or silence that itself becomes evidence",
					WhyNow: "the information round has framed the question; an election now locks the counterparty to a position",
					CostOfBeingOutOfOrder: "forcing an election before the information round lets the counterparty choose the safest answer",
					Cost:              model.Costs.Commitment,
					Commitment:        CommitmentMedium,
					InformationGain:   gain,
				},
				deps: []int{infoIdx},
			})
		}

		if obs.Kind == KindGovernanceGap && gain == LeverageCritical {
			deps := []int{infoIdx}
			if commitIdx >= 0 {
				deps = append(deps, commitIdx)
			}
			drafts = append(drafts, draftMove{
				move: Move{
					AngleID:           angle.ID,
					Phase:             PhaseEscalation,
					Action:            "Serve a formal pre-action letter setting out the governance breach and the inference to be drawn.",
					EvidenceRequested: requestedEvidence(obs),
					QuestionItForces:  "whether the counterparty will defend the breach formally or concede it",
					ExpectedOpponentResponse: "a substantive pre-action response, an offer, or instruction of solicitors",
					WhyNow: "the breach is confirmed or unanswered; escalation converts it into formal pressure",
					CostOfBeingOutOfOrder: "escalating before the breach is tested invites a complete answer that deflates the claim",
					Cost:              model.Costs.Escalation,
					Commitment:        CommitmentHigh,
					InformationGain:   gain,
				},
				deps: deps,
			})
		}

		if needsExpert(obs, gain) {
			deps := []int{infoIdx}
			if commitIdx >= 0 {
				deps = append(deps, commitIdx)
			}
			drafts = append(drafts, draftMove{
				move: Move{
					AngleID:           angle.ID,
					Phase:             PhaseExpertSpend,
					Action:            fmt.Sprintf("Instruct an %s on the question left open by the earlier moves.", model.ExpertLabel),
					EvidenceRequested: model.ExpertLabel,
					QuestionItForces:  angle.ConfirmationCondition,
					ExpectedOpponentResponse: "none directly; the product is our own evidence",
					WhyNow: "only reached if the cheaper moves have not already resolved the question",
					CostOfBeingOutOfOrder: fmt.Sprintf("spending %d units on an expert before the disclosure round may buy an answer a letter would have produced free", model.Costs.Expert),
					Cost:              model.Costs.Expert,
					Commitment:        CommitmentHigh,
					InformationGain:   LeverageCritical,
				},
				deps: deps,
			})
		}
	}
	return drafts
}

// needsExpert decides whether an angle justifies paid expert work: critical
// leverage always does, and a high-leverage factual conflict warrants a
// forensic view of the records.
func needsExpert(obs Observation, gain Leverage) bool {
	if gain == LeverageCritical {
		return true
	}
	return obs.Kind == KindInconsistency && gain.Rank() >= LeverageHigh.Rank()
}

// requestedEvidence names what the move asks for, preferring the concrete
// item over the observation's free text.
func requestedEvidence(obs Observation) string {
	if obs.WhatShouldExist != "" {
		return obs.WhatShouldExist
	}
	return obs.Description
}

// lowerFirst lowercases the first rune for mid-sentence splicing.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'A' && r[0] <= 'Z' {
		r[0] = r[0] + ('a' - 'A')
	}
	return string(r)
}
