// Package planner implements the strategic move-sequencing engine: a pure,
// deterministic, single-pass pipeline that turns a case evidence snapshot
// into an ordered, dependency-aware sequence of investigative moves.
//
// The pipeline performs no I/O and reads no ambient state. Given identical
// input (including the explicit Now), it produces identical output. One call
// computes everything; updates to the underlying case require a full
// recomputation, not an incremental patch.
package planner

import (
	"time"

	"stratagem/pkg/evidence"
)

// ObservationKind classifies a detected anomaly.
type ObservationKind string

const (
	KindEvidenceGap          ObservationKind = "evidence_gap"
	KindTimelineAnomaly      ObservationKind = "timeline_anomaly"
	KindInconsistency        ObservationKind = "inconsistency"
	KindGovernanceGap        ObservationKind = "governance_gap"
	KindCommunicationPattern ObservationKind = "communication_pattern"
)

// Leverage grades how much pressure an observation (or the information a
// move yields) can exert on the counterparty.
type Leverage string

const (
	LeverageLow      Leverage = "low"
	LeverageMedium   Leverage = "medium"
	LeverageHigh     Leverage = "high"
	LeverageCritical Leverage = "critical"
)

var leverageRank = map[Leverage]int{
	LeverageLow:      0,
	LeverageMedium:   1,
	LeverageHigh:     2,
	LeverageCritical: 3,
}

// Rank returns a comparable ordinal for the leverage scale. Unknown values
// rank lowest.
func (l Leverage) Rank() int { return leverageRank[l] }

// Phase is the strategic category of a move. Phases are totally ordered:
// a well-formed sequence is non-decreasing in phase.
type Phase string

const (
	PhaseInformationExtraction Phase = "information_extraction"
	PhaseCommitmentForcing     Phase = "commitment_forcing"
	PhaseEscalation            Phase = "escalation"
	PhaseExpertSpend           Phase = "expert_spend"
)

var phaseRank = map[Phase]int{
	PhaseInformationExtraction: 0,
	PhaseCommitmentForcing:     1,
	PhaseEscalation:            2,
	PhaseExpertSpend:           3,
}

// Rank returns the phase ordinal used by the sequencer.
func (p Phase) Rank() int { return phaseRank[p] }

// Commitment grades how far a move commits our side to a position.
type Commitment string

const (
	CommitmentLow    Commitment = "low"
	CommitmentMedium Commitment = "medium"
	CommitmentHigh   Commitment = "high"
)

// Document is one item of the case record. ExtractedFacts is the plain-text
// yield of upstream ingestion; this package never reads files itself.
type Document struct {
	ID             string    `json:"id" yaml:"id"`
	Name           string    `json:"name" yaml:"name"`
	Type           string    `json:"type,omitempty" yaml:"type,omitempty"`
	ExtractedFacts string    `json:"extracted_facts,omitempty" yaml:"extracted_facts,omitempty"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
}

// TimelineEvent is one dated (or undated) fact. Date is kept as the raw
// string from ingestion; unparseable dates are skipped by delta computations
// rather than failing the pipeline.
type TimelineEvent struct {
	Date        string `json:"date,omitempty" yaml:"date,omitempty"`
	Description string `json:"description" yaml:"description"`
}

// KeyIssue is an issue already identified by the fee earner.
type KeyIssue struct {
	Label    string   `json:"label" yaml:"label"`
	Category string   `json:"category" yaml:"category"`
	Severity Leverage `json:"severity" yaml:"severity"`
}

// Input is the full case snapshot the pipeline consumes. Now must be set by
// the caller; the pipeline never reads the wall clock.
type Input struct {
	CaseID    string          `json:"case_id" yaml:"case_id"`
	Domain    evidence.Domain `json:"domain" yaml:"domain"`
	Documents []Document      `json:"documents" yaml:"documents"`
	Timeline  []TimelineEvent `json:"timeline" yaml:"timeline"`
	KeyIssues []KeyIssue      `json:"key_issues,omitempty" yaml:"key_issues,omitempty"`
	Now       time.Time       `json:"now" yaml:"now"`
}

// Observation is a detected anomaly. Every observation cites either a model
// rule (ModelRef) or dated facts from the input (SourceDocumentIDs /
// RelatedDates); fabricating one without a source is a contract violation.
type Observation struct {
	ID                string          `json:"id"`
	Kind              ObservationKind `json:"kind"`
	Description       string          `json:"description"`
	WhyUnusual        string          `json:"why_unusual"`
	WhatShouldExist   string          `json:"what_should_exist"`
	Leverage          Leverage        `json:"leverage"`
	ModelRef          string          `json:"model_ref,omitempty"`
	SourceDocumentIDs []string        `json:"source_document_ids,omitempty"`
	RelatedDates      []string        `json:"related_dates,omitempty"`
}

// InvestigationAngle is a falsifiable hypothesis derived from exactly one
// observation, with the concrete request that tests it.
type InvestigationAngle struct {
	ID                    string `json:"id"`
	ObservationID         string `json:"observation_id"`
	Hypothesis            string `json:"hypothesis"`
	ConfirmationCondition string `json:"confirmation_condition"`
	KillCondition         string `json:"kill_condition"`
	TargetedRequest       string `json:"targeted_request"`
	ExpectedResponse      string `json:"expected_response"`
}

// ForkPoint names the next move under each anticipated reaction.
// All targets are orders strictly greater than the owning move's order.
type ForkPoint struct {
	IfAdmit   int `json:"if_admit"`
	IfDeny    int `json:"if_deny"`
	IfSilence int `json:"if_silence"`
}

// CounterMove predicts the counterparty's likely non-compliant response and
// the procedurally correct reply to it.
type CounterMove struct {
	LikelyResponse  string `json:"likely_response"`
	FailurePattern  string `json:"failure_pattern"`
	LawfulNextReply string `json:"lawful_next_reply"`
}

// Letter is ready-to-send correspondence for a move.
type Letter struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// Move is one sequenced action in the output plan. Order is its unique
// 1-based position; Dependencies hold orders of prerequisite moves, all
// strictly less than Order.
type Move struct {
	Order                    int          `json:"order"`
	AngleID                  string       `json:"angle_id"`
	Phase                    Phase        `json:"phase"`
	Action                   string       `json:"action"`
	EvidenceRequested        string       `json:"evidence_requested"`
	QuestionItForces         string       `json:"question_it_forces"`
	ExpectedOpponentResponse string       `json:"expected_opponent_response"`
	WhyNow                   string       `json:"why_now"`
	CostOfBeingOutOfOrder    string       `json:"cost_of_being_out_of_order"`
	Cost                     int          `json:"cost"`
	Commitment               Commitment   `json:"commitment_level"`
	InformationGain          Leverage     `json:"information_gain"`
	Dependencies             []int        `json:"dependencies,omitempty"`
	Fork                     *ForkPoint   `json:"fork_point,omitempty"`
	Counter                  *CounterMove `json:"counter_move,omitempty"`
	Letter                   *Letter      `json:"letter,omitempty"`
}

// CostAnalysis summarizes the plan's spend economics.
type CostAnalysis struct {
	CostBeforeExpertSpend     int    `json:"cost_before_expert_spend"`
	ExpertSpendTrigger        string `json:"expert_spend_trigger_condition,omitempty"`
	SpendAvoidedIfGapConfirmed int   `json:"spend_avoided_if_gap_confirmed"`
}

// Review is the optional senior-reviewer panel: a short verdict plus the
// explicit conditions under which the case is won, killed, or escalated.
type Review struct {
	Verdict            string   `json:"verdict"`
	WinConditions      []string `json:"win_conditions,omitempty"`
	KillConditions     []string `json:"kill_conditions,omitempty"`
	EscalationTriggers []string `json:"escalation_triggers,omitempty"`
}

// MoveSequence is the pipeline's immutable output.
type MoveSequence struct {
	CaseID       string               `json:"case_id"`
	Domain       evidence.Domain      `json:"domain"`
	GeneratedAt  time.Time            `json:"generated_at"`
	Observations []Observation        `json:"observations"`
	Angles       []InvestigationAngle `json:"investigation_angles"`
	Moves        []Move               `json:"moves"`
	Warnings     []string             `json:"warnings,omitempty"`
	Cost         CostAnalysis         `json:"cost_analysis"`
	Review       *Review              `json:"review,omitempty"`
}

// FirstExpertIndex returns the slice index of the first EXPERT_SPEND move in
// sequence order, or -1 when the plan engages no expert.
func (s *MoveSequence) FirstExpertIndex() int {
	for i := range s.Moves {
		if s.Moves[i].Phase == PhaseExpertSpend {
			return i
		}
	}
	return -1
}
