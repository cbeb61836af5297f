package evidence

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Importance grades how strongly the absence of an expected item signals an
// evidentiary gap. Only high-importance items produce gap observations.
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// ExpectedItem is a document or record the model expects to exist when the
// counterparty has followed proper procedure.
type ExpectedItem struct {
	ID                  string     `yaml:"id"`
	Label               string     `yaml:"label"`
	WhenExpected        string     `yaml:"when_expected"`
	IfMissingMeans      string     `yaml:"if_missing_means"`
	ProbeQuestion       string     `yaml:"probe_question"`
	Importance          Importance `yaml:"importance"`
	DetectionKeywords   []string   `yaml:"detection_keywords"`
	TypicalFailureModes []string   `yaml:"typical_failure_modes,omitempty"`
}

// NormalPattern describes expected operational behavior; observing its
// violation keywords in the case record is an anomaly.
type NormalPattern struct {
	Pattern           string   `yaml:"pattern"`
	IfViolated        string   `yaml:"if_violated"`
	ViolationKeywords []string `yaml:"violation_keywords"`
}

// GovernanceRule describes a procedural safeguard; its violation keywords
// flag a governance gap.
type GovernanceRule struct {
	Rule              string   `yaml:"rule"`
	IfViolated        string   `yaml:"if_violated"`
	ViolationKeywords []string `yaml:"violation_keywords"`
}

// EventPair names two semantic timeline event classes and the maximum
// acceptable gap between them (e.g. grievance -> investigation).
type EventPair struct {
	Label          string   `yaml:"label"`
	FirstKeywords  []string `yaml:"first_keywords"`
	SecondKeywords []string `yaml:"second_keywords"`
	MaxGapDays     int      `yaml:"max_gap_days"`
}

// Deadline is a statutory or procedural deadline that runs from a trigger
// event found in the timeline.
type Deadline struct {
	Name            string   `yaml:"name"`
	TriggerKeywords []string `yaml:"trigger_keywords"`
	Days            int      `yaml:"days"`
	Authority       string   `yaml:"authority"`
	// MetKeywords, when matched anywhere in the snapshot text, show the
	// deadline was complied with and suppress the observation.
	MetKeywords []string `yaml:"met_keywords,omitempty"`
}

// FailureMode is one entry in the domain's non-compliance taxonomy: a stock
// way counterparties fail to produce requested evidence, with the
// procedurally correct next reply.
type FailureMode struct {
	ID             string   `yaml:"id"`
	Label          string   `yaml:"label"`
	Keywords       []string `yaml:"keywords"`
	LikelyResponse string   `yaml:"likely_response"`
	LawfulReply    string   `yaml:"lawful_reply"`
}

// Costs carries the per-phase amounts used to price generated moves.
type Costs struct {
	Information int `yaml:"information"`
	Commitment  int `yaml:"commitment"`
	Escalation  int `yaml:"escalation"`
	Expert      int `yaml:"expert"`
}

// Model is the full knowledge base for one practice area. Immutable after
// load; one instance is shared by all plan computations for the domain.
type Model struct {
	Domain            Domain           `yaml:"domain"`
	DisplayName       string           `yaml:"display_name"`
	Recipient         string           `yaml:"recipient"`
	ExpertLabel       string           `yaml:"expert_label"`
	Costs             Costs            `yaml:"costs"`
	ExpectedItems     []ExpectedItem   `yaml:"expected_items"`
	NormalPatterns    []NormalPattern  `yaml:"normal_patterns,omitempty"`
	GovernanceRules   []GovernanceRule `yaml:"governance_rules,omitempty"`
	EventPairs        []EventPair      `yaml:"event_pairs,omitempty"`
	Deadlines         []Deadline       `yaml:"deadlines,omitempty"`
	FailureModes      []FailureMode    `yaml:"failure_modes,omitempty"`
	LateAuthorshipDays int             `yaml:"late_authorship_days"`
}

// ItemByID returns the expected item with the given id.
func (m *Model) ItemByID(id string) (*ExpectedItem, bool) {
	for i := range m.ExpectedItems {
		if m.ExpectedItems[i].ID == id {
			return &m.ExpectedItems[i], true
		}
	}
	return nil, false
}

// FailureModeByID returns the failure mode with the given id.
func (m *Model) FailureModeByID(id string) (*FailureMode, bool) {
	for i := range m.FailureModes {
		if m.FailureModes[i].ID == id {
			return &m.FailureModes[i], true
		}
	}
	return nil, false
}

// parseModel unmarshals and validates a single model document.
func parseModel(data []byte) (*Model, error) {
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("evidence: unmarshal model: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// validate enforces the structural invariants the planner relies on.
func (m *Model) validate() error {
	if m.Domain == "" {
		return fmt.Errorf("evidence: model missing domain")
	}
	if m.DisplayName == "" {
		return fmt.Errorf("evidence: model %s missing display_name", m.Domain)
	}
	if m.Costs.Expert < 0 || m.Costs.Escalation < 0 || m.Costs.Commitment < 0 || m.Costs.Information < 0 {
		return fmt.Errorf("evidence: model %s has negative cost", m.Domain)
	}
	seen := make(map[string]bool, len(m.ExpectedItems))
	for _, it := range m.ExpectedItems {
		switch {
		case it.ID == "":
			return fmt.Errorf("evidence: model %s has expected item without id", m.Domain)
		case seen[it.ID]:
			return fmt.Errorf("evidence: model %s duplicate item id %q", m.Domain, it.ID)
		case it.Label == "" || it.ProbeQuestion == "" || it.IfMissingMeans == "":
			return fmt.Errorf("evidence: model %s item %q incomplete", m.Domain, it.ID)
		case len(it.DetectionKeywords) == 0:
			return fmt.Errorf("evidence: model %s item %q has no detection keywords", m.Domain, it.ID)
		}
		seen[it.ID] = true
	}
	fms := make(map[string]bool, len(m.FailureModes))
	for _, fm := range m.FailureModes {
		if fm.ID == "" || fm.Label == "" || fm.LikelyResponse == "" || fm.LawfulReply == "" {
			return fmt.Errorf("evidence: model %s failure mode %q incomplete", m.Domain, fm.ID)
		}
		if fms[fm.ID] {
			return fmt.Errorf("evidence: model %s duplicate failure mode %q", m.Domain, fm.ID)
		}
		fms[fm.ID] = true
	}
	for _, it := range m.ExpectedItems {
		for _, ref := range it.TypicalFailureModes {
			if _, ok := m.FailureModeByID(ref); !ok {
				return fmt.Errorf("evidence: model %s item %q references unknown failure mode %q", m.Domain, it.ID, ref)
			}
		}
	}
	for _, p := range m.EventPairs {
		if p.MaxGapDays <= 0 {
			return fmt.Errorf("evidence: model %s event pair %q has non-positive max_gap_days", m.Domain, p.Label)
		}
		if len(p.FirstKeywords) == 0 || len(p.SecondKeywords) == 0 {
			return fmt.Errorf("evidence: model %s event pair %q missing keywords", m.Domain, p.Label)
		}
	}
	for _, d := range m.Deadlines {
		if d.Days <= 0 {
			return fmt.Errorf("evidence: model %s deadline %q has non-positive days", m.Domain, d.Name)
		}
		if len(d.TriggerKeywords) == 0 {
			return fmt.Errorf("evidence: model %s deadline %q has no trigger keywords", m.Domain, d.Name)
		}
	}
	return nil
}
