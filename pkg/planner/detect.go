package planner

import (
	"fmt"
	"strings"

	"stratagem/pkg/evidence"
)

// detector is one anomaly producer. Detectors are independent; their outputs
// are concatenated in registration order, never merged, so every observation
// stays traceable to the rule that produced it. Near-duplicate observations
// are acceptable here; deduplication, if any, is a presentation concern.
type detector func(in Input, model *evidence.Model, anchors CaseAnchors) []Observation

// detectors runs in fixed order; order contributes to deterministic output.
var detectors = []detector{
	detectEvidenceGaps,
	detectPatternViolations,
	detectGovernanceGaps,
	detectEventPairDelays,
	detectDateInconsistencies,
	detectLateAuthorship,
	detectCommunicationPattern,
	detectDeadlines,
	detectKeyIssues,
}

// detect runs every detector against the snapshot and assigns stable ids.
// A snapshot with nothing in it carries no signal: detectors would only
// manufacture gaps out of the absence of a record, so none are run.
func detect(in Input, model *evidence.Model, anchors CaseAnchors) []Observation {
	if len(in.Documents) == 0 && len(in.Timeline) == 0 && len(in.KeyIssues) == 0 {
		return nil
	}
	var out []Observation
	for _, d := range detectors {
		out = append(out, d(in, model, anchors)...)
	}
	for i := range out {
		out[i].ID = fmt.Sprintf("obs-%03d", i+1)
	}
	return out
}

// snapshotText concatenates all searchable text in the snapshot.
func snapshotText(in Input) string {
	var sb strings.Builder
	for _, d := range in.Documents {
		sb.WriteString(d.Name)
		sb.WriteByte('\n')
		sb.WriteString(d.ExtractedFacts)
		sb.WriteByte('\n')
	}
	for _, ev := range in.Timeline {
		sb.WriteString(ev.Description)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// detectEvidenceGaps scans the record for each expected item's detection
// keywords. A high-importance item with no trace anywhere is a gap.
func detectEvidenceGaps(in Input, model *evidence.Model, anchors CaseAnchors) []Observation {
	text := snapshotText(in)
	var out []Observation
	for _, item := range model.ExpectedItems {
		if item.Importance != evidence.ImportanceHigh {
			continue
		}
		if containsAny(text, item.DetectionKeywords) {
			continue
		}
		out = append(out, Observation{
			Kind: KindEvidenceGap,
			Description: fmt.Sprintf("No %s appears anywhere in the record concerning %s.",
				item.Label, anchors.phrase()),
			WhyUnusual:      fmt.Sprintf("A %s is expected: %s.", item.Label, item.WhenExpected),
			WhatShouldExist: item.Label,
			Leverage:        LeverageHigh,
			ModelRef:        "item:" + item.ID,
		})
	}
	return out
}

// detectPatternViolations flags normal-pattern violation keywords found in
// the record.
func detectPatternViolations(in Input, model *evidence.Model, _ CaseAnchors) []Observation {
	text := snapshotText(in)
	var out []Observation
	for i, p := range model.NormalPatterns {
		if len(p.ViolationKeywords) == 0 || !containsAny(text, p.ViolationKeywords) {
			continue
		}
		out = append(out, Observation{
			Kind:            KindInconsistency,
			Description:     fmt.Sprintf("The record departs from the expected pattern that %s.", p.Pattern),
			WhyUnusual:      p.IfViolated,
			WhatShouldExist: fmt.Sprintf("records showing that %s", p.Pattern),
			Leverage:        LeverageMedium,
			ModelRef:        fmt.Sprintf("pattern:%d", i),
			SourceDocumentIDs: docsMatching(in, p.ViolationKeywords),
		})
	}
	return out
}

// detectGovernanceGaps flags governance-rule violation keywords.
func detectGovernanceGaps(in Input, model *evidence.Model, _ CaseAnchors) []Observation {
	text := snapshotText(in)
	var out []Observation
	for i, r := range model.GovernanceRules {
		if len(r.ViolationKeywords) == 0 || !containsAny(text, r.ViolationKeywords) {
			continue
		}
		out = append(out, Observation{
			Kind:            KindGovernanceGap,
			Description:     fmt.Sprintf("The record suggests a breach of the safeguard that %s.", r.Rule),
			WhyUnusual:      r.IfViolated,
			WhatShouldExist: fmt.Sprintf("records demonstrating that %s", r.Rule),
			Leverage:        LeverageCritical,
			ModelRef:        fmt.Sprintf("governance:%d", i),
			SourceDocumentIDs: docsMatching(in, r.ViolationKeywords),
		})
	}
	return out
}

// detectCommunicationPattern looks for repeated unanswered-contact signals:
// chasing, silence, ignored correspondence.
func detectCommunicationPattern(in Input, _ *evidence.Model, anchors CaseAnchors) []Observation {
	signals := []string{"no response", "no reply", "chased", "chase", "unanswered", "ignored", "did not respond"}
	var dates []string
	hits := 0
	for _, ev := range in.Timeline {
		if containsAny(ev.Description, signals) {
			hits++
			// The date is cited as given even when it will not parse; the
			// pattern rests on the entries themselves, not their ordering.
			if ev.Date != "" {
				dates = append(dates, ev.Date)
			}
		}
	}
	if hits < chaseSignalMin {
		return nil
	}
	return []Observation{{
		Kind:     KindCommunicationPattern,
		ModelRef: "conduct:unanswered-contacts",
		Description: fmt.Sprintf("The counterparty left %d contacts about %s unanswered.",
			hits, anchors.phrase()),
		WhyUnusual:      "a party with a straightforward answer ordinarily gives it; sustained silence suggests the answer is unhelpful to them",
		WhatShouldExist: "substantive replies to each contact",
		Leverage:        LeverageMedium,
		RelatedDates:    dates,
	}}
}

// detectKeyIssues promotes fee-earner-flagged issues into observations so
// they flow through the same hypothesis machinery as detected anomalies.
func detectKeyIssues(in Input, _ *evidence.Model, _ CaseAnchors) []Observation {
	var out []Observation
	for _, ki := range in.KeyIssues {
		if ki.Label == "" {
			continue
		}
		lev := ki.Severity
		if lev.Rank() == 0 && lev != LeverageLow {
			lev = LeverageMedium // unrecognized severity, assume mid-scale
		}
		out = append(out, Observation{
			Kind:            kindForIssueCategory(ki.Category),
			Description:     ki.Label,
			WhyUnusual:      "flagged by the fee earner on review of the file",
			WhatShouldExist: "records resolving the flagged issue",
			Leverage:        lev,
			ModelRef:        "issue:" + ki.Category,
		})
	}
	return out
}

// kindForIssueCategory maps a free-text issue category onto the closest
// observation kind. Unknown categories read as inconsistencies.
func kindForIssueCategory(category string) ObservationKind {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "evidence", "disclosure", "missing-document":
		return KindEvidenceGap
	case "timeline", "delay":
		return KindTimelineAnomaly
	case "governance", "procedure":
		return KindGovernanceGap
	case "communication":
		return KindCommunicationPattern
	default:
		return KindInconsistency
	}
}

// docsMatching returns ids of documents whose text contains any keyword.
func docsMatching(in Input, keywords []string) []string {
	var ids []string
	for _, d := range in.Documents {
		if containsAny(d.Name+" "+d.ExtractedFacts, keywords) {
			ids = append(ids, d.ID)
		}
	}
	return ids
}
