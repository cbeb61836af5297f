package planner

import "strings"

// CaseAnchors are case-specific terms pulled from the raw snapshot so
// generated hypotheses and requests read like they belong to this case
// rather than to a template.
type CaseAnchors struct {
	// Subject is the dominant subject-matter term found in the record
	// (e.g. "dismissal", "mould", "consent").
	Subject string
	// Outcome is the adverse outcome term, when one is identifiable.
	Outcome string
	// LongestDelayDays is the largest gap between consecutive dated
	// timeline events, in days. Zero when fewer than two dates parse.
	LongestDelayDays int
}

// subjectTerms are scanned in order; the first hit anchors the case.
var subjectTerms = []string{
	"dismissal", "redundancy", "grievance", "suspension",
	"diagnosis", "surgery", "consent", "sepsis",
	"damp", "mould", "leak", "disrepair",
	"contract", "invoice", "complaint",
}

// outcomeTerms identify the adverse outcome the case turns on.
var outcomeTerms = []string{
	"dismissed", "terminated", "resigned",
	"died", "injured", "readmitted", "amputation",
	"uninhabitable", "rehoused", "hospitalised",
	"loss", "damage",
}

// extractAnchors scans all snapshot text once and derives the anchors.
func extractAnchors(in Input) CaseAnchors {
	var sb strings.Builder
	for _, d := range in.Documents {
		sb.WriteString(d.Name)
		sb.WriteByte(' ')
		sb.WriteString(d.ExtractedFacts)
		sb.WriteByte(' ')
	}
	for _, ev := range in.Timeline {
		sb.WriteString(ev.Description)
		sb.WriteByte(' ')
	}
	for _, ki := range in.KeyIssues {
		sb.WriteString(ki.Label)
		sb.WriteByte(' ')
	}
	text := sb.String()

	a := CaseAnchors{
		Subject: firstMatch(text, subjectTerms),
		Outcome: firstMatch(text, outcomeTerms),
	}

	var last struct {
		set  bool
		when int64
	}
	for _, ev := range in.Timeline {
		t, ok := parseDate(ev.Date)
		if !ok {
			continue
		}
		if last.set {
			gap := int(t.Unix()-last.when) / 86400
			if gap > a.LongestDelayDays {
				a.LongestDelayDays = gap
			}
		}
		last.set = true
		last.when = t.Unix()
	}
	return a
}

// phrase returns the anchor subject or a generic fallback, for templating.
func (a CaseAnchors) phrase() string {
	if a.Subject != "" {
		return a.Subject
	}
	return "the matters in dispute"
}

// outcomeClause names the adverse outcome as a trailing sentence, or ""
// when no outcome term was found in the snapshot.
func (a CaseAnchors) outcomeClause() string {
	if a.Outcome == "" {
		return ""
	}
	return " The case turns on the \"" + a.Outcome + "\" outcome."
}
