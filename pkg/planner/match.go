package planner

import (
	"strings"
	"time"
)

// Matching thresholds. Named so tests can probe boundary behavior directly
// instead of chasing magic numbers through the detectors.
const (
	// counterMatchThreshold is the minimum word-overlap ratio for a
	// failure mode to be considered a match for a requested evidence label.
	counterMatchThreshold = 0.34

	// lateAuthorshipMinShared is the number of shared words required to
	// link a document to the timeline event it purports to describe.
	lateAuthorshipMinShared = 2

	// chaseSignalMin is the number of unanswered-contact signals in the
	// timeline needed before a communication-pattern observation fires.
	chaseSignalMin = 2
)

// containsAny reports whether text contains any of the keywords.
// Comparison is case-insensitive substring match.
func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// firstMatch returns the first keyword found in text, or "".
func firstMatch(text string, keywords []string) string {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return kw
		}
	}
	return ""
}

// tokenize splits text into lowercase word tokens, stripping punctuation.
func tokenize(text string) []string {
	f := func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}
	fields := strings.FieldsFunc(strings.ToLower(text), f)
	out := fields[:0]
	for _, w := range fields {
		if len(w) > 1 { // drop single-letter noise
			out = append(out, w)
		}
	}
	return out
}

// overlapRatio scores how much of the reference vocabulary appears in text:
// |words(text) ∩ ref| / |ref|. Returns 0 for an empty reference.
func overlapRatio(text string, ref []string) float64 {
	if len(ref) == 0 {
		return 0
	}
	have := make(map[string]bool)
	for _, w := range tokenize(text) {
		have[w] = true
	}
	hit := 0
	for _, r := range ref {
		matched := false
		for _, w := range tokenize(r) {
			if have[w] {
				matched = true
				break
			}
		}
		if matched {
			hit++
		}
	}
	return float64(hit) / float64(len(ref))
}

// sharedWords counts distinct words that appear in both texts.
func sharedWords(a, b string) int {
	have := make(map[string]bool)
	for _, w := range tokenize(a) {
		have[w] = true
	}
	n := 0
	seen := make(map[string]bool)
	for _, w := range tokenize(b) {
		if have[w] && !seen[w] {
			n++
			seen[w] = true
		}
	}
	return n
}

// dateLayouts are tried in order when parsing timeline dates. Ingestion is
// uneven about formats; anything unparseable is skipped, never fatal.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
	"2 January 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// parseDate attempts to parse a timeline date string.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// daysBetween returns whole days from a to b (negative when b precedes a).
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
