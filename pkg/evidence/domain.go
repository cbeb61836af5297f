// Package evidence holds the static, per-practice-area knowledge base the
// planner consults: expected evidence items, normal operational patterns,
// governance rules, statutory deadlines, and (for some areas) a taxonomy of
// typical disclosure failure modes used for counter-move prediction.
//
// Models are authored as YAML, embedded in the binary, and validated once at
// load. They are read-only after that point; callers must not mutate them.
package evidence

// Domain identifies a practice area. Unknown values are valid inputs
// everywhere in this package and degrade to the generic model.
type Domain string

const (
	DomainEmployment         Domain = "employment"
	DomainClinicalNegligence Domain = "clinical-negligence"
	DomainHousingDisrepair   Domain = "housing-disrepair"
	DomainGeneric            Domain = "generic"
)

// ParseDomain normalizes a user-supplied domain string. Unrecognized input
// maps to DomainGeneric rather than an error: plan generation must never
// hard-fail for an unsupported practice area.
func ParseDomain(s string) Domain {
	switch Domain(s) {
	case DomainEmployment, DomainClinicalNegligence, DomainHousingDisrepair:
		return Domain(s)
	default:
		return DomainGeneric
	}
}
