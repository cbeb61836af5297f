package evidence

import (
	"embed"
	"fmt"
	"sort"
	"sync"
)

//go:embed models/*.yaml
var modelFS embed.FS

var (
	loadOnce sync.Once
	registry map[Domain]*Model
)

// load parses every embedded model exactly once. A malformed embedded model
// is a build defect, not a runtime condition, so it panics rather than
// returning an error nobody can act on.
func load() {
	loadOnce.Do(func() {
		registry = make(map[Domain]*Model)
		entries, err := modelFS.ReadDir("models")
		if err != nil {
			panic(fmt.Sprintf("evidence: read embedded models: %v", err))
		}
		for _, e := range entries {
			data, err := modelFS.ReadFile("models/" + e.Name())
			if err != nil {
				panic(fmt.Sprintf("evidence: read %s: %v", e.Name(), err))
			}
			m, err := parseModel(data)
			if err != nil {
				panic(fmt.Sprintf("evidence: %s: %v", e.Name(), err))
			}
			if _, dup := registry[m.Domain]; dup {
				panic(fmt.Sprintf("evidence: duplicate model for domain %s", m.Domain))
			}
			registry[m.Domain] = m
		}
		if _, ok := registry[DomainGeneric]; !ok {
			panic("evidence: generic fallback model missing")
		}
	})
}

// ModelFor returns the knowledge base for a domain. Total: an unrecognized
// domain returns the generic model, never an error. The returned model is
// shared and must not be mutated.
func ModelFor(d Domain) *Model {
	load()
	if m, ok := registry[d]; ok {
		return m
	}
	return registry[DomainGeneric]
}

// Domains lists every registered domain in stable sorted order.
func Domains() []Domain {
	load()
	out := make([]Domain, 0, len(registry))
	for d := range registry {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
