// Package persona maps user-role identifiers to relevance keyword
// vocabularies. Profiles are built from configuration once per run and are
// read-only afterwards; adding a persona is a config entry, not a code
// change.
package persona

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPersona is returned when a requested persona has no profile.
// Scoring cannot proceed without a vocabulary, so this aborts the
// collection run.
var ErrUnknownPersona = errors.New("unknown persona")

// Profile is one persona's keyword vocabulary. Keywords are lowercased at
// construction; matching is case-insensitive substring containment.
type Profile struct {
	ID       string
	Keywords []string
}

// Registry holds the persona table for one run.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry builds a registry from a persona-id -> keyword-list table.
// Keywords are normalized to lower case and de-duplicated; order is
// preserved for deterministic iteration.
func NewRegistry(table map[string][]string) *Registry {
	profiles := make(map[string]Profile, len(table))
	for id, keywords := range table {
		seen := make(map[string]struct{}, len(keywords))
		normalized := make([]string, 0, len(keywords))
		for _, kw := range keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			normalized = append(normalized, kw)
		}
		profiles[id] = Profile{ID: id, Keywords: normalized}
	}
	return &Registry{profiles: profiles}
}

// Lookup returns the profile for a persona id, or ErrUnknownPersona.
func (r *Registry) Lookup(id string) (Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownPersona, id)
	}
	return p, nil
}

// IDs returns the known persona identifiers in map order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	return ids
}
