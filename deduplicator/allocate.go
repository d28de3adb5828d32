package deduplicator

import (
	"fmt"

	"github.com/MaximilianKoestler/hcloud-openapi/internal/naming"
	"github.com/MaximilianKoestler/hcloud-openapi/oaserrors"
	"github.com/MaximilianKoestler/hcloud-openapi/schema"
	"github.com/MaximilianKoestler/hcloud-openapi/schematypes"
)

// selectCandidates returns the occurrences that qualify for extraction, in
// order of first sighting. pinned holds the location strings of the naming
// file; a shape seen at one of them is always selected.
func selectCandidates(ix *Index, t Thresholds, pinned map[string]struct{}) []*Occurrence {
	var out []*Occurrence
	for _, occ := range ix.Occurrences() {
		if meetsThresholds(occ, t) || seenAtPin(occ, pinned) {
			out = append(out, occ)
		}
	}
	return out
}

func meetsThresholds(occ *Occurrence, t Thresholds) bool {
	return occ.Count >= t.MinCount &&
		occ.Complexity >= t.MinComplexity &&
		occ.DirectChildren >= t.MinDirectChildren &&
		occ.MaxDepth() > 1
}

func seenAtPin(occ *Occurrence, pinned map[string]struct{}) bool {
	if len(pinned) == 0 {
		return false
	}
	for _, loc := range occ.Locations {
		if _, found := pinned[loc.String()]; found {
			return true
		}
	}
	return false
}

func pinnedPaths(entries []schematypes.Entry) map[string]struct{} {
	paths := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		paths[e.Location().String()] = struct{}{}
	}
	return paths
}

// allocation is the outcome of naming the candidates.
type allocation struct {
	// named lists the named occurrences in order of first sighting
	named []*Occurrence
	// byHash maps the hash of every named occurrence to it
	byHash map[schema.Hash]*Occurrence
	// matched lists the naming file entries that named something, in file order
	matched []schematypes.Entry
}

func newAllocation() *allocation {
	return &allocation{byHash: make(map[schema.Hash]*Occurrence)}
}

func (a *allocation) add(occ *Occurrence) {
	a.named = append(a.named, occ)
	a.byHash[occ.Hash] = occ
}

// allocatePinned names candidates by exact location match against entries.
// When several entries match one shape the last one in file order wins.
// Candidates without a match are dropped.
func allocatePinned(candidates []*Occurrence, entries []schematypes.Entry, existing *schema.Registry) (*allocation, error) {
	byLocation := make(map[string]*Occurrence)
	for _, occ := range candidates {
		for _, loc := range occ.Locations {
			byLocation[loc.String()] = occ
		}
	}

	a := newAllocation()
	hits := make([]*Occurrence, len(entries))
	for i, e := range entries {
		occ, found := byLocation[e.Location().String()]
		if !found {
			continue
		}
		occ.Name = e.Name
		occ.Description = e.Description
		occ.Pinned = true
		hits[i] = occ
	}
	for i, e := range entries {
		if hits[i] != nil && hits[i].Name == e.Name {
			a.matched = append(a.matched, e)
		}
	}

	owner := make(map[string]*Occurrence)
	for _, occ := range candidates {
		if occ.Name == "" {
			continue
		}
		if other, taken := owner[occ.Name]; taken {
			return nil, &oaserrors.ConfigError{
				Option:  "pinned",
				Value:   occ.Name,
				Message: fmt.Sprintf("name is pinned to two different shapes (at %s and %s)", other.Locations[0], occ.Locations[0]),
			}
		}
		if existing.Has(occ.Name) {
			return nil, &oaserrors.ConfigError{
				Option:  "pinned",
				Value:   occ.Name,
				Message: fmt.Sprintf("pinned name at %s is already an input schema", occ.Locations[0]),
			}
		}
		owner[occ.Name] = occ
		a.add(occ)
	}
	return a, nil
}

// allocateFresh derives a name for every candidate. Names are unique against
// the ids already in reg and against each other.
func allocateFresh(candidates []*Occurrence, reg *schema.Registry) *allocation {
	names := naming.NewAllocator(reg.IDs()...)
	a := newAllocation()
	for _, occ := range candidates {
		nested := occ.NestedLocations()
		segments := make([]string, len(nested))
		for i, loc := range nested {
			segments[i] = loc.Last()
		}
		occ.Name = names.Reserve(naming.DeriveComponentName(segments))
		a.add(occ)
	}
	return a
}
