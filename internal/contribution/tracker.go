package contribution

import (
	"errors"

	"dormirlahaut/internal/poi"
)

// ErrAlreadyPending refuses a second submission of the same kind while the
// first one awaits moderation.
var ErrAlreadyPending = errors.New("a contribution of this kind is already pending for this place")

// PendingSet records which contribution kinds are pending for a POI. It is
// rebuilt from the user's own contribution list on every fetch: resolution
// is only observable by re-querying, so pending stays sticky until the next
// fetch no longer reports it.
type PendingSet map[poi.ContributionType]bool

// PendingFor extracts the per-POI pending flags from a contribution list.
// Pass an empty poiID to collect new_poi pendings, which carry no target.
func PendingFor(contribs []poi.Contribution, poiID string) PendingSet {
	set := PendingSet{}
	for _, c := range contribs {
		if c.Status != poi.StatusPending {
			continue
		}
		switch {
		case c.POI == nil && poiID == "":
			set[c.Type] = true
		case c.POI != nil && c.POI.ID == poiID:
			set[c.Type] = true
		}
	}
	return set
}

// Gate refuses a new submission while one of the same kind is pending.
func (s PendingSet) Gate(kind poi.ContributionType) error {
	if s[kind] {
		return ErrAlreadyPending
	}
	return nil
}
