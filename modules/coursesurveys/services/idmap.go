package services

import (
	"github.com/go-faster/errors"
)

// Ref is the result of mapping one legacy id. A cached id whose entity is
// gone from the store is kept as an unresolved Ref so dependents fail
// loudly instead of pointing at nothing.
type Ref struct {
	ID       int64
	Resolved bool
}

// IDMap maps legacy ids of one table to target store ids for a single run.
type IDMap struct {
	table Table
	refs  map[int64]Ref
}

func newIDMap(t Table) *IDMap {
	return &IDMap{table: t, refs: make(map[int64]Ref)}
}

func (m *IDMap) Set(legacyID, id int64) {
	m.refs[legacyID] = Ref{ID: id, Resolved: true}
}

func (m *IDMap) SetMissing(legacyID, id int64) {
	m.refs[legacyID] = Ref{ID: id}
}

func (m *IDMap) Ref(legacyID int64) (Ref, bool) {
	r, ok := m.refs[legacyID]
	return r, ok
}

// Lookup returns the target id for legacyID or an error wrapping
// ErrUnresolvedReference.
func (m *IDMap) Lookup(legacyID int64) (int64, error) {
	r, ok := m.refs[legacyID]
	switch {
	case !ok:
		return 0, errors.Wrapf(ErrUnresolvedReference, "%s: legacy id %d was never imported", m.table, legacyID)
	case !r.Resolved:
		return 0, errors.Wrapf(ErrUnresolvedReference, "%s: legacy id %d maps to missing id %d", m.table, legacyID, r.ID)
	}
	return r.ID, nil
}

func (m *IDMap) Len() int {
	return len(m.refs)
}

// Resolved returns the resolved entries only, as written to a cache file.
func (m *IDMap) Resolved() map[int64]int64 {
	out := make(map[int64]int64, len(m.refs))
	for legacyID, r := range m.refs {
		if r.Resolved {
			out[legacyID] = r.ID
		}
	}
	return out
}
