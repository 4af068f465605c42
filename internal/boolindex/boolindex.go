// Package boolindex implements the per-field boolean index: a direct
// true/false lookup of document ordinals.
package boolindex

import "github.com/DanieleFedeli/lyra/internal/docset"

// Index is the boolean index for a single flat path.
type Index struct {
	trueIDs  *docset.Set
	falseIDs *docset.Set
}

// New returns an empty Index.
func New() *Index {
	return &Index{trueIDs: docset.New(), falseIDs: docset.New()}
}

// Insert records id under value.
func (idx *Index) Insert(value bool, id uint32) {
	idx.setFor(value).Add(id)
}

// Remove deletes id from value's posting set. Reports whether id was
// present.
func (idx *Index) Remove(value bool, id uint32) bool {
	return idx.setFor(value).Remove(id)
}

// Query returns the posting set for value.
func (idx *Index) Query(value bool) *docset.Set {
	return idx.setFor(value).Clone()
}

func (idx *Index) setFor(value bool) *docset.Set {
	if value {
		return idx.trueIDs
	}
	return idx.falseIDs
}
