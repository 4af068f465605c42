// Package numindex implements the per-field numeric index: a map from a
// numeric value to the set of document ordinals that have that value at the
// field's flat path. Per spec.md's redesign guidance, the backing structure
// is a value-sorted slice searched with binary search rather than a hash
// map, so range queries ("<", "<=", ">", ">=") can binary-search to their
// boundary instead of scanning every distinct value.
package numindex

import (
	"sort"

	"github.com/DanieleFedeli/lyra/internal/docset"
)

// Operator is one of the five comparison operators a numeric filter or
// query may use.
type Operator string

const (
	LessThan      Operator = "<"
	LessOrEqual   Operator = "<="
	Equal         Operator = "="
	GreaterThan   Operator = ">"
	GreaterOrEqual Operator = ">="
)

type entry struct {
	value    float64
	postings *docset.Set
}

// Index is the numeric index for a single flat path.
type Index struct {
	entries []entry
}

// New returns an empty Index.
func New() *Index {
	return &Index{}
}

func (idx *Index) search(value float64) int {
	return sort.Search(len(idx.entries), func(i int) bool {
		return idx.entries[i].value >= value
	})
}

// Insert records id under value.
func (idx *Index) Insert(value float64, id uint32) {
	i := idx.search(value)
	if i < len(idx.entries) && idx.entries[i].value == value {
		idx.entries[i].postings.Add(id)
		return
	}
	idx.entries = append(idx.entries, entry{})
	copy(idx.entries[i+1:], idx.entries[i:])
	idx.entries[i] = entry{value: value, postings: docset.Of(id)}
}

// Remove deletes id from value's posting set, dropping the entry entirely
// if it becomes empty. Reports whether id was present.
func (idx *Index) Remove(value float64, id uint32) bool {
	i := idx.search(value)
	if i >= len(idx.entries) || idx.entries[i].value != value {
		return false
	}
	removed := idx.entries[i].postings.Remove(id)
	if removed && idx.entries[i].postings.Len() == 0 {
		idx.entries = append(idx.entries[:i], idx.entries[i+1:]...)
	}
	return removed
}

// Query returns the union of posting sets of every value satisfying
// `value op target`.
func (idx *Index) Query(op Operator, target float64) *docset.Set {
	switch op {
	case Equal:
		i := idx.search(target)
		if i < len(idx.entries) && idx.entries[i].value == target {
			return idx.entries[i].postings.Clone()
		}
		return docset.New()

	case LessThan:
		end := idx.search(target)
		return idx.unionRange(0, end)

	case LessOrEqual:
		end := idx.search(target)
		if end < len(idx.entries) && idx.entries[end].value == target {
			end++
		}
		return idx.unionRange(0, end)

	case GreaterThan:
		start := idx.search(target)
		if start < len(idx.entries) && idx.entries[start].value == target {
			start++
		}
		return idx.unionRange(start, len(idx.entries))

	case GreaterOrEqual:
		start := idx.search(target)
		return idx.unionRange(start, len(idx.entries))

	default:
		return docset.New()
	}
}

func (idx *Index) unionRange(start, end int) *docset.Set {
	out := docset.New()
	for _, e := range idx.entries[start:end] {
		for _, id := range e.postings.Slice() {
			out.Add(id)
		}
	}
	return out
}
