package schema

import (
	"github.com/DanieleFedeli/lyra/internal/boolindex"
	"github.com/DanieleFedeli/lyra/internal/numindex"
	"github.com/DanieleFedeli/lyra/internal/radix"
)

// Indices is the full set of per-field inverted indices a schema implies,
// one radix tree per text leaf, one numeric index per number leaf, one
// boolean index per boolean leaf, all keyed by flat path.
type Indices struct {
	Text    map[string]*radix.Tree
	Numeric map[string]*numindex.Index
	Boolean map[string]*boolindex.Index
}

// BuildIndices walks s depth-first and allocates the appropriate empty
// index at every leaf's flat path. The set of flat paths in each map is
// exactly the set of leaves of s of the matching kind.
func BuildIndices(s Schema) *Indices {
	idx := &Indices{
		Text:    make(map[string]*radix.Tree),
		Numeric: make(map[string]*numindex.Index),
		Boolean: make(map[string]*boolindex.Index),
	}
	for _, leaf := range s.Leaves() {
		switch leaf.Kind {
		case KindText:
			idx.Text[leaf.Path] = radix.New()
		case KindNumber:
			idx.Numeric[leaf.Path] = numindex.New()
		case KindBoolean:
			idx.Boolean[leaf.Path] = boolindex.New()
		}
	}
	return idx
}
