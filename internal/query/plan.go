// Package query implements the search planner: it resolves the requested
// text fields, normalizes the `where` clause into a filter set, tokenizes
// the search term, and composes radix-tree hits with the filter set via set
// algebra, paginating the result.
package query

import (
	"sort"
	"time"

	"github.com/DanieleFedeli/lyra/internal/docset"
	"github.com/DanieleFedeli/lyra/internal/lang"
	"github.com/DanieleFedeli/lyra/internal/radix"
	"github.com/DanieleFedeli/lyra/internal/schema"
	"github.com/DanieleFedeli/lyra/internal/tokenizer"
	apperrors "github.com/DanieleFedeli/lyra/pkg/errors"
)

const (
	defaultLimit  = 10
	allProperties = "*"
)

// Params is one search request, already parsed out of the external
// request shape into Go-native fields.
type Params struct {
	Term       string
	Properties []string // nil or ["*"] selects every known text path
	Limit      int
	Offset     int
	Exact      bool
	Tolerance  int
	Where      map[string]any
}

// Result is what a Plan.Run call returns before the engine projects
// ordinals through the document table.
type Result struct {
	Count   int
	Hits    []uint32
	Elapsed time.Duration
}

// Plan evaluates search requests against a fixed schema and its indices.
type Plan struct {
	Schema  schema.Schema
	Indices *schema.Indices
	Tok     tokenizer.Tokenizer
}

// New returns a Plan over the given schema, indices, and tokenizer.
func New(s schema.Schema, idx *schema.Indices, tok tokenizer.Tokenizer) *Plan {
	return &Plan{Schema: s, Indices: idx, Tok: tok}
}

// Run executes params against the plan's indices and returns the paginated
// hit set.
//
// total_count preserves a deliberate quirk: the running count accumulates
// the size of the post-filter, post-dedup candidate set for every
// (token, text path) pair the planner visits, even once enough ids have
// already been appended to satisfy limit. Only the emission side stops
// early; the counter does not. This is not a bug fix — it mirrors a
// documented, decided-to-keep behavior of the system this planner
// implements, not an implementation oversight.
func (p *Plan) Run(params Params, language lang.Language) (*Result, error) {
	start := time.Now()

	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	paths, err := p.resolveProperties(params.Properties)
	if err != nil {
		return nil, err
	}

	where, err := parseWhere(params.Where, p.Schema)
	if err != nil {
		return nil, err
	}
	filterSet := p.evaluateWhere(where)

	tokens, err := p.Tok.Tokenize(params.Term, language)
	if err != nil {
		return nil, err
	}
	sortedTokens := make([]string, 0, len(tokens))
	for t := range tokens {
		sortedTokens = append(sortedTokens, t)
	}
	sort.Strings(sortedTokens)

	emitted := docset.New()
	hits := make([]uint32, 0, limit)
	skipped := 0
	totalCount := 0

	for _, token := range sortedTokens {
		for _, path := range paths {
			tree := p.Indices.Text[path]
			matches := tree.Find(radix.Query{Term: token, Exact: params.Exact, Tolerance: params.Tolerance})

			candidate := docset.New()
			for _, set := range matches {
				for _, id := range set.Slice() {
					candidate.Add(id)
				}
			}
			if filterSet != nil {
				candidate = docset.Intersect(candidate, filterSet)
			}

			remaining := docset.Subtract(candidate, emitted)
			totalCount += remaining.Len()

			for _, id := range remaining.Slice() {
				emitted.Add(id)
				if skipped < offset {
					skipped++
					continue
				}
				if len(hits) < limit {
					hits = append(hits, id)
				}
			}
		}
	}

	return &Result{Count: totalCount, Hits: hits, Elapsed: time.Since(start)}, nil
}

func (p *Plan) resolveProperties(requested []string) ([]string, error) {
	known := make(map[string]bool, len(p.Indices.Text))
	for path := range p.Indices.Text {
		known[path] = true
	}

	if len(requested) == 0 || (len(requested) == 1 && requested[0] == allProperties) {
		paths := make([]string, 0, len(known))
		for path := range known {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		return paths, nil
	}

	for _, path := range requested {
		if !known[path] {
			return nil, apperrors.InvalidProperty(path)
		}
	}
	out := append([]string(nil), requested...)
	sort.Strings(out)
	return out, nil
}

// evaluateWhere computes the filter set F: the intersection of the union
// of boolean lookups and the union of numeric lookups, where an empty bag
// contributes "no constraint" rather than the empty set. A nil return
// means no constraint at all.
func (p *Plan) evaluateWhere(w Where) *docset.Set {
	var boolSet, numSet *docset.Set

	if len(w.Boolean) > 0 {
		boolSet = docset.New()
		for _, f := range w.Boolean {
			idx := p.Indices.Boolean[f.Path]
			for _, id := range idx.Query(f.Value).Slice() {
				boolSet.Add(id)
			}
		}
	}

	if len(w.Numeric) > 0 {
		numSet = docset.New()
		for _, f := range w.Numeric {
			idx := p.Indices.Numeric[f.Path]
			for _, id := range idx.Query(f.Op, f.Target).Slice() {
				numSet.Add(id)
			}
		}
	}

	switch {
	case boolSet == nil && numSet == nil:
		return nil
	case boolSet == nil:
		return numSet
	case numSet == nil:
		return boolSet
	default:
		return docset.Intersect(boolSet, numSet)
	}
}
