package radix

import "github.com/DanieleFedeli/lyra/internal/docset"

// Query describes a single text-index lookup.
type Query struct {
	Term      string
	Exact     bool
	Tolerance int
}

// Find resolves a Query against the tree, returning every matching token
// mapped to its posting set.
//
//   - Exact: only term itself, if indexed.
//   - Tolerance == 0, not Exact: term treated as a prefix (substring-prefix
//     match over every terminal in the subtree it reaches).
//   - Tolerance > 0: bounded Levenshtein descent — every indexed token whose
//     edit distance from term is at most Tolerance.
func (t *Tree) Find(q Query) map[string]*docset.Set {
	switch {
	case q.Exact:
		set := t.FindExact(q.Term)
		if set.Len() == 0 {
			return map[string]*docset.Set{}
		}
		return map[string]*docset.Set{q.Term: set}

	case q.Tolerance == 0:
		result := make(map[string]*docset.Set)
		n, remaining := t.descend(q.Term)
		if n == noChild {
			return result
		}
		if len(remaining) > 0 {
			childIdx := t.child(n, remaining[0])
			if childIdx == noChild {
				return result
			}
			label := t.nodes[childIdx].label
			if commonPrefixLen(remaining, label) != len(remaining) {
				return result
			}
			n = childIdx
		}
		t.collectTerminalsByToken(n, result)
		return result

	default:
		return t.fuzzyFind(q.Term, q.Tolerance)
	}
}

func (t *Tree) collectTerminalsByToken(n int32, out map[string]*docset.Set) {
	if t.nodes[n].terminal {
		out[t.nodes[n].token] = t.nodes[n].postings
	}
	for _, child := range t.nodes[n].children {
		t.collectTerminalsByToken(child, out)
	}
}

// fuzzyFind performs a bounded edit-distance descent of the tree. It keeps a
// running Levenshtein DP row per path from the root, pruning a subtree as
// soon as every entry in that row exceeds tolerance (no possible completion
// of the path could still land within tolerance of term).
func (t *Tree) fuzzyFind(term string, tolerance int) map[string]*docset.Set {
	out := make(map[string]*docset.Set)
	termBytes := []byte(term)
	// row[i] = edit distance between term[:i] and the path built so far.
	initialRow := make([]int, len(termBytes)+1)
	for i := range initialRow {
		initialRow[i] = i
	}
	t.fuzzyDescend(0, termBytes, tolerance, initialRow, out)
	return out
}

func (t *Tree) fuzzyDescend(n int32, term []byte, tolerance int, row []int, out map[string]*docset.Set) {
	if t.nodes[n].terminal {
		if row[len(row)-1] <= tolerance {
			out[t.nodes[n].token] = t.nodes[n].postings
		}
	}
	for _, childIdx := range t.nodes[n].children {
		label := t.nodes[childIdx].label
		nextRow := row
		prune := false
		for _, b := range label {
			candidate := stepRow(nextRow, term, b)
			nextRow = candidate
			if minInt(nextRow) > tolerance {
				prune = true
				break
			}
		}
		if prune {
			continue
		}
		t.fuzzyDescend(childIdx, term, tolerance, nextRow, out)
	}
}

// stepRow extends a Levenshtein DP row by one more character (b) of the
// path being built, returning the new row.
func stepRow(prevRow []int, term []byte, b byte) []int {
	n := len(term)
	newRow := make([]int, n+1)
	newRow[0] = prevRow[0] + 1
	for j := 1; j <= n; j++ {
		cost := 1
		if term[j-1] == b {
			cost = 0
		}
		deletion := prevRow[j] + 1
		insertion := newRow[j-1] + 1
		substitution := prevRow[j-1] + cost
		newRow[j] = minThree(deletion, insertion, substitution)
	}
	return newRow
}

func minInt(row []int) int {
	m := row[0]
	for _, v := range row[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func minThree(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
