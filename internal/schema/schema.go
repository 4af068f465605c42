// Package schema models the user-declared document schema: a recursive
// tree whose internal nodes are named sub-schemas and whose leaves are one
// of {text, number, boolean}. It parses the caller-supplied declaration,
// flattens it to dotted paths for index construction, and validates
// documents against it.
package schema

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/DanieleFedeli/lyra/pkg/errors"
)

// Kind is the type of a schema node.
type Kind int

const (
	KindObject Kind = iota
	KindText
	KindNumber
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Node is one entry in a Schema: either a leaf of one of the three known
// types, or an object node carrying its own nested Schema.
type Node struct {
	Kind     Kind
	Children Schema
}

// Schema is a named set of sibling nodes. The root schema a caller declares
// is itself a Schema.
type Schema map[string]Node

// Leaf pairs a flattened dotted path with the leaf kind found there.
type Leaf struct {
	Path string
	Kind Kind
}

// leafKindNames maps the three string spellings a caller may use for a leaf
// type onto their Kind.
var leafKindNames = map[string]Kind{
	"text":    KindText,
	"number":  KindNumber,
	"boolean": KindBoolean,
}

// Parse builds a Schema from a raw declaration: a nested map whose leaf
// values are one of "text", "number", "boolean" and whose non-leaf values
// are themselves nested maps. Any other leaf value is InvalidSchemaType.
func Parse(raw map[string]any) (Schema, error) {
	return parseLevel(raw)
}

func parseLevel(raw map[string]any) (Schema, error) {
	s := make(Schema, len(raw))
	for field, value := range raw {
		node, err := parseNode(value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		s[field] = node
	}
	return s, nil
}

func parseNode(value any) (Node, error) {
	switch v := value.(type) {
	case string:
		kind, ok := leafKindNames[v]
		if !ok {
			return Node{}, apperrors.InvalidSchemaType(v)
		}
		return Node{Kind: kind}, nil
	case map[string]any:
		children, err := parseLevel(v)
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: KindObject, Children: children}, nil
	default:
		return Node{}, apperrors.InvalidSchemaType(fmt.Sprintf("%T", v))
	}
}

// Leaves returns every leaf of the schema as a flattened (path, kind) pair,
// in a deterministic (lexical path) order so index construction and
// iteration are reproducible.
func (s Schema) Leaves() []Leaf {
	var out []Leaf
	s.collectLeaves("", &out)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (s Schema) collectLeaves(prefix string, out *[]Leaf) {
	for field, node := range s {
		path := field
		if prefix != "" {
			path = prefix + "." + field
		}
		if node.Kind == KindObject {
			node.Children.collectLeaves(path, out)
			continue
		}
		*out = append(*out, Leaf{Path: path, Kind: node.Kind})
	}
}

// Lookup resolves a dotted flat path to the leaf Node it names, if any.
func (s Schema) Lookup(path string) (Node, bool) {
	parts := strings.Split(path, ".")
	cur := s
	for i, part := range parts {
		node, ok := cur[part]
		if !ok {
			return Node{}, false
		}
		if i == len(parts)-1 {
			return node, node.Kind != KindObject
		}
		if node.Kind != KindObject {
			return Node{}, false
		}
		cur = node.Children
	}
	return Node{}, false
}
