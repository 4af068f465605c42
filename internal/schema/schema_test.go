package schema

import (
	"sort"
	"testing"
)

func bookSchema(t *testing.T) Schema {
	t.Helper()
	s, err := Parse(map[string]any{
		"title":    "text",
		"year":     "number",
		"inStock":  "boolean",
		"author":   map[string]any{"name": "text", "age": "number"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestParseRejectsUnknownLeafType(t *testing.T) {
	_, err := Parse(map[string]any{"title": "string"})
	if err == nil {
		t.Fatal("expected an error for an unknown leaf type")
	}
}

func TestParseRejectsNonStringNonObjectLeaf(t *testing.T) {
	_, err := Parse(map[string]any{"title": 5})
	if err == nil {
		t.Fatal("expected an error for a leaf that is neither a string nor an object")
	}
}

func TestLeavesFlattensNestedPaths(t *testing.T) {
	s := bookSchema(t)
	leaves := s.Leaves()
	paths := make([]string, len(leaves))
	for i, l := range leaves {
		paths[i] = l.Path
	}
	sort.Strings(paths)
	want := []string{"author.age", "author.name", "inStock", "title", "year"}
	if len(paths) != len(want) {
		t.Fatalf("got %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("got %v, want %v", paths, want)
		}
	}
}

func TestLookupResolvesNestedLeaf(t *testing.T) {
	s := bookSchema(t)
	node, ok := s.Lookup("author.name")
	if !ok || node.Kind != KindText {
		t.Fatalf("got node=%v ok=%v", node, ok)
	}
}

func TestLookupRejectsObjectPath(t *testing.T) {
	s := bookSchema(t)
	if _, ok := s.Lookup("author"); ok {
		t.Fatal("expected Lookup on an object path to report not-found")
	}
}

func TestValidateDocumentAccepts(t *testing.T) {
	s := bookSchema(t)
	doc := map[string]any{
		"title":   "The Lyra Book",
		"year":    2022,
		"inStock": true,
		"author":  map[string]any{"name": "Ada", "age": 31},
	}
	if err := ValidateDocument(doc, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateDocumentRejectsUnknownField(t *testing.T) {
	s := bookSchema(t)
	err := ValidateDocument(map[string]any{"subtitle": "extra"}, s)
	if err == nil {
		t.Fatal("expected an error for an unknown field")
	}
}

func TestValidateDocumentRejectsWrongLeafType(t *testing.T) {
	s := bookSchema(t)
	err := ValidateDocument(map[string]any{"title": 42}, s)
	if err == nil {
		t.Fatal("expected an error for a text field given a number")
	}
}

func TestValidateDocumentPropagatesNestedFailure(t *testing.T) {
	s := bookSchema(t)
	err := ValidateDocument(map[string]any{"author": map[string]any{"name": 5}}, s)
	if err == nil {
		t.Fatal("expected the nested validation failure to propagate")
	}
}

func TestValidateDocumentRejectsNonFiniteNumber(t *testing.T) {
	s := bookSchema(t)
	zero := 0.0
	err := ValidateDocument(map[string]any{"year": float64(1) / zero}, s)
	if err == nil {
		t.Fatal("expected an error for a non-finite number")
	}
}

func TestBuildIndicesCoversEveryLeaf(t *testing.T) {
	s := bookSchema(t)
	idx := BuildIndices(s)
	if len(idx.Text) != 2 || len(idx.Numeric) != 2 || len(idx.Boolean) != 1 {
		t.Fatalf("text=%d numeric=%d boolean=%d", len(idx.Text), len(idx.Numeric), len(idx.Boolean))
	}
	if _, ok := idx.Text["author.name"]; !ok {
		t.Fatal("expected a text index at author.name")
	}
}
