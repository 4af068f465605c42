package lyra

import (
	"testing"
)

func bookEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := Create(Config{
		Schema: map[string]any{
			"title":   "text",
			"year":    "number",
			"inStock": "boolean",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func mustInsert(t *testing.T, e *Engine, doc map[string]any) string {
	t.Helper()
	res, err := e.Insert(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return res.ID
}

func hasID(hits []map[string]any, id string, idsByTitle map[string]string) bool {
	for _, h := range hits {
		title, _ := h["title"].(string)
		if idsByTitle[title] == id {
			return true
		}
	}
	return false
}

func TestScenario1PlainTermMatchesBoth(t *testing.T) {
	e := bookEngine(t)
	idA := mustInsert(t, e, map[string]any{"title": "The Lyra Book", "year": 2022, "inStock": true})
	idB := mustInsert(t, e, map[string]any{"title": "Lyra Cookbook", "year": 2019, "inStock": false})

	res, err := e.Search(SearchParams{Term: "lyra"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Count != 2 || len(res.Hits) != 2 {
		t.Fatalf("got count=%d hits=%d", res.Count, len(res.Hits))
	}
	titles := map[string]string{"The Lyra Book": idA, "Lyra Cookbook": idB}
	if !hasID(res.Hits, idA, titles) || !hasID(res.Hits, idB, titles) {
		t.Fatalf("expected both ids in hits, got %v", res.Hits)
	}
}

func TestScenario2FuzzyTermMatchesBoth(t *testing.T) {
	e := bookEngine(t)
	mustInsert(t, e, map[string]any{"title": "The Lyra Book", "year": 2022, "inStock": true})
	mustInsert(t, e, map[string]any{"title": "Lyra Cookbook", "year": 2019, "inStock": false})

	res, err := e.Search(SearchParams{Term: "lira", Tolerance: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Hits) != 2 {
		t.Fatalf("got %d hits", len(res.Hits))
	}
}

func TestScenario3NumericWhereNarrowsToOne(t *testing.T) {
	e := bookEngine(t)
	mustInsert(t, e, map[string]any{"title": "The Lyra Book", "year": 2022, "inStock": true})
	mustInsert(t, e, map[string]any{"title": "Lyra Cookbook", "year": 2019, "inStock": false})

	res, err := e.Search(SearchParams{
		Term:  "lyra",
		Where: map[string]any{"year": map[string]any{">=": 2020}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Hits) != 1 || res.Hits[0]["title"] != "The Lyra Book" {
		t.Fatalf("got %v", res.Hits)
	}
}

func TestScenario4BooleanWhereNarrowsToOne(t *testing.T) {
	e := bookEngine(t)
	mustInsert(t, e, map[string]any{"title": "The Lyra Book", "year": 2022, "inStock": true})
	mustInsert(t, e, map[string]any{"title": "Lyra Cookbook", "year": 2019, "inStock": false})

	res, err := e.Search(SearchParams{
		Term:  "lyra",
		Where: map[string]any{"inStock": true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Hits) != 1 || res.Hits[0]["title"] != "The Lyra Book" {
		t.Fatalf("got %v", res.Hits)
	}
}

func TestScenario5Pagination(t *testing.T) {
	e := bookEngine(t)
	mustInsert(t, e, map[string]any{"title": "The Lyra Book", "year": 2022, "inStock": true})
	mustInsert(t, e, map[string]any{"title": "Lyra Cookbook", "year": 2019, "inStock": false})

	res, err := e.Search(SearchParams{Term: "lyra", Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Hits) != 1 {
		t.Fatalf("got %d hits", len(res.Hits))
	}
}

func TestScenario6DeleteRemovesFromSearch(t *testing.T) {
	e := bookEngine(t)
	idA := mustInsert(t, e, map[string]any{"title": "The Lyra Book", "year": 2022, "inStock": true})
	mustInsert(t, e, map[string]any{"title": "Lyra Cookbook", "year": 2019, "inStock": false})

	ok, err := e.Delete(idA)
	if err != nil || !ok {
		t.Fatalf("got ok=%v err=%v", ok, err)
	}

	res, err := e.Search(SearchParams{Term: "lyra"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Hits) != 1 || res.Hits[0]["title"] != "Lyra Cookbook" {
		t.Fatalf("got %v", res.Hits)
	}
}

func TestScenario7InsertWrongLeafTypeFails(t *testing.T) {
	e := bookEngine(t)
	_, err := e.Insert(map[string]any{"title": 42})
	if err == nil {
		t.Fatal("expected an error for a text field given a number")
	}
}

func TestScenario8MalformedWhereFails(t *testing.T) {
	e := bookEngine(t)
	_, err := e.Search(SearchParams{
		Where: map[string]any{"year": map[string]any{"<": 2020, ">": 2000}},
	})
	if err == nil {
		t.Fatal("expected an error for more than one comparison operator")
	}
}

func TestDeleteUnknownIDFails(t *testing.T) {
	e := bookEngine(t)
	_, err := e.Delete("does-not-exist")
	if err == nil {
		t.Fatal("expected an error for an unknown id")
	}
}

func TestStatsTracksDocumentCount(t *testing.T) {
	e := bookEngine(t)
	mustInsert(t, e, map[string]any{"title": "The Lyra Book", "year": 2022, "inStock": true})
	if got := e.Stats().DocumentCount; got != 1 {
		t.Fatalf("got %d", got)
	}
}
