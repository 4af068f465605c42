package docstore

import "testing"

func TestAllocateAndLookup(t *testing.T) {
	s := New()
	ordinal := s.Allocate("doc-a")
	s.Put(ordinal, map[string]any{"title": "hello"})

	got, ok := s.Get(ordinal)
	if !ok || got["title"] != "hello" {
		t.Fatalf("got %v ok=%v", got, ok)
	}
	if o, ok := s.OrdinalFor("doc-a"); !ok || o != ordinal {
		t.Fatalf("got ordinal=%d ok=%v", o, ok)
	}
	if id, ok := s.IDFor(ordinal); !ok || id != "doc-a" {
		t.Fatalf("got id=%q ok=%v", id, ok)
	}
}

func TestAllocateIsDense(t *testing.T) {
	s := New()
	a := s.Allocate("a")
	b := s.Allocate("b")
	if b != a+1 {
		t.Fatalf("expected dense ordinals, got %d then %d", a, b)
	}
}

func TestDeleteRemovesBothMappings(t *testing.T) {
	s := New()
	ordinal := s.Allocate("doc-a")
	s.Put(ordinal, map[string]any{"title": "hello"})
	s.Delete(ordinal, "doc-a")

	if _, ok := s.Get(ordinal); ok {
		t.Fatal("expected document to be gone")
	}
	if _, ok := s.OrdinalFor("doc-a"); ok {
		t.Fatal("expected id mapping to be gone")
	}
	if _, ok := s.IDFor(ordinal); ok {
		t.Fatal("expected ordinal mapping to be gone")
	}
}

func TestTermFrequencyRoundTrip(t *testing.T) {
	s := New()
	tokens := map[string]struct{}{"lyra": {}, "book": {}}
	s.RecordTermFrequency("title", tokens)
	s.RecordTermFrequency("title", tokens)

	stats := s.TermStats("title")
	if stats["lyra"] != 2 || stats["book"] != 2 {
		t.Fatalf("got %v", stats)
	}

	s.ForgetTermFrequency("title", tokens)
	stats = s.TermStats("title")
	if stats["lyra"] != 1 || stats["book"] != 1 {
		t.Fatalf("got %v", stats)
	}
}

func TestCount(t *testing.T) {
	s := New()
	if s.Count() != 0 {
		t.Fatal("expected 0")
	}
	ordinal := s.Allocate("a")
	s.Put(ordinal, map[string]any{})
	if s.Count() != 1 {
		t.Fatal("expected 1")
	}
}
