package boolindex

import "testing"

func TestInsertQuery(t *testing.T) {
	idx := New()
	idx.Insert(true, 1)
	idx.Insert(true, 2)
	idx.Insert(false, 3)

	trueSet := idx.Query(true)
	if trueSet.Len() != 2 || !trueSet.Contains(1) || !trueSet.Contains(2) {
		t.Fatalf("got %v", trueSet.Slice())
	}
	falseSet := idx.Query(false)
	if falseSet.Len() != 1 || !falseSet.Contains(3) {
		t.Fatalf("got %v", falseSet.Slice())
	}
}

func TestRemove(t *testing.T) {
	idx := New()
	idx.Insert(true, 1)
	if !idx.Remove(true, 1) {
		t.Fatal("expected remove to succeed")
	}
	if idx.Query(true).Len() != 0 {
		t.Fatal("expected true set to be empty")
	}
	if idx.Remove(true, 1) {
		t.Fatal("second remove of the same id should report false")
	}
}

func TestQueryReturnsIndependentClone(t *testing.T) {
	idx := New()
	idx.Insert(true, 1)
	got := idx.Query(true)
	got.Add(99)
	if idx.Query(true).Contains(99) {
		t.Fatal("mutating the returned set should not affect the index")
	}
}
