package numindex

import "testing"

func build() *Index {
	idx := New()
	values := map[float64]uint32{2019: 1, 2020: 2, 2022: 3, 2022.5: 4}
	for v, id := range values {
		idx.Insert(v, id)
	}
	return idx
}

func TestEqual(t *testing.T) {
	idx := build()
	got := idx.Query(Equal, 2020)
	if got.Len() != 1 || !got.Contains(2) {
		t.Fatalf("got %v", got.Slice())
	}
}

func TestOperators(t *testing.T) {
	idx := build()
	cases := []struct {
		op   Operator
		val  float64
		want []uint32
	}{
		{LessThan, 2020, []uint32{1}},
		{LessOrEqual, 2020, []uint32{1, 2}},
		{GreaterThan, 2020, []uint32{3, 4}},
		{GreaterOrEqual, 2022, []uint32{3, 4}},
	}
	for _, c := range cases {
		got := idx.Query(c.op, c.val).Slice()
		if len(got) != len(c.want) {
			t.Fatalf("op=%s val=%v got=%v want=%v", c.op, c.val, got, c.want)
		}
		want := make(map[uint32]bool)
		for _, w := range c.want {
			want[w] = true
		}
		for _, g := range got {
			if !want[g] {
				t.Fatalf("op=%s val=%v got unexpected id %d", c.op, c.val, g)
			}
		}
	}
}

func TestRemove(t *testing.T) {
	idx := build()
	if !idx.Remove(2020, 2) {
		t.Fatal("expected remove to succeed")
	}
	if idx.Query(Equal, 2020).Len() != 0 {
		t.Fatal("entry should be gone once its only id is removed")
	}
	if idx.Remove(2020, 2) {
		t.Fatal("second remove of the same id should report false")
	}
}
