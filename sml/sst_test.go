package sml

import "testing"

func TestSharedStringsIdempotence(t *testing.T) {
	sst := NewSharedStrings()

	first := sst.GetOrAdd("hello")
	second := sst.GetOrAdd("hello")
	if first != second {
		t.Errorf("same string got indices %d and %d", first, second)
	}
	if sst.UniqueCount() != 1 {
		t.Errorf("UniqueCount = %d, want 1", sst.UniqueCount())
	}
	if sst.Count() != 2 {
		t.Errorf("Count = %d, want 2", sst.Count())
	}
}

func TestSharedStringsOrderIsIndexOrder(t *testing.T) {
	sst := NewSharedStrings()
	words := []string{"zebra", "apple", "zebra", "mango", "apple", ""}

	indices := make([]int, len(words))
	for i, w := range words {
		indices[i] = sst.GetOrAdd(w)
	}

	want := []int{0, 1, 0, 2, 1, 3}
	for i := range want {
		if indices[i] != want[i] {
			t.Errorf("GetOrAdd(%q) = %d, want %d", words[i], indices[i], want[i])
		}
	}

	ordered := sst.Ordered()
	wantOrder := []string{"zebra", "apple", "mango", ""}
	if len(ordered) != len(wantOrder) {
		t.Fatalf("Ordered has %d entries, want %d", len(ordered), len(wantOrder))
	}
	for i, s := range wantOrder {
		if ordered[i] != s {
			t.Errorf("Ordered[%d] = %q, want %q", i, ordered[i], s)
		}
	}

	if sst.Count() != 6 || sst.UniqueCount() != 4 {
		t.Errorf("Count/UniqueCount = %d/%d, want 6/4", sst.Count(), sst.UniqueCount())
	}
}

func TestSharedStringsLookup(t *testing.T) {
	sst := NewSharedStrings()
	sst.GetOrAdd("present")

	if i, ok := sst.Lookup("present"); !ok || i != 0 {
		t.Errorf("Lookup(present) = %d, %v", i, ok)
	}
	if _, ok := sst.Lookup("missing"); ok {
		t.Error("Lookup should not insert")
	}
	if sst.Count() != 1 {
		t.Errorf("Lookup changed Count to %d", sst.Count())
	}
}
