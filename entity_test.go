package ecs

import "testing"

// TestPairEncodingRoundTrip covers the common case: a pair's halves round-trip
// exactly when their source ids have generation 0 and fit in 28 bits — the
// only case a pair can represent losslessly, since §3's pair layout has no
// room for a generation field (see TestPairTruncatesGeneration).
func TestPairEncodingRoundTrip(t *testing.T) {
	first := NewPlainId(7, 0)
	second := NewPlainId(9, 0)
	pair := MakePair(first, second)

	if !pair.IsPair() {
		t.Fatal("expected pair flag set")
	}
	if pair.PairFirst() != first {
		t.Errorf("PairFirst = %v, want %v", pair.PairFirst(), first)
	}
	if pair.PairSecond() != second {
		t.Errorf("PairSecond = %v, want %v", pair.PairSecond(), second)
	}
}

// TestPairTruncatesGeneration documents §3's pair layout limitation: a pair
// half only keeps the low 28 bits of whatever id it's given, so a target
// with a nonzero generation (a recycled index) loses that generation once
// packed into a pair — PairSecond reconstructs it as generation 0.
func TestPairTruncatesGeneration(t *testing.T) {
	recycled := NewPlainId(9, 3)
	pair := MakePair(NewPlainId(1, 0), recycled)
	if got := pair.PairSecond(); got != NewPlainId(9, 0) {
		t.Fatalf("PairSecond() = %v, want %v (generation dropped)", got, NewPlainId(9, 0))
	}
}

func TestWildcardMatchesEitherHalf(t *testing.T) {
	relationship := NewPlainId(3, 0)
	targetA := NewPlainId(10, 0)
	targetB := NewPlainId(11, 0)

	term := MakePair(relationship, Wildcard)
	candidateA := MakePair(relationship, targetA)
	candidateB := MakePair(relationship, targetB)
	unrelated := MakePair(NewPlainId(4, 0), targetA)

	if !term.Matches(candidateA) {
		t.Error("(K,*) should match (K,A)")
	}
	if !term.Matches(candidateB) {
		t.Error("(K,*) should match (K,B)")
	}
	if term.Matches(unrelated) {
		t.Error("(K,*) should not match a pair with a different first half")
	}
}

func TestPlainIdGenerationRoundTrip(t *testing.T) {
	id := NewPlainId(42, 5)
	if id.Index() != 42 {
		t.Errorf("Index = %d, want 42", id.Index())
	}
	if id.Generation() != 5 {
		t.Errorf("Generation = %d, want 5", id.Generation())
	}
	bumped := id.WithGeneration(6)
	if bumped.Index() != 42 || bumped.Generation() != 6 {
		t.Errorf("WithGeneration produced %v", bumped)
	}
}
