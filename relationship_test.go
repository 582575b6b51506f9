package ecs

import "testing"

// TestCascadingDestroyViaChildOf covers S3: destroying a parent destroys every
// entity linked to it via (ChildOf, parent).
func TestCascadingDestroyViaChildOf(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	parent := w.Spawn()
	child1 := w.Spawn()
	child2 := w.Spawn()
	SetPairTag[ChildOf](w, child1, parent)
	SetPairTag[ChildOf](w, child2, parent)

	w.Destroy(parent)

	if w.IsAlive(parent) || w.IsAlive(child1) || w.IsAlive(child2) {
		t.Fatal("parent and both children should be destroyed")
	}
}

// TestWildcardQueryMatchesAnyTarget covers the wildcard half of S3: a query for
// (ChildOf, *) matches entities regardless of their specific target.
func TestWildcardQueryMatchesAnyTarget(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	parentA := w.Spawn()
	parentB := w.Spawn()
	childOfA := w.Spawn()
	childOfB := w.Spawn()
	SetPairTag[ChildOf](w, childOfA, parentA)
	SetPairTag[ChildOf](w, childOfB, parentB)

	childOfID := ComponentIDOf[ChildOf](w)
	term := WithTerm(MakePair(childOfID, Wildcard))
	q := NewQuery(w, term)

	seen := map[EntityId]bool{}
	for q.Next() {
		seen[q.Entity()] = true
	}
	if !seen[childOfA] || !seen[childOfB] {
		t.Fatalf("expected both children matched, got %v", seen)
	}
}

// TestTargetReturnsNthMatch covers §4.7's Target(e,K,n).
func TestTargetReturnsNthMatch(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	a := w.Spawn()
	b := w.Spawn()
	e := w.Spawn()
	SetPairTag[ChildOf](w, e, a)

	if got := Target[ChildOf](w, e, 0); got != a {
		t.Fatalf("Target(0) = %v, want %v", got, a)
	}
	if got := Target[ChildOf](w, e, 1); got != None {
		t.Fatalf("Target(1) should be None, got %v", got)
	}
	_ = b
}

// TestSetPairWithPayload covers SetPair on a relationship pair whose second
// half is a target entity: the pair carries the payload of type V passed to
// SetPair and stores its value.
type Damage struct{ Amount int }

type DealsDamageTo struct{}

func TestSetPairWithPayload(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	attacker := w.Spawn()
	victim := w.Spawn()
	SetPair[DealsDamageTo, Damage](w, attacker, victim, Damage{Amount: 10})

	relID := ComponentIDOf[DealsDamageTo](w)
	pairID := MakePair(relID, victim)
	got := w.getComponent(attacker, pairID)
	if got == nil {
		t.Fatal("expected pair component present")
	}
	if dmg := (*Damage)(got); dmg.Amount != 10 {
		t.Fatalf("pair payload = %+v, want Amount 10", dmg)
	}
}
