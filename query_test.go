package ecs

import "testing"

// TestQueryStabilityAcrossRepeatedIteration covers S5: iterating the same
// query twice with no intervening structural change yields the same order.
func TestQueryStabilityAcrossRepeatedIteration(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	for i := 0; i < 10; i++ {
		e := w.Spawn()
		Set(w, e, Position{X: float64(i)})
	}

	q := NewQuery1[Position](w)
	var first, second []EntityId
	for q.Next() {
		first = append(first, q.Entity())
	}
	q.Reset()
	for q.Next() {
		second = append(second, q.Entity())
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("order differs at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

// TestQueryWithoutExcludesMatchingArchetypes covers the Without operator.
func TestQueryWithoutExcludesMatchingArchetypes(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	withVel := w.Spawn()
	Set(w, withVel, Position{})
	Set(w, withVel, Velocity{})

	withoutVel := w.Spawn()
	Set(w, withoutVel, Position{})

	velID := ComponentIDOf[Velocity](w)
	q := NewQuery(w, WithTerm(ComponentIDOf[Position](w)), WithoutTerm(velID))

	var matched []EntityId
	for q.Next() {
		matched = append(matched, q.Entity())
	}
	if len(matched) != 1 || matched[0] != withoutVel {
		t.Fatalf("expected only %v, got %v", withoutVel, matched)
	}
}

// TestQueryExtendsCacheAsArchetypesGrow exercises the matcher's caching
// policy (§4.7): a query resolved before a new matching archetype exists
// picks it up on Reset without re-scanning from scratch.
func TestQueryExtendsCacheAsArchetypesGrow(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	e1 := w.Spawn()
	Set(w, e1, Position{})

	q := NewQuery1[Position](w)
	count := 0
	for q.Next() {
		count++
	}
	if count != 1 {
		t.Fatalf("expected 1 match before new archetype, got %d", count)
	}

	e2 := w.Spawn()
	Set(w, e2, Position{})
	Set(w, e2, Velocity{}) // new archetype: {Position, Velocity}

	q.Reset()
	count = 0
	for q.Next() {
		count++
	}
	if count != 2 {
		t.Fatalf("expected 2 matches after new archetype appeared, got %d", count)
	}
}

// TestQuery2TypedAccessors exercises the hand-written arity-2 query wrapper.
func TestQuery2TypedAccessors(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	e := w.Spawn()
	Set(w, e, Position{X: 1, Y: 2})
	Set(w, e, Velocity{X: 3, Y: 4})

	q := NewQuery2[Position, Velocity](w)
	if !q.Next() {
		t.Fatal("expected one match")
	}
	pos, vel := q.A(), q.B()
	if pos.X != 1 || vel.X != 3 {
		t.Fatalf("unexpected values pos=%+v vel=%+v", pos, vel)
	}
}
