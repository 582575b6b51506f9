package ecs

// TermOp is the operator a Term applies to its id when matching an archetype.
type TermOp int

const (
	With TermOp = iota
	Without
	Optional
	Or
)

// Term is one clause of a query: an id plus how it constrains matching
// archetypes (§4.7). An Or term carries its own disjunctive group instead of a
// single id.
type Term struct {
	ID    EntityId
	Op    TermOp
	Group []EntityId // only meaningful when Op == Or
}

// WithTerm builds a required-present term, honoring wildcard pair ids.
func WithTerm(id EntityId) Term { return Term{ID: id, Op: With} }

// WithoutTerm builds a required-absent term.
func WithoutTerm(id EntityId) Term { return Term{ID: id, Op: Without} }

// OptionalTerm builds a term that never excludes an archetype but whose
// presence is surfaced at iteration time.
func OptionalTerm(id EntityId) Term { return Term{ID: id, Op: Optional} }

// OrTerm builds a term satisfied if any id in group is present.
func OrTerm(group ...EntityId) Term { return Term{Op: Or, Group: group} }

// matchArchetype applies the §4.7 matching policy to a by checking each term
// against a's signature in turn, returning 0 (match), 1 (miss), or -1 (reject).
func matchArchetype(a *archetype, terms []Term) int {
	missed := false
	for _, t := range terms {
		switch t.Op {
		case With:
			if !signatureContains(a, t.ID) {
				missed = true
			}
		case Without:
			if signatureContains(a, t.ID) {
				return -1
			}
		case Optional:
			// no constraint
		case Or:
			ok := false
			for _, id := range t.Group {
				if signatureContains(a, id) {
					ok = true
					break
				}
			}
			if !ok {
				missed = true
			}
		}
	}
	if missed {
		return 1
	}
	return 0
}

// signatureContains reports whether a's signature satisfies id, honoring
// wildcard pair matching (§4.7): (K,*) matches any pair whose first half is K,
// and symmetrically for (*,T).
func signatureContains(a *archetype, id EntityId) bool {
	if !id.IsPair() || (id.PairFirst() != Wildcard && id.PairSecond() != Wildcard) {
		_, ok := a.lookup[id]
		return ok
	}
	for _, c := range a.signature {
		if c.ID.IsPair() && id.Matches(c.ID) {
			return true
		}
	}
	return false
}
