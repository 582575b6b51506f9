// Package ecs provides an archetype-based Entity-Component-System store: entities
// grouped by their exact component set into column-major chunks, with structural
// changes routed through a memoized archetype graph.
package ecs

import "fmt"

// EntityId is a 64-bit handle. It has two shapes, discriminated by pairFlag:
//
//	plain: [ reserved:15 | generation:16 | index:32 ] (pairFlag clear)
//	pair:  [ pairFlag:1 | reserved:7 | first:28 | second:28 ]
//
// A pair's halves are raw 28-bit indices, not full generation-checked handles —
// there's no bit budget left for generation once the flag and both halves are
// packed into 64 bits. Components are themselves entities: a ComponentID is
// just the plain EntityId of the singleton entity allocated for that type.
type EntityId uint64

const (
	pairFlag  = uint64(1) << 63
	indexBits = 32
	indexMask = uint64(1)<<indexBits - 1
	genShift  = indexBits
	genBits   = 16
	genMask   = uint64(1)<<genBits - 1

	pairHalfBits   = 28
	pairHalfMask   = uint64(1)<<pairHalfBits - 1
	pairFirstShift = pairHalfBits // second occupies the low 28 bits; 7 bits above first go unused
)

// Wildcard is a reserved id that matches either half of a pair during
// querying. Its value fills a pair half's entire 28-bit field (all ones), a
// value the EntityIndex's monotonic allocator is vanishingly unlikely to
// reach in practice, so no real entity index collides with it.
const Wildcard EntityId = EntityId(pairHalfMask)

// None is the zero EntityId; never a valid live handle.
const None EntityId = 0

// IdCodec is the stateless encode/decode surface for EntityId. It is kept as a
// set of free functions (no receiver state) so it can be used from any package
// concern — archetype signatures, the query matcher, and the command buffer all
// encode/decode ids the same way.

// NewPlainId packs an index and generation into a plain EntityId.
func NewPlainId(index uint32, generation uint16) EntityId {
	return EntityId(uint64(generation)<<genShift | uint64(index))
}

// Index returns the 32-bit index portion of a plain id.
func (e EntityId) Index() uint32 {
	return uint32(uint64(e) & indexMask)
}

// Generation returns the 16-bit generation portion of a plain id.
func (e EntityId) Generation() uint16 {
	return uint16((uint64(e) >> genShift) & genMask)
}

// WithGeneration returns e with its generation replaced by g. Only meaningful on
// plain ids.
func (e EntityId) WithGeneration(g uint16) EntityId {
	return NewPlainId(e.Index(), g)
}

// MakePair packs first and second into a pair id. Both halves are truncated to
// 28 bits (§3's pair layout has no room for a full generation-checked handle);
// callers pass either a component id, a plain entity id, or Wildcard — in every
// case it's the low 28 bits of the index that end up in the pair.
func MakePair(first, second EntityId) EntityId {
	f := uint64(first) & pairHalfMask
	s := uint64(second) & pairHalfMask
	return EntityId(pairFlag | f<<pairFirstShift | s)
}

// IsPair reports whether id was built by MakePair.
func (e EntityId) IsPair() bool {
	return uint64(e)&pairFlag != 0
}

// PairFirst returns the relationship-kind half of a pair id.
func (e EntityId) PairFirst() EntityId {
	return EntityId((uint64(e) >> pairFirstShift) & pairHalfMask)
}

// PairSecond returns the target half of a pair id.
func (e EntityId) PairSecond() EntityId {
	return EntityId(uint64(e) & pairHalfMask)
}

// IsWildcard reports whether id is the reserved Wildcard marker.
func (e EntityId) IsWildcard() bool {
	return e == Wildcard
}

// Matches reports whether id, used as a query term, is satisfied by candidate.
// Plain ids and plain candidates compare by equality. Pair terms additionally
// honor wildcard halves: a term (K, *) matches any pair whose first half is K, and
// symmetrically for (*, T). This is the one place wildcard semantics affect
// comparison — everywhere else EntityId ordering is purely numeric.
func (id EntityId) Matches(candidate EntityId) bool {
	if id == candidate {
		return true
	}
	if !id.IsPair() || !candidate.IsPair() {
		return false
	}
	firstMatch := id.PairFirst() == candidate.PairFirst() || id.PairFirst() == Wildcard || candidate.PairFirst() == Wildcard
	secondMatch := id.PairSecond() == candidate.PairSecond() || id.PairSecond() == Wildcard || candidate.PairSecond() == Wildcard
	return firstMatch && secondMatch
}

func (e EntityId) String() string {
	if e.IsPair() {
		return fmt.Sprintf("(%v,%v)", e.PairFirst(), e.PairSecond())
	}
	return fmt.Sprintf("#%d:g%d", e.Index(), e.Generation())
}

// Less gives EntityId a total order used to keep archetype signatures sorted.
// Numeric only; wildcard equality (see Matches) never participates in ordering.
func Less(a, b EntityId) bool {
	return uint64(a) < uint64(b)
}
