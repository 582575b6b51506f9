package ecs

// signatureHash is a rolling, XOR-based hash over a sorted component-id
// signature. XOR is its own inverse, so hash(S ∪ {c}) == hash(S) ^ componentHash(c)
// and hash(S \ {c}) == hash(S) ^ componentHash(c) as well — both add and remove
// are the same operation, letting the archetype graph compute a neighbor's hash
// without materializing its signature first (§4.4).
type signatureHash uint64

// componentHash spreads an EntityId's bits with a splitmix64-style finalizer so
// that neighboring component ids (which are often sequential, since they're
// allocated from a monotonic counter) don't collide in the low bits.
func componentHash(id EntityId) signatureHash {
	x := uint64(id)
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return signatureHash(x)
}

func hashSignature(sig []ComponentInfo) signatureHash {
	var h signatureHash
	for _, c := range sig {
		h ^= componentHash(c.ID)
	}
	return h
}

// typeIndex canonicalizes signatures to archetypes: exactly one archetype exists
// per distinct signature (invariant 1, §3). Collisions on the rolling hash are
// resolved by an explicit signature compare.
type typeIndex struct {
	buckets map[signatureHash][]*archetype
}

func newTypeIndex() *typeIndex {
	return &typeIndex{buckets: make(map[signatureHash][]*archetype)}
}

func (t *typeIndex) find(hash signatureHash, sig []ComponentInfo) *archetype {
	for _, a := range t.buckets[hash] {
		if signaturesEqual(a.signature, sig) {
			return a
		}
	}
	return nil
}

func (t *typeIndex) insert(a *archetype) {
	h := hashSignature(a.signature)
	a.hash = h
	t.buckets[h] = append(t.buckets[h], a)
}

func signaturesEqual(a, b []ComponentInfo) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
