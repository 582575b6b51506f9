package ecs

// entityRecord locates a live entity's row inside its archetype.
type entityRecord struct {
	archetype *archetype
	row       int
}

// entityIndex is a sparse-set-backed EntityId -> entityRecord map with
// generation-aware liveness: a slot's generation is bumped whenever its index is
// recycled, so a stale handle (same index, old generation) is rejected (§4.5).
type entityIndex struct {
	records    []entityRecord
	generation []uint16
	alive      []bool
	free       []uint32
	nextIndex  uint32
}

func newEntityIndex(initialCapacity int) *entityIndex {
	idx := &entityIndex{
		records:    make([]entityRecord, 0, initialCapacity),
		generation: make([]uint16, 0, initialCapacity),
		alive:      make([]bool, 0, initialCapacity),
		nextIndex:  1, // index 0 is None; Wildcard's index (2^28-1) is not reserved here
	}
	// reserve slot 0 so real entities never receive the None index
	idx.records = append(idx.records, entityRecord{})
	idx.generation = append(idx.generation, 0)
	idx.alive = append(idx.alive, false)
	return idx
}

func (idx *entityIndex) grow(upTo uint32) {
	for uint32(len(idx.records)) <= upTo {
		idx.records = append(idx.records, entityRecord{})
		idx.generation = append(idx.generation, 0)
		idx.alive = append(idx.alive, false)
	}
}

// allocate mints a fresh EntityId, recycling a free index (with incremented
// generation) when one is available.
func (idx *entityIndex) allocate() EntityId {
	var index uint32
	if n := len(idx.free); n > 0 {
		index = idx.free[n-1]
		idx.free = idx.free[:n-1]
	} else {
		index = idx.nextIndex
		idx.nextIndex++
		idx.grow(index)
	}
	gen := idx.generation[index]
	idx.alive[index] = true
	return NewPlainId(index, gen)
}

// allocateAt reserves a caller-chosen plain id explicitly (used by
// spawnWith). It reconciles the claimed index with the monotonic allocator
// the same way a recycle-then-grow allocate() would: if index is at or past
// nextIndex, nextIndex is advanced past it, and if index was sitting in the
// free list (released earlier, not yet reused), it's pulled out — otherwise
// a later allocate() could hand the same index out again, producing two
// live entities sharing one index.
func (idx *entityIndex) allocateAt(id EntityId) {
	index := id.Index()
	idx.grow(index)
	idx.generation[index] = id.Generation()
	idx.alive[index] = true
	if index >= idx.nextIndex {
		idx.nextIndex = index + 1
	}
	idx.removeFree(index)
}

// removeFree deletes index from the free list if present.
func (idx *entityIndex) removeFree(index uint32) {
	for i, f := range idx.free {
		if f == index {
			idx.free[i] = idx.free[len(idx.free)-1]
			idx.free = idx.free[:len(idx.free)-1]
			return
		}
	}
}

func (idx *entityIndex) isAlive(id EntityId) bool {
	index := id.Index()
	if int(index) >= len(idx.alive) {
		return false
	}
	return idx.alive[index] && idx.generation[index] == id.Generation()
}

func (idx *entityIndex) get(id EntityId) (entityRecord, bool) {
	if !idx.isAlive(id) {
		return entityRecord{}, false
	}
	return idx.records[id.Index()], true
}

func (idx *entityIndex) set(id EntityId, rec entityRecord) {
	idx.records[id.Index()] = rec
}

// release marks id's index dead and bumps its generation so stale handles fail
// isAlive, then returns the index to the free pool for reuse.
func (idx *entityIndex) release(id EntityId) {
	index := id.Index()
	idx.alive[index] = false
	idx.generation[index]++
	idx.records[index] = entityRecord{}
	idx.free = append(idx.free, index)
}
