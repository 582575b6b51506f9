package ecs

import (
	"unsafe"

	"go.uber.org/zap"
)

// DoNotDelete is a tag component. Destroy on an entity carrying it is a hard
// error (§4.6).
type DoNotDelete struct{}

// getOrCreateArchetype canonicalizes sig to its archetype, building a fresh one
// (and wiring its graph edges) if no archetype with that exact signature exists
// yet (§4.3/§4.4). sig must already be sorted.
func (w *World) getOrCreateArchetype(sig []ComponentInfo) *archetype {
	h := hashSignature(sig)
	if a := w.types.find(h, sig); a != nil {
		return a
	}
	a := newArchetype(sig, w.config.ChunkCapacity, len(w.archetypes))
	w.archetypes = append(w.archetypes, a)
	w.types.insert(a)
	w.linkArchetype(a)
	if w.logger != nil {
		w.logger.Debug("archetype created", zap.Int("count", len(w.archetypes)))
	}
	return a
}

// linkArchetype wires bidirectional single-component-delta edges between n and
// every existing archetype whose signature differs from n's by exactly one
// component (§4.3's graph-insertion algorithm).
func (w *World) linkArchetype(n *archetype) {
	for _, other := range w.archetypes {
		if other == n {
			continue
		}
		if len(other.signature)+1 == len(n.signature) {
			if added, ok := singleDelta(other.signature, n.signature); ok {
				other.edgesAdd[added] = n
				n.edgesRemove[added] = other
			}
		} else if len(n.signature)+1 == len(other.signature) {
			if added, ok := singleDelta(n.signature, other.signature); ok {
				n.edgesAdd[added] = other
				other.edgesRemove[added] = n
			}
		}
	}
}

// singleDelta reports whether bigger is exactly smaller plus one component,
// returning that component.
func singleDelta(smaller, bigger []ComponentInfo) (EntityId, bool) {
	i, j := 0, 0
	var extra EntityId
	found := false
	for i < len(smaller) && j < len(bigger) {
		if smaller[i].ID == bigger[j].ID {
			i++
			j++
			continue
		}
		if found {
			return None, false
		}
		extra = bigger[j].ID
		found = true
		j++
	}
	for j < len(bigger) {
		if found {
			return None, false
		}
		extra = bigger[j].ID
		found = true
		j++
	}
	return extra, found && i == len(smaller)
}

// spawn allocates a fresh entity in the root archetype.
func (w *World) spawn() EntityId {
	id := w.entities.allocate()
	row := w.root.push(id, w.components)
	w.entities.set(id, entityRecord{archetype: w.root, row: row})
	return id
}

// spawnWith allocates at an explicit, caller-chosen plain id. It is an error if
// that id is already live.
func (w *World) spawnWith(id EntityId) {
	if w.entities.isAlive(id) {
		panicOn(ErrDeadEntity, "spawnWith: id already live")
	}
	w.entities.allocateAt(id)
	w.placeInRoot(id)
}

// placeInRoot pushes an already-allocated-but-unplaced id into the root
// archetype. Used both by the direct spawn path and by Merge when
// materializing a deferred Spawn's id (§4.8): the id itself was minted
// up front so callers' handles never need remapping; only its archetype
// placement is deferred.
func (w *World) placeInRoot(id EntityId) {
	row := w.root.push(id, w.components)
	w.entities.set(id, entityRecord{archetype: w.root, row: row})
}

// destroy cascades to every entity related to e via (Wildcard,e) or (e,Wildcard)
// pairs, then removes e itself (§4.6).
func (w *World) destroy(e EntityId) {
	rec, ok := w.entities.get(e)
	if !ok {
		panicOn(ErrDeadEntity, "destroy: entity not alive")
	}
	if rec.archetype.has(doNotDeleteID(w)) {
		panicOn(ErrProtectedEntity, "destroy: entity is protected")
	}
	for _, related := range w.relatedEntities(e) {
		if related == e || !w.entities.isAlive(related) {
			continue
		}
		w.destroy(related)
	}
	w.hooks.fireDestroyed(e)
	rec, _ = w.entities.get(e)
	w.removeRow(rec.archetype, rec.row)
	w.entities.release(e)
}

func doNotDeleteID(w *World) EntityId {
	return registerType[DoNotDelete](w).ID
}

// relatedEntities collects every live entity that shares a ChildOf-style pair
// with e on either side: (Wildcard, e) and (e, Wildcard).
func (w *World) relatedEntities(e EntityId) []EntityId {
	var out []EntityId
	// Pair halves keep only the low 28 bits of an id (no generation), so e is
	// compared in that same truncated form.
	half := EntityId(uint64(e) & pairHalfMask)
	for _, a := range w.archetypes {
		for _, c := range a.signature {
			if !c.ID.IsPair() {
				continue
			}
			if c.ID.PairSecond() == half || c.ID.PairFirst() == half {
				a.forEachEntity(func(id EntityId) bool {
					out = append(out, id)
					return true
				})
				break
			}
		}
	}
	return out
}

// removeRow deletes the row from its archetype, patching the EntityIndex entry
// of whatever entity got swapped into that row (invariant 5, §3).
func (w *World) removeRow(a *archetype, row int) {
	moved := a.swapRemoveRow(row)
	if moved != None {
		w.entities.set(moved, entityRecord{archetype: a, row: row})
	}
}

// withComponent returns (and caches via the archetype graph) the archetype
// reached from a by adding comp.
func (w *World) withComponent(a *archetype, comp ComponentInfo) *archetype {
	if next, ok := a.edgesAdd[comp.ID]; ok {
		return next
	}
	newSig := sortedInsert(a.signature, comp)
	next := w.getOrCreateArchetype(newSig)
	a.edgesAdd[comp.ID] = next
	next.edgesRemove[comp.ID] = a
	return next
}

// withoutComponent returns the archetype reached from a by removing id.
func (w *World) withoutComponent(a *archetype, id EntityId) *archetype {
	if next, ok := a.edgesRemove[id]; ok {
		return next
	}
	newSig := sortedRemove(a.signature, id)
	next := w.getOrCreateArchetype(newSig)
	a.edgesRemove[id] = next
	next.edgesAdd[id] = a
	return next
}

// migrate moves the entity at from.row from archetype from to archetype to,
// copying every component in the intersection of their signatures (invariant
// 6, §3) via a two-pointer merge over the sorted signatures.
func (w *World) migrate(e EntityId, from *archetype, fromRow int, to *archetype) int {
	toRow := to.push(e, w.components)
	i, j := 0, 0
	for i < len(from.signature) && j < len(to.signature) {
		fc, tc := from.signature[i], to.signature[j]
		switch {
		case fc.ID == tc.ID:
			if fc.Size > 0 {
				copyComponent(from, fromRow, i, to, toRow, j, fc.Size)
			}
			i++
			j++
		case Less(fc.ID, tc.ID):
			i++
		default:
			j++
		}
	}
	w.removeRow(from, fromRow)
	w.entities.set(e, entityRecord{archetype: to, row: toRow})
	return toRow
}

func copyComponent(from *archetype, fromRow, fromCol int, to *archetype, toRow, toCol int, size uintptr) {
	fc, fs := from.rowToChunkSlot(fromRow)
	tc, ts := to.rowToChunkSlot(toRow)
	src := from.chunks[fc].columnElem(fromCol, fs, size)
	dst := to.chunks[tc].columnElem(toCol, ts, size)
	if src == nil || dst == nil {
		return
	}
	copyBytes(dst, src, size)
}

// setComponent ensures e's archetype contains comp (migrating if needed) and
// copies value into the component's storage slot. value may be nil for tags.
func (w *World) setComponent(e EntityId, comp ComponentInfo, value unsafe.Pointer) {
	rec, ok := w.entities.get(e)
	if !ok {
		panicOn(ErrDeadEntity, "set: entity not alive")
	}
	a := rec.archetype
	row := rec.row
	if !a.has(comp.ID) {
		next := w.withComponent(a, comp)
		row = w.migrate(e, a, row, next)
		a = next
	}
	if comp.Size > 0 && value != nil {
		col := a.columnIndex(comp.ID)
		cIdx, slot := a.rowToChunkSlot(row)
		dst := a.chunks[cIdx].columnElem(col, slot, comp.Size)
		copyBytes(dst, value, comp.Size)
	}
	w.hooks.fireSet(e, comp.ID)
}

// unsetComponent migrates e to the archetype without id. A no-op if e did not
// have id (§4.6).
func (w *World) unsetComponent(e EntityId, id EntityId) {
	rec, ok := w.entities.get(e)
	if !ok {
		panicOn(ErrDeadEntity, "unset: entity not alive")
	}
	a := rec.archetype
	if !a.has(id) {
		return
	}
	next := w.withoutComponent(a, id)
	w.migrate(e, a, rec.row, next)
	w.hooks.fireUnset(e, id)
}

func (w *World) hasComponent(e EntityId, id EntityId) bool {
	rec, ok := w.entities.get(e)
	if !ok {
		panicOn(ErrDeadEntity, "has: entity not alive")
	}
	if rec.archetype == nil {
		// id was minted by a deferred Spawn not yet merged into an archetype.
		return false
	}
	return rec.archetype.has(id)
}

// getComponent returns a pointer to id's storage slot on e, or nil if absent.
func (w *World) getComponent(e EntityId, id EntityId) unsafe.Pointer {
	rec, ok := w.entities.get(e)
	if !ok {
		panicOn(ErrDeadEntity, "get: entity not alive")
	}
	if rec.archetype == nil {
		return nil
	}
	a := rec.archetype
	col := a.columnIndex(id)
	if col < 0 {
		return nil
	}
	size := a.signature[col].Size
	if size == 0 {
		return nil
	}
	cIdx, slot := a.rowToChunkSlot(rec.row)
	return a.chunks[cIdx].columnElem(col, slot, size)
}

// target returns the n-th matching pair target for relationship kind k on e, in
// signature order (§4.7).
func (w *World) target(e EntityId, k EntityId, n int) EntityId {
	rec, ok := w.entities.get(e)
	if !ok {
		panicOn(ErrDeadEntity, "target: entity not alive")
	}
	seen := 0
	for _, c := range rec.archetype.signature {
		if c.ID.IsPair() && c.ID.PairFirst() == k {
			if seen == n {
				return c.ID.PairSecond()
			}
			seen++
		}
	}
	return None
}
