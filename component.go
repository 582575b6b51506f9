package ecs

import (
	"reflect"
	"unsafe"
)

// ComponentInfo describes one registered component type: the entity id standing
// in for the type, and its per-instance payload size. size == 0 marks a tag.
type ComponentInfo struct {
	ID   EntityId
	Size uintptr
	typ  reflect.Type
}

// IsTag reports whether the component carries no per-entity data.
func (c ComponentInfo) IsTag() bool { return c.Size == 0 }

// componentRegistry is scoped to a single World (§9: "no process-global component
// numbering") so two Worlds never share component ids. Each registered type gets
// a lazily allocated singleton entity; that entity's id doubles as the component's
// storage key.
type componentRegistry struct {
	byType map[reflect.Type]ComponentInfo
	byID   map[EntityId]ComponentInfo
}

func newComponentRegistry() *componentRegistry {
	return &componentRegistry{
		byType: make(map[reflect.Type]ComponentInfo, 16),
		byID:   make(map[EntityId]ComponentInfo, 16),
	}
}

// registerType returns the ComponentInfo for T, allocating a fresh singleton
// component entity the first time T is seen in this World. Per the GLOSSARY
// ("a component... is also an entity in its own right"), its id is minted
// from the same EntityIndex as ordinary spawned entities — not a separate
// counter — so a component's id can never collide with an entity's, and it
// is placed in root like any other freshly spawned entity.
//
// Registration can happen lazily from a read (Has/Get/Target all resolve a
// type's id on first use), so the root-archetype placement half of it has to
// respect deferred mode exactly like World.Spawn does: the id is minted and
// its metadata recorded immediately (that part is bookkeeping, not a
// structural change a query could observe), but while deferDepth > 0 the
// actual push into root is queued instead of applied, so a query running
// mid-defer still sees the pre-defer world even if it's the very read that
// triggered this registration.
func registerType[T any](w *World) ComponentInfo {
	var zero T
	t := reflect.TypeOf(zero)
	r := w.components
	if info, ok := r.byType[t]; ok {
		return info
	}
	size := unsafe.Sizeof(zero)
	if t != nil && t.Kind() == reflect.Struct && size == 0 {
		size = 0
	}
	id := w.entities.allocate()
	info := ComponentInfo{ID: id, Size: size, typ: t}
	r.byType[t] = info
	r.byID[id] = info
	if w.deferDepth > 0 {
		w.cmdBuffer.append(command{kind: cmdSpawn, id: id})
	} else {
		w.placeInRoot(id)
	}
	return info
}

// lookupType returns the ComponentInfo for T without registering it.
func lookupType[T any](r *componentRegistry) (ComponentInfo, bool) {
	var zero T
	t := reflect.TypeOf(zero)
	info, ok := r.byType[t]
	return info, ok
}

// resolveType returns T's ComponentInfo, honoring WorldConfig.StrictRegistration
// (§7): under strict mode an unregistered type is a hard RegistrationError
// instead of being lazily registered on first use.
func resolveType[T any](w *World) ComponentInfo {
	if info, ok := lookupType[T](w.components); ok {
		return info
	}
	if w.config.StrictRegistration {
		panicOn(ErrRegistrationError, "component type used before RegisterComponent")
	}
	return registerType[T](w)
}

// registerExplicit caches a fully-formed ComponentInfo under its own id. Used
// for relationship pairs, whose payload type can't be derived from either
// half of the pair (the second half is usually a target entity, not a
// component type) and must instead be recorded at the point the pair's value
// type is known (SetPair/SetPairTag).
func (r *componentRegistry) registerExplicit(info ComponentInfo) {
	r.byID[info.ID] = info
}

// infoFor resolves a previously registered id to its ComponentInfo. Pairs
// registered via registerExplicit resolve directly; an unregistered pair
// falls back to the payload-bearing info of its second half if that half
// happens to itself be a sized component type (§4.1/§9's pair-payload-size
// rule), otherwise it's treated as a tag.
func (r *componentRegistry) infoFor(id EntityId) (ComponentInfo, bool) {
	if info, ok := r.byID[id]; ok {
		return info, true
	}
	if id.IsPair() {
		second := id.PairSecond()
		if info, ok := r.byID[second]; ok && !info.IsTag() {
			return ComponentInfo{ID: id, Size: info.Size, typ: info.typ}, true
		}
		return ComponentInfo{ID: id, Size: 0}, true
	}
	return ComponentInfo{}, false
}

// arrayFactory builds a fresh, zeroed backing array of the given component's Go
// type sized for one chunk's worth of slots, honoring the type registry's
// "array factory" contract from §6. Tags (size 0) get a nil column.
func (r *componentRegistry) arrayFactory(id EntityId, capacity int) unsafe.Pointer {
	info, ok := r.infoFor(id)
	if !ok || info.IsTag() {
		return nil
	}
	typ := info.typ
	if typ == nil {
		// A sized component with no recorded reflect.Type means the registry
		// is inconsistent; treat it as absent rather than risk a bad MakeSlice.
		return nil
	}
	slice := reflect.MakeSlice(reflect.SliceOf(typ), capacity, capacity)
	return slice.UnsafePointer()
}
