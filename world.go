package ecs

import (
	"unsafe"

	"go.uber.org/zap"
)

// ChildOf is the conventional relationship kind used by cascading Destroy
// (§4.6): destroying a parent destroys every entity holding (ChildOf, parent).
type ChildOf struct{}

// World owns every collaborator described by §2: the component registry, the
// entity index, the archetype graph (with its type index for canonicalization),
// the query matcher's cache, the deferred command buffer, the hook bus, and the
// event bus. All structural mutation is routed through its methods — direct
// manipulation of archetypes from outside this package is not possible, since
// archetype itself is unexported.
type World struct {
	config     WorldConfig
	components *componentRegistry
	entities   *entityIndex
	archetypes []*archetype
	types      *typeIndex
	root       *archetype
	queries    *queryMatcher
	hooks      hookBus
	events     *EventBus

	deferDepth int
	cmdBuffer  *commandBuffer

	logger    *zap.Logger
	mergeSink func(DeferredMergeFailure)
}

// NewWorld builds a World from cfg. Pass DefaultWorldConfig() for the teacher's
// defaults.
func NewWorld(cfg WorldConfig) *World {
	if cfg.ChunkCapacity <= 0 {
		cfg.ChunkCapacity = DefaultChunkCapacity
	}
	if cfg.MaxDeferredProducers <= 0 {
		cfg.MaxDeferredProducers = 16
	}
	w := &World{
		config:     cfg,
		components: newComponentRegistry(),
		entities:   newEntityIndex(cfg.InitialEntityCapacity),
		types:      newTypeIndex(),
		events:     &EventBus{},
		cmdBuffer:  newCommandBuffer(cfg.MaxDeferredProducers),
		logger:     zap.NewNop(),
	}
	w.queries = newQueryMatcher(w)
	w.root = w.getOrCreateArchetype(nil)
	return w
}

// SetLogger injects a structured logger used for internal diagnostics
// (archetype growth, deferred-merge failures with no sink). Defaults to a
// no-op logger so the library stays silent until a host wires one in (§2.1).
func (w *World) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	w.logger = l
}

// SetMergeSink registers the diagnostic callback invoked per failed deferred
// op at Merge time (§7). Replaces any previously set sink.
func (w *World) SetMergeSink(fn func(DeferredMergeFailure)) {
	w.mergeSink = fn
}

// Events returns the world's generic publish/subscribe channel (§6), used
// for application-level events that have nothing to do with structural
// changes — OnComponentSet/OnEntityUnset/OnEntityDestroyed (hooks.go) cover
// the structural-hook contract; this is the decoupled multi-subscriber
// channel DeferredMergeFailure is broadcast on (see reportMergeFailure), and
// the same channel a host can use for its own event types.
func (w *World) Events() *EventBus { return w.events }

// IsAlive reports whether e currently identifies a live entity.
func (w *World) IsAlive(e EntityId) bool { return w.entities.isAlive(e) }

// Spawn allocates a fresh entity with no components, in root. While deferred,
// the id is minted immediately but only placed into the root archetype at
// Merge time — so the returned handle is valid for later ops in the same
// batch without remapping, while queries still see the pre-defer world (the
// id has no archetype row yet).
func (w *World) Spawn() EntityId {
	if w.deferDepth > 0 {
		id := w.entities.allocate()
		w.cmdBuffer.append(command{kind: cmdSpawn, id: id})
		return id
	}
	return w.spawn()
}

// SpawnWith allocates at an explicit plain id. Hard error if already live.
func (w *World) SpawnWith(id EntityId) {
	if w.deferDepth > 0 {
		w.cmdBuffer.append(command{kind: cmdSpawnWith, id: id})
		return
	}
	w.spawnWith(id)
}

// Destroy cascades through ChildOf-style relationships and removes e.
func (w *World) Destroy(e EntityId) {
	if w.deferDepth > 0 {
		w.cmdBuffer.append(command{kind: cmdDestroy, id: e})
		return
	}
	w.destroy(e)
}

// RegisterComponent explicitly registers T's component type, returning its
// id. Required before T's first use when WorldConfig.StrictRegistration is
// set; a no-op (beyond returning the id) otherwise, since every other entry
// point registers lazily on first use.
func RegisterComponent[T any](w *World) EntityId {
	return registerType[T](w).ID
}

// ComponentIDOf returns T's component id, scoped to w (§9: per-World type
// registration), honoring WorldConfig.StrictRegistration.
func ComponentIDOf[T any](w *World) EntityId {
	return resolveType[T](w).ID
}

// Set writes value as component T on e, migrating e's archetype if needed.
func Set[T any](w *World, e EntityId, value T) {
	info := resolveType[T](w)
	w.setValue(e, info, unsafe.Pointer(&value))
}

// SetPair writes value as the payload of relationship pair (K, target) on e.
// If V is a zero-size tag, the pair itself becomes a tag. Under
// WorldConfig.StrictPairs, target must already be alive.
func SetPair[K, V any](w *World, e EntityId, target EntityId, value V) {
	w.checkPairTarget(target)
	kID := resolveType[K](w)
	vInfo := resolveType[V](w)
	pairID := MakePair(kID.ID, target)
	info := ComponentInfo{ID: pairID, Size: vInfo.Size, typ: vInfo.typ}
	w.components.registerExplicit(info)
	w.setValue(e, info, unsafe.Pointer(&value))
}

// SetTag attaches tag type T (a zero-size marker component) to e.
func SetTag[T any](w *World, e EntityId) {
	info := resolveType[T](w)
	w.setValue(e, info, nil)
}

// SetPairTag attaches the relationship pair (K, target) as a tag to e — used
// for ChildOf-style links that carry no payload. Under
// WorldConfig.StrictPairs, target must already be alive.
func SetPairTag[K any](w *World, e EntityId, target EntityId) {
	w.checkPairTarget(target)
	kID := resolveType[K](w)
	info := ComponentInfo{ID: MakePair(kID.ID, target), Size: 0}
	w.components.registerExplicit(info)
	w.setValue(e, info, nil)
}

// checkPairTarget enforces §4.10's strict-pairs edge case: a pair whose target
// is not alive is a hard error under WorldConfig.StrictPairs, and silently
// permitted otherwise (e.g. to let relationships be wired up before both
// ends exist).
func (w *World) checkPairTarget(target EntityId) {
	if w.config.StrictPairs && target != Wildcard && !w.entities.isAlive(target) {
		panicOn(ErrDeadEntity, "pair target is not alive (strict pairs)")
	}
}

func (w *World) setValue(e EntityId, info ComponentInfo, valuePtr unsafe.Pointer) {
	if w.deferDepth > 0 {
		var copied unsafe.Pointer
		if valuePtr != nil && info.Size > 0 {
			buf := make([]byte, info.Size)
			copyBytes(unsafe.Pointer(&buf[0]), valuePtr, info.Size)
			copied = unsafe.Pointer(&buf[0])
		}
		w.cmdBuffer.append(command{kind: cmdSet, id: e, comp: info, value: copied})
		return
	}
	w.setComponent(e, info, valuePtr)
}

// Unset removes component T from e. No-op if absent.
func Unset[T any](w *World, e EntityId) {
	id := ComponentIDOf[T](w)
	w.unsetValue(e, id)
}

// UnsetID removes component id from e. No-op if absent.
func (w *World) UnsetID(e EntityId, id EntityId) {
	w.unsetValue(e, id)
}

func (w *World) unsetValue(e EntityId, id EntityId) {
	if w.deferDepth > 0 {
		w.cmdBuffer.append(command{kind: cmdUnset, id: e, comp: ComponentInfo{ID: id}})
		return
	}
	w.unsetComponent(e, id)
}

// Has reports whether e carries component T.
func Has[T any](w *World, e EntityId) bool {
	id := ComponentIDOf[T](w)
	return w.hasComponent(e, id)
}

// HasID reports whether e carries component id.
func (w *World) HasID(e EntityId, id EntityId) bool {
	return w.hasComponent(e, id)
}

// Get returns a pointer to e's component T, or nil if absent.
func Get[T any](w *World, e EntityId) *T {
	id := ComponentIDOf[T](w)
	p := w.getComponent(e, id)
	if p == nil {
		return nil
	}
	return (*T)(p)
}

// TryGet returns e's component T and whether it was present.
func TryGet[T any](w *World, e EntityId) (*T, bool) {
	v := Get[T](w, e)
	return v, v != nil
}

// Target returns the n-th target of relationship K on e (§4.7).
func Target[K any](w *World, e EntityId, n int) EntityId {
	id := ComponentIDOf[K](w)
	return w.target(e, id, n)
}

// Parent returns e's first ChildOf target, or None.
func Parent(w *World, e EntityId) EntityId {
	return Target[ChildOf](w, e, 0)
}

// OnComponentSet registers a hook fired after any Set on any entity.
func (w *World) OnComponentSet(fn func(entity, component EntityId)) { w.hooks.OnComponentSet(fn) }

// OnEntityUnset registers a hook fired after any Unset.
func (w *World) OnEntityUnset(fn func(entity, component EntityId)) { w.hooks.OnEntityUnset(fn) }

// OnEntityDestroyed registers a hook fired just before an entity's id is freed.
func (w *World) OnEntityDestroyed(fn func(entity EntityId)) { w.hooks.OnEntityDestroyed(fn) }

// BeginDeferred increments the world's defer-depth counter (§4.8/§4.9).
// Structural mutations submitted while depth > 0 are queued instead of
// applied directly.
func (w *World) BeginDeferred() {
	w.deferDepth++
}

// EndDeferred decrements the defer-depth counter. When it reaches zero, it
// drains and merges the command buffer in submission order.
func (w *World) EndDeferred() {
	if w.deferDepth == 0 {
		return
	}
	w.deferDepth--
	if w.deferDepth == 0 {
		cmds := w.cmdBuffer.drain()
		w.merge(cmds)
	}
}

// Deferred runs fn with the world in deferred mode, then ends it — a
// convenience wrapper around BeginDeferred/EndDeferred for the common
// non-nested case.
func (w *World) Deferred(fn func()) {
	w.BeginDeferred()
	defer w.EndDeferred()
	fn()
}

// Each iterates every live entity in the world, root archetype included —
// component singleton entities too, since registerType places each one in
// root exactly like any other spawn.
func (w *World) Each(fn func(EntityId) bool) {
	for _, a := range w.archetypes {
		if !a.forEachEntity(fn) {
			return
		}
	}
}

// ArchetypeCount reports how many archetypes the graph currently holds —
// exposed for tests asserting invariant 4 (§8) and for diagnostics.
func (w *World) ArchetypeCount() int { return len(w.archetypes) }
