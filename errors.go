package ecs

import "github.com/rotisserie/eris"

// ErrDeadEntity is raised when an operation references an entity that is not
// alive: never spawned, already destroyed, or addressed through a stale
// (recycled) generation. SpawnWith also raises it when the id it is given is
// already live.
var ErrDeadEntity = eris.New("ecs: entity is not alive")

// ErrComponentMismatch names the component-mismatch error kind. Nothing in
// this package raises it: Set[T] takes its payload as a T, so its size always
// matches, and Get returns nil when the component is not present on the
// entity's archetype.
var ErrComponentMismatch = eris.New("ecs: component payload size mismatch")

// ErrProtectedEntity is raised when Destroy targets an entity tagged DoNotDelete.
var ErrProtectedEntity = eris.New("ecs: entity is protected from destruction")

// ErrRegistrationError is raised when a component type is used before
// registration under WorldConfig.StrictRegistration.
var ErrRegistrationError = eris.New("ecs: component type used before registration")

// DeferredMergeFailure describes one command-buffer op that could no longer be
// applied at Merge time (§7) — e.g. its target entity was destroyed earlier in
// the same batch. Merge always completes; failures are reported, not fatal.
type DeferredMergeFailure struct {
	Op  string
	Err error
}

func (f DeferredMergeFailure) Error() string {
	return eris.Wrap(f.Err, "ecs: deferred merge op "+f.Op+" failed").Error()
}

// panicOn wraps err with detail through eris before panicking, matching the corpus's idiom
// of raising programmer-error conditions as panics carrying a stack-annotated
// error value.
func panicOn(err error, detail string) {
	if err == nil {
		return
	}
	panic(eris.Wrap(err, detail))
}
