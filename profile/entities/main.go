// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof
package main

import (
	ecs "github.com/xentripetal/TinyEcs"

	"github.com/pkg/profile"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

func main() {
	count := 50
	iters := 10000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(count, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for i := 0; i < rounds; i++ {
		w := ecs.NewWorld(ecs.DefaultWorldConfig())
		query := ecs.NewQuery2[comp1, comp2](w)

		for j := 0; j < iters; j++ {
			for i := 0; i < numEntities; i++ {
				e := w.Spawn()
				ecs.Set(w, e, comp1{})
				ecs.Set(w, e, comp2{V: 1, W: 1})
			}
			var toRemove []ecs.EntityId
			query.Reset()
			for query.Next() {
				toRemove = append(toRemove, query.Entity())
				c1, c2 := query.A(), query.B()
				c1.V += c2.V
				c1.W += c2.W
			}
			for _, e := range toRemove {
				w.Destroy(e)
			}
		}
	}
}
