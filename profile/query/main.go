// Profiling:
// go build ./profile/query
// go tool pprof -http=":8000" -nodefraction=0.001 ./query mem.prof
package main

import (
	"os"
	"runtime"
	"runtime/pprof"

	ecs "github.com/xentripetal/TinyEcs"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

type comp3 struct {
	V int64
	W int64
}

type comp4 struct {
	V int64
	W int64
}

func main() {
	f, _ := os.Create("cpu.prof")
	_ = pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	count := 50
	iters := 10000
	entities := 100000
	run(count, iters, entities)

	memFile, _ := os.Create("mem.prof")
	defer memFile.Close()
	runtime.GC()
	_ = pprof.WriteHeapProfile(memFile)
}

func run(rounds, iters, numEntities int) {
	for r := 0; r < rounds; r++ {
		w := ecs.NewWorld(ecs.DefaultWorldConfig())
		for i := 0; i < numEntities; i++ {
			e := w.Spawn()
			ecs.Set(w, e, comp1{})
			ecs.Set(w, e, comp2{V: 1, W: 1})
			ecs.Set(w, e, comp3{})
			ecs.Set(w, e, comp4{})
		}
		query := ecs.NewQuery4[comp1, comp2, comp3, comp4](w)

		for it := 0; it < iters; it++ {
			query.Reset()
			for query.Next() {
				c1, c2 := query.A(), query.B()
				c1.V += c2.V
				c1.W += c2.W
			}
		}
	}
}
