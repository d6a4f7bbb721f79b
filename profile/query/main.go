// Profiling:
// go build ./profile/query
// go tool pprof -http=":8000" -nodefraction=0.001 ./query mem.pprof

package main

import (
	"github.com/fennwick/keel"
	"github.com/pkg/profile"
)

type comp1 struct {
	keel.Attachment
	V int64
	W int64
}

type comp2 struct {
	keel.Attachment
	V int64
	W int64
}

func main() {
	rounds := 10
	iters := 1000
	entities := 10000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for range rounds {
		w := keel.Factory.NewWorld()
		for range numEntities {
			if _, err := w.Spawn(&comp1{}, &comp2{V: 1, W: 1}); err != nil {
				panic(err)
			}
		}

		for range iters {
			for _, row := range keel.Query2[comp1, comp2](w) {
				row.A.V += row.B.V
				row.A.W += row.B.W
			}
		}
	}
}
