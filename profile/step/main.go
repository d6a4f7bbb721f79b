// Profiling:
// go build ./profile/step
// go tool pprof -http=":8000" -nodefraction=0.001 ./step mem.pprof

package main

import (
	"github.com/fennwick/keel"
	"github.com/pkg/profile"
)

type position struct {
	keel.Attachment
	X float64
	Y float64
}

type velocity struct {
	keel.Attachment
	X float64
	Y float64
}

type mover struct {
	keel.BaseSystem
}

func (*mover) Info() keel.SystemInfo {
	return keel.SystemInfo{Name: "mover", Group: keel.GroupUpdate}
}

func (*mover) OnUpdate(w *keel.World) {
	for _, row := range keel.Query2[position, velocity](w) {
		row.A.X += row.B.X
		row.A.Y += row.B.Y
	}
}

func main() {
	rounds := 10
	steps := 1000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, steps, entities)
	p.Stop()
}

func run(rounds, steps, numEntities int) {
	for range rounds {
		w := keel.Factory.NewWorld()
		if err := w.AddSystem(&mover{}); err != nil {
			panic(err)
		}
		for range numEntities {
			if _, err := w.Spawn(&position{}, &velocity{X: 1, Y: 1}); err != nil {
				panic(err)
			}
		}

		ids := make([]keel.EntityID, 0, numEntities/10)
		for range steps {
			w.Step()

			// churn a tenth of the population through the deferred-removal path
			ids = ids[:0]
			for id := range keel.Query1[position](w) {
				ids = append(ids, id)
				if len(ids) == cap(ids) {
					break
				}
			}
			for _, id := range ids {
				e, err := w.Entity(id)
				if err != nil {
					panic(err)
				}
				if err := w.Destroy(e); err != nil {
					panic(err)
				}
			}
			for range len(ids) {
				if _, err := w.Spawn(&position{}, &velocity{X: 1, Y: 1}); err != nil {
					panic(err)
				}
			}
		}
	}
}
