package main

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/fennwick/keel"
)

// Position is where a critter sits on the torus field.
type Position struct {
	keel.Attachment
	X float64
	Y float64
}

// Velocity is how far a critter drifts each step.
type Velocity struct {
	keel.Attachment
	X float64
	Y float64
}

// Age tracks a critter's ticks lived against its rolled lifespan.
type Age struct {
	keel.Attachment
	Ticks    int
	Lifespan int
}

// tally accumulates simulation totals across systems.
type tally struct {
	Spawned int
	Reaped  int
}

// seeder populates the field once, during the Initialization phase.
type seeder struct {
	keel.BaseSystem
}

func (*seeder) Info() keel.SystemInfo {
	return keel.SystemInfo{Name: "seeder", Group: keel.GroupInitialization}
}

func (*seeder) OnUpdate(w *keel.World) {
	cfg := keel.MustGetResource[*Config](w.Resources())
	r := keel.MustGetResource[*rand.Rand](w.Resources())
	t := keel.MustGetResource[*tally](w.Resources())

	for i := 0; i < cfg.Sim.Count; i++ {
		e, err := w.Spawn(
			&Position{X: r.Float64() * cfg.Sim.Width, Y: r.Float64() * cfg.Sim.Height},
			&Velocity{X: r.Float64()*2 - 1, Y: r.Float64()*2 - 1},
			&Age{Lifespan: cfg.Sim.MaxAge/2 + r.Intn(cfg.Sim.MaxAge/2+1)},
		)
		if err != nil {
			panic(err)
		}
		w.SetName(e, fmt.Sprintf("critter-%03d", i))
		t.Spawned++
	}
}

// wander nudges each velocity by a random jitter, capped at the configured
// top speed.
type wander struct {
	keel.BaseSystem
}

func (*wander) Info() keel.SystemInfo {
	return keel.SystemInfo{Name: "wander", Group: keel.GroupEarlyUpdate}
}

func (*wander) OnUpdate(w *keel.World) {
	cfg := keel.MustGetResource[*Config](w.Resources())
	r := keel.MustGetResource[*rand.Rand](w.Resources())

	for _, row := range keel.Query2[Velocity, keel.Active](w) {
		row.A.X = clamp(row.A.X+(r.Float64()-0.5)*cfg.Sim.Jitter, cfg.Sim.MaxSpeed)
		row.A.Y = clamp(row.A.Y+(r.Float64()-0.5)*cfg.Sim.Jitter, cfg.Sim.MaxSpeed)
	}
}

// movement applies velocities, wrapping positions around the field edges.
type movement struct {
	keel.BaseSystem
}

func (*movement) Info() keel.SystemInfo {
	return keel.SystemInfo{Name: "movement", Group: keel.GroupUpdate, Order: []string{"before:aging"}}
}

func (*movement) OnUpdate(w *keel.World) {
	cfg := keel.MustGetResource[*Config](w.Resources())

	for _, row := range keel.Query3[Position, Velocity, keel.Active](w) {
		row.A.X = wrap(row.A.X+row.B.X, cfg.Sim.Width)
		row.A.Y = wrap(row.A.Y+row.B.Y, cfg.Sim.Height)
	}
}

// aging ticks every living critter one step closer to its lifespan.
type aging struct {
	keel.BaseSystem
}

func (*aging) Info() keel.SystemInfo {
	return keel.SystemInfo{Name: "aging", Group: keel.GroupUpdate}
}

func (*aging) OnUpdate(w *keel.World) {
	for _, row := range keel.Query2[Age, keel.Active](w) {
		row.A.Ticks++
	}
}

// reaper queues critters past their lifespan for removal at the next step.
type reaper struct {
	keel.BaseSystem
}

func (*reaper) Info() keel.SystemInfo {
	return keel.SystemInfo{Name: "reaper", Group: keel.GroupLateUpdate}
}

func (*reaper) OnUpdate(w *keel.World) {
	t := keel.MustGetResource[*tally](w.Resources())

	for id, row := range keel.Query2[Age, keel.Active](w) {
		if row.A.Ticks < row.A.Lifespan {
			continue
		}
		e, err := w.Entity(id)
		if err != nil {
			continue
		}
		if err := w.Destroy(e); err == nil {
			t.Reaped++
		}
	}
}

func clamp(v, limit float64) float64 {
	return min(max(v, -limit), limit)
}

func wrap(v, size float64) float64 {
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	return v
}
