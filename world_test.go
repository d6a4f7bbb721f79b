package keel

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestPhaseOrder(t *testing.T) {
	w := Factory.NewWorld()

	var calls []string
	for _, s := range []*probeSystem{
		{name: "late", group: GroupLateUpdate, calls: &calls},
		{name: "update", group: GroupUpdate, calls: &calls},
		{name: "early", group: GroupEarlyUpdate, calls: &calls},
		{name: "init", group: GroupInitialization, calls: &calls},
	} {
		if err := w.AddSystem(s); err != nil {
			t.Fatalf("AddSystem(%s) error = %v", s.name, err)
		}
	}

	w.Step()
	want := []string{"init", "early", "update", "late"}
	if !slices.Equal(calls, want) {
		t.Fatalf("First step order = %v, want %v", calls, want)
	}

	// Initialization is one-shot; the steady-state loop is the other three
	calls = calls[:0]
	w.Step()
	want = []string{"early", "update", "late"}
	if !slices.Equal(calls, want) {
		t.Errorf("Second step order = %v, want %v", calls, want)
	}
}

func TestSweepRunsBeforeSystems(t *testing.T) {
	w := Factory.NewWorld()

	e, err := w.Spawn(&Position{})
	if err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}
	if err := w.Destroy(e); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}

	sawDoomed := true
	check := &probeSystem{name: "check", group: GroupUpdate, update: func(w *World) {
		sawDoomed = w.Exists(e.ID())
	}}
	if err := w.AddSystem(check); err != nil {
		t.Fatalf("AddSystem() error = %v", err)
	}

	w.Step()
	if sawDoomed {
		t.Error("Entity queued before the step was still visible to systems")
	}
}

func TestDestroyDuringStepDefers(t *testing.T) {
	w := Factory.NewWorld()

	e, err := w.Spawn(&Position{X: 1})
	if err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}

	killer := &probeSystem{name: "killer", group: GroupUpdate, update: func(w *World) {
		if err := w.Destroy(e); err != nil {
			t.Errorf("Destroy() inside step error = %v", err)
		}
	}}

	var observed struct {
		valid    bool
		active   bool
		readable bool
		gated    int
	}
	observer := &probeSystem{name: "observer", group: GroupLateUpdate, update: func(w *World) {
		observed.valid = e.Valid()
		observed.active = e.Active()
		_, err := GetComponent[Position](w, e)
		observed.readable = err == nil
		observed.gated = 0
		for range Query2[Position, Active](w) {
			observed.gated++
		}
	}}

	for _, s := range []System{killer, observer} {
		if err := w.AddSystem(s); err != nil {
			t.Fatalf("AddSystem() error = %v", err)
		}
	}

	w.Step()
	if !observed.valid {
		t.Error("Destroyed entity should survive until the next sweep")
	}
	if observed.active {
		t.Error("Destroyed entity should lose Active immediately")
	}
	if !observed.readable {
		t.Error("Destroyed entity components should stay readable in the same step")
	}
	if observed.gated != 0 {
		t.Errorf("Active-gated query matched %d entities, want 0", observed.gated)
	}

	// Avoid a second Destroy attempt once the entity is really gone
	killer.SetActive(false)
	w.Step()
	if e.Valid() {
		t.Error("Entity should be swept by the following step")
	}
}

func TestStepPanicAttribution(t *testing.T) {
	var buf bytes.Buffer
	w := Factory.NewWorld(WithLogger(zerolog.New(&buf)))

	boom := &probeSystem{name: "boom", group: GroupUpdate, update: func(*World) {
		panic("kaboom")
	}}
	if err := w.AddSystem(boom); err != nil {
		t.Fatalf("AddSystem() error = %v", err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Step() should propagate the panic")
		}
		if r != "kaboom" {
			t.Errorf("Recovered %v, want kaboom", r)
		}
		if !strings.Contains(buf.String(), `"system":"boom"`) {
			t.Errorf("Panic log does not name the system: %s", buf.String())
		}
	}()
	w.Step()
}

func TestSpawnNotRolledBack(t *testing.T) {
	w := Factory.NewWorld()

	e, err := w.Spawn(&Position{X: 1}, &Position{X: 2})
	var dup DuplicateComponentError
	if !errors.As(err, &dup) {
		t.Fatalf("Spawn() error = %v, want DuplicateComponentError", err)
	}

	// The entity stands, holding what was attached before the failure
	if !e.Valid() {
		t.Fatal("Entity from failed spawn should still exist")
	}
	pos, err := GetComponent[Position](w, e)
	if err != nil {
		t.Fatalf("GetComponent() error = %v", err)
	}
	if pos.X != 1 {
		t.Errorf("Position.X = %v, want 1 (the first add)", pos.X)
	}
}

func TestClearKeepsSystemsAndResources(t *testing.T) {
	w := Factory.NewWorld()

	var calls []string
	if err := w.AddSystem(&probeSystem{name: "tick", group: GroupUpdate, calls: &calls}); err != nil {
		t.Fatalf("AddSystem() error = %v", err)
	}
	AddResource(w.Resources(), gameClock{Elapsed: 3})

	for i := 0; i < 4; i++ {
		if _, err := w.Spawn(&Position{}); err != nil {
			t.Fatalf("Spawn() error = %v", err)
		}
	}

	w.Clear()

	if got := w.EntityCount(); got != 0 {
		t.Errorf("EntityCount() after clear = %d, want 0", got)
	}
	if !HasResource[gameClock](w.Resources()) {
		t.Error("Resources should survive a clear")
	}
	w.Step()
	if len(calls) != 1 {
		t.Errorf("System ran %d times after clear, want 1", len(calls))
	}
}

func TestStepCounter(t *testing.T) {
	w := Factory.NewWorld()

	if got := w.CurrentStep(); got != 0 {
		t.Errorf("CurrentStep() = %d, want 0", got)
	}
	w.Step()
	w.Step()
	if got := w.CurrentStep(); got != 2 {
		t.Errorf("CurrentStep() = %d, want 2", got)
	}
}

func TestWorldEndToEnd(t *testing.T) {
	w := Factory.NewWorld()

	seeded := 0
	seed := &probeSystem{name: "seed", group: GroupInitialization, update: func(w *World) {
		for i := 0; i < 4; i++ {
			if _, err := w.Spawn(&Position{X: float64(i)}, &Velocity{X: 1}); err != nil {
				t.Fatalf("Spawn() error = %v", err)
			}
		}
		seeded++
	}}
	movement := &probeSystem{name: "movement", group: GroupUpdate, order: []string{"before:friction"}, update: func(w *World) {
		for _, row := range Query2[Position, Velocity](w) {
			row.A.X += row.B.X
		}
	}}
	friction := &probeSystem{name: "friction", group: GroupUpdate, update: func(w *World) {
		for _, vel := range Query1[Velocity](w) {
			vel.X = 0
		}
	}}
	reaper := &probeSystem{name: "reaper", group: GroupLateUpdate, update: func(w *World) {
		for id, pos := range Query1[Position](w) {
			if pos.X >= 4 {
				e, err := w.Entity(id)
				if err != nil {
					t.Fatalf("Entity() error = %v", err)
				}
				if err := w.Destroy(e); err != nil {
					t.Fatalf("Destroy() error = %v", err)
				}
			}
		}
	}}

	for _, s := range []System{seed, movement, friction, reaper} {
		if err := w.AddSystem(s); err != nil {
			t.Fatalf("AddSystem() error = %v", err)
		}
	}

	for i := 0; i < 3; i++ {
		w.Step()
	}

	if seeded != 1 {
		t.Errorf("Seed ran %d times, want 1", seeded)
	}
	if got := w.EntityCount(); got != 3 {
		t.Errorf("EntityCount() = %d, want 3", got)
	}

	// Movement ran before friction zeroed the velocities: every survivor
	// advanced exactly once
	var xs []float64
	for _, pos := range Query1[Position](w) {
		xs = append(xs, pos.X)
	}
	want := []float64{1, 2, 3}
	if !slices.Equal(xs, want) {
		t.Errorf("Positions = %v, want %v", xs, want)
	}
}
