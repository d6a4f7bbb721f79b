package keel

import (
	"reflect"
	"slices"
	"testing"

	iter_util "github.com/TheBitDrifter/util/iter"
)

func TestQueryMatching(t *testing.T) {
	type entitySetup struct {
		components []Component
		count      int
	}

	tests := []struct {
		name            string
		entitySetups    []entitySetup
		queryTypes      []reflect.Type
		expectedMatches int
	}{
		{
			name: "Single type",
			entitySetups: []entitySetup{
				{[]Component{&Position{}}, 3},
				{[]Component{&Velocity{}}, 2},
			},
			queryTypes:      []reflect.Type{reflect.TypeFor[Position]()},
			expectedMatches: 3,
		},
		{
			name: "Intersection",
			entitySetups: []entitySetup{
				{[]Component{&Position{}, &Velocity{}}, 2},
				{[]Component{&Position{}}, 4},
				{[]Component{&Velocity{}}, 3},
			},
			queryTypes:      []reflect.Type{reflect.TypeFor[Position](), reflect.TypeFor[Velocity]()},
			expectedMatches: 2,
		},
		{
			name: "No matches",
			entitySetups: []entitySetup{
				{[]Component{&Position{}}, 3},
			},
			queryTypes:      []reflect.Type{reflect.TypeFor[Position](), reflect.TypeFor[Health]()},
			expectedMatches: 0,
		},
		{
			name: "Unregistered type",
			entitySetups: []entitySetup{
				{[]Component{&Position{}}, 2},
			},
			queryTypes:      []reflect.Type{reflect.TypeFor[Health]()},
			expectedMatches: 0,
		},
		{
			name:            "No types",
			entitySetups:    []entitySetup{{[]Component{&Position{}}, 2}},
			queryTypes:      nil,
			expectedMatches: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Factory.NewWorld()

			for _, setup := range tt.entitySetups {
				for i := 0; i < setup.count; i++ {
					comps := make([]Component, 0, len(setup.components))
					for _, c := range setup.components {
						comps = append(comps, freshComponent(c))
					}
					if _, err := w.Spawn(comps...); err != nil {
						t.Fatalf("Spawn() error = %v", err)
					}
				}
			}

			ids := iter_util.Collect(w.EntitiesWith(tt.queryTypes...))
			if len(ids) != tt.expectedMatches {
				t.Errorf("Query matched %d entities, want %d", len(ids), tt.expectedMatches)
			}
		})
	}
}

// freshComponent clones the prototype so each spawned entity gets its own
// instance; component instances are single-owner.
func freshComponent(c Component) Component {
	switch c.(type) {
	case *Position:
		return &Position{}
	case *Velocity:
		return &Velocity{}
	case *Health:
		return &Health{}
	}
	return nil
}

func TestQueryAscendingOrder(t *testing.T) {
	w := Factory.NewWorld()

	// Mix spawn shapes so reverse-index slots fill in scattered order
	for i := 0; i < 20; i++ {
		var err error
		if i%3 == 0 {
			_, err = w.Spawn(&Position{})
		} else {
			_, err = w.Spawn(&Position{}, &Velocity{})
		}
		if err != nil {
			t.Fatalf("Spawn() error = %v", err)
		}
	}

	ids := iter_util.Collect(w.EntitiesWith(reflect.TypeFor[Position]()))
	if len(ids) != 20 {
		t.Fatalf("Query matched %d entities, want 20", len(ids))
	}
	if !slices.IsSorted(ids) {
		t.Errorf("Query results not ascending: %v", ids)
	}

	// Two runs over the same world agree exactly
	again := iter_util.Collect(w.EntitiesWith(reflect.TypeFor[Position]()))
	if !slices.Equal(ids, again) {
		t.Errorf("Query results differ between runs: %v vs %v", ids, again)
	}
}

func TestQueryActiveGating(t *testing.T) {
	w := Factory.NewWorld()

	e1, _ := w.Spawn(&Position{})
	e2, _ := w.Spawn(&Position{})
	if err := w.Destroy(e1); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}

	// Plain queries still see the doomed entity until the sweep
	all := iter_util.Collect(w.EntitiesWith(reflect.TypeFor[Position]()))
	if len(all) != 2 {
		t.Errorf("Position query matched %d, want 2", len(all))
	}

	// Active-gated queries drop it immediately
	live := iter_util.Collect(w.EntitiesWith(reflect.TypeFor[Position](), reflect.TypeFor[Active]()))
	if len(live) != 1 || live[0] != e2.ID() {
		t.Errorf("Active-gated query = %v, want [%d]", live, e2.ID())
	}

	w.Step()
	all = iter_util.Collect(w.EntitiesWith(reflect.TypeFor[Position]()))
	if len(all) != 1 {
		t.Errorf("Position query after sweep matched %d, want 1", len(all))
	}
}

func TestTypedQueries(t *testing.T) {
	w := Factory.NewWorld()

	for i := 0; i < 5; i++ {
		_, err := w.Spawn(
			&Position{X: float64(i), Y: float64(i * 2)},
			&Velocity{X: 1, Y: 2},
		)
		if err != nil {
			t.Fatalf("Spawn() error = %v", err)
		}
	}
	if _, err := w.Spawn(&Position{X: 100}); err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}

	count := 0
	var prev EntityID
	for id, row := range Query2[Position, Velocity](w) {
		if id <= prev {
			t.Errorf("Yielded id %d after %d, want ascending", id, prev)
		}
		prev = id
		row.A.X += row.B.X
		row.A.Y += row.B.Y
		count++
	}
	if count != 5 {
		t.Errorf("Query2 yielded %d rows, want 5", count)
	}

	// Writes through yielded pointers hit live storage
	first, err := w.Entity(1)
	if err != nil {
		t.Fatalf("Entity() error = %v", err)
	}
	pos, err := GetComponent[Position](w, first)
	if err != nil {
		t.Fatalf("GetComponent() error = %v", err)
	}
	if pos.X != 1 {
		t.Errorf("Position.X after update = %v, want 1", pos.X)
	}

	// Query3 with the built-in Active tag
	live := 0
	for _, row := range Query3[Position, Velocity, Active](w) {
		if row.A == nil || row.B == nil || row.C == nil {
			t.Error("Query3 yielded nil pointer")
		}
		live++
	}
	if live != 5 {
		t.Errorf("Query3 yielded %d rows, want 5", live)
	}
}

func TestTypedPointerIdentity(t *testing.T) {
	w := Factory.NewWorld()

	pos := &Position{X: 1}
	e, err := w.Spawn(pos)
	if err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}

	// The typed accessors narrow the stored value back to the attached
	// instance itself, not a copy
	got, err := GetComponent[Position](w, e)
	if err != nil {
		t.Fatalf("GetComponent() error = %v", err)
	}
	if got != pos {
		t.Errorf("GetComponent() = %p, want the attached instance %p", got, pos)
	}

	yielded := 0
	for id, p := range Query1[Position](w) {
		if id != e.ID() {
			t.Errorf("Query1 yielded id %d, want %d", id, e.ID())
		}
		if p != pos {
			t.Errorf("Query1 yielded %p, want the attached instance %p", p, pos)
		}
		yielded++
	}
	if yielded != 1 {
		t.Errorf("Query1 yielded %d rows, want 1", yielded)
	}
}

func TestQueryMidIterationRemoval(t *testing.T) {
	w := Factory.NewWorld()

	var handles []Entity
	for i := 0; i < 3; i++ {
		e, err := w.Spawn(&Position{}, &Velocity{})
		if err != nil {
			t.Fatalf("Spawn() error = %v", err)
		}
		handles = append(handles, e)
	}

	// Strip the last entity's Velocity while iterating; it must be skipped
	var seen []EntityID
	for id := range Query2[Position, Velocity](w) {
		if id == handles[0].ID() {
			if _, err := RemoveComponent[Velocity](w, handles[2]); err != nil {
				t.Fatalf("RemoveComponent() error = %v", err)
			}
		}
		seen = append(seen, id)
	}

	want := []EntityID{handles[0].ID(), handles[1].ID()}
	if !slices.Equal(seen, want) {
		t.Errorf("Query yielded %v, want %v", seen, want)
	}
}

func TestQueryEarlyBreak(t *testing.T) {
	w := Factory.NewWorld()

	for i := 0; i < 10; i++ {
		if _, err := w.Spawn(&Position{}); err != nil {
			t.Fatalf("Spawn() error = %v", err)
		}
	}

	count := 0
	for range Query1[Position](w) {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("Stopped after %d rows, want 3", count)
	}
}
