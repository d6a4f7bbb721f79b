/*
Package keel provides an entity-component runtime for games and simulations.

Keel keeps typed state ("components") on identity-only objects ("entities"),
answers multi-component queries in deterministic ascending-id order, and runs
ordered, toggleable units of behavior ("systems") once per step.

Core Concepts:

  - Entity: a unique identifier representing one object in the world.
  - Component: a typed piece of state attached to exactly one entity.
  - System: a unit of behavior run once per step, placed by constraints.
  - Resource: a world-wide singleton keyed by type.

Basic Usage:

	type Position struct {
		keel.Attachment
		X, Y float64
	}

	type Velocity struct {
		keel.Attachment
		X, Y float64
	}

	w := keel.Factory.NewWorld()
	w.Spawn(&Position{X: 1}, &Velocity{X: 2})

	for _, row := range keel.Query2[Position, Velocity](w) {
		row.A.X += row.B.X
		row.A.Y += row.B.Y
	}

Systems hang off four built-in phases (Initialization, EarlyUpdate, Update,
LateUpdate) and order themselves against siblings with constraint strings:

	type Movement struct {
		keel.BaseSystem
	}

	func (*Movement) Info() keel.SystemInfo {
		return keel.SystemInfo{
			Name:  "movement",
			Group: keel.GroupUpdate,
			Order: []string{"before:aging"},
		}
	}

	func (*Movement) OnUpdate(w *keel.World) {
		// advance positions
	}

	w.AddSystem(&Movement{})
	w.Step()

Destroying an entity is two-phase: Destroy removes the Active tag and queues
the entity; the next Step sweeps it out before any system runs. Entity IDs
are never reused.

A World is single threaded: one goroutine owns it and everything in it.
*/
package keel
