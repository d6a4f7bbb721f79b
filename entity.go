package keel

import "reflect"

// Entity is a lightweight handle pairing an ID with the World that issued
// it. Handles stay cheap to copy; all state lives in the World.
type Entity struct {
	id EntityID
	w  *World
}

func (e Entity) ID() EntityID { return e.id }

// Valid reports whether the entity still exists in its World. Entities
// queued for destruction remain valid until the next step sweeps them.
func (e Entity) Valid() bool {
	return e.w != nil && e.w.table.exists(e.id)
}

// Active reports whether the entity carries the Active tag. Destruction
// removes the tag immediately, ahead of the sweep.
func (e Entity) Active() bool {
	if e.w == nil {
		return false
	}
	return e.w.store.has(e.id, reflect.TypeFor[Active]())
}

func (e Entity) Add(c Component) error {
	if e.w == nil {
		return InvalidEntityError{ID: e.id}
	}
	return e.w.AddComponent(e, c)
}

func (e Entity) Name() string {
	if e.w == nil {
		return ""
	}
	name, _ := e.w.Name(e)
	return name
}

func (e Entity) SetName(name string) error {
	if e.w == nil {
		return InvalidEntityError{ID: e.id}
	}
	return e.w.SetName(e, name)
}

func (e Entity) Destroy() error {
	if e.w == nil {
		return InvalidEntityError{ID: e.id}
	}
	return e.w.Destroy(e)
}
