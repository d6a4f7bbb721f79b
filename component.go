package keel

import "reflect"

// Attachment is the base every component struct embeds. It carries the
// back-reference to the owning entity and makes the enclosing pointer type
// satisfy Component.
//
//	type Position struct {
//		keel.Attachment
//		X, Y float64
//	}
type Attachment struct {
	owner EntityID
	store *componentStore
}

func (a *Attachment) anchor() *Attachment { return a }

// Owner returns the entity this component is attached to, or zero if it was
// never attached.
func (a *Attachment) Owner() EntityID { return a.owner }

// Tag is a payload-free component base for marking entities.
type Tag struct {
	Attachment
}

// Active marks an entity as live. It is attached on spawn and removed the
// moment the entity is queued for destruction, so queries that include it
// stop matching doomed entities before the sweep runs.
type Active struct {
	Tag
}

// bind records c as belonging to id in s. A component instance keeps its
// first owner for life, even after removal; it can only ever re-attach to the
// same entity of the same world. Worlds allocate ids independently, so the
// owner check compares the store as well as the id.
func bind(c Component, s *componentStore, id EntityID) error {
	a := c.anchor()
	if a.store != nil && (a.store != s || a.owner != id) {
		return ComponentBoundError{Type: componentType(c), Owner: a.owner, Target: id}
	}
	a.owner = id
	a.store = s
	return nil
}

// componentType returns the canonical registry key for c, the struct type
// behind the pointer.
func componentType(c Component) reflect.Type {
	t := reflect.TypeOf(c)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
