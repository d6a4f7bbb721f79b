package keel

import "reflect"

// MaxComponentTypes caps how many distinct component types a World can
// register. Each type occupies one bit in the per-entity mask.
const MaxComponentTypes = 64

type componentID uint32

// schema assigns each component type a dense id, which doubles as its bit
// position in entity masks. Types register lazily on first use and stay
// registered for the life of the World.
type schema struct {
	ids   map[reflect.Type]componentID
	types []reflect.Type
}

func newSchema() *schema {
	return &schema{ids: make(map[reflect.Type]componentID)}
}

func (s *schema) register(t reflect.Type) componentID {
	if id, ok := s.ids[t]; ok {
		return id
	}
	if len(s.types) >= MaxComponentTypes {
		panic("keel: too many component types")
	}
	id := componentID(len(s.types))
	s.ids[t] = id
	s.types = append(s.types, t)
	return id
}

// lookup resolves t without registering it.
func (s *schema) lookup(t reflect.Type) (componentID, bool) {
	id, ok := s.ids[t]
	return id, ok
}

func (s *schema) typeFor(id componentID) reflect.Type {
	return s.types[id]
}
