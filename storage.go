package keel

import (
	"iter"
	"reflect"
	"slices"

	"github.com/TheBitDrifter/mask"
)

// componentStore holds every component in the World, keyed by entity and
// dense component id, with a per-entity bitmask and a reverse index from
// component id to the entities holding it. The mask answers "does this
// entity have all of these types" in one comparison; the index hands queries
// their candidate sets.
type componentStore struct {
	schema   *schema
	byEntity map[EntityID]map[componentID]Component
	masks    map[EntityID]mask.Mask
	index    map[componentID]map[EntityID]struct{}
}

func newComponentStore(schema *schema) *componentStore {
	return &componentStore{
		schema:   schema,
		byEntity: make(map[EntityID]map[componentID]Component),
		masks:    make(map[EntityID]mask.Mask),
		index:    make(map[componentID]map[EntityID]struct{}),
	}
}

// register initializes empty storage for a freshly allocated entity.
func (s *componentStore) register(id EntityID) {
	s.byEntity[id] = make(map[componentID]Component)
	s.masks[id] = mask.Mask{}
}

func (s *componentStore) add(id EntityID, c Component) error {
	comps, ok := s.byEntity[id]
	if !ok {
		return InvalidEntityError{ID: id}
	}
	cid := s.schema.register(componentType(c))
	if _, exists := comps[cid]; exists {
		return DuplicateComponentError{Type: componentType(c)}
	}
	if err := bind(c, s, id); err != nil {
		return err
	}
	comps[cid] = c

	m := s.masks[id]
	m.Mark(uint32(cid))
	s.masks[id] = m

	slot, ok := s.index[cid]
	if !ok {
		slot = make(map[EntityID]struct{})
		s.index[cid] = slot
	}
	slot[id] = struct{}{}
	return nil
}

// remove detaches the component of type t from id, reporting whether one was
// present. The instance keeps its owner record, so it can only ever be
// re-added to the same entity.
func (s *componentStore) remove(id EntityID, t reflect.Type) (bool, error) {
	comps, ok := s.byEntity[id]
	if !ok {
		return false, InvalidEntityError{ID: id}
	}
	cid, ok := s.schema.lookup(t)
	if !ok {
		return false, nil
	}
	if _, present := comps[cid]; !present {
		return false, nil
	}
	delete(comps, cid)

	m := s.masks[id]
	m.Unmark(uint32(cid))
	s.masks[id] = m

	s.unindex(cid, id)
	return true, nil
}

func (s *componentStore) get(id EntityID, t reflect.Type) (Component, error) {
	comps, ok := s.byEntity[id]
	if !ok {
		return nil, InvalidEntityError{ID: id}
	}
	cid, ok := s.schema.lookup(t)
	if !ok {
		return nil, ComponentNotFoundError{Type: t}
	}
	c, ok := comps[cid]
	if !ok {
		return nil, ComponentNotFoundError{Type: t}
	}
	return c, nil
}

func (s *componentStore) has(id EntityID, t reflect.Type) bool {
	cid, ok := s.schema.lookup(t)
	if !ok {
		return false
	}
	_, ok = s.byEntity[id][cid]
	return ok
}

// types returns the component types attached to id in registration order.
func (s *componentStore) types(id EntityID) iter.Seq[reflect.Type] {
	return func(yield func(reflect.Type) bool) {
		comps := s.byEntity[id]
		ids := make([]componentID, 0, len(comps))
		for cid := range comps {
			ids = append(ids, cid)
		}
		slices.Sort(ids)
		for _, cid := range ids {
			if !yield(s.schema.typeFor(cid)) {
				return
			}
		}
	}
}

// purge drops every component of id along with its index entries.
func (s *componentStore) purge(id EntityID) {
	for cid := range s.byEntity[id] {
		s.unindex(cid, id)
	}
	delete(s.byEntity, id)
	delete(s.masks, id)
}

// unindex removes id from the reverse index slot for cid, deleting the slot
// once it empties.
func (s *componentStore) unindex(cid componentID, id EntityID) {
	slot := s.index[cid]
	delete(slot, id)
	if len(slot) == 0 {
		delete(s.index, cid)
	}
}

func (s *componentStore) maskOf(id EntityID) mask.Mask {
	return s.masks[id]
}

// reset drops all component data. The schema survives: registered types keep
// their bit positions for the life of the World.
func (s *componentStore) reset() {
	s.byEntity = make(map[EntityID]map[componentID]Component)
	s.masks = make(map[EntityID]mask.Mask)
	s.index = make(map[componentID]map[EntityID]struct{})
}
