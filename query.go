package keel

import (
	"iter"
	"reflect"
	"slices"

	"github.com/TheBitDrifter/mask"
)

// matchAll returns the ids of every entity holding all of the given types,
// in ascending order. Candidates come from the smallest reverse-index slot;
// each is verified against its mask in one comparison.
func matchAll(store *componentStore, types []reflect.Type) []EntityID {
	if len(types) == 0 {
		return nil
	}

	var want mask.Mask
	var candidates map[EntityID]struct{}
	for _, t := range types {
		cid, ok := store.schema.lookup(t)
		if !ok {
			return nil
		}
		slot, ok := store.index[cid]
		if !ok {
			return nil
		}
		want.Mark(uint32(cid))
		if candidates == nil || len(slot) < len(candidates) {
			candidates = slot
		}
	}

	ids := make([]EntityID, 0, len(candidates))
	for id := range candidates {
		m := store.masks[id]
		if m.ContainsAll(want) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// EntitiesWith returns the ids of every entity holding all of the given
// types, in ascending order. With no types it yields nothing. The result is
// a snapshot: entities spawned or mutated during iteration do not join it.
func (w *World) EntitiesWith(types ...reflect.Type) iter.Seq[EntityID] {
	return func(yield func(EntityID) bool) {
		for _, id := range matchAll(w.store, types) {
			if !yield(id) {
				return
			}
		}
	}
}
