package keel

import (
	"iter"
	"reflect"
	"time"

	"github.com/rs/zerolog"
)

// World wires the entity table, component store, resource store and system
// tree together behind one single-threaded façade. A World is not safe for
// concurrent use.
type World struct {
	log           zerolog.Logger
	table         *entityTable
	store         *componentStore
	resources     *ResourceStore
	root          *SystemGroup
	step          uint64
	currentSystem string
}

type WorldOption func(*World)

// WithLogger routes world diagnostics through log. The default logger
// discards everything.
func WithLogger(log zerolog.Logger) WorldOption {
	return func(w *World) { w.log = log }
}

const noSystem = "none"

func newWorld(opts ...WorldOption) *World {
	w := &World{
		log:           zerolog.Nop(),
		table:         newEntityTable(),
		store:         newComponentStore(newSchema()),
		resources:     newResourceStore(),
		currentSystem: noSystem,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.root = newSystemGroup(GroupRoot, "", false)
	w.root.children = []System{
		newSystemGroup(GroupInitialization, GroupRoot, true, "first"),
		newSystemGroup(GroupEarlyUpdate, GroupRoot, false, "after:"+GroupInitialization, "before:"+GroupUpdate),
		newSystemGroup(GroupUpdate, GroupRoot, false, "before:"+GroupLateUpdate),
		newSystemGroup(GroupLateUpdate, GroupRoot, false, "last"),
	}
	if err := sortTree(w, w.root); err != nil {
		panic(err)
	}
	return w
}

// Resources returns the world's resource store.
func (w *World) Resources() *ResourceStore { return w.resources }

// Root returns the root system group.
func (w *World) Root() *SystemGroup { return w.root }

// own verifies the handle belongs to this world and still resolves.
func (w *World) own(e Entity) error {
	if e.w != w || !w.table.exists(e.id) {
		return InvalidEntityError{ID: e.id}
	}
	return nil
}

// Spawn creates an entity carrying the Active tag plus the given components.
// On the first failing component the error is returned and the entity keeps
// what was attached so far; nothing is rolled back.
func (w *World) Spawn(components ...Component) (Entity, error) {
	id := w.table.allocate()
	w.store.register(id)
	e := Entity{id: id, w: w}
	for _, c := range append([]Component{&Active{}}, components...) {
		if err := w.store.add(id, c); err != nil {
			return e, err
		}
	}
	w.log.Debug().Uint64("entity", uint64(id)).Int("components", len(components)).Msg("entity spawned")
	return e, nil
}

// Destroy removes the Active tag and queues e for removal at the next step.
// Components stay readable and mutable until the sweep runs. Destroying an
// already queued entity is a no-op.
func (w *World) Destroy(e Entity) error {
	if err := w.own(e); err != nil {
		return err
	}
	rec, _ := w.table.record(e.id)
	if rec.status == statusPending {
		return nil
	}
	w.store.remove(e.id, reflect.TypeFor[Active]())
	w.table.markPending(e.id)
	w.log.Debug().Uint64("entity", uint64(e.id)).Msg("entity queued for removal")
	return nil
}

// Entity returns a handle for id.
func (w *World) Entity(id EntityID) (Entity, error) {
	if !w.table.exists(id) {
		return Entity{}, InvalidEntityError{ID: id}
	}
	return Entity{id: id, w: w}, nil
}

func (w *World) Exists(id EntityID) bool { return w.table.exists(id) }

// EntityCount reports how many entities the world holds, queued removals
// included.
func (w *World) EntityCount() int { return w.table.count() }

func (w *World) Name(e Entity) (string, error) {
	if err := w.own(e); err != nil {
		return "", err
	}
	rec, _ := w.table.record(e.id)
	return rec.name, nil
}

func (w *World) SetName(e Entity, name string) error {
	if err := w.own(e); err != nil {
		return err
	}
	rec, _ := w.table.record(e.id)
	rec.name = name
	return nil
}

func (w *World) AddComponent(e Entity, c Component) error {
	if err := w.own(e); err != nil {
		return err
	}
	return w.store.add(e.id, c)
}

// RemoveComponent detaches the component of type t from e, reporting whether
// one was present.
func (w *World) RemoveComponent(e Entity, t reflect.Type) (bool, error) {
	if err := w.own(e); err != nil {
		return false, err
	}
	return w.store.remove(e.id, t)
}

func (w *World) GetComponent(e Entity, t reflect.Type) (Component, error) {
	if err := w.own(e); err != nil {
		return nil, err
	}
	return w.store.get(e.id, t)
}

func (w *World) HasComponent(e Entity, t reflect.Type) bool {
	if w.own(e) != nil {
		return false
	}
	return w.store.has(e.id, t)
}

// ComponentTypes returns the component types attached to e in registration
// order. Handles the world does not own yield nothing.
func (w *World) ComponentTypes(e Entity) iter.Seq[reflect.Type] {
	if w.own(e) != nil {
		return func(func(reflect.Type) bool) {}
	}
	return w.store.types(e.id)
}

// GetComponent returns the T attached to e.
func GetComponent[T any](w *World, e Entity) (*T, error) {
	c, err := w.GetComponent(e, reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	p, ok := any(c).(*T)
	if !ok {
		return nil, ComponentNotFoundError{Type: reflect.TypeFor[T]()}
	}
	return p, nil
}

// HasComponent reports whether e carries a T.
func HasComponent[T any](w *World, e Entity) bool {
	return w.HasComponent(e, reflect.TypeFor[T]())
}

// RemoveComponent detaches the T on e, reporting whether one was present.
func RemoveComponent[T any](w *World, e Entity) (bool, error) {
	return w.RemoveComponent(e, reflect.TypeFor[T]())
}

// AddSystem places s in the group named by its descriptor and re-sorts the
// affected subtree. On failure the tree is restored and the error returned;
// OnAdd fires only after a successful sort.
func (w *World) AddSystem(s System) error {
	parent := w.root
	if g := s.Info().Group; g != "" {
		parent = w.root.findGroup(g)
		if parent == nil {
			return UnknownGroupError{Group: g}
		}
	}
	parent.children = append(parent.children, s)
	if err := sortTree(w, parent); err != nil {
		parent.children = parent.children[:len(parent.children)-1]
		// The previous membership sorted cleanly, so restoring cannot fail.
		sortTree(w, parent)
		return err
	}
	s.OnAdd(w)
	w.log.Debug().Str("system", systemName(s)).Str("group", parent.info.Name).Msg("system added")
	return nil
}

// System finds a registered system or group by name.
func (w *World) System(name string) (System, bool) {
	if name == GroupRoot {
		return w.root, true
	}
	_, sys := w.root.locate(name)
	if sys == nil {
		return nil, false
	}
	return sys, true
}

// RemoveSystem detaches the named system, fires its OnDestroy hook and
// re-sorts the group that owned it.
func (w *World) RemoveSystem(name string) error {
	owner, sys := w.root.locate(name)
	if sys == nil {
		return UnknownSystemError{Name: name}
	}
	for i, child := range owner.children {
		if child == sys {
			owner.children = append(owner.children[:i], owner.children[i+1:]...)
			break
		}
	}
	if err := sortTree(w, owner); err != nil {
		return err
	}
	sys.OnDestroy(w)
	w.log.Debug().Str("system", name).Msg("system removed")
	return nil
}

// GetSystem returns the first registered system whose concrete type is T.
func GetSystem[T System](w *World) (T, bool) {
	var match T
	found := false
	w.root.walk(func(s System) bool {
		if t, ok := s.(T); ok {
			match = t
			found = true
			return false
		}
		return true
	})
	return match, found
}

// RemoveSystemOf removes the first registered system whose concrete type is T.
func RemoveSystemOf[T System](w *World) error {
	s, ok := GetSystem[T](w)
	if !ok {
		t := reflect.TypeFor[T]()
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		return UnknownSystemError{Name: t.Name()}
	}
	return w.RemoveSystem(systemName(s))
}

// runSystem executes one system, tracking its name for panic attribution.
func (w *World) runSystem(s System) {
	prev := w.currentSystem
	w.currentSystem = systemName(s)
	s.OnUpdate(w)
	w.currentSystem = prev
}

// Step advances the world once: sweep the entities queued for removal, then
// run the root group. A panicking system is logged with its name and the
// panic rethrown.
func (w *World) Step() {
	w.step++
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			w.log.Error().Uint64("step", w.step).Str("system", w.currentSystem).Interface("panic", r).Msg("step panicked")
			panic(r)
		}
	}()
	w.sweep()
	if w.root.Active() {
		w.runSystem(w.root)
	}
	elapsed := time.Since(start)
	if elapsed > Config.slowStepWarning {
		w.log.Warn().Uint64("step", w.step).Dur("elapsed", elapsed).Msg("slow step")
	} else {
		w.log.Debug().Uint64("step", w.step).Dur("elapsed", elapsed).Msg("step complete")
	}
}

// CurrentStep reports how many steps have run.
func (w *World) CurrentStep() uint64 { return w.step }

// sweep purges the entities queued for removal since the previous step.
func (w *World) sweep() {
	drained := w.table.drainPending()
	for _, id := range drained {
		w.store.purge(id)
		w.table.free(id)
	}
	if len(drained) > 0 {
		w.log.Debug().Uint64("step", w.step).Int("removed", len(drained)).Msg("swept destroyed entities")
	}
}

// Clear removes every entity and component. Identifier allocation continues
// where it left off; resources and the system tree are untouched.
func (w *World) Clear() {
	n := w.table.count()
	w.store.reset()
	w.table.reset()
	w.log.Debug().Int("entities", n).Msg("world cleared")
}
