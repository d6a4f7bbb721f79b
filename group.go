package keel

import "slices"

// Built-in group names. The root group owns four fixed phases, ordered by
// their own constraints: Initialization runs first and only once, then
// EarlyUpdate, Update and LateUpdate run every step.
const (
	GroupRoot           = "SystemManager"
	GroupInitialization = "Initialization"
	GroupEarlyUpdate    = "EarlyUpdate"
	GroupUpdate         = "Update"
	GroupLateUpdate     = "LateUpdate"
)

// SystemGroup is a System that owns an ordered list of child systems.
// Toggling a group cascades to everything beneath it; a one-shot group
// deactivates itself and its children after each run.
type SystemGroup struct {
	BaseSystem
	info     SystemInfo
	oneShot  bool
	children []System
	ordered  []System
}

func newSystemGroup(name, parent string, oneShot bool, order ...string) *SystemGroup {
	return &SystemGroup{
		info:    SystemInfo{Name: name, Group: parent, Order: order},
		oneShot: oneShot,
	}
}

func (g *SystemGroup) Info() SystemInfo { return g.info }

// SetActive toggles the group and every system beneath it.
func (g *SystemGroup) SetActive(on bool) {
	g.BaseSystem.SetActive(on)
	for _, child := range g.children {
		child.SetActive(on)
	}
}

// OnUpdate runs the active children in scheduled order. A one-shot group
// then switches itself off until someone reactivates it.
func (g *SystemGroup) OnUpdate(w *World) {
	for _, child := range g.ordered {
		if !child.Active() {
			continue
		}
		w.runSystem(child)
	}
	if g.oneShot {
		g.SetActive(false)
	}
}

func (g *SystemGroup) OnAdd(w *World) {
	for _, child := range g.children {
		child.OnAdd(w)
	}
}

func (g *SystemGroup) OnDestroy(w *World) {
	for _, child := range g.children {
		child.OnDestroy(w)
	}
}

// Ordered returns a copy of the group's children in execution order.
func (g *SystemGroup) Ordered() []System {
	return slices.Clone(g.ordered)
}

// findGroup locates g or a descendant group by name, depth first.
func (g *SystemGroup) findGroup(name string) *SystemGroup {
	if g.info.Name == name {
		return g
	}
	for _, child := range g.children {
		if sub, ok := child.(*SystemGroup); ok {
			if found := sub.findGroup(name); found != nil {
				return found
			}
		}
	}
	return nil
}

// locate finds the named system and its owning group, depth first. Returns
// a nil system when nothing matches.
func (g *SystemGroup) locate(name string) (*SystemGroup, System) {
	for _, child := range g.children {
		if systemName(child) == name {
			return g, child
		}
		if sub, ok := child.(*SystemGroup); ok {
			if owner, found := sub.locate(name); found != nil {
				return owner, found
			}
		}
	}
	return nil, nil
}

// walk visits every system under g depth first, stopping early when fn
// returns false.
func (g *SystemGroup) walk(fn func(System) bool) bool {
	for _, child := range g.children {
		if !fn(child) {
			return false
		}
		if sub, ok := child.(*SystemGroup); ok {
			if !sub.walk(fn) {
				return false
			}
		}
	}
	return true
}
