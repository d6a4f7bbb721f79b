package keel

// EntityID uniquely identifies an entity within a World. Identifiers are
// handed out in ascending order and never reused for the life of the World.
type EntityID uint64

// Component is a typed piece of state attached to exactly one entity.
// Implementations are pointers to structs embedding Attachment.
type Component interface {
	anchor() *Attachment
}

// System is a unit of per-step behavior. Most implementations embed
// BaseSystem and provide Info and OnUpdate themselves.
type System interface {
	Info() SystemInfo
	Active() bool
	SetActive(bool)
	OnAdd(w *World)
	OnUpdate(w *World)
	OnDestroy(w *World)
}

// SystemInfo describes where a system lives in the tree and when it runs
// relative to its siblings.
type SystemInfo struct {
	// Name is used for lookups and ordering constraints. When empty, the
	// name of the concrete type is used instead.
	Name string

	// Group names the parent group. Empty means the root group.
	Group string

	// Order holds ordering constraints evaluated against siblings:
	// "first", "last", "before:<name>", "after:<name>".
	Order []string
}
