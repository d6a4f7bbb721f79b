package keel

import (
	"reflect"
	"strings"
)

// BaseSystem supplies the bookkeeping shared by most systems: an activity
// flag and no-op lifecycle hooks. The zero value is active. Embedders
// provide Info and OnUpdate themselves.
type BaseSystem struct {
	disabled bool
}

func (b *BaseSystem) Active() bool { return !b.disabled }

func (b *BaseSystem) SetActive(on bool) { b.disabled = !on }

func (b *BaseSystem) OnAdd(*World) {}

func (b *BaseSystem) OnDestroy(*World) {}

// systemName resolves the display name for s, falling back to the concrete
// type name when the descriptor leaves it empty.
func systemName(s System) string {
	if n := s.Info().Name; n != "" {
		return n
	}
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

type constraintKind uint8

const (
	constraintFirst constraintKind = iota
	constraintLast
	constraintBefore
	constraintAfter
)

type constraint struct {
	kind   constraintKind
	target string
}

// parseConstraints decodes a system's ordering directives. "first" and
// "last" on the same system conflict and fail; anything outside the grammar
// fails.
func parseConstraints(name string, order []string) ([]constraint, error) {
	var (
		cs          []constraint
		first, last bool
	)
	for _, raw := range order {
		switch {
		case raw == "first":
			first = true
			cs = append(cs, constraint{kind: constraintFirst})
		case raw == "last":
			last = true
			cs = append(cs, constraint{kind: constraintLast})
		case strings.HasPrefix(raw, "before:"):
			target := strings.TrimPrefix(raw, "before:")
			if target == "" {
				return nil, ConstraintError{System: name, Constraint: raw, Reason: "empty target"}
			}
			cs = append(cs, constraint{kind: constraintBefore, target: target})
		case strings.HasPrefix(raw, "after:"):
			target := strings.TrimPrefix(raw, "after:")
			if target == "" {
				return nil, ConstraintError{System: name, Constraint: raw, Reason: "empty target"}
			}
			cs = append(cs, constraint{kind: constraintAfter, target: target})
		default:
			return nil, ConstraintError{System: name, Constraint: raw, Reason: "unknown directive"}
		}
	}
	if first && last {
		return nil, ConstraintError{System: name, Constraint: "first", Reason: `conflicts with "last"`}
	}
	return cs, nil
}
