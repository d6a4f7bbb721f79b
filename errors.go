package keel

import (
	"fmt"
	"reflect"
	"strings"
)

type InvalidEntityError struct {
	ID EntityID
}

func (e InvalidEntityError) Error() string {
	return fmt.Sprintf("entity %d does not exist", e.ID)
}

type DuplicateComponentError struct {
	Type reflect.Type
}

func (e DuplicateComponentError) Error() string {
	return fmt.Sprintf("component already exists on entity: %v", e.Type)
}

type ComponentNotFoundError struct {
	Type reflect.Type
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component does not exist on entity: %v", e.Type)
}

type ComponentBoundError struct {
	Type   reflect.Type
	Owner  EntityID
	Target EntityID
}

func (e ComponentBoundError) Error() string {
	return fmt.Sprintf("component %v belongs to entity %d and cannot attach to entity %d", e.Type, e.Owner, e.Target)
}

type MissingResourceError struct {
	Type reflect.Type
}

func (e MissingResourceError) Error() string {
	return fmt.Sprintf("no resource of type %v", e.Type)
}

type ConstraintError struct {
	System     string
	Constraint string
	Reason     string
}

func (e ConstraintError) Error() string {
	return fmt.Sprintf("invalid ordering constraint %q on system %q: %s", e.Constraint, e.System, e.Reason)
}

type CycleError struct {
	Group string
	Edges []string
}

func (e CycleError) Error() string {
	return fmt.Sprintf("ordering cycle in group %q: %s", e.Group, strings.Join(e.Edges, ", "))
}

type UnknownGroupError struct {
	Group string
}

func (e UnknownGroupError) Error() string {
	return fmt.Sprintf("no group named %q", e.Group)
}

type UnknownSystemError struct {
	Name string
}

func (e UnknownSystemError) Error() string {
	return fmt.Sprintf("no system named %q", e.Name)
}
