package keel

type factory struct{}

var Factory factory

func (f factory) NewWorld(opts ...WorldOption) *World {
	return newWorld(opts...)
}

// NewGroup builds a user-defined system group. parent names the group it
// registers under ("" for the root); order carries its constraints.
func (f factory) NewGroup(name, parent string, order ...string) *SystemGroup {
	return newSystemGroup(name, parent, false, order...)
}

// NewOneShotGroup builds a group that deactivates itself and its children
// after each run.
func (f factory) NewOneShotGroup(name, parent string, order ...string) *SystemGroup {
	return newSystemGroup(name, parent, true, order...)
}
