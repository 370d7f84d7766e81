package ecs

import (
	"iter"
	"reflect"
	"slices"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity that has exactly one particular set of
// component types, one column per type.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
}

// NewArchetype builds an archetype for the sorted component types. It panics
// if any type is missing from the registry.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
	}
	for i, typ := range types {
		factory := registry.factory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.columns[i] = factory()
	}
	return a
}

func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types of this archetype.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

func (a *Archetype) columnOf(compType reflect.Type) int {
	return slices.Index(a.types, compType)
}

// Spawn appends one component per column and returns the slot index. All
// columns allocate and free in lockstep, so the index is shared.
func (a *Archetype) Spawn(components []any) uint32 {
	var index int
	for _, comp := range components {
		if i := a.columnOf(componentType(comp)); i >= 0 {
			index = a.columns[i].Append(comp)
		}
	}
	return uint32(index)
}

// GetComponent returns a pointer to the component, or nil.
func (a *Archetype) GetComponent(index uint32, compType reflect.Type) any {
	i := a.columnOf(compType)
	if i < 0 {
		return nil
	}
	return a.columns[i].Get(int(index))
}

// Delete frees the slot in every column. Indices of other entities are unaffected.
func (a *Archetype) Delete(index uint32) {
	for _, c := range a.columns {
		c.Delete(int(index))
	}
}

func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// Iter yields the ID of every live entity in the archetype.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for index := range a.columns[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
