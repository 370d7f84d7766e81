package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View reads entities through a struct of component pointers. Embedded
// fields are required; named fields tagged `ecs:"optional"` may be nil.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
}

// NewView inspects T once and panics if it is not a struct of pointers.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = true
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, optional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}
	return v
}

// Get returns the populated struct for the entity, or nil when a required
// component is missing.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// Fill populates ptr for the entity and reports whether every required
// component was found.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return v.populate(unsafe.Pointer(ptr), archetype, int(id.Index()), v.columnIndices(archetype))
}

func (v *View[T]) matches(archetype *Archetype) bool {
	for i, t := range v.types {
		if !v.optional[i] && !archetype.HasComponent(t) {
			return false
		}
	}
	return true
}

// columnIndices maps each view field to its column in the archetype, -1 when absent.
func (v *View[T]) columnIndices(archetype *Archetype) []int {
	indices := make([]int, len(v.types))
	for i, t := range v.types {
		indices[i] = archetype.columnOf(t)
	}
	return indices
}

func (v *View[T]) populate(resultPtr unsafe.Pointer, archetype *Archetype, index int, columns []int) bool {
	for i, col := range columns {
		fieldPtr := unsafe.Pointer(uintptr(resultPtr) + v.fieldOffset[i])

		var component any
		if col >= 0 {
			component = archetype.columns[col].Get(index)
		}
		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}
	return true
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		if len(archetype.columns) == 0 {
			return
		}
		columns := v.columnIndices(archetype)

		var result T
		resultPtr := unsafe.Pointer(&result)
		for index := range archetype.columns[0].Iter() {
			if !v.populate(resultPtr, archetype, index, columns) {
				continue
			}
			if !yield(NewEntityId(archetype.id, uint32(index)), result) {
				return
			}
		}
	}
}

// All yields every matching entity with its populated struct.
func (v *View[T]) All() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.Archetypes() {
			if !v.matches(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Iter yields the populated struct of every matching entity.
func (v *View[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.All() {
			if !yield(item) {
				return
			}
		}
	}
}
