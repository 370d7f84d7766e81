package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry maps component types to the column constructors used by
// archetypes. Every component type must be registered before it is spawned.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent makes T usable as a component in storages built from r.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() column {
		return &typedColumn[T]{}
	}
}

func (r *ComponentRegistry) factory(t reflect.Type) func() column {
	return r.factories[t]
}

// column is the type-erased storage for one component type of an archetype.
type column interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

const blockSize = 64

// typedColumn stores components in fixed-size blocks so pointers handed out
// by Get stay valid while the column grows. Deleted slots are reused.
type typedColumn[T any] struct {
	blocks [][blockSize]T
	filled [][blockSize]bool
	free   []int
	next   int
	count  int
}

func (c *typedColumn[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(c.free); n > 0 {
		index = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		index = c.next
		c.next++
		if index/blockSize >= len(c.blocks) {
			c.blocks = append(c.blocks, [blockSize]T{})
			c.filled = append(c.filled, [blockSize]bool{})
		}
	}

	c.blocks[index/blockSize][index%blockSize] = value
	c.filled[index/blockSize][index%blockSize] = true
	c.count++
	return index
}

func (c *typedColumn[T]) Has(index int) bool {
	if index < 0 || index/blockSize >= len(c.filled) {
		return false
	}
	return c.filled[index/blockSize][index%blockSize]
}

// Get returns a *T for the slot, or nil when the slot is empty.
func (c *typedColumn[T]) Get(index int) any {
	if !c.Has(index) {
		return nil
	}
	return &c.blocks[index/blockSize][index%blockSize]
}

func (c *typedColumn[T]) Delete(index int) {
	if !c.Has(index) {
		return
	}
	var zero T
	c.blocks[index/blockSize][index%blockSize] = zero
	c.filled[index/blockSize][index%blockSize] = false
	c.free = append(c.free, index)
	c.count--
}

func (c *typedColumn[T]) Len() int {
	return c.count
}

func (c *typedColumn[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.next; i++ {
			if c.filled[i/blockSize][i%blockSize] && !yield(i) {
				return
			}
		}
	}
}
