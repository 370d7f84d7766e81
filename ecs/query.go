package ecs

import "iter"

// Query is a View that caches its matching archetypes and snapshots the
// matching entities once per frame. The Scheduler calls Execute before the
// owning system runs; standalone queries call it themselves.
type Query[T any] struct {
	view           *View[T]
	storage        *Storage
	archetypes     []*Archetype
	archetypeCount int

	entities   []EntityId
	components []T
	valid      bool
}

func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to a storage. The Scheduler calls it on registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.archetypes = nil
	q.archetypeCount = -1
	q.valid = false
}

// Execute rebuilds the snapshot of matching entities.
func (q *Query[T]) Execute() {
	if n := len(q.storage.archetypes); n != q.archetypeCount {
		q.archetypes = q.archetypes[:0]
		for _, archetype := range q.storage.Archetypes() {
			if q.view.matches(archetype) {
				q.archetypes = append(q.archetypes, archetype)
			}
		}
		q.archetypeCount = n
	}

	q.entities = q.entities[:0]
	q.components = q.components[:0]
	for _, archetype := range q.archetypes {
		for id, item := range q.view.iterArchetype(archetype) {
			q.entities = append(q.entities, id)
			q.components = append(q.components, item)
		}
	}
	q.valid = true
}

// Invalidate drops the snapshot so that iterating before the next Execute panics.
func (q *Query[T]) Invalidate() {
	q.valid = false
}

// Len is the number of entities in the current snapshot.
func (q *Query[T]) Len() int {
	return len(q.entities)
}

// All yields entity IDs with their component data.
// Panics if Execute has not been called since the last Invalidate.
func (q *Query[T]) All() iter.Seq2[EntityId, T] {
	if !q.valid {
		panic("Query.All() called before Query.Execute()")
	}
	return func(yield func(EntityId, T) bool) {
		for i := range q.entities {
			if !yield(q.entities[i], q.components[i]) {
				return
			}
		}
	}
}

// Iter yields component data only.
// Panics if Execute has not been called since the last Invalidate.
func (q *Query[T]) Iter() iter.Seq[T] {
	if !q.valid {
		panic("Query.Iter() called before Query.Execute()")
	}
	return func(yield func(T) bool) {
		for i := range q.components {
			if !yield(q.components[i]) {
				return
			}
		}
	}
}
