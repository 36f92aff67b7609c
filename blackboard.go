package rendergraph

import "reflect"

// Blackboard is a type-keyed store holding exactly one value of each
// registered type. Passes use it to hand strongly typed state (camera data,
// light lists, recorded texture version ids) from Setup to Execute.
//
// A Blackboard belongs to one graph; it is not safe for concurrent use.
type Blackboard struct {
	items map[reflect.Type]any
}

// NewBlackboard creates an empty blackboard.
func NewBlackboard() *Blackboard {
	return &Blackboard{items: make(map[reflect.Type]any)}
}

// Add stores a zero T in bb and returns a pointer to it.
// Adding the same type twice panics.
func Add[T any](bb *Blackboard) *T {
	key := reflect.TypeFor[T]()
	if _, exists := bb.items[key]; exists {
		contractf("blackboard already holds a %v", key)
	}
	v := new(T)
	bb.items[key] = v
	return v
}

// Get returns the T stored in bb. It panics if no T was added.
func Get[T any](bb *Blackboard) *T {
	v, ok := Lookup[T](bb)
	if !ok {
		contractf("blackboard holds no %v", reflect.TypeFor[T]())
	}
	return v
}

// Lookup returns the T stored in bb, if any.
func Lookup[T any](bb *Blackboard) (*T, bool) {
	v, ok := bb.items[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// Len returns the number of values stored in bb.
func (bb *Blackboard) Len() int {
	return len(bb.items)
}
