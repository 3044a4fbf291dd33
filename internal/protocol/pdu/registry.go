package pdu

import (
	"fmt"
	"sort"
	"sync"
)

// Factory returns a fresh, zero-valued body.
type Factory func() Body

// Registry maps PDU type discriminants to body factories.
// Registration is expected at startup; Resolve is safe for concurrent use
// once registration is done.
type Registry struct {
	items map[Type]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[Type]Factory)}
}

// Register binds t to factory. The factory's body must report type t.
func (r *Registry) Register(t Type, factory Factory) error {
	if factory == nil {
		return ErrNilFactory
	}
	body := factory()
	if body == nil {
		return ErrNilFactory
	}
	if body.Type() != t {
		return fmt.Errorf("%w: %s factory builds %s", ErrTypeMismatch, t, body.Type())
	}
	if _, ok := r.items[t]; ok {
		return fmt.Errorf("%w: %s", ErrTypeExists, t)
	}
	r.items[t] = factory
	return nil
}

// Resolve returns the factory registered for t.
func (r *Registry) Resolve(t Type) (Factory, bool) {
	f, ok := r.items[t]
	return f, ok
}

// Types returns registered types in ascending order.
func (r *Registry) Types() []Type {
	list := make([]Type, 0, len(r.items))
	for t := range r.items {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// DefaultRegistry returns the shared registry holding every catalogue body.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		reg := NewRegistry()
		for _, f := range catalogue {
			if err := reg.Register(f().Type(), f); err != nil {
				panic(err)
			}
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

var catalogue = []Factory{
	func() Body { return &EntityState{} },
	func() Body { return &Fire{} },
	func() Body { return &Detonation{} },
	func() Body { return &Collision{} },
	func() Body { return &ServiceRequest{} },
	func() Body { return &ResupplyOffer{} },
	func() Body { return &ResupplyReceived{} },
	func() Body { return &ResupplyCancel{} },
	func() Body { return &RepairComplete{} },
	func() Body { return &RepairResponse{} },
	func() Body { return &CreateEntity{} },
	func() Body { return &RemoveEntity{} },
	func() Body { return &StartResume{} },
	func() Body { return &StopFreeze{} },
	func() Body { return &Acknowledge{} },
	func() Body { return &ActionRequest{} },
	func() Body { return &ActionResponse{} },
	func() Body { return &DataQuery{} },
	func() Body { return &SetData{} },
	func() Body { return &Data{} },
	func() Body { return &EventReport{} },
	func() Body { return &Comment{} },
	func() Body { return &ElectromagneticEmission{} },
	func() Body { return &Designator{} },
	func() Body { return &Transmitter{} },
	func() Body { return &Signal{} },
	func() Body { return &Receiver{} },
	func() Body { return &EntityStateUpdate{} },
}
