package container

import (
	"fmt"
	"reflect"
	"sync"
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory is a function that builds a concrete value from the container.
type Factory func(c *Container) any

// lifetime is the binding lifecycle. Transient rebuilds on every Make,
// singleton is cached on the container, scoped is cached per Scope.
type lifetime int

const (
	transient lifetime = iota
	singleton
	scoped
)

// binding holds a registered factory and its lifetime.
type binding struct {
	factory Factory
	life    lifetime
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the IoC container the autowire engine registers into.
//
// It supports:
//   - Bind / Singleton / Scoped / Instance / Alias (string-keyed)
//   - RegisterTransient / RegisterSingleton / RegisterScoped (type-keyed,
//     chainable — the surface the registration driver drives)
//   - Make / Resolve / ResolveType
//   - Scopes (one instance per unit of work, released on Scope.Close)
type Container struct {
	mu sync.RWMutex

	// abstract → binding
	bindings map[string]*binding

	// abstract → resolved singleton instance
	instances map[string]any

	// abstract → scoped instance resolved outside any Scope (the root scope)
	rootScoped map[string]any

	// alias → abstract (canonical key)
	aliases map[string]string
}

// New creates an empty container, pre-bound to itself under "container".
func New() *Container {
	c := &Container{
		bindings:   make(map[string]*binding),
		instances:  make(map[string]any),
		rootScoped: make(map[string]any),
		aliases:    make(map[string]string),
	}
	c.Instance("container", c)
	return c
}

// ── String-keyed registration ─────────────────────────────────────────────────

// Bind registers a transient factory: a new instance on every Make.
func (c *Container) Bind(abstract string, factory Factory) {
	c.register(abstract, factory, transient)
}

// Singleton registers a factory whose result is cached after first resolution.
func (c *Container) Singleton(abstract string, factory Factory) {
	c.register(abstract, factory, singleton)
}

// Scoped registers a factory resolved once per Scope. Resolving a scoped
// binding directly on the container uses the container's own root scope.
func (c *Container) Scoped(abstract string, factory Factory) {
	c.register(abstract, factory, scoped)
}

// Instance registers a pre-built value as a singleton.
func (c *Container) Instance(abstract string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	c.instances[key] = instance
}

// Alias registers an alternative name for an abstract.
func (c *Container) Alias(abstract, alias string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if abstract == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", abstract))
	}
	c.aliases[alias] = c.canonical(abstract)
}

func (c *Container) register(abstract string, factory Factory, life lifetime) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)

	// Drop stale caches so the key is rebuilt with the new factory.
	delete(c.instances, key)
	delete(c.rootScoped, key)

	c.bindings[key] = &binding{factory: factory, life: life}
}

// ── Type-keyed registration ───────────────────────────────────────────────────
//
// The three operations below are the registration sink the autowire driver
// issues plans against: (contract, implementation, constructor), one method
// per lifetime, each returning the container for chaining. The contract type
// becomes the binding key via KeyOf; the implementation's own key is reachable
// through a Self registration, never inferred here.

// RegisterTransient binds impl under the contract type, rebuilt every Make.
func (c *Container) RegisterTransient(contract, impl reflect.Type, build Factory) *Container {
	c.Bind(KeyOf(contract), build)
	return c
}

// RegisterSingleton binds impl under the contract type, built once.
func (c *Container) RegisterSingleton(contract, impl reflect.Type, build Factory) *Container {
	c.Singleton(KeyOf(contract), build)
	return c
}

// RegisterScoped binds impl under the contract type, built once per Scope.
func (c *Container) RegisterScoped(contract, impl reflect.Type, build Factory) *Container {
	c.Scoped(KeyOf(contract), build)
	return c
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves an abstract from the container.
// It panics if nothing is bound under the key — a missing binding at
// resolution time is a programming error, not a recoverable condition.
func (c *Container) Make(abstract string) any {
	key, b, inst, cached := c.lookup(abstract)
	if cached {
		return inst
	}
	if b == nil {
		panic(fmt.Sprintf("container: no binding registered for [%s]", abstract))
	}

	instance := b.factory(c)

	switch b.life {
	case singleton:
		c.mu.Lock()
		c.instances[key] = instance
		c.mu.Unlock()
	case scoped:
		c.mu.Lock()
		c.rootScoped[key] = instance
		c.mu.Unlock()
	}
	return instance
}

// bindingFor resolves the canonical key and its binding without consulting
// the instance caches. Used by Scope to decide whether a key is scoped.
func (c *Container) bindingFor(abstract string) (string, *binding) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(abstract)
	return key, c.bindings[key]
}

// lookup resolves the canonical key and returns either a cached instance or
// the binding to build from.
func (c *Container) lookup(abstract string) (key string, b *binding, inst any, cached bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key = c.canonical(abstract)
	if inst, ok := c.instances[key]; ok {
		return key, nil, inst, true
	}
	if inst, ok := c.rootScoped[key]; ok {
		return key, nil, inst, true
	}
	return key, c.bindings[key], nil, false
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound reports whether an abstract has been registered.
func (c *Container) Bound(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(abstract)
	_, hasBinding := c.bindings[key]
	_, hasInstance := c.instances[key]
	return hasBinding || hasInstance
}

// Forget removes all registrations for an abstract (binding + caches).
func (c *Container) Forget(abstract string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	delete(c.instances, key)
	delete(c.rootScoped, key)
}

// Flush resets the entire container.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings = make(map[string]*binding)
	c.instances = make(map[string]any)
	c.rootScoped = make(map[string]any)
	c.aliases = make(map[string]string)
}

// Bindings returns all registered abstract keys (for debugging).
func (c *Container) Bindings() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.bindings)+len(c.instances))
	for k := range c.bindings {
		out = append(out, k)
	}
	for k := range c.instances {
		if _, already := c.bindings[k]; !already {
			out = append(out, k)
		}
	}
	return out
}

// canonical resolves an alias to its canonical key (callers hold mu).
func (c *Container) canonical(abstract string) string {
	if target, ok := c.aliases[abstract]; ok {
		return target
	}
	return abstract
}

// ── Type keys ─────────────────────────────────────────────────────────────────

// KeyOf returns the package-qualified name of a reflect.Type — the binding key
// used by the type-keyed Register* operations. Pointer types key on their
// element so *WidgetService and WidgetService share one key.
func KeyOf(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.PkgPath() + "." + t.Name()
}

// TypeKey returns KeyOf of a value's dynamic type.
//
//	key := container.TypeKey((*WidgetRepo)(nil))
func TypeKey(v any) string {
	return KeyOf(reflect.TypeOf(v))
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve calls Make and type-asserts the result.
//
//	repo := container.Resolve[WidgetRepo](c, "widgets")
func Resolve[T any](c *Container, abstract string) T {
	instance := c.Make(abstract)
	typed, ok := instance.(T)
	if !ok {
		panic(fmt.Sprintf("container: Resolve[%T]: [%s] resolved to %T", *new(T), abstract, instance))
	}
	return typed
}

// ResolveType resolves by T's own type key — the usual way to pull out a
// service the autowire engine registered under an interface contract.
//
//	repo := container.ResolveType[WidgetRepo](c)
func ResolveType[T any](c *Container) T {
	key := KeyOf(reflect.TypeOf((*T)(nil)).Elem())
	return Resolve[T](c, key)
}
