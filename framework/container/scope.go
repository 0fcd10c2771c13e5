package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// Shutdowner is the asynchronous release hook: scoped instances that hold
// connections or background work implement it to be drained on Scope.Close.
// The synchronous counterpart is io.Closer.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// Scope is one unit of work (an HTTP request, a job, a test). Bindings
// registered as scoped resolve to at most one instance per Scope; everything
// else delegates to the parent container.
type Scope struct {
	parent *Container

	mu        sync.Mutex
	instances map[string]any
	closed    bool
}

// NewScope opens a fresh scope on the container.
func (c *Container) NewScope() *Scope {
	return &Scope{
		parent:    c,
		instances: make(map[string]any),
	}
}

// Make resolves an abstract within the scope. Scoped bindings are cached on
// the scope; transient and singleton bindings behave exactly as on the parent.
// Panics if the scope is closed or the key is unbound.
func (s *Scope) Make(abstract string) any {
	key, b := s.parent.bindingFor(abstract)
	if b == nil || b.life != scoped {
		// Pre-built instances, singletons and transients — and the panic on a
		// genuinely unbound key — all belong to the parent.
		return s.parent.Make(abstract)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		panic(fmt.Sprintf("container: Make[%s] on a closed scope", abstract))
	}
	if inst, ok := s.instances[key]; ok {
		return inst
	}
	instance := b.factory(s.parent)
	s.instances[key] = instance
	return instance
}

// Close releases every instance the scope built. Instances implementing
// Shutdowner are drained with ctx, instances implementing io.Closer are
// closed; errors are joined, and every instance is attempted regardless.
// Close is idempotent.
func (s *Scope) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	for key, inst := range s.instances {
		switch v := inst.(type) {
		case Shutdowner:
			if err := v.Shutdown(ctx); err != nil {
				errs = append(errs, fmt.Errorf("container: shutdown [%s]: %w", key, err))
			}
		case io.Closer:
			if err := v.Close(); err != nil {
				errs = append(errs, fmt.Errorf("container: close [%s]: %w", key, err))
			}
		}
	}
	s.instances = nil
	return errors.Join(errs...)
}

// ResolveIn is the generic form of Scope.Make.
//
//	tx := container.ResolveIn[*UnitOfWork](scope, "uow")
func ResolveIn[T any](s *Scope, abstract string) T {
	instance := s.Make(abstract)
	typed, ok := instance.(T)
	if !ok {
		panic(fmt.Sprintf("container: ResolveIn[%T]: [%s] resolved to %T", *new(T), abstract, instance))
	}
	return typed
}
