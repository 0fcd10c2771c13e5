package autowire

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/km-arc/go-autowire/framework/container"
	"github.com/km-arc/go-autowire/framework/diag"
)

// Plan is the resolved registration intent for one service: built once per
// candidate, applied by the driver, then discarded.
type Plan struct {
	Lifetime Lifetime
	As       RegisterAs

	// Contract is the interface to register under. Nil when AsInterface was
	// requested but no contract could be resolved — the driver then skips
	// the interface leg with a warning instead of failing the plan.
	Contract reflect.Type

	// Implementation is the candidate's concrete type.
	Implementation reflect.Type

	// Build is the candidate's constructor, carried through untouched.
	Build container.Factory
}

// Builder turns service declarations into validated plans.
type Builder struct {
	// Diag receives the non-terminal warnings raised during evaluation.
	Diag diag.Sink
}

// The disposal contracts: services commonly implement these incidentally, so
// the selection heuristic prefers any other declared interface over them.
var (
	closerType     = reflect.TypeOf((*io.Closer)(nil)).Elem()
	shutdownerType = reflect.TypeOf((*container.Shutdowner)(nil)).Elem()
)

// Evaluate builds the plan for one service, or returns the rejection reason.
// A rejection is terminal for the candidate; the caller emits the error as a
// diagnostic and moves on. Warnings (interface requested, none resolvable)
// are emitted on b.Diag and do NOT reject — an AsSelf leg must still run.
func (b *Builder) Evaluate(svc Service) (*Plan, error) {
	name := typeName(svc.Type)

	if svc.Marker.As == 0 {
		return nil, fmt.Errorf("%s has RegisterAs set to none", name)
	}

	var contract reflect.Type
	if svc.Marker.As.Has(AsInterface) {
		if explicit := svc.Marker.Contract; explicit != nil {
			if explicit.Kind() != reflect.Interface {
				return nil, fmt.Errorf("%s specifies non-interface type %s as its contract", name, typeName(explicit))
			}
			if !svc.Type.Implements(explicit) {
				return nil, fmt.Errorf("%s does not implement specified interface %s", name, typeName(explicit))
			}
			contract = explicit
		} else {
			contract = selectContract(svc.Type, svc.Implements)
			if contract == nil {
				diag.Warningf(b.Diag, "%s has no interface to register as", name)
			}
		}
	}

	return &Plan{
		Lifetime:       svc.Marker.Lifetime,
		As:             svc.Marker.As,
		Contract:       contract,
		Implementation: svc.Type,
		Build:          svc.Build,
	}, nil
}

// selectContract picks the interface to register under when the marker does
// not name one. The declared list is walked in order, twice:
//
//  1. first interface that is neither a disposal contract (io.Closer,
//     container.Shutdowner) nor from the standard library wins;
//  2. otherwise the very first declared interface wins, even a disposal or
//     stdlib one — something is better than nothing, and first-interface-wins
//     is the documented default when filtering gives no signal.
//
// Entries the implementation does not actually satisfy are ignored outright,
// so a resolved contract is always one the service implements.
func selectContract(impl reflect.Type, declared []reflect.Type) reflect.Type {
	var implemented []reflect.Type
	for _, t := range declared {
		if t == nil || t.Kind() != reflect.Interface || !impl.Implements(t) {
			continue
		}
		implemented = append(implemented, t)
	}

	for _, t := range implemented {
		if isDisposal(t) || isStdlib(t) {
			continue
		}
		return t
	}
	if len(implemented) > 0 {
		return implemented[0]
	}
	return nil
}

func isDisposal(t reflect.Type) bool {
	return t == closerType || t == shutdownerType
}

// isStdlib reports whether the interface comes from the Go standard library:
// the first segment of its import path has no dot. Unnamed interface types
// count as stdlib too — there is nothing meaningful to register them under.
func isStdlib(t reflect.Type) bool {
	pkg := t.PkgPath()
	if pkg == "" {
		return true
	}
	first, _, _ := strings.Cut(pkg, "/")
	return !strings.Contains(first, ".")
}

// typeName renders a type for diagnostics, without the pointer noise.
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.String()
}
