package autowire

import (
	"reflect"
	"strings"
)

//go:generate go tool stringer -type=Lifetime -output=lifetime_string.go

// Lifetime selects which container registration a plan is applied with.
// The enum is closed: the driver panics on any other value.
type Lifetime int

const (
	// Scoped — one instance per unit of work (container.Scope).
	Scoped Lifetime = iota
	// Transient — a new instance per resolution.
	Transient
	// Singleton — one instance for the life of the container.
	Singleton
)

// RegisterAs says which contracts a service is registered under. The two
// flags combine: AsInterface|AsSelf registers both legs from one marker.
type RegisterAs uint8

const (
	// AsInterface registers the service under an interface contract —
	// the explicit one if the marker names it, otherwise the first suitable
	// declared interface (see Builder).
	AsInterface RegisterAs = 1 << iota
	// AsSelf registers the service under its own concrete type.
	AsSelf
)

// Has reports whether flag is set.
func (a RegisterAs) Has(flag RegisterAs) bool { return a&flag != 0 }

func (a RegisterAs) String() string {
	if a == 0 {
		return "None"
	}
	var parts []string
	if a.Has(AsInterface) {
		parts = append(parts, "Interface")
	}
	if a.Has(AsSelf) {
		parts = append(parts, "Self")
	}
	return strings.Join(parts, "|")
}

// Marker is the declarative registration request attached to one service
// declaration. It is metadata, not behavior: evaluation lives entirely in the
// Builder and Driver. Markers are never shared or inherited between services.
type Marker struct {
	// Lifetime of every registration this marker produces.
	Lifetime Lifetime

	// As selects the registration legs.
	As RegisterAs

	// Contract, when non-nil, pins the interface to register under instead
	// of running the selection heuristic. Must be an interface type the
	// service implements; the Builder rejects the service otherwise.
	Contract reflect.Type
}
