package autowire

import (
	"reflect"

	"github.com/km-arc/go-autowire/framework/container"
)

// Service is one candidate: a concrete implementation type, the interfaces it
// declares (Go cannot enumerate satisfied interfaces, so the contract list is
// declared at module-definition time, in order), a constructor, and the
// registration marker.
type Service struct {
	// Type is the concrete implementation, usually a pointer-to-struct type.
	Type reflect.Type

	// Implements lists the service's interface contracts in declared order.
	// Order matters: the contract-selection heuristic takes the first
	// suitable entry.
	Implements []reflect.Type

	// Build constructs the service. Passed through to the container verbatim.
	Build container.Factory

	// Marker is the registration request.
	Marker Marker
}

// Module is a named, ordered set of service declarations — the unit the
// driver scans. Modules are plain data; declaring one registers nothing.
type Module struct {
	Name     string
	Services []Service
}

// TypeOf returns the reflect.Type for T without needing a value.
//
//	autowire.TypeOf[WidgetRepo]()        // interface contract
//	autowire.TypeOf[*memoryWidgetRepo]() // implementation
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
