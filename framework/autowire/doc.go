// Package autowire registers declaratively marked services into the IoC
// container at startup.
//
// # Overview
//
// Each module declares its services with a Marker: a lifetime (Scoped,
// Transient, Singleton), the registration legs (AsInterface, AsSelf — they
// combine) and optionally an explicit interface contract. The Driver walks
// the modules once, the Builder turns every declaration into a validated
// Plan, and each accepted plan becomes one or two container registrations.
//
//	modules := []autowire.Module{{
//	    Name: "catalog",
//	    Services: []autowire.Service{{
//	        Type:       autowire.TypeOf[*memoryWidgetRepo](),
//	        Implements: []reflect.Type{autowire.TypeOf[io.Closer](), autowire.TypeOf[WidgetRepo]()},
//	        Build:      func(c *container.Container) any { return newMemoryWidgetRepo() },
//	        Marker:     autowire.Marker{Lifetime: autowire.Singleton, As: autowire.AsInterface},
//	    }},
//	}}
//
//	drv := autowire.New(c)
//	if _, n, err := drv.Run(modules...); err != nil {
//	    log.Fatal(err)
//	}
//
// # Contract selection
//
// When AsInterface is requested without an explicit contract, the first
// declared interface that is neither a disposal contract (io.Closer,
// container.Shutdowner) nor from the standard library is chosen. If every
// declared interface is filtered out, the first one wins anyway; if none are
// declared, the interface leg is skipped with a warning and any AsSelf leg
// still registers.
//
// # Failure model
//
// Per-candidate problems (RegisterAs set to none, a non-interface explicit
// contract, an unimplemented explicit contract, a missing constructor) skip
// that candidate with an error diagnostic and the batch continues.
// Registrations already applied stay applied. Only an empty module list fails
// the run itself.
package autowire
