package autowire

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/km-arc/go-autowire/framework/container"
	"github.com/km-arc/go-autowire/framework/diag"
)

// ErrNoModules is returned by Run when called without modules. Nothing is
// scanned and the container is untouched.
var ErrNoModules = errors.New("autowire: at least one module must be specified")

// Driver walks modules in caller order, evaluates every declared service and
// applies the accepted plans to the container. Rejections and warnings are
// reported on the diagnostic sink and never abort the batch; only the empty
// module list is a hard failure.
type Driver struct {
	container *container.Container
	diag      diag.Sink
	builder   *Builder
}

// Option configures a Driver.
type Option func(*Driver)

// WithDiagnostics substitutes the diagnostic sink (default: colored console).
func WithDiagnostics(s diag.Sink) Option {
	return func(d *Driver) { d.diag = s }
}

// New creates a Driver registering into c.
func New(c *container.Container, opts ...Option) *Driver {
	d := &Driver{
		container: c,
		diag:      diag.NewConsole(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.builder = &Builder{Diag: d.diag}
	return d
}

// Run scans the modules in order and registers every eligible service,
// returning the container for chaining and the number of registration calls
// performed. Both legs of an AsInterface|AsSelf marker count separately.
// Running twice repeats every registration — there is no de-duplication, the
// container's last-write-wins binding semantics decide.
func (d *Driver) Run(modules ...Module) (*container.Container, int, error) {
	if len(modules) == 0 {
		return nil, 0, ErrNoModules
	}

	count := 0
	for _, m := range modules {
		diag.Infof(d.diag, "autowiring module %q", m.Name)
		for _, svc := range m.Services {
			if !d.eligible(m, svc) {
				continue
			}
			plan, err := d.builder.Evaluate(svc)
			if err != nil {
				diag.Errorf(d.diag, "%v; skipping", err)
				continue
			}
			count += d.apply(plan)
		}
	}

	diag.Successf(d.diag, "autowire complete: %d registrations", count)
	return d.container, count, nil
}

// eligible weeds out declarations the builder cannot evaluate. Each miss is
// reported and the service skipped; the batch continues.
func (d *Driver) eligible(m Module, svc Service) bool {
	switch {
	case svc.Type == nil:
		diag.Errorf(d.diag, "module %q declares a service with no implementation type; skipping", m.Name)
		return false
	case svc.Type.Kind() == reflect.Interface:
		diag.Errorf(d.diag, "%s is an interface, not a concrete implementation; skipping", typeName(svc.Type))
		return false
	case svc.Build == nil:
		diag.Errorf(d.diag, "%s has no constructor; skipping", typeName(svc.Type))
		return false
	}
	return true
}

// apply performs up to two independent registrations for one plan and returns
// how many were made. An AsInterface leg without a resolved contract was
// already warned about during evaluation and is silently skipped here.
func (d *Driver) apply(p *Plan) int {
	n := 0
	if p.As.Has(AsSelf) {
		d.register(p.Implementation, p)
		diag.Successf(d.diag, "registered %s as itself (%s)", typeName(p.Implementation), p.Lifetime)
		n++
	}
	if p.As.Has(AsInterface) && p.Contract != nil {
		d.register(p.Contract, p)
		diag.Successf(d.diag, "registered %s as %s (%s)", typeName(p.Implementation), typeName(p.Contract), p.Lifetime)
		n++
	}
	return n
}

// register maps the plan's lifetime onto the container's registration
// surface. The enum is closed; anything else is a programming error.
func (d *Driver) register(contract reflect.Type, p *Plan) {
	switch p.Lifetime {
	case Scoped:
		d.container.RegisterScoped(contract, p.Implementation, p.Build)
	case Transient:
		d.container.RegisterTransient(contract, p.Implementation, p.Build)
	case Singleton:
		d.container.RegisterSingleton(contract, p.Implementation, p.Build)
	default:
		panic(fmt.Sprintf("autowire: unknown lifetime %d", int(p.Lifetime)))
	}
}
