package autowire_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-autowire/framework/autowire"
	"github.com/km-arc/go-autowire/framework/container"
	"github.com/km-arc/go-autowire/framework/diag"
)

func newDriver() (*autowire.Driver, *container.Container, *diag.Collector) {
	c := container.New()
	sink := &diag.Collector{}
	return autowire.New(c, autowire.WithDiagnostics(sink)), c, sink
}

// ── Entry validation ─────────────────────────────────────────────────────────

func TestRun_NoModules_FailsBeforeAnyWork(t *testing.T) {
	drv, _, sink := newDriver()

	got, count, err := drv.Run()

	require.ErrorIs(t, err, autowire.ErrNoModules)
	assert.Nil(t, got)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, sink.Len(), "no scanning or registration diagnostic before the failure")
}

// ── End to end ───────────────────────────────────────────────────────────────

// The canonical scenario: a scoped service implementing io.Closer then a
// business interface registers once, under the business interface.
func TestRun_ScopedWidget_RegistersUnderBusinessContract(t *testing.T) {
	drv, c, sink := newDriver()

	m := autowire.Module{Name: "catalog", Services: []autowire.Service{
		widgetService(autowire.Marker{Lifetime: autowire.Scoped, As: autowire.AsInterface},
			closerT, greeterT),
	}}

	got, count, err := drv.Run(m)
	require.NoError(t, err)
	assert.Same(t, c, got, "container handle returned for chaining")
	assert.Equal(t, 1, count)

	infos := sink.Messages(diag.LevelInfo)
	require.NotEmpty(t, infos)
	assert.Contains(t, infos[0], `"catalog"`)

	successes := sink.Messages(diag.LevelSuccess)
	require.Len(t, successes, 2) // one registration + the summary
	assert.Contains(t, successes[0], "greeter")
	assert.Contains(t, successes[0], "Scoped")
	assert.Contains(t, successes[1], "1 registrations")

	g := container.ResolveType[greeter](c)
	assert.Equal(t, "hello", g.Greet())
}

func TestRun_ScopedRegistration_IsPerScope(t *testing.T) {
	drv, c, _ := newDriver()

	_, _, err := drv.Run(autowire.Module{Name: "m", Services: []autowire.Service{
		widgetService(autowire.Marker{Lifetime: autowire.Scoped, As: autowire.AsInterface}, greeterT),
	}})
	require.NoError(t, err)

	s1 := c.NewScope()
	s2 := c.NewScope()
	defer s1.Close(context.Background())
	defer s2.Close(context.Background())

	key := container.KeyOf(greeterT)
	a := container.ResolveIn[greeter](s1, key)
	b := container.ResolveIn[greeter](s1, key)
	other := container.ResolveIn[greeter](s2, key)

	assert.Same(t, a.(*widget), b.(*widget), "one instance per scope")
	assert.NotSame(t, a.(*widget), other.(*widget), "distinct instance in a distinct scope")
}

// ── Legs ─────────────────────────────────────────────────────────────────────

func TestRun_SelfAndInterface_TwoRegistrations(t *testing.T) {
	drv, c, sink := newDriver()

	m := autowire.Module{Name: "m", Services: []autowire.Service{
		widgetService(autowire.Marker{
			Lifetime: autowire.Singleton,
			As:       autowire.AsInterface | autowire.AsSelf,
		}, greeterT),
	}}

	_, count, err := drv.Run(m)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one registration call per leg")

	viaContract := container.ResolveType[greeter](c)
	viaSelf := container.ResolveType[*widget](c)
	assert.NotNil(t, viaContract)
	assert.NotNil(t, viaSelf)

	// 2 legs + summary
	assert.Len(t, sink.Messages(diag.LevelSuccess), 3)
}

func TestRun_NoContract_SelfLegStillRegisters(t *testing.T) {
	drv, c, sink := newDriver()

	m := autowire.Module{Name: "m", Services: []autowire.Service{{
		Type:   autowire.TypeOf[*plain](),
		Build:  func(c *container.Container) any { return &plain{} },
		Marker: autowire.Marker{Lifetime: autowire.Transient, As: autowire.AsInterface | autowire.AsSelf},
	}}}

	_, count, err := drv.Run(m)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "interface leg skipped, self leg applied")
	assert.Len(t, sink.Messages(diag.LevelWarning), 1)
	assert.NotNil(t, container.ResolveType[*plain](c))
}

func TestRun_InterfaceOnlyNoContract_NothingRegistered(t *testing.T) {
	drv, c, sink := newDriver()

	m := autowire.Module{Name: "m", Services: []autowire.Service{{
		Type:   autowire.TypeOf[*plain](),
		Build:  func(c *container.Container) any { return &plain{} },
		Marker: autowire.Marker{As: autowire.AsInterface},
	}}}

	_, count, err := drv.Run(m)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Len(t, sink.Messages(diag.LevelWarning), 1)
	assert.False(t, c.Bound(container.KeyOf(autowire.TypeOf[*plain]())))
}

// ── Lifetime mapping ─────────────────────────────────────────────────────────

func TestRun_SingletonAndTransient_Lifetimes(t *testing.T) {
	drv, c, _ := newDriver()

	m := autowire.Module{Name: "m", Services: []autowire.Service{
		widgetService(autowire.Marker{Lifetime: autowire.Singleton, As: autowire.AsInterface}, greeterT),
		{
			Type:   autowire.TypeOf[*plain](),
			Build:  func(c *container.Container) any { return &plain{} },
			Marker: autowire.Marker{Lifetime: autowire.Transient, As: autowire.AsSelf},
		},
	}}

	_, count, err := drv.Run(m)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.Same(t,
		container.ResolveType[greeter](c).(*widget),
		container.ResolveType[greeter](c).(*widget),
		"singleton resolves to one instance")
	assert.NotSame(t,
		container.ResolveType[*plain](c),
		container.ResolveType[*plain](c),
		"transient rebuilds per resolution")
}

func TestRun_UnknownLifetime_Panics(t *testing.T) {
	drv, _, _ := newDriver()

	m := autowire.Module{Name: "m", Services: []autowire.Service{
		widgetService(autowire.Marker{Lifetime: autowire.Lifetime(99), As: autowire.AsSelf}),
	}}

	assert.Panics(t, func() { _, _, _ = drv.Run(m) })
}

// ── Skips and batch tolerance ────────────────────────────────────────────────

func TestRun_RejectionSkipsCandidateOnly(t *testing.T) {
	drv, c, sink := newDriver()

	m := autowire.Module{Name: "m", Services: []autowire.Service{
		widgetService(autowire.Marker{}), // RegisterAs none → rejected
		widgetService(autowire.Marker{Lifetime: autowire.Singleton, As: autowire.AsInterface}, greeterT),
	}}

	_, count, err := drv.Run(m)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "batch continues past the rejection")

	errs := sink.Messages(diag.LevelError)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "RegisterAs set to none")
	assert.NotNil(t, container.ResolveType[greeter](c))
}

func TestRun_IneligibleDeclarations_Skipped(t *testing.T) {
	drv, _, sink := newDriver()

	m := autowire.Module{Name: "m", Services: []autowire.Service{
		{Marker: autowire.Marker{As: autowire.AsSelf}}, // nil Type
		{ // interface used as an implementation
			Type:   greeterT,
			Build:  func(c *container.Container) any { return nil },
			Marker: autowire.Marker{As: autowire.AsSelf},
		},
		widgetService(autowire.Marker{As: autowire.AsSelf}), // fine, but widgetService sets Build
	}}
	// Strip the constructor from the last declaration to probe that path too.
	m.Services[2].Build = nil

	_, count, err := drv.Run(m)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	errs := sink.Messages(diag.LevelError)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0], "no implementation type")
	assert.Contains(t, errs[1], "is an interface")
	assert.Contains(t, errs[2], "has no constructor")
}

// ── Ordering and duplicates ──────────────────────────────────────────────────

func TestRun_ModulesProcessedInCallerOrder(t *testing.T) {
	drv, _, sink := newDriver()

	_, _, err := drv.Run(
		autowire.Module{Name: "zeta"},
		autowire.Module{Name: "alpha"},
	)
	require.NoError(t, err)

	infos := sink.Messages(diag.LevelInfo)
	require.Len(t, infos, 2)
	assert.Contains(t, infos[0], `"zeta"`)
	assert.Contains(t, infos[1], `"alpha"`)
}

func TestRun_DuplicatesAcrossModules_NotDeduplicated(t *testing.T) {
	drv, _, _ := newDriver()

	svc := widgetService(autowire.Marker{Lifetime: autowire.Singleton, As: autowire.AsInterface}, greeterT)
	_, count, err := drv.Run(
		autowire.Module{Name: "a", Services: []autowire.Service{svc}},
		autowire.Module{Name: "b", Services: []autowire.Service{svc}},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "each occurrence registers independently; the container overwrites")
}

func TestRun_Twice_RepeatsEverything(t *testing.T) {
	drv, _, sink := newDriver()

	m := autowire.Module{Name: "m", Services: []autowire.Service{
		widgetService(autowire.Marker{Lifetime: autowire.Singleton, As: autowire.AsInterface}, greeterT),
	}}

	_, first, err := drv.Run(m)
	require.NoError(t, err)
	_, second, err := drv.Run(m)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, sink.Messages(diag.LevelSuccess), 4, "two full passes, no de-duplication")
}

// ── Declared order sanity ────────────────────────────────────────────────────

func TestRun_ContractOrderFollowsDeclaration(t *testing.T) {
	drv, c, _ := newDriver()

	// namer first → namer wins; greeter stays unregistered.
	m := autowire.Module{Name: "m", Services: []autowire.Service{
		widgetService(autowire.Marker{Lifetime: autowire.Singleton, As: autowire.AsInterface},
			namerT, greeterT),
	}}

	_, _, err := drv.Run(m)
	require.NoError(t, err)

	assert.True(t, c.Bound(container.KeyOf(namerT)))
	assert.False(t, c.Bound(container.KeyOf(greeterT)))
	assert.Equal(t, reflect.TypeOf(&widget{}), reflect.TypeOf(container.ResolveType[namer](c)))
}
