package autowire_test

import (
	"context"
	"fmt"
	"io"
	"reflect"

	"github.com/km-arc/go-autowire/framework/autowire"
	"github.com/km-arc/go-autowire/framework/container"
)

// ── Contracts ────────────────────────────────────────────────────────────────

type greeter interface{ Greet() string }

type namer interface{ Name() string }

type renderer interface{ Render() string }

// ── Implementations ──────────────────────────────────────────────────────────

// widget implements the disposal contract, a platform interface and two
// business contracts.
type widget struct{ _ byte }

func (w *widget) Close() error   { return nil }
func (w *widget) String() string { return "widget" }
func (w *widget) Greet() string  { return "hello" }
func (w *widget) Name() string   { return "widget" }

// closerOnly implements nothing but the synchronous disposal contract.
type closerOnly struct{}

func (c *closerOnly) Close() error { return nil }

// drainer implements only the asynchronous disposal contract.
type drainer struct{}

func (d *drainer) Shutdown(ctx context.Context) error { return nil }

// plain implements no interfaces at all.
type plain struct{ _ byte }

// ── Declaration helpers ──────────────────────────────────────────────────────

var (
	closerT     = autowire.TypeOf[io.Closer]()
	stringerT   = autowire.TypeOf[fmt.Stringer]()
	shutdownerT = autowire.TypeOf[container.Shutdowner]()
	greeterT    = autowire.TypeOf[greeter]()
	namerT      = autowire.TypeOf[namer]()
	rendererT   = autowire.TypeOf[renderer]()
)

func widgetService(m autowire.Marker, implements ...reflect.Type) autowire.Service {
	return autowire.Service{
		Type:       autowire.TypeOf[*widget](),
		Implements: implements,
		Build:      func(c *container.Container) any { return &widget{} },
		Marker:     m,
	}
}
