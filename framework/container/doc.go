// Package container provides the IoC container that the autowire engine
// registers services into.
//
// # Overview
//
// The container manages instantiation and lifecycle of application services.
// Three lifetimes are supported: transient (new instance per Make), singleton
// (one instance per container) and scoped (one instance per Scope — a unit of
// work such as an HTTP request). Because Go has no constructor reflection,
// building is always driven by explicit factory functions.
//
// # String-keyed bindings
//
//	c := container.New()
//
//	// Transient — new instance every Make()
//	c.Bind("mailer", func(c *container.Container) any { return mail.New() })
//
//	// Singleton — created once, reused
//	c.Singleton("config", func(c *container.Container) any { return config.Load() })
//
//	// Scoped — one per Scope
//	c.Scoped("uow", func(c *container.Container) any { return NewUnitOfWork() })
//
//	// Pre-built value
//	c.Instance("config", cfg)
//
//	// Alias
//	c.Alias("config", "configuration")
//
// # Type-keyed registration
//
// The autowire driver registers (contract, implementation) pairs through the
// chainable type-keyed surface; each method maps one lifetime:
//
//	c.RegisterScoped(contract, impl, build).
//	    RegisterSingleton(other, otherImpl, buildOther)
//
// # Resolving
//
//	raw := c.Make("config")                        // untyped
//	cfg := container.Resolve[*config.Config](c, "config")
//	repo := container.ResolveType[WidgetRepo](c)   // by contract type
//
// # Scopes
//
//	scope := c.NewScope()
//	defer scope.Close(ctx) // releases io.Closer / Shutdowner instances
//	uow := container.ResolveIn[*UnitOfWork](scope, "uow")
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) {
//	    app.Singleton("mailer", func(c *container.Container) any { return mail.New() })
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
//
// Deferred providers (IsDeferred() true) register lazily on the first Make of
// one of their Provides() keys.
package container
