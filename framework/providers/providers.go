package providers

import (
	"github.com/km-arc/go-autowire/framework/autowire"
	"github.com/km-arc/go-autowire/framework/config"
	"github.com/km-arc/go-autowire/framework/container"
	"github.com/km-arc/go-autowire/framework/diag"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// binds it into the container.
//
// Bound abstracts:
//   - "config" → *config.Config (aliased as "configuration")
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	envFiles := p.EnvFiles
	app.Singleton("config", func(c *container.Container) any {
		return config.Load(envFiles...)
	})
	app.Alias("config", "configuration")
}

// ── AutowireServiceProvider ───────────────────────────────────────────────────

// AutowireServiceProvider runs the registration driver over Modules inside
// the provider lifecycle, so autowired services and hand-written providers
// compose in one registry.
//
// An empty Modules list is a bootstrap programming error and panics, matching
// the container's misuse behavior.
type AutowireServiceProvider struct {
	container.BaseProvider

	// Modules to scan, in order.
	Modules []autowire.Module

	// Diag substitutes the diagnostic sink (default: colored console).
	Diag diag.Sink
}

func (p *AutowireServiceProvider) Register(app *container.Container) {
	var opts []autowire.Option
	if p.Diag != nil {
		opts = append(opts, autowire.WithDiagnostics(p.Diag))
	}
	if _, _, err := autowire.New(app, opts...).Run(p.Modules...); err != nil {
		panic(err)
	}
}
