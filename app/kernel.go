package app

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/km-arc/go-autowire/framework/autowire"
	"github.com/km-arc/go-autowire/framework/config"
	"github.com/km-arc/go-autowire/framework/container"
	"github.com/km-arc/go-autowire/framework/diag"
	"github.com/km-arc/go-autowire/framework/providers"
)

// Application is the top-level kernel: the IoC container, the provider
// registry that boots it, and an HTTP router whose handlers resolve the
// autowired services.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
	Router    chi.Router
}

// New bootstraps the application: configuration is loaded, the given modules
// are autowired, and the provider registry is booted.
//
//	application := app.New(catalogModule())
//	application.Router.Get("/widgets", listWidgets(application.Container))
//	application.Run()
func New(modules ...autowire.Module) *Application {
	c := container.New()
	registry := container.NewProviderRegistry(c)

	registry.Register(&providers.ConfigServiceProvider{})

	cfg := container.Resolve[*config.Config](c, "config")
	var sink diag.Sink = diag.NewConsole()
	if cfg.Autowire.Quiet {
		sink = diag.MinLevel{Next: sink, Min: diag.LevelWarning}
	}
	registry.Register(&providers.AutowireServiceProvider{Modules: modules, Diag: sink})
	registry.Boot()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	return &Application{
		Container: c,
		Providers: registry,
		Router:    r,
	}
}

// Run starts the HTTP server on APP_PORT (default 8000).
func (a *Application) Run() {
	cfg := container.Resolve[*config.Config](a.Container, "config")
	addr := ":" + cfg.App.Port
	fmt.Printf("🚀  %s running on http://localhost%s  [%s]\n",
		cfg.App.Name, addr, cfg.App.Env)

	if err := http.ListenAndServe(addr, a.Router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
