package main

import (
	"encoding/json"
	"io"
	"net/http"
	"reflect"

	"github.com/km-arc/go-autowire/app"
	"github.com/km-arc/go-autowire/framework/autowire"
	"github.com/km-arc/go-autowire/framework/container"
)

// ── Demo services ────────────────────────────────────────────────────────────

type Widget struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// WidgetRepo is the business contract the repository registers under.
type WidgetRepo interface {
	All() []Widget
}

// memoryWidgetRepo implements io.Closer before WidgetRepo; the contract
// heuristic still picks WidgetRepo because disposal contracts rank last.
type memoryWidgetRepo struct {
	widgets []Widget
}

func newMemoryWidgetRepo() *memoryWidgetRepo {
	return &memoryWidgetRepo{widgets: []Widget{
		{ID: 1, Name: "sprocket"},
		{ID: 2, Name: "flange"},
	}}
}

func (r *memoryWidgetRepo) All() []Widget { return r.widgets }
func (r *memoryWidgetRepo) Close() error  { return nil }

// Messenger is the explicit contract BannerService is pinned to.
type Messenger interface {
	Message() string
}

// BannerService registers under both legs: Messenger and itself.
type BannerService struct{}

func (s *BannerService) Message() string { return "welcome to go-autowire" }

// ── Module declaration ───────────────────────────────────────────────────────

func catalogModule() autowire.Module {
	return autowire.Module{
		Name: "catalog",
		Services: []autowire.Service{
			{
				Type: autowire.TypeOf[*memoryWidgetRepo](),
				Implements: []reflect.Type{
					autowire.TypeOf[io.Closer](),
					autowire.TypeOf[WidgetRepo](),
				},
				Build:  func(c *container.Container) any { return newMemoryWidgetRepo() },
				Marker: autowire.Marker{Lifetime: autowire.Scoped, As: autowire.AsInterface},
			},
			{
				Type:  autowire.TypeOf[*BannerService](),
				Build: func(c *container.Container) any { return &BannerService{} },
				Marker: autowire.Marker{
					Lifetime: autowire.Singleton,
					As:       autowire.AsInterface | autowire.AsSelf,
					Contract: autowire.TypeOf[Messenger](),
				},
			},
		},
	}
}

// ── Bootstrap ────────────────────────────────────────────────────────────────

func main() {
	application := app.New(catalogModule())

	application.Router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		banner := container.ResolveType[Messenger](application.Container)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": banner.Message()})
	})

	application.Router.Get("/widgets", func(w http.ResponseWriter, r *http.Request) {
		repo := container.ResolveType[WidgetRepo](application.Container)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(repo.All())
	})

	application.Run()
}
