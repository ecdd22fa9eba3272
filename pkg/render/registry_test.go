package render

import (
	"context"
	"testing"

	"github.com/goliatone/go-formkit/pkg/model"
)

type stubRenderer struct {
	name string
}

func (r stubRenderer) Name() string        { return r.name }
func (r stubRenderer) ContentType() string { return "text/plain" }
func (r stubRenderer) Render(_ context.Context, def model.FormDefinition, _ RenderOptions) ([]byte, error) {
	return []byte(def.ID), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(stubRenderer{name: "html"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	renderer, err := registry.Get("html")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if renderer.Name() != "html" {
		t.Fatalf("unexpected renderer: %s", renderer.Name())
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(stubRenderer{name: "html"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register(stubRenderer{name: "html"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"tui", "html", "react"} {
		if err := registry.Register(stubRenderer{name: name}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	names := registry.List()
	want := []string{"html", "react", "tui"}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("list order: want %v, got %v", want, names)
		}
	}
	if !registry.Has("react") {
		t.Fatalf("expected react to be registered")
	}
	if registry.Has("ghost") {
		t.Fatalf("ghost must not be registered")
	}
}
