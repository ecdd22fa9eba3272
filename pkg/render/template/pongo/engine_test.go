package pongo

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestRenderTemplate_FromFS(t *testing.T) {
	files := fstest.MapFS{
		"templates/greeting.tmpl": {Data: []byte("Hello {{ name }}!")},
	}
	engine, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderTemplate("templates/greeting", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Hello Ada!" {
		t.Fatalf("unexpected output: %q", out)
	}

	// Second render hits the template cache and must agree.
	again, err := engine.RenderTemplate("templates/greeting.tmpl", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render cached: %v", err)
	}
	if again != out {
		t.Fatalf("cached render drifted: %q vs %q", again, out)
	}
}

func TestRenderString_EscapesByDefault(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderString("{{ value }}", map[string]any{"value": "<script>"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("output not escaped: %q", out)
	}
}

func TestGlobalContext(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{}), WithGlobals(map[string]any{"brand": "formkit"}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderString("{{ brand }}", nil)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "formkit" {
		t.Fatalf("global not applied: %q", out)
	}
}

func TestNew_RequiresTemplateSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected configuration error")
	}
}

func TestStructDataRoundTrip(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	data := struct {
		Title string `json:"title"`
	}{Title: "Contact"}

	out, err := engine.RenderString("{{ title }}", data)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "Contact" {
		t.Fatalf("struct data not converted: %q", out)
	}
}
