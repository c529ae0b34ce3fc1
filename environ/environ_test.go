package environ_test

import (
	"testing"

	"github.com/midbel/xmltok/environ"
)

func TestFlattenOverride(t *testing.T) {
	parent := environ.Enclosed[string](nil)
	parent.Define("x", "u")
	parent.Define("y", "v")

	child := environ.Enclosed[string](parent)
	child.Define("y", "w")

	flat := child.(interface{ Flatten() map[string]string }).Flatten()
	if flat["x"] != "u" {
		t.Errorf("expected inherited binding x=u, got %q", flat["x"])
	}
	if flat["y"] != "w" {
		t.Errorf("expected child binding y=w to override parent, got %q", flat["y"])
	}
	if len(flat) != 2 {
		t.Errorf("expected 2 bindings in scope, got %d", len(flat))
	}
}

func TestResolveWalksParent(t *testing.T) {
	parent := environ.Enclosed[string](nil)
	parent.Define("x", "u")
	child := environ.Enclosed[string](parent)

	got, err := child.Resolve("x")
	if err != nil {
		t.Fatalf("resolve: %s", err)
	}
	if got != "u" {
		t.Errorf("expected u, got %q", got)
	}

	if _, err := child.Resolve("missing"); err == nil {
		t.Error("expected error resolving undefined identifier")
	}
}
