package token

import (
	"errors"
	"testing"
)

func TestCompileSelectorDescendantIsBottomImmediately(t *testing.T) {
	sel, err := compileSelector("//c", nil)
	if err != nil {
		t.Fatalf("compile: %s", err)
	}
	if !sel.isDescendant(0) {
		t.Fatal("expected position 0 to be the descendant marker")
	}
	if !sel.isBottom(0) {
		t.Fatal("expected position 0 to already be bottom for a bare descendant selector")
	}
	if got := sel.current(0).name.Name; got != "c" {
		t.Fatalf("current: got %q, want c", got)
	}
}

func TestCompileSelectorEmptyPath(t *testing.T) {
	if _, err := compileSelector("", nil); err != ErrEmptyPath {
		t.Fatalf("expected ErrEmptyPath, got %v", err)
	}
}

func TestSegmentMatchesGlob(t *testing.T) {
	seg := compileSegment("", "field-*", nil)
	if !seg.matches(QName{Name: "field-one"}) {
		t.Error("expected field-* to match field-one")
	}
	if seg.matches(QName{Name: "other"}) {
		t.Error("expected field-* not to match other")
	}
}

func TestSegmentMatchesNamespaceWildcard(t *testing.T) {
	seg := compileSegment("*", "item", nil)
	if !seg.matches(QName{URI: "urn:x", Name: "item"}) {
		t.Error("expected *:item to match any namespace")
	}
	if seg.matches(QName{URI: "urn:x", Name: "other"}) {
		t.Error("expected *:item not to match a different local name")
	}
}

func TestCompileSelectorRejectsTrailingDescendant(t *testing.T) {
	for _, path := range []string{"/", "/a//", "//"} {
		if _, err := compileSelector(path, nil); err == nil {
			t.Errorf("compile(%q): expected an error, got nil", path)
		} else if !errors.Is(err, ErrMalformedSelector) {
			t.Errorf("compile(%q): got %v, want ErrMalformedSelector", path, err)
		}
	}
}

func TestSelectorDownSkipsDescendantMarker(t *testing.T) {
	sel, err := compileSelector("//a/b", nil)
	if err != nil {
		t.Fatalf("compile: %s", err)
	}
	if got := sel.down(0); got != 2 {
		t.Fatalf("down: got %d, want 2", got)
	}
	if sel.current(2).name.Name != "b" {
		t.Fatalf("current(2): got %q, want b", sel.current(2).name.Name)
	}
}
