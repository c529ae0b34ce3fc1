package token_test

import (
	"strings"
	"testing"

	"github.com/midbel/xmltok/token"
)

func collect(t *testing.T, c *token.Cursor) []string {
	t.Helper()
	var got []string
	for {
		frag, ok := c.Next()
		if !ok {
			break
		}
		got = append(got, frag)
	}
	if err := c.Err(); err != nil {
		t.Fatalf("cursor error: %s", err)
	}
	return got
}

func assertFragments(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("fragment count: got %d %q, want %d %q", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fragment %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCursorWrapSiblings(t *testing.T) {
	doc := `<a><b>hello</b><b>world</b></a>`
	c, err := token.New(strings.NewReader(doc), "/a/b")
	if err != nil {
		t.Fatalf("new: %s", err)
	}
	got := collect(t, c)
	assertFragments(t, got, []string{
		"<a><b>hello</b></a>",
		"<a><b>world</b></a>",
	})
}

func TestCursorInjectSimple(t *testing.T) {
	doc := `<root xmlns:ns="http://example.com/ns"><ns:item id="1"/><ns:item id="2"/></root>`
	c, err := token.New(strings.NewReader(doc), "/root/ns:item",
		token.WithNamespace("ns", "http://example.com/ns"),
		token.WithMode(token.ModeInject),
	)
	if err != nil {
		t.Fatalf("new: %s", err)
	}
	got := collect(t, c)
	assertFragments(t, got, []string{
		`<ns:item id="1" xmlns:ns="http://example.com/ns" />`,
		`<ns:item id="2" xmlns:ns="http://example.com/ns" />`,
	})
}

func TestCursorInjectPreservesExistingDeclaration(t *testing.T) {
	doc := `<root xmlns:a="urn:a"><a:item xmlns:a="urn:a" id="1"/></root>`
	c, err := token.New(strings.NewReader(doc), "//a:item",
		token.WithNamespace("a", "urn:a"),
		token.WithMode(token.ModeInject),
	)
	if err != nil {
		t.Fatalf("new: %s", err)
	}
	got := collect(t, c)
	assertFragments(t, got, []string{
		`<a:item xmlns:a="urn:a" id="1"/>`,
	})
}

func TestCursorInjectMatchesSourceQuoteStyle(t *testing.T) {
	doc := `<root xmlns:a='urn:a'><b:item xmlns:b='urn:b' id='1'/></root>`
	c, err := token.New(strings.NewReader(doc), "//b:item",
		token.WithNamespace("a", "urn:a"),
		token.WithNamespace("b", "urn:b"),
		token.WithMode(token.ModeInject),
	)
	if err != nil {
		t.Fatalf("new: %s", err)
	}
	got := collect(t, c)
	assertFragments(t, got, []string{
		`<b:item xmlns:b='urn:b' id='1' xmlns:a='urn:a' />`,
	})
}

func TestCursorDescendantAxis(t *testing.T) {
	doc := `<a><b><c>1</c></b><c>2</c></a>`
	c, err := token.New(strings.NewReader(doc), "//c")
	if err != nil {
		t.Fatalf("new: %s", err)
	}
	got := collect(t, c)
	assertFragments(t, got, []string{
		"<a><b><c>1</c></b></a>",
		"<a><c>2</c></a>",
	})
}

func TestCursorNamespaceWildcard(t *testing.T) {
	doc := `<root xmlns:x="urn:x" xmlns:y="urn:y"><x:item/><y:item/></root>`
	c, err := token.New(strings.NewReader(doc), "/root/*:item",
		token.WithNamespace("x", "urn:x"),
		token.WithNamespace("y", "urn:y"),
	)
	if err != nil {
		t.Fatalf("new: %s", err)
	}
	got := collect(t, c)
	assertFragments(t, got, []string{
		`<root xmlns:x="urn:x" xmlns:y="urn:y"><x:item/></root>`,
		`<root xmlns:x="urn:x" xmlns:y="urn:y"><y:item/></root>`,
	})
}

func TestCursorLocalNameGlob(t *testing.T) {
	doc := `<root><field-one>a</field-one><field-two>b</field-two><other>c</other></root>`
	c, err := token.New(strings.NewReader(doc), "/root/field-*")
	if err != nil {
		t.Fatalf("new: %s", err)
	}
	got := collect(t, c)
	assertFragments(t, got, []string{
		"<root><field-one>a</field-one></root>",
		"<root><field-two>b</field-two></root>",
	})
}

func TestCursorSkipsNonMatchingIntermediate(t *testing.T) {
	doc := `<a><x><b/></x></a>`
	c, err := token.New(strings.NewReader(doc), "/a/b")
	if err != nil {
		t.Fatalf("new: %s", err)
	}
	got := collect(t, c)
	assertFragments(t, got, nil)
}

func TestCursorSkipsNonMatchingIntermediateDeep(t *testing.T) {
	doc := `<a><b><z><c/></z></b></a>`
	c, err := token.New(strings.NewReader(doc), "/a/b/c")
	if err != nil {
		t.Fatalf("new: %s", err)
	}
	got := collect(t, c)
	assertFragments(t, got, nil)
}

func TestCursorSkipsNonMatchingSiblingThenMatches(t *testing.T) {
	doc := `<a><x><b/></x><b/></a>`
	c, err := token.New(strings.NewReader(doc), "/a/b")
	if err != nil {
		t.Fatalf("new: %s", err)
	}
	got := collect(t, c)
	assertFragments(t, got, []string{
		"<a><b/></a>",
	})
}

func TestNewRejectsEmptyPath(t *testing.T) {
	_, err := token.New(strings.NewReader("<a/>"), "")
	if err != token.ErrEmptyPath {
		t.Fatalf("expected ErrEmptyPath, got %v", err)
	}
}

