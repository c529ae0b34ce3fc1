package token

import (
	"strings"

	"github.com/midbel/xmltok/environ"
)

// segmentFrame is one entry of the wrap-mode segment stack: the
// verbatim start-tag text (plus any preceding text/comments) of the
// element at this depth, alongside the name it was recorded under.
type segmentFrame struct {
	name QName
	text string
}

// context holds the synchronized stacks described by the base spec's
// data model: element-name path, namespace-binding snapshots and, in
// wrap mode, recorded segments. Height of whichever stacks are
// populated always equals the current depth.
type context struct {
	path     []QName
	wrap     bool
	segments []segmentFrame
	nsFrames []environ.Environ[string]
	indexes  []int
}

func newContext(wrap bool) *context {
	return &context{wrap: wrap}
}

func (c *context) pushName(name QName) {
	c.path = append(c.path, name)
}

func (c *context) popName() QName {
	n := len(c.path) - 1
	name := c.path[n]
	c.path = c.path[:n]
	return name
}

// pathString renders the element-name path stack as a slash-separated
// breadcrumb, from the document element down to the innermost open
// element, for use in diagnostics.
func (c *context) pathString() string {
	var sb strings.Builder
	for _, name := range c.path {
		sb.WriteByte('/')
		sb.WriteString(name.QualifiedName())
	}
	return sb.String()
}

// pushIndex/popIndex save and restore the selector cursor across an
// element's lifetime, so that leaving a scope which advanced the
// cursor (a matched intermediate path segment) restores exactly the
// cursor position seen on entry, regardless of how far the descent
// advanced it.
func (c *context) pushIndex(index int) {
	c.indexes = append(c.indexes, index)
}

func (c *context) popIndex() int {
	n := len(c.indexes) - 1
	index := c.indexes[n]
	c.indexes = c.indexes[:n]
	return index
}

// resolveName fills in the namespace URI of a raw, prefix-only name
// using the bindings currently in scope, leaving the textual prefix
// untouched so callers that need to reproduce it verbatim still can.
func (c *context) resolveName(raw QName) QName {
	if len(c.nsFrames) == 0 {
		return raw
	}
	top := c.nsFrames[len(c.nsFrames)-1]
	if uri, err := top.Resolve(raw.Space); err == nil {
		raw.URI = uri
	}
	return raw
}

func (c *context) pushSegment(name QName, text string) {
	c.segments = append(c.segments, segmentFrame{name: name, text: text})
}

func (c *context) popSegment() segmentFrame {
	n := len(c.segments) - 1
	seg := c.segments[n]
	c.segments = c.segments[:n]
	return seg
}

// pushNamespaces opens a fresh namespace frame that inherits the
// current frame's bindings and overrides them with decls declared on
// the element just opened.
func (c *context) pushNamespaces(decls []attr) {
	var parent environ.Environ[string]
	if n := len(c.nsFrames); n > 0 {
		parent = c.nsFrames[n-1]
	}
	frame := environ.Enclosed[string](parent)
	for _, d := range decls {
		frame.Define(d.Name.Name, d.Value)
	}
	c.nsFrames = append(c.nsFrames, frame)
}

func (c *context) popNamespaces() {
	c.nsFrames = c.nsFrames[:len(c.nsFrames)-1]
}

// currentNamespaces returns the fully flattened prefix->URI mapping in
// scope at the current depth, or nil if no frame is open.
func (c *context) currentNamespaces() map[string]string {
	if len(c.nsFrames) == 0 {
		return nil
	}
	top := c.nsFrames[len(c.nsFrames)-1]
	flat, ok := top.(interface{ Flatten() map[string]string })
	if !ok {
		return nil
	}
	return flat.Flatten()
}
