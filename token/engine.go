package token

import "io"

// engine drives an EventReader against a compiled selector, applying
// the backtracking cursor rules from the base spec's matching model: a
// single, monotonically resumable position in the selector that
// advances on a matched intermediary element and un-advances once that
// element's subtree is fully consumed, regardless of how many
// descendant hops the advance skipped over.
//
// Unlike the StAX iterator this design is grounded on, engine performs
// the "skip to the end of a matched or rejected subtree" step
// synchronously inside a single Next call instead of suspending between
// tokenizer calls one nested event at a time; the two are observably
// identical in the sequence of fragments they produce; only the
// intermediate bookkeeping differs.
type engine struct {
	sel *selector
	ctx *context
	rdr EventReader
	rec *recorder

	tracer Tracer

	index int
	depth int

	held *Event
}

func newEngine(sel *selector, ctx *context, rdr EventReader, rec *recorder, tracer Tracer) *engine {
	if tracer == nil {
		tracer = discardTracer{}
	}
	return &engine{sel: sel, ctx: ctx, rdr: rdr, rec: rec, tracer: tracer}
}

// next returns the next matched fragment, or ok=false once the
// underlying document is exhausted.
func (e *engine) next() (string, bool, error) {
	for {
		ev, err := e.nextEvent()
		if err != nil {
			e.tracer.Error(err)
			return "", false, err
		}
		switch ev.kind {
		case evEndDocument:
			return "", false, nil
		case evStart:
			frag, matched, err := e.onStart(ev)
			if err != nil {
				e.tracer.Error(err)
				return "", false, err
			}
			if matched {
				return frag, true, nil
			}
		case evEnd:
			e.onEnd(ev)
		}
	}
}

func (e *engine) nextEvent() (Event, error) {
	if e.held != nil {
		ev := *e.held
		e.held = nil
		return ev, nil
	}
	return e.rdr.Next()
}

func (e *engine) captureAndReset() string {
	text := e.rec.Text(-1)
	e.rec.Record()
	return text
}

func (e *engine) onStart(ev Event) (string, bool, error) {
	e.depth++
	text := e.captureAndReset()

	if e.ctx.wrap {
		e.ctx.pushSegment(ev.Name, text)
	}
	inherited := e.ctx.currentNamespaces()
	e.ctx.pushName(ev.Name)
	e.ctx.pushNamespaces(namespaceDecls(ev.Attrs))

	resolved := e.ctx.resolveName(ev.Name)

	e.ctx.pushIndex(e.index)
	seg := e.sel.current(e.index)
	switch {
	case seg.matches(resolved) && e.sel.isBottom(e.index):
		e.tracer.Match(resolved, e.depth)
		return e.onMatch(ev, text, inherited)
	case seg.matches(resolved):
		e.tracer.Enter(resolved, e.depth)
		e.index = e.sel.down(e.index)
	case e.sel.isDescendant(e.index):
		// A non-matching element under a "//" axis still might contain a
		// matching descendant further down, so its subtree must be
		// walked normally rather than skipped.
		e.tracer.Enter(resolved, e.depth)
	default:
		e.tracer.Enter(resolved, e.depth)
		if err := e.skipSubtree(ev); err != nil {
			return "", false, err
		}
	}
	return "", false, nil
}

// skipSubtree fast-forwards the reader past ev's own END, consuming its
// entire subtree by depth alone without ever handing any of it back to
// the selector - the non-inclusive equivalent of the original's
// readCurrent(false), used when the current element does not match the
// selector's current position and the position is not a
// descendant-or-self marker, so none of its descendants can match
// either. Since ev's own END never reaches onEnd this way, skipSubtree
// performs onEnd's stack bookkeeping itself, and discards whatever
// verbatim text accumulated over the skipped subtree so it cannot leak
// into the next element actually captured.
func (e *engine) skipSubtree(ev Event) error {
	target := e.depth - 1
	for e.depth != target {
		inner, err := e.rdr.Next()
		if err != nil {
			return err
		}
		switch inner.kind {
		case evStart:
			e.depth++
		case evEnd:
			e.depth--
		case evEndDocument:
			return syntaxErrorf(e.rec.Offset(), "skip", "unexpected end of document inside %s", e.ctx.pathString())
		}
	}
	e.rec.Record()
	if e.ctx.wrap {
		e.ctx.popSegment()
	}
	e.ctx.popName()
	e.ctx.popNamespaces()
	e.index = e.ctx.popIndex()
	e.tracer.Leave(ev.Name, target)
	return nil
}

func (e *engine) onEnd(ev Event) {
	e.depth--
	// The end tag's text (and anything before it) belongs to no later
	// start element, so it is dropped rather than left in the window.
	e.rec.Record()
	if e.ctx.wrap {
		e.ctx.popSegment()
	}
	e.ctx.popName()
	e.ctx.popNamespaces()
	e.index = e.ctx.popIndex()
	e.tracer.Leave(ev.Name, e.depth)
}

// onMatch fast-forwards past the matched element's subtree, capturing
// its raw content and closing tag, then reconstructs the fragment
// according to the context's mode.
func (e *engine) onMatch(ev Event, startText string, inherited map[string]string) (string, bool, error) {
	target := e.depth - 1
	for e.depth != target {
		inner, err := e.rdr.Next()
		if err != nil {
			return "", false, err
		}
		switch inner.kind {
		case evStart:
			e.depth++
		case evEnd:
			e.depth--
		case evEndDocument:
			return "", false, syntaxErrorf(e.rec.Offset(), "match", "unexpected end of document inside %s", e.ctx.pathString())
		}
	}
	raw := e.captureAndReset()

	if ahead, err := e.rdr.Next(); err != nil {
		if err != io.EOF {
			return "", false, err
		}
	} else {
		e.held = &ahead
	}

	e.ctx.popName()
	e.ctx.popNamespaces()
	e.index = e.ctx.popIndex()

	var frag string
	if e.ctx.wrap {
		e.ctx.popSegment()
		frag = buildWrap(e.ctx.segments, startText, raw)
	} else {
		frag = buildInject(startText, inherited, raw)
	}
	return frag, true, nil
}

// namespaceDecls extracts an element's xmlns declarations, keyed by
// the prefix each one binds ("" for the default namespace).
func namespaceDecls(attrs []attr) []attr {
	var out []attr
	for _, a := range attrs {
		if prefix, ok := a.isNamespaceDecl(); ok {
			out = append(out, attr{Name: QName{Name: prefix}, Value: a.Value})
		}
	}
	return out
}
