package token

import "fmt"

type eventKind uint8

const (
	evStart eventKind = iota
	evEnd
	evEndDocument
)

// attr is an attribute or namespace declaration read off a start tag.
type attr struct {
	Name  QName
	Value string
}

// Event is one structural event pulled from the underlying document:
// a start tag, an end tag, or end-of-document. Text, comments and
// processing instructions are consumed internally by the reader and
// never surface as events, matching the base spec's "plus any others,
// ignored" parser contract.
type Event struct {
	kind       eventKind
	Name       QName
	Attrs      []attr
	SelfClosed bool
}

// EventReader is the pull-parser contract the match engine drives: an
// event stream exposing a character-offset location, standing in for
// component (b)/(c) of the base spec's external collaborators. New
// wires up a scanner-backed implementation by default; callers with
// their own event source may implement this directly.
type EventReader interface {
	Next() (Event, error)
	Offset() int
}

// reader assembles scanner tokens into structural Events, the
// equivalent of a StAX pull parser sitting on top of the low-level
// scanner. It is the default EventReader.
type reader struct {
	sc   *scanner
	rec  *recorder
	curr tok

	primed bool
	// stale marks that curr is the terminal token (kEndTag or
	// kEmptyElemTag) of an event already returned to the caller, and
	// has not yet been advanced past. Advancing past it is deferred to
	// the moment curr is next examined for real (ensureFresh), rather
	// than done eagerly before returning the event, so that a capture
	// taken right after Next returns sees the recorder's window end
	// exactly at that token's own delimiter - never partway into
	// whatever token follows.
	stale bool

	pending *Event
}

func newReader(rec *recorder) *reader {
	return &reader{sc: newScanner(rec), rec: rec}
}

func (r *reader) Offset() int {
	return r.rec.Offset()
}

// ensurePrimed performs the reader's one-token look-ahead priming on
// first use instead of at construction, so New can check the reader's
// initial offset before any character has been pulled from it.
func (r *reader) ensurePrimed() {
	if r.primed {
		return
	}
	r.primed = true
	r.advance()
}

func (r *reader) advance() {
	r.curr = r.sc.scan()
}

// ensureFresh advances past a terminal token left in curr by the
// previously returned event, deferring that scan until curr is
// actually needed again.
func (r *reader) ensureFresh() {
	if !r.stale {
		return
	}
	r.stale = false
	r.advance()
}

func (r *reader) is(k kind) bool {
	return r.curr.kind == k
}

// Next returns the next structural event, silently consuming and
// discarding text, comments, processing instructions and the prolog
// along the way.
func (r *reader) Next() (Event, error) {
	r.ensurePrimed()
	if r.pending != nil {
		ev := *r.pending
		r.pending = nil
		return ev, nil
	}
	r.ensureFresh()
	for {
		switch {
		case r.is(kEOF):
			return Event{kind: evEndDocument}, nil
		case r.is(kOpenTag):
			return r.readStart()
		case r.is(kCloseTag):
			return r.readEnd()
		case r.is(kProcInstTag):
			if err := r.skipProcInst(); err != nil {
				return Event{}, err
			}
			r.ensureFresh()
		case r.is(kCommentTag), r.is(kCData), r.is(kLiteral):
			r.advance()
		case r.is(kInvalid):
			return Event{}, syntaxErrorf(r.rec.Offset(), "reader", "%s", r.curr.literal)
		default:
			return Event{}, syntaxErrorf(r.rec.Offset(), "reader", "unexpected token")
		}
	}
}

func (r *reader) readStart() (Event, error) {
	r.advance()
	var name QName
	if r.is(kNamespace) {
		name.Space = r.curr.literal
		r.advance()
	}
	if !r.is(kName) {
		return Event{}, syntaxErrorf(r.rec.Offset(), "element", "name is missing")
	}
	name.Name = r.curr.literal
	r.advance()

	attrs, err := r.readAttrs()
	if err != nil {
		return Event{}, err
	}

	ev := Event{kind: evStart, Name: name, Attrs: attrs}
	switch {
	case r.is(kEmptyElemTag):
		ev.SelfClosed = true
		r.stale = true
		r.pending = &Event{kind: evEnd, Name: name}
	case r.is(kEndTag):
		r.stale = true
	default:
		return Event{}, syntaxErrorf(r.rec.Offset(), "element", "end of tag expected")
	}
	return ev, nil
}

func (r *reader) readEnd() (Event, error) {
	r.advance()
	var name QName
	if r.is(kNamespace) {
		name.Space = r.curr.literal
		r.advance()
	}
	if !r.is(kName) {
		return Event{}, syntaxErrorf(r.rec.Offset(), "element", "name is missing")
	}
	name.Name = r.curr.literal
	r.advance()
	if !r.is(kEndTag) {
		return Event{}, syntaxErrorf(r.rec.Offset(), "element", "end of tag expected")
	}
	r.stale = true
	return Event{kind: evEnd, Name: name}, nil
}

func (r *reader) readAttrs() ([]attr, error) {
	var attrs []attr
	for !r.is(kEndTag) && !r.is(kEmptyElemTag) {
		if r.is(kEOF) || r.is(kInvalid) {
			return nil, syntaxErrorf(r.rec.Offset(), "attribute", "unexpected end of tag")
		}
		a, err := r.readAttr()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}

func (r *reader) readAttr() (attr, error) {
	var a attr
	if r.is(kNamespace) {
		a.Name.Space = r.curr.literal
		r.advance()
	}
	if !r.is(kAttr) {
		return a, syntaxErrorf(r.rec.Offset(), "attribute", "name is expected")
	}
	a.Name.Name = r.curr.literal
	r.advance()
	if !r.is(kLiteral) {
		return a, syntaxErrorf(r.rec.Offset(), "attribute", "value is missing")
	}
	a.Value = r.curr.literal
	r.advance()
	return a, nil
}

// skipProcInst consumes a "<?...?>" processing instruction (including
// the XML prolog) without producing an event.
func (r *reader) skipProcInst() error {
	r.advance()
	for !r.is(kProcInstTag) {
		if r.is(kEOF) {
			return syntaxErrorf(r.rec.Offset(), "processing instruction", "unexpected end of input")
		}
		if r.is(kInvalid) {
			return syntaxErrorf(r.rec.Offset(), "processing instruction", "malformed content")
		}
		r.advance()
	}
	r.stale = true
	return nil
}

// isNamespaceDecl reports whether a is an "xmlns" or "xmlns:prefix"
// attribute, and returns the prefix it declares (empty for the
// default namespace).
func (a attr) isNamespaceDecl() (prefix string, ok bool) {
	if a.Name.Space == "xmlns" {
		return a.Name.Name, true
	}
	if a.Name.Space == "" && a.Name.Name == "xmlns" {
		return "", true
	}
	return "", false
}

func (e Event) String() string {
	switch e.kind {
	case evStart:
		return fmt.Sprintf("start(%s)", e.Name)
	case evEnd:
		return fmt.Sprintf("end(%s)", e.Name)
	default:
		return "end-document"
	}
}
