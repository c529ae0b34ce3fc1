package token

import "io"

// Mode selects how a matched fragment is reconstructed.
type Mode uint8

const (
	// ModeWrap reconstructs the full ancestor chain as opening tags
	// plus synthetic closing tags around the matched fragment,
	// preserving the source's original formatting verbatim. This is
	// the default.
	ModeWrap Mode = iota
	// ModeInject emits only the matched element itself, with any
	// namespace bindings it inherits from ancestors spliced into its
	// own start tag rather than reconstructing the ancestor chain.
	ModeInject
)

// EventReaderFactory builds the pull-parser an engine reads events
// from. The default factory wraps the scanner-based reader in this
// package; callers with their own event source can substitute one, as
// long as it satisfies the offset-at-zero contract described by New.
type EventReaderFactory func(rec *recorder) EventReader

// Option configures a Cursor.
type Option func(*options)

type options struct {
	namespaces map[string]string
	mode       Mode
	tracer     Tracer
	factory    EventReaderFactory
}

// WithNamespace binds prefix to uri for resolving prefixed segments in
// the selector path. Repeat the option to bind several prefixes.
func WithNamespace(prefix, uri string) Option {
	return func(o *options) {
		if o.namespaces == nil {
			o.namespaces = make(map[string]string)
		}
		o.namespaces[prefix] = uri
	}
}

// WithMode selects wrap or inject fragment reconstruction.
func WithMode(mode Mode) Option {
	return func(o *options) { o.mode = mode }
}

// WithTracer attaches a Tracer observing every structural transition
// and match as the cursor advances. The default discards everything.
func WithTracer(t Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithEventReader substitutes the pull-parser the engine drives in
// place of this package's own scanner-based reader.
func WithEventReader(factory EventReaderFactory) Option {
	return func(o *options) { o.factory = factory }
}

// Cursor iterates the fragments of a document that match a selector
// path, one at a time, without materializing the document tree. The
// byte stream passed to New is never owned by the cursor - the caller
// opened it and is responsible for closing it, Close releases only
// the cursor's own parser state.
type Cursor struct {
	eng *engine

	text string
	has  bool
	err  error
	done bool
}

// New compiles path, optionally namespace-aware, and returns a Cursor
// over r. It fails synchronously - before any fragment is produced -
// if path is empty, or if the event reader driving the engine does not
// report an initial offset of zero, since a location-unaware reader
// makes verbatim fragment recovery impossible.
func New(r io.Reader, path string, opts ...Option) (*Cursor, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	sel, err := compileSelector(path, o.namespaces)
	if err != nil {
		return nil, err
	}

	rec := newRecorder(r)
	factory := o.factory
	if factory == nil {
		factory = func(rec *recorder) EventReader { return newReader(rec) }
	}
	rdr := factory(rec)
	if rdr.Offset() != 0 {
		return nil, ErrNoLocation
	}

	ctx := newContext(o.mode == ModeWrap)
	eng := newEngine(sel, ctx, rdr, rec, o.tracer)

	c := &Cursor{eng: eng}
	c.advance()
	return c, nil
}

// Next reports whether another fragment is available and, if so,
// returns its text and advances past it. The fragment returned was
// already produced by the previous call to Next (or by New for the
// first call), so a false result reliably means the document is
// exhausted or Err has something to report - never that the next
// fragment is merely slow to arrive.
func (c *Cursor) Next() (string, bool) {
	if !c.has {
		return "", false
	}
	text := c.text
	c.advance()
	return text, true
}

func (c *Cursor) advance() {
	if c.done || c.eng == nil {
		c.has = false
		return
	}
	text, ok, err := c.eng.next()
	if err != nil {
		c.err = err
		c.done = true
		c.has = false
		return
	}
	if !ok {
		c.done = true
		c.has = false
		return
	}
	c.text = text
	c.has = true
}

// Err returns the first error encountered while advancing the cursor,
// if any. Callers should check it after a Next call returns false.
func (c *Cursor) Err() error {
	return c.err
}

// Close releases the cursor's parser state. It does not close the
// underlying byte stream given to New - ownership of that stream
// stays with the caller, which must close it itself once done.
func (c *Cursor) Close() error {
	c.eng = nil
	c.done = true
	c.has = false
	return nil
}
