package exchange

import (
	"github.com/midbel/xmltok/token"
)

// Expression holds a selector path and its configuration and evaluates
// it against any number of exchanges; the path is compiled anew by
// each Evaluate/Matches call. It mirrors the split between
// XMLTokenExpressionIterator's construction-time configuration
// (namespaces, mode) and its per-call evaluate/matches distinction.
type Expression struct {
	path       string
	namespaces map[string]string
	mode       token.Mode
	tracer     token.Tracer
}

// ExpressionOption configures an Expression at construction.
type ExpressionOption func(*Expression)

// WithNamespaces binds the prefix->URI map the expression's path uses.
func WithNamespaces(namespaces map[string]string) ExpressionOption {
	return func(e *Expression) { e.namespaces = namespaces }
}

// WithMode selects wrap or inject fragment reconstruction.
func WithMode(mode token.Mode) ExpressionOption {
	return func(e *Expression) { e.mode = mode }
}

// WithTracer attaches a tracer observing the underlying cursor.
func WithTracer(tracer token.Tracer) ExpressionOption {
	return func(e *Expression) { e.tracer = tracer }
}

// NewExpression returns an Expression for path, ready to evaluate
// against exchanges. The path is not compiled here: compilation errors
// surface from every Evaluate/Matches call instead, since token.New
// needs the exchange's body reader to construct a Cursor.
func NewExpression(path string, opts ...ExpressionOption) *Expression {
	e := &Expression{path: path}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Expression) cursorOptions() []token.Option {
	opts := []token.Option{token.WithMode(e.mode)}
	for prefix, uri := range e.namespaces {
		opts = append(opts, token.WithNamespace(prefix, uri))
	}
	if e.tracer != nil {
		opts = append(opts, token.WithTracer(e.tracer))
	}
	return opts
}

// Evaluate returns a live cursor over the exchange's body. The caller
// owns the returned cursor and must Close it once done - this is the
// "we return an iterator" half of the original evaluate/matches split.
// Closing the cursor releases only its own parser state; the
// exchange's underlying body stream is never closed here, since
// ownership of it was never the expression's to begin with.
func (e *Expression) Evaluate(ex *Exchange) (*token.Cursor, error) {
	r, err := ex.reader()
	if err != nil {
		return nil, err
	}
	return token.New(r, e.path, e.cursorOptions()...)
}

// Matches reports whether the exchange's body contains at least one
// fragment matching the path, closing the cursor itself before
// returning - the "as a predicate the caller has nothing left to
// iterate" half of the original evaluate/matches split.
func (e *Expression) Matches(ex *Exchange) (bool, error) {
	cur, err := e.Evaluate(ex)
	if err != nil {
		return false, err
	}
	defer cur.Close()
	_, ok := cur.Next()
	if err := cur.Err(); err != nil {
		return false, err
	}
	return ok, nil
}
