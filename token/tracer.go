package token

import (
	stdcontext "context"
	"log/slog"
)

// Tracer receives structural notifications as the engine walks the
// document, in an Enter/Leave/Match/Error shape.
type Tracer interface {
	Enter(name QName, depth int)
	Leave(name QName, depth int)
	Match(name QName, depth int)
	Error(err error)
}

type discardTracer struct{}

func (discardTracer) Enter(QName, int) {}
func (discardTracer) Leave(QName, int) {}
func (discardTracer) Match(QName, int) {}
func (discardTracer) Error(error)      {}

// slogTracer logs every structural transition at debug level and every
// match at info level, using the given logger and context.
type slogTracer struct {
	logger *slog.Logger
	ctx    stdcontext.Context
}

// NewTracer returns a Tracer backed by logger, suitable for the
// engine's own debugging or for callers who want to observe matches as
// they happen without buffering the whole result set.
func NewTracer(logger *slog.Logger) Tracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogTracer{logger: logger, ctx: stdcontext.Background()}
}

func (t *slogTracer) Enter(name QName, depth int) {
	t.logger.DebugContext(t.ctx, "enter", "element", name.QualifiedName(), "depth", depth)
}

func (t *slogTracer) Leave(name QName, depth int) {
	t.logger.DebugContext(t.ctx, "leave", "element", name.QualifiedName(), "depth", depth)
}

func (t *slogTracer) Match(name QName, depth int) {
	t.logger.InfoContext(t.ctx, "match", "element", name.QualifiedName(), "depth", depth)
}

func (t *slogTracer) Error(err error) {
	t.logger.ErrorContext(t.ctx, "tokenize error", "error", err)
}
