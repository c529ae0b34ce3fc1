package token

import (
	"errors"
	"fmt"
)

// ErrEmptyPath is the argument error raised at construction when the
// selector path is empty.
var ErrEmptyPath = errors.New("token: path is empty")

// ErrNoLocation is the parser-contract error raised at construction
// when the underlying event reader does not start at character offset
// zero, meaning it cannot be trusted to report offsets the recorder
// can align against.
var ErrNoLocation = errors.New("token: reader does not support location tracking")

// ErrMalformedSelector is the argument error raised at construction
// when a selector path violates the placement rules for "//" -
// trailing, or two in a row.
var ErrMalformedSelector = errors.New("token: malformed selector")

// SyntaxError reports malformed markup encountered by the low-level
// scanner while pulling the next event.
type SyntaxError struct {
	Offset  int
	Context string
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("%d: %s: %s", e.Offset, e.Context, e.Message)
}

func syntaxErrorf(offset int, context, format string, args ...any) error {
	return SyntaxError{
		Offset:  offset,
		Context: context,
		Message: fmt.Sprintf(format, args...),
	}
}
