// Package exchange models the minimal request/response envelope that
// Expression evaluates against: a message body plus the charset it was
// declared in, standing in for the routing-framework Exchange the
// original expression language was written to plug into.
package exchange

import (
	"fmt"
	"io"
	"strings"
)

// Exchange carries the body a tokenizer expression evaluates, along
// with the charset it was received in.
type Exchange struct {
	Body    io.Reader
	Charset string
}

// New wraps body as an Exchange with no declared charset (UTF-8).
func New(body io.Reader) *Exchange {
	return &Exchange{Body: body}
}

// WithCharset returns a copy of e declaring the given charset.
func (e *Exchange) WithCharset(charset string) *Exchange {
	return &Exchange{Body: e.Body, Charset: charset}
}

// reader returns the body as a character stream the tokenizer can read
// directly. Only UTF-8 (the empty charset defaults to it) is
// supported: transcoding other declared charsets would need a text
// encoding library this module has no other use for and the teacher's
// own dependency set does not carry.
func (e *Exchange) reader() (io.Reader, error) {
	switch strings.ToUpper(e.Charset) {
	case "", "UTF-8", "UTF8":
		return e.Body, nil
	default:
		return nil, fmt.Errorf("exchange: unsupported charset %q", e.Charset)
	}
}
