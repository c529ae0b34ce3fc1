package token

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type kind uint8

const (
	kInvalid kind = iota
	kEOF
	kOpenTag      // <
	kCloseTag     // </
	kEndTag       // >
	kEmptyElemTag // />
	kProcInstTag  // <? or ?>
	kCommentTag   // <!-- ... -->
	kCData        // <![CDATA[ ... ]]>
	kName
	kNamespace // name:
	kAttr      // name=
	kLiteral
)

const (
	langle    = '<'
	rangle    = '>'
	lsquare   = '['
	rsquare   = ']'
	colon     = ':'
	quote     = '"'
	apos      = '\''
	slash     = '/'
	question  = '?'
	bang      = '!'
	equal     = '='
	ampersand = '&'
	semicolon = ';'
	dash      = '-'
)

type tok struct {
	kind    kind
	literal string
}

// scannerState toggles between "inside a tag" (looking for names,
// attributes, punctuation) and "between tags" (accumulating character
// data verbatim until the next '<').
type scannerState uint8

const (
	tagState scannerState = iota
	textState
)

type scanner struct {
	rec   *recorder
	char  rune
	str   strings.Builder
	state scannerState
	eof   bool

	// fresh marks that s.char is stale (or never read) and must be
	// refetched before it is examined. Construction leaves it true so
	// the very first character is read lazily, on first use, rather
	// than at construction - a caller can observe the underlying
	// reader's offset as still zero immediately after creating the
	// tokenizer. Every token-completing scanXxx method that would
	// otherwise read one rune past its own closing delimiter purely to
	// prime the next call sets fresh = true instead of reading right
	// away, so that a capture taken right after one of those tokens
	// never includes a character belonging to whatever comes next.
	// Name, value and text tokens still read one rune past their end.
	fresh bool
}

func newScanner(rec *recorder) *scanner {
	return &scanner{rec: rec, state: textState, fresh: true}
}

func (s *scanner) fetch() {
	if !s.fresh {
		return
	}
	s.fresh = false
	s.readRune()
}

func (s *scanner) scan() tok {
	s.fetch()
	if s.eof {
		return tok{kind: kEOF}
	}
	if s.state == textState {
		return s.scanLiteral()
	}
	s.str.Reset()
	switch {
	case s.char == langle:
		return s.scanOpeningTag()
	case s.char == rangle:
		return s.scanEndTag()
	case s.char == quote || s.char == apos:
		return s.scanValue(s.char)
	case s.char == slash || s.char == question:
		return s.scanClosingTag()
	case unicode.IsLetter(s.char) || s.char == '_':
		return s.scanName()
	default:
		s.skipBlank()
		if s.eof {
			return tok{kind: kEOF}
		}
		return s.scan()
	}
}

func (s *scanner) scanOpeningTag() tok {
	s.readRune()
	if s.eof {
		return tok{kind: kInvalid, literal: "unexpected end of input after '<'"}
	}
	switch s.char {
	case bang:
		s.readRune()
		if s.char == lsquare {
			return s.scanCData()
		}
		if s.char == dash {
			return s.scanComment()
		}
		return tok{kind: kInvalid, literal: "malformed markup declaration"}
	case question:
		s.readRune()
		return tok{kind: kProcInstTag}
	case slash:
		s.readRune()
		return tok{kind: kCloseTag}
	default:
		return tok{kind: kOpenTag}
	}
}

func (s *scanner) scanComment() tok {
	s.readRune()
	if s.char != dash {
		return tok{kind: kInvalid, literal: "malformed comment"}
	}
	s.readRune()
	var done bool
	for !s.eof {
		if s.char == dash && s.peekRune() == dash {
			s.readRune()
			s.readRune()
			if s.char == rangle {
				done = true
				s.fresh = true
				break
			}
			s.str.WriteString("--")
			continue
		}
		s.str.WriteRune(s.char)
		s.readRune()
	}
	if !done {
		return tok{kind: kInvalid, literal: "unterminated comment"}
	}
	s.state = textState
	return tok{kind: kCommentTag, literal: s.str.String()}
}

func (s *scanner) scanCData() tok {
	s.readRune()
	for !s.eof && s.char != lsquare {
		s.str.WriteRune(s.char)
		s.readRune()
	}
	s.readRune()
	if s.str.String() != "CDATA" {
		return tok{kind: kInvalid, literal: "malformed CDATA section"}
	}
	s.str.Reset()
	var done bool
	for !s.eof {
		if s.char == rsquare && s.peekRune() == rsquare {
			s.readRune()
			s.readRune()
			if s.char == rangle {
				done = true
				s.fresh = true
				break
			}
			s.str.WriteString("]]")
			continue
		}
		s.str.WriteRune(s.char)
		s.readRune()
	}
	if !done {
		return tok{kind: kInvalid, literal: "unterminated CDATA section"}
	}
	s.state = textState
	return tok{kind: kCData, literal: s.str.String()}
}

func (s *scanner) scanEndTag() tok {
	s.fresh = true
	s.state = textState
	return tok{kind: kEndTag}
}

func (s *scanner) scanClosingTag() tok {
	var k kind
	if s.char == question {
		k = kProcInstTag
	} else {
		k = kEmptyElemTag
	}
	s.readRune()
	if s.char != rangle {
		return tok{kind: kInvalid, literal: "expected '>'"}
	}
	s.fresh = true
	s.state = textState
	return tok{kind: k}
}

func (s *scanner) scanValue(delim rune) tok {
	s.readRune()
	for !s.eof && s.char != delim {
		if s.char == ampersand {
			r, ok := s.scanEntity()
			if ok {
				s.str.WriteRune(r)
				continue
			}
		}
		s.str.WriteRune(s.char)
		s.readRune()
	}
	if s.eof {
		return tok{kind: kInvalid, literal: "unterminated attribute value"}
	}
	s.readRune()
	s.skipBlank()
	return tok{kind: kLiteral, literal: s.str.String()}
}

func (s *scanner) scanEntity() (rune, bool) {
	s.readRune()
	var name strings.Builder
	for !s.eof && s.char != semicolon {
		name.WriteRune(s.char)
		s.readRune()
	}
	if s.eof {
		return utf8.RuneError, false
	}
	s.readRune()
	switch name.String() {
	case "lt":
		return langle, true
	case "gt":
		return rangle, true
	case "amp":
		return ampersand, true
	case "apos":
		return apos, true
	case "quot":
		return quote, true
	default:
		return utf8.RuneError, false
	}
}

func (s *scanner) scanLiteral() tok {
	s.str.Reset()
	for !s.eof && s.char != langle {
		if s.char == ampersand {
			r, ok := s.scanEntity()
			if ok {
				s.str.WriteRune(r)
				continue
			}
		}
		s.str.WriteRune(s.char)
		s.readRune()
	}
	s.state = tagState
	return tok{kind: kLiteral, literal: s.str.String()}
}

func (s *scanner) scanName() tok {
	s.str.Reset()
	accept := func() bool {
		return unicode.IsLetter(s.char) || unicode.IsDigit(s.char) ||
			s.char == dash || s.char == '_' || s.char == '.'
	}
	for !s.eof && accept() {
		s.str.WriteRune(s.char)
		s.readRune()
	}
	name := s.str.String()
	switch {
	case s.char == equal:
		s.readRune()
		return tok{kind: kAttr, literal: name}
	case s.char == colon:
		s.readRune()
		return tok{kind: kNamespace, literal: name}
	default:
		s.skipBlank()
		return tok{kind: kName, literal: name}
	}
}

func (s *scanner) readRune() {
	r, _, err := s.rec.ReadRune()
	if err != nil {
		s.eof = true
		s.char = utf8.RuneError
		return
	}
	s.char = r
}

func (s *scanner) peekRune() rune {
	r, _, err := s.rec.ReadRune()
	if err != nil {
		return utf8.RuneError
	}
	s.rec.UnreadRune()
	return r
}

func (s *scanner) skipBlank() {
	for !s.eof && unicode.IsSpace(s.char) {
		s.readRune()
	}
}
