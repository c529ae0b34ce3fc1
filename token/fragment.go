package token

import (
	"sort"
	"strings"
)

// buildWrap reconstructs a well-formed fragment for a match by
// concatenating the recorded ancestor segments' verbatim start-tag
// text, the matched element's own start tag, and its raw content -
// children plus its own real closing tag, already well-formed on its
// own - then synthesizing closing tags for the ancestors, innermost
// first. The matched element's own closing tag is never synthesized:
// it is already part of raw.
func buildWrap(ancestors []segmentFrame, matchedText, raw string) string {
	var sb strings.Builder
	for _, seg := range ancestors {
		sb.WriteString(seg.text)
	}
	sb.WriteString(matchedText)
	sb.WriteString(raw)
	for i := len(ancestors) - 1; i >= 0; i-- {
		writeCloseTag(&sb, ancestors[i].name)
	}
	return sb.String()
}

func writeCloseTag(sb *strings.Builder, name QName) {
	sb.WriteString("</")
	if name.Space != "" {
		sb.WriteString(name.Space)
		sb.WriteByte(':')
	}
	sb.WriteString(name.Name)
	sb.WriteByte('>')
}

// buildInject returns the matched element's own recorded start tag with
// any namespace bindings inherited from its ancestors, but not already
// declared on the tag itself, spliced in just before the tag closes.
// raw carries the element's children and closing tag unmodified.
//
// The splice is done with a small hand-rolled scanner over the raw tag
// text rather than a regular expression: attribute values can contain
// '>' inside quotes, and a regex anchored on the closing delimiter is
// exactly the kind of thing that looks right until it meets one.
func buildInject(startTag string, inherited map[string]string, raw string) string {
	if len(inherited) == 0 {
		return startTag + raw
	}
	declared, quote, closeAt, selfClosed := scanStartTag(startTag)
	missing := make(map[string]string, len(inherited))
	for prefix, uri := range inherited {
		if _, ok := declared[prefix]; !ok {
			missing[prefix] = uri
		}
	}
	if len(missing) == 0 {
		return startTag + raw
	}

	prefixes := make([]string, 0, len(missing))
	for p := range missing {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)

	var sb strings.Builder
	sb.WriteString(startTag[:closeAt])
	for _, prefix := range prefixes {
		sb.WriteByte(' ')
		sb.WriteString("xmlns")
		if prefix != "" {
			sb.WriteByte(':')
			sb.WriteString(prefix)
		}
		sb.WriteByte('=')
		sb.WriteRune(quote)
		sb.WriteString(missing[prefix])
		sb.WriteRune(quote)
	}
	if selfClosed {
		sb.WriteString(" />")
	} else {
		sb.WriteByte('>')
	}
	sb.WriteString(raw)
	return sb.String()
}

// scanStartTag walks a verbatim, already well-formed start tag and
// reports the prefixes it declares as namespace bindings, the quote
// character its attribute values use (defaulting to '"' if it declares
// none), the byte offset where an injected declaration should be
// inserted, and whether the tag is self-closing.
func scanStartTag(tag string) (declared map[string]string, quote rune, closeAt int, selfClosed bool) {
	declared = make(map[string]string)
	quote = '"'
	runes := []rune(tag)
	n := len(runes)

	i := 0
	for i < n && runes[i] != '<' {
		i++
	}
	i++
	for i < n && isNameByte(runes[i]) {
		i++
	}

	sawQuote := false
	for i < n {
		for i < n && isSpace(runes[i]) {
			i++
		}
		if i >= n {
			break
		}
		if runes[i] == '/' {
			selfClosed = true
			closeAt = byteOffset(runes, i)
			break
		}
		if runes[i] == '>' {
			closeAt = byteOffset(runes, i)
			break
		}
		start := i
		for i < n && runes[i] != '=' && !isSpace(runes[i]) {
			i++
		}
		name := string(runes[start:i])
		for i < n && isSpace(runes[i]) {
			i++
		}
		if i >= n || runes[i] != '=' {
			continue
		}
		i++
		for i < n && isSpace(runes[i]) {
			i++
		}
		if i >= n || (runes[i] != '"' && runes[i] != '\'') {
			continue
		}
		delim := runes[i]
		if !sawQuote {
			quote = delim
			sawQuote = true
		}
		i++
		vstart := i
		for i < n && runes[i] != delim {
			i++
		}
		value := string(runes[vstart:i])
		if i < n {
			i++
		}
		if prefix, ok := (attr{Name: parseAttrName(name)}).isNamespaceDecl(); ok {
			declared[prefix] = value
		}
	}
	if closeAt == 0 && !selfClosed {
		closeAt = len(tag)
	}
	return declared, quote, closeAt, selfClosed
}

func parseAttrName(name string) QName {
	space, local, ok := strings.Cut(name, ":")
	if !ok {
		return QName{Name: name}
	}
	return QName{Space: space, Name: local}
}

func isNameByte(r rune) bool {
	return !isSpace(r) && r != '>' && r != '/'
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

func byteOffset(runes []rune, upto int) int {
	return len(string(runes[:upto]))
}
