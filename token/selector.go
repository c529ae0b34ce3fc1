package token

import (
	"fmt"
	"regexp"
	"strings"
)

// segment is an attributed qualified name: a selector position extended
// with the two matching flags described by the base spec's data model.
// A nil *segment at a position denotes the descendant-or-self axis.
type segment struct {
	name    QName
	nsAny   bool
	pattern *regexp.Regexp
}

func compileSegment(prefix, name string, nsmap map[string]string) *segment {
	seg := segment{name: expandedName(nsmap[prefix], prefix, name)}
	if prefix == "*" {
		seg.nsAny = true
		seg.name = localName(name)
	}
	if strings.ContainsAny(name, "*?") {
		seg.pattern = compileGlob(name)
	}
	return &seg
}

// compileGlob turns a local-name glob ('*' any run, '?' any one char)
// into an anchored regular expression, the same translation the
// original selector applies before handing the pattern to its regex
// engine.
func compileGlob(glob string) *regexp.Regexp {
	var sb strings.Builder
	sb.WriteByte('^')
	for _, r := range glob {
		switch r {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteByte('.')
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteByte('$')
	return regexp.MustCompile(sb.String())
}

// matches reports whether s matches the given element/attribute name,
// per the base spec's segment-matching rule: (ns-any or namespace-uri
// equal) and (local-pattern matches if present, else local-part equal).
func (s *segment) matches(name QName) bool {
	if s == nil {
		return false
	}
	if !s.nsAny && s.name.URI != name.URI {
		return false
	}
	if s.pattern != nil {
		return s.pattern.MatchString(name.Name)
	}
	return s.name.Name == name.Name
}

// selector is the compiled, ordered sequence of path positions. A nil
// entry marks the descendant-or-self axis produced by "//" in the path
// string.
type selector struct {
	segments []*segment
}

// compileSelector parses a path string of the form
// "/[prefix:]name(/[prefix:]name)*", where an empty segment ("//")
// denotes descendant-or-self and "*" is usable for either the prefix
// or the local name (optionally combined with "?" globbing on the
// local name).
func compileSelector(path string, nsmap map[string]string) (*selector, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	trimmed := strings.TrimPrefix(path, "/")
	raw := strings.Split(trimmed, "/")

	sel := selector{segments: make([]*segment, len(raw))}
	for i, part := range raw {
		if part == "" {
			continue
		}
		prefix, local, hasPrefix := strings.Cut(part, ":")
		if !hasPrefix {
			local, prefix = prefix, ""
		}
		sel.segments[i] = compileSegment(prefix, local, nsmap)
	}
	if err := sel.checkDescendantPlacement(path); err != nil {
		return nil, err
	}
	return &sel, nil
}

// checkDescendantPlacement enforces the base spec's §3 invariant that a
// descendant-or-self marker is never the last position in the selector
// and never adjacent to another one: either would leave current with
// nothing concrete to match against and no way to ever reach isBottom.
func (sel *selector) checkDescendantPlacement(path string) error {
	for i, seg := range sel.segments {
		if seg != nil {
			continue
		}
		if i == len(sel.segments)-1 {
			return fmt.Errorf("%w: %q cannot end in \"//\"", ErrMalformedSelector, path)
		}
		if sel.segments[i+1] == nil {
			return fmt.Errorf("%w: %q has adjacent \"//\"", ErrMalformedSelector, path)
		}
	}
	return nil
}

func (sel *selector) len() int {
	return len(sel.segments)
}

func (sel *selector) isDescendant(index int) bool {
	return sel.segments[index] == nil
}

// current returns the matcher a start element at the current cursor
// index must satisfy, skipping over a descendant-or-self marker.
func (sel *selector) current(index int) *segment {
	if sel.isDescendant(index) {
		return sel.segments[index+1]
	}
	return sel.segments[index]
}

// ancestor returns the matcher that governs ascending past index, or
// nil at the top of the selector.
func (sel *selector) ancestor(index int) *segment {
	if index == 0 {
		return nil
	}
	return sel.segments[index-1]
}

func (sel *selector) isTop(index int) bool {
	return index == 0
}

func (sel *selector) isBottom(index int) bool {
	last := sel.len() - 1
	if sel.isDescendant(index) {
		last--
	}
	return index == last
}

// down advances the cursor past a matched intermediary position,
// skipping over a trailing descendant-or-self marker if present.
func (sel *selector) down(index int) int {
	if sel.isDescendant(index) {
		index++
	}
	return index + 1
}
