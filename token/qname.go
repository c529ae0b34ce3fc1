package token

import "fmt"

// QName is a qualified XML name: a namespace URI, a local name and the
// prefix it was written with. Prefix is presentational only - it never
// takes part in equality.
type QName struct {
	URI   string
	Space string
	Name  string
}

func localName(name string) QName {
	return QName{Name: name}
}

func expandedName(uri, space, name string) QName {
	return QName{URI: uri, Space: space, Name: name}
}

// Equal reports whether q and other identify the same element or
// attribute: same namespace URI, same local name. Prefix is ignored.
func (q QName) Equal(other QName) bool {
	return q.URI == other.URI && q.Name == other.Name
}

// QualifiedName renders q the way it should appear in markup:
// "prefix:local" when a prefix is set, "local" otherwise.
func (q QName) QualifiedName() string {
	if q.Space == "" {
		return q.Name
	}
	return fmt.Sprintf("%s:%s", q.Space, q.Name)
}

func (q QName) String() string {
	return q.QualifiedName()
}
