// Package pathexpr parses and represents path expressions used to
// address one value inside a nested document, such as $.a.b[2].c.
package pathexpr

import (
	"strconv"
	"strings"
)

// A Path is the compiled form of a path expression: the ordered steps
// to follow from the root of a document. An empty Path addresses the
// root itself. Compiling a path is independent from resolving it
// against a document, so callers processing many documents with the
// same expression should parse once and reuse the result.
type Path []Segment

// A Segment is a single step of a Path: either an object key or an
// array index, never both. The active variant is determined by
// IsIndex, set only by the constructors.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// KeySegment returns a segment addressing an object field.
func KeySegment(key string) Segment {
	return Segment{Key: key}
}

// IndexSegment returns a segment addressing an array position.
func IndexSegment(index int) Segment {
	return Segment{Index: index, IsIndex: true}
}

// String renders the path back to its textual form. Keys containing a
// grammar character are quoted so the output re-parses to the same
// path.
func (p Path) String() string {
	var b strings.Builder

	b.WriteByte('$')
	for _, s := range p {
		if s.IsIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.Index))
			b.WriteByte(']')
			continue
		}

		b.WriteByte('.')
		if strings.ContainsAny(s.Key, `.["`) {
			b.WriteByte('"')
			b.WriteString(s.Key)
			b.WriteByte('"')
		} else {
			b.WriteString(s.Key)
		}
	}

	return b.String()
}

// IsEqual returns whether other is equal to p.
func (p Path) IsEqual(other Path) bool {
	if len(other) != len(p) {
		return false
	}

	for i := range p {
		if other[i] != p[i] {
			return false
		}
	}

	return true
}
