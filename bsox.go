package bsox

import (
	"bytes"
	"encoding/binary"

	"github.com/chaisql/bsox/internal/encoding"
	"github.com/chaisql/bsox/internal/pathexpr"
	"github.com/chaisql/bsox/tree"
)

// Path is the compiled form of a path expression. See ParsePath.
type Path = pathexpr.Path

// Segment is one step of a Path.
type Segment = pathexpr.Segment

// PathSyntaxError is the error type returned by ParsePath. It wraps
// one of the Err* causes below, distinguishable with errors.Is.
type PathSyntaxError = pathexpr.SyntaxError

// Causes of a PathSyntaxError, one per violated grammar rule.
var (
	ErrNoRoot         = pathexpr.ErrNoRoot
	ErrTrailingDot    = pathexpr.ErrTrailingDot
	ErrEmptyKey       = pathexpr.ErrEmptyKey
	ErrUnclosedQuote  = pathexpr.ErrUnclosedQuote
	ErrBadIndex       = pathexpr.ErrBadIndex
	ErrUnexpectedChar = pathexpr.ErrUnexpectedChar
)

// KeySegment returns a path segment addressing an object field.
func KeySegment(key string) Segment {
	return pathexpr.KeySegment(key)
}

// IndexSegment returns a path segment addressing an array position.
func IndexSegment(index int) Segment {
	return pathexpr.IndexSegment(index)
}

// Valid reports whether data is a structurally well-formed document.
// It is a pure predicate: malformed input of any shape returns false,
// it never panics and never reads past data.
func Valid(data []byte) bool {
	return encoding.Validate(data)
}

// ParsePath compiles a path expression such as $.a.b[2].c. "$" alone
// denotes the whole document. A malformed expression returns a
// *PathSyntaxError; parse errors are programmer errors and surface
// immediately, before any document is touched.
//
// Parsing is independent from resolution: when the same expression is
// applied to many documents, compile it once and reuse the Path.
func ParsePath(s string) (Path, error) {
	return pathexpr.Parse(s)
}

// Exists reports whether the path resolves to an element of data. The
// empty path reports whether data is a valid document at all.
func Exists(data []byte, p Path) bool {
	if len(p) == 0 {
		return encoding.Validate(data)
	}

	_, ok := encoding.Navigate(data, p)
	return ok
}

// TypeOf returns the type name of the element at the path: one of
// "double", "string", "document", "array", "binary", "undefined",
// "objectid", "boolean", "datetime", "null", "regex", "dbpointer",
// "javascript", "symbol", "javascriptwithscope", "int32", "timestamp",
// "int64", "decimal128", "minkey" or "maxkey". The empty path answers
// "document" when data is valid. ok is false when the path does not
// resolve.
func TypeOf(data []byte, p Path) (string, bool) {
	if len(p) == 0 {
		if !encoding.Validate(data) {
			return "", false
		}
		return encoding.DocumentValue.String(), true
	}

	el, ok := encoding.Navigate(data, p)
	if !ok {
		return "", false
	}

	return el.Type.String(), true
}

// Extract returns the bytes of the container at the path: a document
// or array element's value, which is itself a complete document. The
// result is a subslice of data, not a copy. The empty path returns
// the whole document, provided it is valid. Paths landing on a scalar
// fail: a bare scalar is not a self-describing unit in this format.
func Extract(data []byte, p Path) ([]byte, bool) {
	if len(p) == 0 {
		if !encoding.Validate(data) {
			return nil, false
		}
		return data, true
	}

	el, ok := encoding.Navigate(data, p)
	if !ok || !el.Type.IsContainer() {
		return nil, false
	}

	return el.Value, true
}

// ExtractString returns the text of the string element at the path.
// Non-string elements, containers included, fail.
func ExtractString(data []byte, p Path) (string, bool) {
	el, ok := encoding.Navigate(data, p)
	if !ok || el.Type != encoding.StringValue {
		return "", false
	}

	// length-prefixed, counting the mandatory NUL terminator
	n := int32(binary.LittleEndian.Uint32(el.Value))
	if n < 1 {
		return "", false
	}

	return string(el.Value[4 : 4+n-1]), true
}

// FromJSON converts JSON text to a binary document. The root must be
// an object or an array. Object key order is preserved; integers use
// the int32 form when they fit, the int64 form otherwise. The
// returned buffer is freshly allocated and owned by the caller; on
// error no buffer is returned.
func FromJSON(data []byte) ([]byte, error) {
	root, err := tree.ParseJSON(data)
	if err != nil {
		return nil, err
	}

	return encoding.EncodeTree(nil, root)
}

// Encode converts a value tree to a binary document. The root must be
// an object or array node.
func Encode(root tree.Value) ([]byte, error) {
	return encoding.EncodeTree(nil, root)
}

// ToJSON renders a binary document as JSON text. Tags with no JSON
// counterpart use extended forms: binary as base64, datetime as an
// ISO8601 string, objectid as hex, regex as a {"$regex": ...} object.
func ToJSON(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := encoding.DocumentToJSON(&buf, data)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
