package pathexpr

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
)

// Causes carried by SyntaxError, one per grammar rule that can be
// violated. Callers distinguish them with errors.Is.
var (
	ErrNoRoot         = errors.New("path must start with '$'")
	ErrTrailingDot    = errors.New("path ends with '.'")
	ErrEmptyKey       = errors.New("empty key")
	ErrUnclosedQuote  = errors.New("unclosed quoted key")
	ErrBadIndex       = errors.New("invalid array index")
	ErrUnexpectedChar = errors.New("unexpected character")
)

// SyntaxError is returned by Parse for any malformed path expression.
// It wraps one of the Err* causes above and records where in the
// input the rule was violated.
type SyntaxError struct {
	Input string
	Pos   int
	Err   error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid path %q: %v at position %d", e.Input, e.Err, e.Pos)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func newSyntaxError(input string, pos int, cause error) error {
	return errors.WithStack(&SyntaxError{Input: input, Pos: pos, Err: cause})
}

// Parse compiles a path expression:
//
//	path      := '$' step*
//	step      := '.' key | '[' digits ']'
//	key       := '"' char+ '"' | char+
//
// The leading '$' is mandatory; "$" alone compiles to an empty Path
// denoting the whole document. A bare key runs until the next '.' or
// '['; a quoted key runs until the next '"' and may contain any other
// character. There is no escape for a literal '"' inside a quoted
// key. Failures are always a *SyntaxError wrapping one of the Err*
// causes.
func Parse(s string) (Path, error) {
	if len(s) == 0 || s[0] != '$' {
		return nil, newSyntaxError(s, 0, ErrNoRoot)
	}

	var path Path

	pos := 1
	for pos < len(s) {
		switch s[pos] {
		case '.':
			pos++
			if pos >= len(s) {
				return nil, newSyntaxError(s, pos, ErrTrailingDot)
			}

			quoted := s[pos] == '"'
			if quoted {
				pos++
			}

			keyStart := pos
			for pos < len(s) {
				if quoted {
					if s[pos] == '"' {
						break
					}
				} else if s[pos] == '.' || s[pos] == '[' {
					break
				}
				pos++
			}

			if pos == keyStart {
				return nil, newSyntaxError(s, keyStart, ErrEmptyKey)
			}

			path = append(path, KeySegment(s[keyStart:pos]))

			if quoted {
				if pos >= len(s) {
					return nil, newSyntaxError(s, pos, ErrUnclosedQuote)
				}
				pos++
			}
		case '[':
			pos++

			idxStart := pos
			for pos < len(s) && s[pos] >= '0' && s[pos] <= '9' {
				pos++
			}

			if pos == idxStart || pos >= len(s) || s[pos] != ']' {
				return nil, newSyntaxError(s, idxStart, ErrBadIndex)
			}

			idx, err := strconv.Atoi(s[idxStart:pos])
			if err != nil {
				return nil, newSyntaxError(s, idxStart, ErrBadIndex)
			}

			path = append(path, IndexSegment(idx))
			pos++
		default:
			return nil, newSyntaxError(s, pos, ErrUnexpectedChar)
		}
	}

	return path, nil
}
