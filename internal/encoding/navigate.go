package encoding

import (
	"github.com/chaisql/bsox/internal/pathexpr"
)

// Navigate resolves path against data, one segment at a time. Every
// segment but the last must land on a document or array, whose value
// bytes become the container for the next step; descending into a
// scalar fails. The empty path is not resolvable to an Element (the
// root is the whole document, not a field of one), so callers handle
// it before calling Navigate.
//
// Resolution is all or nothing: there are no partial results.
func Navigate(data []byte, path pathexpr.Path) (Element, bool) {
	if len(path) == 0 {
		return Element{}, false
	}

	var (
		el Element
		ok bool
	)

	cur := data
	for i, seg := range path {
		if seg.IsIndex {
			el, ok = ArrayElement(cur, seg.Index)
		} else {
			el, ok = FindElement(cur, []byte(seg.Key))
		}
		if !ok {
			return Element{}, false
		}

		if i < len(path)-1 {
			if !el.Type.IsContainer() {
				return Element{}, false
			}
			cur = el.Value
		}
	}

	return el, true
}
