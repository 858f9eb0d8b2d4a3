package encoding

import (
	"bytes"
	"encoding/binary"
	"strconv"

	"github.com/cockroachdb/errors"
)

// Minimum document: a 4-byte length prefix and the terminator byte.
const minDocLen = 5

// An Element is one field of a document: its type tag, its key and its
// value. Key and Value are subslices of the document the element was
// found in; nothing is copied and the element stays usable only as
// long as the caller keeps the document bytes alive. Key does not
// include the structural NUL terminator.
type Element struct {
	Type  Type
	Key   []byte
	Value []byte
}

// Validate reports whether data is a structurally well-formed
// document: a coherent length prefix, a trailing zero byte, and a
// chain of elements that lands exactly on the terminator. It never
// reads past data and never panics on arbitrary input; malformed
// bytes are an expected case, not an error.
func Validate(data []byte) bool {
	if len(data) < minDocLen {
		return false
	}

	docLen := int32(binary.LittleEndian.Uint32(data))
	if docLen < minDocLen || int(docLen) > len(data) {
		return false
	}

	if data[docLen-1] != 0x00 {
		return false
	}

	pos := 4
	for pos < int(docLen)-1 {
		t := Type(data[pos])
		pos++

		// key: NUL-terminated run of bytes
		for pos < int(docLen) && data[pos] != 0x00 {
			pos++
		}
		if pos >= int(docLen) {
			return false
		}
		pos++

		size, ok := ValueSize(t, data[pos:docLen])
		if !ok {
			return false
		}
		pos += size
	}

	return pos == int(docLen)-1
}

// FindElement scans the top-level fields of data for the first one
// whose key equals key byte-for-byte. The scan mirrors Validate: a
// malformed element encountered before a match makes the lookup fail
// rather than return garbage. There is no index to consult, the format
// only supports forward scans, so each call starts from the beginning.
func FindElement(data, key []byte) (Element, bool) {
	if len(data) < minDocLen {
		return Element{}, false
	}

	docLen := int32(binary.LittleEndian.Uint32(data))
	if docLen < minDocLen || int(docLen) > len(data) {
		return Element{}, false
	}

	pos := 4
	for pos < int(docLen)-1 {
		t := Type(data[pos])
		pos++

		keyStart := pos
		for pos < int(docLen) && data[pos] != 0x00 {
			pos++
		}
		if pos >= int(docLen) {
			return Element{}, false
		}
		elemKey := data[keyStart:pos]
		pos++

		size, ok := ValueSize(t, data[pos:docLen])
		if !ok {
			return Element{}, false
		}

		if bytes.Equal(elemKey, key) {
			return Element{
				Type:  t,
				Key:   elemKey,
				Value: data[pos : pos+size],
			}, true
		}

		pos += size
	}

	return Element{}, false
}

// ArrayElement returns the element at the given index of an
// array-typed container. Arrays are documents keyed by the decimal
// form of consecutive indices, so this is a plain key lookup.
func ArrayElement(data []byte, index int) (Element, bool) {
	return FindElement(data, strconv.AppendInt(nil, int64(index), 10))
}

// ErrMalformedDocument is returned by Iterate when the scan runs into
// bytes that do not form a valid element chain.
var ErrMalformedDocument = errors.New("malformed document")

// Iterate calls fn once per top-level element of data, in document
// order, and stops at the first error. Unlike the boolean read-path
// primitives it reports malformation as ErrMalformedDocument, which
// suits tooling that needs to say why a walk stopped.
func Iterate(data []byte, fn func(Element) error) error {
	if len(data) < minDocLen {
		return errors.WithStack(ErrMalformedDocument)
	}

	docLen := int32(binary.LittleEndian.Uint32(data))
	if docLen < minDocLen || int(docLen) > len(data) || data[docLen-1] != 0x00 {
		return errors.WithStack(ErrMalformedDocument)
	}

	pos := 4
	for pos < int(docLen)-1 {
		t := Type(data[pos])
		pos++

		keyStart := pos
		for pos < int(docLen) && data[pos] != 0x00 {
			pos++
		}
		if pos >= int(docLen) {
			return errors.WithStack(ErrMalformedDocument)
		}
		key := data[keyStart:pos]
		pos++

		size, ok := ValueSize(t, data[pos:docLen])
		if !ok {
			return errors.WithStack(ErrMalformedDocument)
		}

		err := fn(Element{Type: t, Key: key, Value: data[pos : pos+size]})
		if err != nil {
			return err
		}

		pos += size
	}

	if pos != int(docLen)-1 {
		return errors.WithStack(ErrMalformedDocument)
	}

	return nil
}
