package encoding

import "encoding/binary"

// ValueSize returns the number of bytes occupied by a value of type t
// whose first byte is b[0], given that only len(b) bytes remain before
// the end of the enclosing document. ok is false when the value cannot
// fit or the tag is not a defined type; in that case the value, and
// the document around it, must be treated as malformed.
//
// Zero is a legitimate size: null, undefined, minkey and maxkey carry
// no bytes beyond their tag.
func ValueSize(t Type, b []byte) (size int, ok bool) {
	switch t {
	case DoubleValue, DatetimeValue, TimestampValue, Int64Value:
		return 8, len(b) >= 8
	case BooleanValue:
		return 1, len(b) >= 1
	case Int32Value:
		return 4, len(b) >= 4
	case ObjectIDValue:
		return 12, len(b) >= 12
	case Decimal128Value:
		return 16, len(b) >= 16
	case NullValue, UndefinedValue, MinKeyValue, MaxKeyValue:
		return 0, true
	case StringValue, JavascriptValue, SymbolValue:
		// int32 length counting the mandatory NUL terminator, then the
		// bytes themselves.
		if len(b) < 4 {
			return 0, false
		}
		n := int32(binary.LittleEndian.Uint32(b))
		if n < 1 || int(n) > len(b)-4 {
			return 0, false
		}
		return 4 + int(n), true
	case BinaryValue:
		// int32 length, one subtype byte, then the payload.
		if len(b) < 5 {
			return 0, false
		}
		n := int32(binary.LittleEndian.Uint32(b))
		if n < 0 || int(n) > len(b)-5 {
			return 0, false
		}
		return 5 + int(n), true
	case DocumentValue, ArrayValue:
		// The embedded document length counts itself.
		if len(b) < 4 {
			return 0, false
		}
		n := int32(binary.LittleEndian.Uint32(b))
		if n < 5 || int(n) > len(b) {
			return 0, false
		}
		return int(n), true
	case JavascriptWithScopeValue:
		// int32 total length covering the whole code-with-scope value.
		// Minimum: 4 length + 5 empty string + 5 empty scope document.
		if len(b) < 4 {
			return 0, false
		}
		n := int32(binary.LittleEndian.Uint32(b))
		if n < 14 || int(n) > len(b) {
			return 0, false
		}
		return int(n), true
	case DBPointerValue:
		// int32 string length, the string, then a 12-byte object id.
		if len(b) < 4 {
			return 0, false
		}
		n := int32(binary.LittleEndian.Uint32(b))
		if n < 1 || int(n) > len(b)-16 {
			return 0, false
		}
		return 4 + int(n) + 12, true
	case RegexValue:
		// Two consecutive NUL-terminated runs: pattern, then options.
		var pos int
		for pos < len(b) && b[pos] != 0x00 {
			pos++
		}
		if pos >= len(b) {
			return 0, false
		}
		pos++
		for pos < len(b) && b[pos] != 0x00 {
			pos++
		}
		if pos >= len(b) {
			return 0, false
		}
		return pos + 1, true
	}

	return 0, false
}
