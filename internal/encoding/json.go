package encoding

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"math"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/golang-module/carbon/v2"
)

// DocumentToJSON renders a document as JSON text into dst. Array
// containers render as JSON arrays, dropping their positional keys.
// Tags with no JSON counterpart use a small extended syntax:
//
//	binary               base64 string
//	objectid, decimal128 lowercase hex string
//	datetime             ISO 8601 string (milliseconds since epoch, UTC)
//	timestamp            the raw 64-bit value as a number
//	regex                {"$regex": pattern, "$options": options}
//	dbpointer            {"$ref": name, "$id": hex string}
//	javascriptwithscope  {"$code": code, "$scope": document}
//	undefined            null
//	minkey, maxkey       {"$minkey": 1} / {"$maxkey": 1}
//
// Malformed input fails with ErrMalformedDocument; dst may then hold
// a partial rendering and should be discarded.
func DocumentToJSON(dst *bytes.Buffer, data []byte) error {
	return containerToJSON(dst, data, false)
}

func containerToJSON(dst *bytes.Buffer, data []byte, asArray bool) error {
	if asArray {
		dst.WriteByte('[')
	} else {
		dst.WriteByte('{')
	}

	first := true
	err := Iterate(data, func(el Element) error {
		if !first {
			dst.WriteByte(',')
		}
		first = false

		if !asArray {
			dst.WriteString(strconv.Quote(string(el.Key)))
			dst.WriteByte(':')
		}

		return elementToJSON(dst, el)
	})
	if err != nil {
		return err
	}

	if asArray {
		dst.WriteByte(']')
	} else {
		dst.WriteByte('}')
	}

	return nil
}

func elementToJSON(dst *bytes.Buffer, el Element) error {
	switch el.Type {
	case DoubleValue:
		f := math.Float64frombits(binary.LittleEndian.Uint64(el.Value))
		if math.IsNaN(f) || math.IsInf(f, 0) {
			dst.WriteString("null")
		} else {
			dst.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		}
	case StringValue, JavascriptValue, SymbolValue:
		writeWireString(dst, el.Value)
	case DocumentValue:
		return containerToJSON(dst, el.Value, false)
	case ArrayValue:
		return containerToJSON(dst, el.Value, true)
	case BinaryValue:
		n := int32(binary.LittleEndian.Uint32(el.Value))
		dst.WriteByte('"')
		enc := base64.NewEncoder(base64.StdEncoding, dst)
		_, _ = enc.Write(el.Value[5 : 5+n])
		_ = enc.Close()
		dst.WriteByte('"')
	case ObjectIDValue:
		dst.WriteByte('"')
		_, _ = hex.NewEncoder(dst).Write(el.Value)
		dst.WriteByte('"')
	case BooleanValue:
		if el.Value[0] != 0x00 {
			dst.WriteString("true")
		} else {
			dst.WriteString("false")
		}
	case DatetimeValue:
		ms := int64(binary.LittleEndian.Uint64(el.Value))
		c := carbon.CreateFromTimestampMilli(ms, "UTC")
		dst.WriteString(strconv.Quote(c.ToIso8601MilliString()))
	case NullValue, UndefinedValue:
		dst.WriteString("null")
	case RegexValue:
		pattern, options := splitRegex(el.Value)
		dst.WriteString(`{"$regex":`)
		dst.WriteString(strconv.Quote(string(pattern)))
		dst.WriteString(`,"$options":`)
		dst.WriteString(strconv.Quote(string(options)))
		dst.WriteByte('}')
	case DBPointerValue:
		n := int32(binary.LittleEndian.Uint32(el.Value))
		dst.WriteString(`{"$ref":`)
		writeWireString(dst, el.Value)
		dst.WriteString(`,"$id":"`)
		_, _ = hex.NewEncoder(dst).Write(el.Value[4+n : 4+n+12])
		dst.WriteString(`"}`)
	case JavascriptWithScopeValue:
		// the size table only checks the outer total length, so the
		// embedded string length is still untrusted here
		n := int32(binary.LittleEndian.Uint32(el.Value[4:]))
		if n < 1 || int(n) > len(el.Value)-8 {
			return errors.WithStack(ErrMalformedDocument)
		}
		dst.WriteString(`{"$code":`)
		writeWireString(dst, el.Value[4:])
		dst.WriteString(`,"$scope":`)
		if err := containerToJSON(dst, el.Value[8+n:], false); err != nil {
			return err
		}
		dst.WriteByte('}')
	case Int32Value:
		x := int32(binary.LittleEndian.Uint32(el.Value))
		dst.WriteString(strconv.FormatInt(int64(x), 10))
	case TimestampValue:
		dst.WriteString(strconv.FormatUint(binary.LittleEndian.Uint64(el.Value), 10))
	case Int64Value:
		x := int64(binary.LittleEndian.Uint64(el.Value))
		dst.WriteString(strconv.FormatInt(x, 10))
	case Decimal128Value:
		dst.WriteByte('"')
		_, _ = hex.NewEncoder(dst).Write(el.Value)
		dst.WriteByte('"')
	case MinKeyValue:
		dst.WriteString(`{"$minkey":1}`)
	case MaxKeyValue:
		dst.WriteString(`{"$maxkey":1}`)
	default:
		return errors.WithStack(ErrMalformedDocument)
	}

	return nil
}

// writeWireString renders a length-prefixed wire string, terminator
// excluded, as a quoted JSON string.
func writeWireString(dst *bytes.Buffer, b []byte) {
	n := int32(binary.LittleEndian.Uint32(b))
	dst.WriteString(strconv.Quote(string(b[4 : 4+n-1])))
}

func splitRegex(b []byte) (pattern, options []byte) {
	i := bytes.IndexByte(b, 0x00)
	pattern = b[:i]
	options = b[i+1 : len(b)-1]
	return pattern, options
}
