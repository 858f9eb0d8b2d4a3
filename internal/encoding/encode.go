package encoding

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/chaisql/bsox/tree"
	"github.com/cockroachdb/errors"
)

// ErrTopLevelScalar is returned by EncodeTree when the root of the
// tree is not an object or an array. The wire format has no framing
// for a bare scalar: a document is always a field-keyed container.
var ErrTopLevelScalar = errors.New("top-level value must be an object or an array")

// EncodeTree appends the binary form of v to dst and returns the
// extended buffer. v must be an object or array node; objects emit
// their fields in tree order, arrays emit fields keyed "0", "1", ...
// Growth is handled by append, so there is no a priori size limit and
// no overflow failure mode. On error nothing is returned: the caller
// never sees a half-written document.
func EncodeTree(dst []byte, v tree.Value) ([]byte, error) {
	switch v.Kind() {
	case tree.Object, tree.Array:
		return encodeContainer(dst, v)
	}

	return nil, errors.WithStack(ErrTopLevelScalar)
}

// encodeContainer writes a length prefix placeholder, the fields, the
// terminator, then patches the prefix with the total size, length
// field included.
func encodeContainer(dst []byte, v tree.Value) ([]byte, error) {
	off := len(dst)
	dst = append(dst, 0, 0, 0, 0)

	var err error
	if v.Kind() == tree.Object {
		for _, f := range v.Fields() {
			dst, err = encodeField(dst, f.Name, f.Value)
			if err != nil {
				return nil, err
			}
		}
	} else {
		for i, el := range v.Elems() {
			dst, err = encodeField(dst, strconv.Itoa(i), el)
			if err != nil {
				return nil, err
			}
		}
	}

	dst = append(dst, 0x00)
	binary.LittleEndian.PutUint32(dst[off:], uint32(len(dst)-off))
	return dst, nil
}

func encodeField(dst []byte, key string, v tree.Value) ([]byte, error) {
	// keys are NUL-terminated on the wire, so a NUL in the name would
	// silently truncate it
	if strings.IndexByte(key, 0x00) >= 0 {
		return nil, errors.Errorf("field name %q contains a NUL byte", key)
	}

	var err error

	switch v.Kind() {
	case tree.Null:
		dst = appendElementHeader(dst, NullValue, key)
	case tree.Bool:
		dst = appendElementHeader(dst, BooleanValue, key)
		if v.Bool() {
			dst = append(dst, 0x01)
		} else {
			dst = append(dst, 0x00)
		}
	case tree.Double:
		dst = appendElementHeader(dst, DoubleValue, key)
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(v.Double()))
	case tree.Int:
		x := v.Int()
		if x >= math.MinInt32 && x <= math.MaxInt32 {
			dst = appendElementHeader(dst, Int32Value, key)
			dst = binary.LittleEndian.AppendUint32(dst, uint32(int32(x)))
		} else {
			dst = appendElementHeader(dst, Int64Value, key)
			dst = binary.LittleEndian.AppendUint64(dst, uint64(x))
		}
	case tree.Uint:
		x := v.Uint()
		switch {
		case x <= math.MaxInt32:
			dst = appendElementHeader(dst, Int32Value, key)
			dst = binary.LittleEndian.AppendUint32(dst, uint32(int32(x)))
		case x <= math.MaxInt64:
			dst = appendElementHeader(dst, Int64Value, key)
			dst = binary.LittleEndian.AppendUint64(dst, x)
		default:
			return nil, errors.Errorf("unsigned integer %d overflows int64", x)
		}
	case tree.String:
		s := v.Text()
		dst = appendElementHeader(dst, StringValue, key)
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(s)+1))
		dst = append(dst, s...)
		dst = append(dst, 0x00)
	case tree.Object:
		dst = appendElementHeader(dst, DocumentValue, key)
		dst, err = encodeContainer(dst, v)
		if err != nil {
			return nil, err
		}
	case tree.Array:
		dst = appendElementHeader(dst, ArrayValue, key)
		dst, err = encodeContainer(dst, v)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("unsupported value kind %v", v.Kind())
	}

	return dst, nil
}

func appendElementHeader(dst []byte, t Type, key string) []byte {
	dst = append(dst, byte(t))
	dst = append(dst, key...)
	return append(dst, 0x00)
}
