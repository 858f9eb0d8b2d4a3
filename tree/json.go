package tree

import (
	"strconv"

	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"
)

// ParseJSON builds a tree from JSON text. Object keys keep the order
// they appear in; duplicate keys are kept. Numbers become the
// narrowest faithful node: int if the literal fits an int64, uint for
// larger positive integers, double otherwise.
func ParseJSON(data []byte) (Value, error) {
	raw, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return Value{}, errors.Wrap(err, "invalid JSON")
	}

	return parseJSONValue(dataType, raw)
}

func parseJSONValue(dataType jsonparser.ValueType, data []byte) (Value, error) {
	switch dataType {
	case jsonparser.Null:
		return NewNull(), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return Value{}, err
		}
		return NewBool(b), nil
	case jsonparser.Number:
		i, err := jsonparser.ParseInt(data)
		if err == nil {
			return NewInt(i), nil
		}

		// too big for an int64: try unsigned before falling back to
		// floating point
		u, uerr := strconv.ParseUint(string(data), 10, 64)
		if uerr == nil {
			return NewUint(u), nil
		}

		f, err := jsonparser.ParseFloat(data)
		if err != nil {
			return Value{}, err
		}
		return NewDouble(f), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return Value{}, err
		}
		return NewString(s), nil
	case jsonparser.Array:
		var elems []Value
		var cbErr error
		_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
			if cbErr != nil {
				return
			}
			if err != nil {
				cbErr = err
				return
			}

			v, err := parseJSONValue(dataType, value)
			if err != nil {
				cbErr = err
				return
			}
			elems = append(elems, v)
		})
		if err != nil {
			return Value{}, err
		}
		if cbErr != nil {
			return Value{}, cbErr
		}
		return NewArray(elems...), nil
	case jsonparser.Object:
		var fields []Field
		err := jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, offset int) error {
			v, err := parseJSONValue(dataType, value)
			if err != nil {
				return err
			}
			fields = append(fields, Field{Name: string(key), Value: v})
			return nil
		})
		if err != nil {
			return Value{}, err
		}
		return NewObject(fields...), nil
	}

	return Value{}, errors.Errorf("unsupported JSON type: %v", dataType)
}
