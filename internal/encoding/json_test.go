package encoding_test

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"testing"
	"time"

	"github.com/chaisql/bsox/internal/encoding"
	"github.com/chaisql/bsox/tree"
	"github.com/stretchr/testify/require"
)

func dumpJSON(t *testing.T, doc []byte) string {
	t.Helper()

	var buf bytes.Buffer
	err := encoding.DocumentToJSON(&buf, doc)
	require.NoError(t, err)
	return buf.String()
}

func TestDocumentToJSON(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		require.Equal(t, "{}", dumpJSON(t, []byte{0x05, 0x00, 0x00, 0x00, 0x00}))
	})

	t.Run("scalars and containers", func(t *testing.T) {
		doc, err := encoding.EncodeTree(nil, tree.NewObject(
			tree.Field{Name: "name", Value: tree.NewString("John")},
			tree.Field{Name: "age", Value: tree.NewInt(41)},
			tree.Field{Name: "score", Value: tree.NewDouble(1.5)},
			tree.Field{Name: "ok", Value: tree.NewBool(true)},
			tree.Field{Name: "none", Value: tree.NewNull()},
			tree.Field{Name: "tags", Value: tree.NewArray(tree.NewString("a"), tree.NewString("b"))},
			tree.Field{Name: "sub", Value: tree.NewObject(tree.Field{Name: "k", Value: tree.NewInt(1)})},
		))
		require.NoError(t, err)

		got := dumpJSON(t, doc)
		require.Equal(t, `{"name":"John","age":41,"score":1.5,"ok":true,"none":null,"tags":["a","b"],"sub":{"k":1}}`, got)

		// the dump is parseable JSON
		require.True(t, json.Valid([]byte(got)))
	})

	t.Run("escaped key and value", func(t *testing.T) {
		doc, err := encoding.EncodeTree(nil, tree.NewObject(
			tree.Field{Name: `a"b`, Value: tree.NewString("line\nbreak")},
		))
		require.NoError(t, err)

		got := dumpJSON(t, doc)
		require.True(t, json.Valid([]byte(got)))

		var m map[string]string
		require.NoError(t, json.Unmarshal([]byte(got), &m))
		require.Equal(t, "line\nbreak", m[`a"b`])
	})

	t.Run("datetime", func(t *testing.T) {
		ms := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
		doc := buildDoc(elem(encoding.DatetimeValue, "at", binary.LittleEndian.AppendUint64(nil, uint64(ms))))
		got := dumpJSON(t, doc)
		require.Contains(t, got, "2021-01-01")
		require.True(t, json.Valid([]byte(got)))
	})

	t.Run("binary as base64", func(t *testing.T) {
		doc := buildDoc(elem(encoding.BinaryValue, "raw", []byte{3, 0, 0, 0, 0x00, 'f', 'o', 'o'}))
		require.Equal(t, `{"raw":"Zm9v"}`, dumpJSON(t, doc))
	})

	t.Run("regex", func(t *testing.T) {
		doc := buildDoc(elem(encoding.RegexValue, "r", []byte{'a', '+', 0, 'i', 0}))
		require.Equal(t, `{"r":{"$regex":"a+","$options":"i"}}`, dumpJSON(t, doc))
	})

	t.Run("minkey maxkey undefined", func(t *testing.T) {
		doc := buildDoc(
			elem(encoding.MinKeyValue, "lo", nil),
			elem(encoding.MaxKeyValue, "hi", nil),
			elem(encoding.UndefinedValue, "u", nil),
		)
		require.Equal(t, `{"lo":{"$minkey":1},"hi":{"$maxkey":1},"u":null}`, dumpJSON(t, doc))
	})

	t.Run("objectid as hex", func(t *testing.T) {
		doc := buildDoc(elem(encoding.ObjectIDValue, "id", []byte{
			0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF, 0x01, 0x23, 0x45, 0x67,
		}))
		require.Equal(t, `{"id":"0123456789abcdef01234567"}`, dumpJSON(t, doc))
	})

	t.Run("symbol", func(t *testing.T) {
		doc := buildDoc(elem(encoding.SymbolValue, "s", []byte{4, 0, 0, 0, 's', 'y', 'm', 0}))
		require.Equal(t, `{"s":"sym"}`, dumpJSON(t, doc))
	})

	t.Run("timestamp", func(t *testing.T) {
		doc := buildDoc(elem(encoding.TimestampValue, "ts", binary.LittleEndian.AppendUint64(nil, 7)))
		require.Equal(t, `{"ts":7}`, dumpJSON(t, doc))
	})

	t.Run("decimal128 as hex", func(t *testing.T) {
		doc := buildDoc(elem(encoding.Decimal128Value, "d", []byte{
			0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
			0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,
		}))
		require.Equal(t, `{"d":"000102030405060708090a0b0c0d0e0f"}`, dumpJSON(t, doc))
	})

	t.Run("dbpointer", func(t *testing.T) {
		v := []byte{8, 0, 0, 0, 'd', 'b', '.', 'c', 'o', 'l', 'l', 0}
		v = append(v, 0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF, 0x01, 0x23, 0x45, 0x67)
		doc := buildDoc(elem(encoding.DBPointerValue, "p", v))
		require.Equal(t, `{"p":{"$ref":"db.coll","$id":"0123456789abcdef01234567"}}`, dumpJSON(t, doc))
	})

	t.Run("code with scope", func(t *testing.T) {
		code := []byte{4, 0, 0, 0, 'x', '=', '1', 0}
		scope := buildDoc(elem(encoding.Int32Value, "y", []byte{2, 0, 0, 0}))

		v := binary.LittleEndian.AppendUint32(nil, uint32(4+len(code)+len(scope)))
		v = append(v, code...)
		v = append(v, scope...)

		doc := buildDoc(elem(encoding.JavascriptWithScopeValue, "js", v))
		require.Equal(t, `{"js":{"$code":"x=1","$scope":{"y":2}}}`, dumpJSON(t, doc))
	})

	t.Run("code with scope bad inner length", func(t *testing.T) {
		// coherent outer length over garbage string lengths; the
		// validator window-checks the outer length only, so the dump
		// must reject these itself rather than slice past the value
		for _, inner := range [][]byte{
			{0xFF, 0xFF, 0xFF, 0x7F},
			{13, 0, 0, 0},
			{0, 0, 0, 0},
		} {
			v := binary.LittleEndian.AppendUint32(nil, 20)
			v = append(v, inner...)
			v = append(v, make([]byte, 12)...)
			doc := buildDoc(elem(encoding.JavascriptWithScopeValue, "js", v))
			require.True(t, encoding.Validate(doc))

			var buf bytes.Buffer
			err := encoding.DocumentToJSON(&buf, doc)
			require.ErrorIs(t, err, encoding.ErrMalformedDocument)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		var buf bytes.Buffer
		err := encoding.DocumentToJSON(&buf, []byte{0x04, 0x00, 0x00, 0x00, 0x00})
		require.ErrorIs(t, err, encoding.ErrMalformedDocument)
	})
}
