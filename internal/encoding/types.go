package encoding

// Type is the single-byte tag identifying the shape of an element's
// value on the wire. The numeric codes come from the BSON
// specification and appear verbatim in stored documents.
type Type byte

const (
	DoubleValue              Type = 0x01
	StringValue              Type = 0x02
	DocumentValue            Type = 0x03
	ArrayValue               Type = 0x04
	BinaryValue              Type = 0x05
	UndefinedValue           Type = 0x06 // deprecated
	ObjectIDValue            Type = 0x07
	BooleanValue             Type = 0x08
	DatetimeValue            Type = 0x09
	NullValue                Type = 0x0A
	RegexValue               Type = 0x0B
	DBPointerValue           Type = 0x0C // deprecated
	JavascriptValue          Type = 0x0D
	SymbolValue              Type = 0x0E // deprecated
	JavascriptWithScopeValue Type = 0x0F
	Int32Value               Type = 0x10
	TimestampValue           Type = 0x11
	Int64Value               Type = 0x12
	Decimal128Value          Type = 0x13
	MaxKeyValue              Type = 0x7F
	MinKeyValue              Type = 0xFF
)

// String returns the canonical type name exposed to the query layer.
// Every defined tag has exactly one name; undefined tags map to the
// empty string so callers can treat them as malformed.
func (t Type) String() string {
	switch t {
	case DoubleValue:
		return "double"
	case StringValue:
		return "string"
	case DocumentValue:
		return "document"
	case ArrayValue:
		return "array"
	case BinaryValue:
		return "binary"
	case UndefinedValue:
		return "undefined"
	case ObjectIDValue:
		return "objectid"
	case BooleanValue:
		return "boolean"
	case DatetimeValue:
		return "datetime"
	case NullValue:
		return "null"
	case RegexValue:
		return "regex"
	case DBPointerValue:
		return "dbpointer"
	case JavascriptValue:
		return "javascript"
	case SymbolValue:
		return "symbol"
	case JavascriptWithScopeValue:
		return "javascriptwithscope"
	case Int32Value:
		return "int32"
	case TimestampValue:
		return "timestamp"
	case Int64Value:
		return "int64"
	case Decimal128Value:
		return "decimal128"
	case MinKeyValue:
		return "minkey"
	case MaxKeyValue:
		return "maxkey"
	}

	return ""
}

// IsContainer reports whether values of this type embed a document.
func (t Type) IsContainer() bool {
	return t == DocumentValue || t == ArrayValue
}
