// Package tree holds the ordered, JSON-like value trees consumed by
// the document encoder. A tree is a plain value: object fields keep
// their insertion order, duplicate field names are kept as they were
// given, and nothing is shared between trees.
package tree

import "fmt"

// Kind discriminates the variants of a Value.
type Kind uint8

const (
	Null Kind = iota + 1
	Bool
	Double
	Int
	Uint
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Double:
		return "double"
	case Int:
		return "int"
	case Uint:
		return "uint"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}

	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// A Field is one entry of an object node.
type Field struct {
	Name  string
	Value Value
}

// A Value is one node of the tree. The zero Value has no kind and is
// not a valid node; use the New* constructors.
type Value struct {
	kind   Kind
	b      bool
	i      int64
	u      uint64
	f      float64
	s      string
	elems  []Value
	fields []Field
}

func NewNull() Value {
	return Value{kind: Null}
}

func NewBool(b bool) Value {
	return Value{kind: Bool, b: b}
}

func NewDouble(f float64) Value {
	return Value{kind: Double, f: f}
}

func NewInt(i int64) Value {
	return Value{kind: Int, i: i}
}

func NewUint(u uint64) Value {
	return Value{kind: Uint, u: u}
}

func NewString(s string) Value {
	return Value{kind: String, s: s}
}

func NewArray(elems ...Value) Value {
	return Value{kind: Array, elems: elems}
}

func NewObject(fields ...Field) Value {
	return Value{kind: Object, fields: fields}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) Bool() bool {
	return v.b
}

func (v Value) Double() float64 {
	return v.f
}

func (v Value) Int() int64 {
	return v.i
}

func (v Value) Uint() uint64 {
	return v.u
}

// Text returns the payload of a string node.
func (v Value) Text() string {
	return v.s
}

// Elems returns the children of an array node, in order.
func (v Value) Elems() []Value {
	return v.elems
}

// Fields returns the entries of an object node, in insertion order,
// duplicates included.
func (v Value) Fields() []Field {
	return v.fields
}
