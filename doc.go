/*
Package bsox validates, inspects and builds BSON documents without decoding them.

A BSON document is a length-prefixed sequence of typed elements. bsox operates
directly on the wire bytes: Valid checks structural integrity in a single pass,
Extract and ExtractString pull sub-documents or strings out by path, and TypeOf
reports the type of the element a path points at. None of these allocate copies
of the input.

Paths are written with a leading $ for the document root, followed by dotted
keys and bracketed array indexes:

	$.user.langs[0]
	$."dotted.key".value

Keys containing dots, brackets or quotes are wrapped in double quotes. Paths
are compiled once with ParsePath and may be reused across documents.

Documents are built from a tree of values:

	v := tree.NewObject(
		tree.Field{Name: "name", Value: tree.NewString("John Doe")},
		tree.Field{Name: "age", Value: tree.NewInt(42)},
	)
	data, err := bsox.Encode(v)

FromJSON and ToJSON convert between JSON text and BSON bytes using the same
tree representation.

The docstore package stores validated documents in a Pebble key-value store
and resolves paths against them at scan time.
*/
package bsox
