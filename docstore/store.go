// Package docstore stores validated binary documents in a Pebble
// database and runs per-row path queries against them. It is the
// storage shape the codec is designed to sit under: rows are opaque
// blobs, and every lookup re-resolves a compiled path against the raw
// bytes without decoding the document.
package docstore

import (
	"context"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"golang.org/x/sync/errgroup"

	"github.com/chaisql/bsox"
)

var (
	// ErrInvalidDocument is returned when a blob fails validation on
	// its way into the store. Nothing invalid is ever written.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrKeyNotFound is returned when the targeted key doesn't exist.
	ErrKeyNotFound = errors.New("key not found")
)

// Options configures a Store.
type Options struct {
	// InMemory backs the store with an in-memory filesystem instead of
	// the path given to Open. Used by tests.
	InMemory bool
}

// A Store is a Pebble-backed collection of validated documents.
type Store struct {
	db *pebble.DB
}

// Open opens or creates a store at path.
func Open(path string, opts *Options) (*Store, error) {
	var popts pebble.Options
	if opts != nil && opts.InMemory {
		popts.FS = vfs.NewMem()
	}

	db, err := pebble.Open(path, &popts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put validates doc and stores it under key, overwriting any previous
// row. Invalid bytes are rejected with ErrInvalidDocument.
func (s *Store) Put(key, doc []byte) error {
	if len(key) == 0 {
		return errors.New("cannot store empty key")
	}
	if !bsox.Valid(doc) {
		return errors.WithStack(ErrInvalidDocument)
	}

	return s.db.Set(key, doc, pebble.Sync)
}

// Get returns a copy of the document stored under key.
func (s *Store) Get(key []byte) ([]byte, error) {
	v, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, errors.WithStack(ErrKeyNotFound)
		}
		return nil, err
	}
	defer closer.Close()

	doc := make([]byte, len(v))
	copy(doc, v)
	return doc, nil
}

// Delete removes the row stored under key, if any.
func (s *Store) Delete(key []byte) error {
	return s.db.Delete(key, pebble.Sync)
}

// A JSONDoc is one key and its JSON text, input to BulkJSON.
type JSONDoc struct {
	Key  []byte
	JSON []byte
}

// BulkJSON converts a batch of JSON documents concurrently and
// commits them in a single atomic batch. Either every document is
// stored or none is: one bad input fails the whole call.
func (s *Store) BulkJSON(ctx context.Context, docs []JSONDoc) error {
	encoded := make([][]byte, len(docs))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range docs {
		i := i
		g.Go(func() error {
			doc, err := bsox.FromJSON(docs[i].JSON)
			if err != nil {
				return errors.Wrapf(err, "document %q", docs[i].Key)
			}
			encoded[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	for i := range docs {
		if err := batch.Set(docs[i].Key, encoded[i], nil); err != nil {
			return err
		}
	}

	return batch.Commit(pebble.Sync)
}

// A Row is one stored document handed to a Scan callback. Key and Doc
// alias the iterator's buffers and are only valid during the
// callback; Resolve results alias Doc the same way.
type Row struct {
	Key []byte
	Doc []byte
}

// Resolve resolves a compiled path against the row and returns the
// element's type name. ok is false when the path does not resolve.
func (r Row) Resolve(p bsox.Path) (typeName string, ok bool) {
	return bsox.TypeOf(r.Doc, p)
}

// ResolveString returns the text at p inside the row.
func (r Row) ResolveString(p bsox.Path) (string, bool) {
	return bsox.ExtractString(r.Doc, p)
}

// Scan iterates the rows whose keys start with prefix, in key order,
// and calls fn for each one. Returning an error from fn stops the
// scan and is returned as is. The compiled path pattern of the read
// path applies here: parse paths once before scanning, then resolve
// them against every row through the callback.
func (s *Store) Scan(prefix []byte, fn func(Row) error) error {
	iterOpts := pebble.IterOptions{}
	if len(prefix) > 0 {
		iterOpts.LowerBound = prefix
		iterOpts.UpperBound = keyUpperBound(prefix)
	}

	it := s.db.NewIter(&iterOpts)
	defer it.Close()

	for it.First(); it.Valid(); it.Next() {
		err := fn(Row{Key: it.Key(), Doc: it.Value()})
		if err != nil {
			return err
		}
	}

	return it.Error()
}

// keyUpperBound returns the smallest key greater than every key with
// the given prefix.
func keyUpperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil // prefix is all 0xFF: no upper bound
}
