package docstore_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/chaisql/bsox"
	"github.com/chaisql/bsox/docstore"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *docstore.Store {
	t.Helper()

	s, err := docstore.Open(t.Name(), &docstore.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestPutGet(t *testing.T) {
	s := tempStore(t)

	doc, err := bsox.FromJSON([]byte(`{"name": "Ada"}`))
	require.NoError(t, err)

	require.NoError(t, s.Put([]byte("u1"), doc))

	got, err := s.Get([]byte("u1"))
	require.NoError(t, err)
	require.Equal(t, doc, got)

	_, err = s.Get([]byte("u2"))
	require.ErrorIs(t, err, docstore.ErrKeyNotFound)
}

func TestPutRejectsInvalid(t *testing.T) {
	s := tempStore(t)

	err := s.Put([]byte("k"), []byte("not a document"))
	require.ErrorIs(t, err, docstore.ErrInvalidDocument)

	err = s.Put(nil, []byte{0x05, 0x00, 0x00, 0x00, 0x00})
	require.Error(t, err)
}

func TestDelete(t *testing.T) {
	s := tempStore(t)

	require.NoError(t, s.Put([]byte("k"), []byte{0x05, 0x00, 0x00, 0x00, 0x00}))
	require.NoError(t, s.Delete([]byte("k")))

	_, err := s.Get([]byte("k"))
	require.ErrorIs(t, err, docstore.ErrKeyNotFound)

	// deleting a missing key is not an error
	require.NoError(t, s.Delete([]byte("k")))
}

func TestBulkJSON(t *testing.T) {
	s := tempStore(t)

	var docs []docstore.JSONDoc
	for i := 0; i < 100; i++ {
		docs = append(docs, docstore.JSONDoc{
			Key:  []byte(fmt.Sprintf("user/%03d", i)),
			JSON: []byte(fmt.Sprintf(`{"id": %d, "name": "user-%d"}`, i, i)),
		})
	}

	require.NoError(t, s.BulkJSON(context.Background(), docs))

	doc, err := s.Get([]byte("user/042"))
	require.NoError(t, err)
	require.True(t, bsox.Valid(doc))

	name, ok := bsox.ExtractString(doc, mustPath(t, "$.name"))
	require.True(t, ok)
	require.Equal(t, "user-42", name)
}

func TestBulkJSONAllOrNothing(t *testing.T) {
	s := tempStore(t)

	docs := []docstore.JSONDoc{
		{Key: []byte("good"), JSON: []byte(`{"a": 1}`)},
		{Key: []byte("bad"), JSON: []byte(`not json`)},
	}

	require.Error(t, s.BulkJSON(context.Background(), docs))

	_, err := s.Get([]byte("good"))
	require.ErrorIs(t, err, docstore.ErrKeyNotFound)
}

func TestScan(t *testing.T) {
	s := tempStore(t)

	docs := []docstore.JSONDoc{
		{Key: []byte("user/1"), JSON: []byte(`{"name": "Ada", "role": "eng"}`)},
		{Key: []byte("user/2"), JSON: []byte(`{"name": "Grace"}`)},
		{Key: []byte("team/1"), JSON: []byte(`{"name": "Compilers"}`)},
	}
	require.NoError(t, s.BulkJSON(context.Background(), docs))

	// one compiled path, resolved per row
	namePath := mustPath(t, "$.name")
	rolePath := mustPath(t, "$.role")

	var names []string
	var withRole int
	err := s.Scan([]byte("user/"), func(r docstore.Row) error {
		name, ok := r.ResolveString(namePath)
		if ok {
			names = append(names, name)
		}
		if _, ok := r.Resolve(rolePath); ok {
			withRole++
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Ada", "Grace"}, names)
	require.Equal(t, 1, withRole)
}

func TestScanStopsOnError(t *testing.T) {
	s := tempStore(t)

	require.NoError(t, s.Put([]byte("a"), []byte{0x05, 0x00, 0x00, 0x00, 0x00}))
	require.NoError(t, s.Put([]byte("b"), []byte{0x05, 0x00, 0x00, 0x00, 0x00}))

	sentinel := fmt.Errorf("stop")
	var seen int
	err := s.Scan(nil, func(docstore.Row) error {
		seen++
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, 1, seen)
}

func mustPath(t *testing.T, s string) bsox.Path {
	t.Helper()

	p, err := bsox.ParsePath(s)
	require.NoError(t, err)
	return p
}
