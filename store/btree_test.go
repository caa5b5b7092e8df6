package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBTreeCacheGetSet(t *testing.T) {
	devnull := BTreeCacheable{EmptyKVStore{}}
	base := devnull.CacheWrap()

	k, v := []byte("will:0001"), []byte("active")
	assertMissing(t, base, k)
	require.NoError(t, base.Set(k, v))
	assertValue(t, base, k, v)

	// a layered cache sees the base data
	cache := base.CacheWrap()
	assertValue(t, cache, k, v)

	// writes are visible only in the cache until written
	k2, v2 := []byte("wallet:alice"), []byte("100 IOV")
	require.NoError(t, cache.Set(k2, v2))
	assertValue(t, cache, k2, v2)
	assertMissing(t, base, k2)

	require.NoError(t, cache.Write())
	assertValue(t, base, k, v)
	assertValue(t, base, k2, v2)

	// a discarded cache leaves no trace
	k3 := []byte("will:0002")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, []byte("claimed")))
	require.NoError(t, c2.Delete(k))
	c2.Discard()
	assertMissing(t, base, k3)
	assertValue(t, base, k, v)

	// and commit another
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	require.NoError(t, c3.Write())
	assertMissing(t, base, k)
	assertValue(t, base, k2, v2)

	// devnull stays empty
	require.NoError(t, base.Write())
	assertMissing(t, devnull, k2)
}

func TestBTreeCacheConflicts(t *testing.T) {
	devnull := BTreeCacheable{EmptyKVStore{}}

	ks := randKeys(10, 16)
	vs := randKeys(20, 40)

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model // Key is what we query, Value is what we expect
		childQueries  []Model
	}{
		"overwrite one, delete another, add a third": {
			parentOps:     []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])},
			childOps:      []Op{SetOp(ks[1], vs[11]), SetOp(ks[3], vs[7]), DelOp(ks[2])},
			parentQueries: []Model{Pair(ks[1], vs[1]), Pair(ks[2], vs[2]), Pair(ks[3], nil)},
			childQueries:  []Model{Pair(ks[1], vs[11]), Pair(ks[2], nil), Pair(ks[3], vs[7])},
		},
		"delete then set again": {
			parentOps:     []Op{SetOp(ks[4], vs[4])},
			childOps:      []Op{DelOp(ks[4]), SetOp(ks[4], vs[14])},
			parentQueries: []Model{Pair(ks[4], vs[4])},
			childQueries:  []Model{Pair(ks[4], vs[14])},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent := devnull.CacheWrap()
			for _, op := range tc.parentOps {
				require.NoError(t, op.Apply(parent))
			}
			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				require.NoError(t, op.Apply(child))
			}

			for _, q := range tc.parentQueries {
				assertModel(t, parent, q)
			}
			for _, q := range tc.childQueries {
				assertModel(t, child, q)
			}

			require.NoError(t, child.Write())
			for _, q := range tc.childQueries {
				assertModel(t, parent, q)
			}
		})
	}
}

func TestSliceIterator(t *testing.T) {
	const size = 10

	ks := randKeys(size, 8)
	vs := randKeys(size, 40)
	models := make([]Model, size)
	for i := 0; i < size; i++ {
		models[i] = Pair(ks[i], vs[i])
	}

	verifyIterator(t, models, NewSliceIterator(models))

	trash := NewSliceIterator(models)
	assert.True(t, trash.Valid())
	trash.Close()
	assert.False(t, trash.Valid())
	assert.Error(t, trash.Next())
}

func TestBTreeCacheBasicIterator(t *testing.T) {
	const size = 50
	const deleteCount = 20

	models := make([]Model, size+deleteCount)
	for i := range models {
		models[i] = Pair(randBytes(8), randBytes(40))
	}

	base := BTreeCacheable{EmptyKVStore{}}.CacheWrap()
	for _, m := range models {
		require.NoError(t, base.Set(m.Key, m.Value))
	}
	for _, m := range models[:deleteCount] {
		require.NoError(t, base.Delete(m.Key))
	}
	models = sorted(models[deleteCount:])

	verifyIterator(t, models, mustIter(base.Iterator(nil, nil)))
	verifyIterator(t, models[10:], mustIter(base.Iterator(models[10].Key, nil)))
	verifyIterator(t, models[:size-8], mustIter(base.Iterator(nil, models[size-8].Key)))
	verifyIterator(t, models[17:28], mustIter(base.Iterator(models[17].Key, models[28].Key)))

	verifyIterator(t, reverse(models), mustIter(base.ReverseIterator(nil, nil)))
	verifyIterator(t, reverse(models[34:]), mustIter(base.ReverseIterator(models[34].Key, nil)))
	verifyIterator(t, reverse(models[:19]), mustIter(base.ReverseIterator(nil, models[19].Key)))
	verifyIterator(t, reverse(models[6:26]), mustIter(base.ReverseIterator(models[6].Key, models[26].Key)))
}

func TestBTreeCacheLayeredIterator(t *testing.T) {
	base := MemStore()
	parentModels := []Model{
		Pair([]byte("a"), []byte("1")),
		Pair([]byte("c"), []byte("3")),
		Pair([]byte("e"), []byte("5")),
	}
	for _, m := range parentModels {
		require.NoError(t, base.Set(m.Key, m.Value))
	}

	child := base.CacheWrap()
	require.NoError(t, child.Set([]byte("b"), []byte("2")))
	require.NoError(t, child.Set([]byte("c"), []byte("33")))
	require.NoError(t, child.Delete([]byte("e")))
	require.NoError(t, child.Set([]byte("f"), []byte("6")))

	want := []Model{
		Pair([]byte("a"), []byte("1")),
		Pair([]byte("b"), []byte("2")),
		Pair([]byte("c"), []byte("33")),
		Pair([]byte("f"), []byte("6")),
	}
	verifyIterator(t, want, mustIter(child.Iterator(nil, nil)))
	verifyIterator(t, reverse(want), mustIter(child.ReverseIterator(nil, nil)))
	verifyIterator(t, want[1:3], mustIter(child.Iterator([]byte("b"), []byte("d"))))

	// the parent is not affected by the child
	verifyIterator(t, parentModels, mustIter(base.Iterator(nil, nil)))
}

func TestNonAtomicBatch(t *testing.T) {
	base := MemStore()
	b := base.NewBatch()
	require.NoError(t, b.Set([]byte("k"), []byte("v")))
	require.NoError(t, b.Delete([]byte("gone")))
	assert.Len(t, b.(*NonAtomicBatch).ShowOps(), 2)
	assertMissing(t, base, []byte("k"))

	require.NoError(t, b.Write())
	assertValue(t, base, []byte("k"), []byte("v"))
	assert.Len(t, b.(*NonAtomicBatch).ShowOps(), 0)
}

func assertValue(t testing.TB, db ReadOnlyKVStore, key, value []byte) {
	t.Helper()
	got, err := db.Get(key)
	require.NoError(t, err)
	assert.Equal(t, value, got)
	has, err := db.Has(key)
	require.NoError(t, err)
	assert.True(t, has)
}

func assertMissing(t testing.TB, db ReadOnlyKVStore, key []byte) {
	t.Helper()
	got, err := db.Get(key)
	require.NoError(t, err)
	assert.Nil(t, got)
	has, err := db.Has(key)
	require.NoError(t, err)
	assert.False(t, has)
}

func assertModel(t testing.TB, db ReadOnlyKVStore, m Model) {
	t.Helper()
	if m.Value == nil {
		assertMissing(t, db, m.Key)
	} else {
		assertValue(t, db, m.Key, m.Value)
	}
}

func mustIter(it Iterator, err error) Iterator {
	if err != nil {
		panic(err)
	}
	return it
}

func verifyIterator(t testing.TB, models []Model, iter Iterator) {
	t.Helper()
	for i := 0; i < len(models); i++ {
		require.True(t, iter.Valid(), "%d", i)
		assert.Equal(t, models[i].Key, iter.Key(), "%d", i)
		assert.Equal(t, models[i].Value, iter.Value(), "%d", i)
		require.NoError(t, iter.Next())
	}
	assert.False(t, iter.Valid())
	iter.Close()
}

func sorted(models []Model) []Model {
	res := append([]Model(nil), models...)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

// reverse returns a copy of the slice with elements in reverse order
func reverse(models []Model) []Model {
	max := len(models)
	res := make([]Model, max)
	for i := 0; i < max; i++ {
		res[i] = models[max-1-i]
	}
	return res
}

// randKeys returns a slice of count keys, all of length
func randKeys(count, length int) [][]byte {
	res := make([][]byte, count)
	for i := 0; i < count; i++ {
		res[i] = randBytes(length)
	}
	return res
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	_, _ = rand.Read(res)
	return res
}
