package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/bequest/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertGetHas(t testing.TB, kv store.ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}

func TestCacheGetSet(t *testing.T) {
	commit := NewMemCommitStore()
	base := commit.Adapter()

	k, v := []byte("will:1"), []byte("active")
	assertGetHas(t, base, k, nil, false)
	require.NoError(t, base.Set(k, v))
	assertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	assertGetHas(t, cache, k, v, true)

	k2, v2 := []byte("will:2"), []byte("claimed")
	require.NoError(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k2, v2, true)
	assertGetHas(t, base, k2, nil, false)

	require.NoError(t, cache.Write())
	assertGetHas(t, base, k2, v2, true)

	// discard leaves no trace
	c2 := base.CacheWrap()
	require.NoError(t, c2.Delete(k))
	c2.Discard()
	assertGetHas(t, base, k, v, true)
}

func TestCommitVersions(t *testing.T) {
	commit := NewMemCommitStore()

	id, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(0), id.Version)
	assert.Empty(t, id.Hash)

	k, v, v2 := []byte("wallet"), []byte("100"), []byte("40")

	cache := commit.CacheWrap()
	require.NoError(t, cache.Set(k, v))
	require.NoError(t, cache.Write())

	// nothing is committed until Commit is called
	got, err := commit.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)

	id, err = commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	got, err = commit.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	cache = commit.CacheWrap()
	require.NoError(t, cache.Set(k, v2))
	require.NoError(t, cache.Write())
	id2, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(2), id2.Version)
	assert.NotEqual(t, id.Hash, id2.Hash)

	got, err = commit.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v2, got)
}

func TestCommitIterator(t *testing.T) {
	commit := NewMemCommitStore()
	base := commit.Adapter()
	for _, k := range []string{"a", "b", "c", "d"} {
		require.NoError(t, base.Set([]byte(k), []byte("v"+k)))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Delete([]byte("b")))
	require.NoError(t, cache.Set([]byte("e"), []byte("ve")))

	it, err := cache.Iterator([]byte("a"), []byte("e"))
	require.NoError(t, err)
	var keys []string
	for ; it.Valid(); require.NoError(t, it.Next()) {
		keys = append(keys, string(it.Key()))
	}
	it.Close()
	assert.Equal(t, []string{"a", "c", "d"}, keys)

	it, err = cache.ReverseIterator(nil, nil)
	require.NoError(t, err)
	keys = nil
	for ; it.Valid(); require.NoError(t, it.Next()) {
		keys = append(keys, string(it.Key()))
	}
	it.Close()
	assert.Equal(t, []string{"e", "d", "c", "a"}, keys)
}

func TestPersistence(t *testing.T) {
	dir, err := ioutil.TempDir("", "iavl-commit-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	commit, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	require.NoError(t, commit.LoadLatestVersion())
	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("will"), []byte("stored")))
	require.NoError(t, cache.Write())
	want, err := commit.Commit()
	require.NoError(t, err)
	commit.Close()

	reopened, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.LoadLatestVersion())
	got, err := reopened.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	val, err := reopened.Get([]byte("will"))
	require.NoError(t, err)
	assert.Equal(t, []byte("stored"), val)
}
