/*
Package store holds the storage layer used to execute calls: an in memory
KVStore, a btree based cache wrap that can be written or discarded as a
whole, and the iterators used to range over both.
*/
package store

import "github.com/iov-one/bequest"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	KVStore          = bequest.KVStore
	ReadOnlyKVStore  = bequest.ReadOnlyKVStore
	SetDeleter       = bequest.SetDeleter
	Batch            = bequest.Batch
	Iterator         = bequest.Iterator
	CacheableKVStore = bequest.CacheableKVStore
	KVCacheWrap      = bequest.KVCacheWrap
	CommitKVStore    = bequest.CommitKVStore
	CommitID         = bequest.CommitID
)

// Model groups together key and value to return
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}
