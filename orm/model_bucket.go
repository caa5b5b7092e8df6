/*
Package orm stores protobuf encoded models in a KVStore. A model bucket owns
a key prefix, generates sequential keys and maintains secondary indexes that
allow to find all models sharing an attribute (ie all wills of an owner).
*/
package orm

import (
	"bytes"
	"reflect"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	proto.Message
	Validate() error
}

// ModelSlicePtr represents a pointer to a slice of models. Think of it as
// *[]Model Because of Go type system, using []Model type would not work for
// us. Instead we use a placeholder type and the validation is done during the
// runtime.
type ModelSlicePtr interface{}

// Indexer calculates the secondary index value for a given model. A nil
// value means the model is not indexed.
type Indexer func(Model) ([]byte, error)

// ModelBucket operates on Models stored under a single prefix.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db bequest.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key value exists. It
	// returns ErrNotFound if no entity can be found.
	Has(db bequest.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database. Before inserting into
	// database, model is validated using its Validate method.
	// If the key is nil or zero length then a sequence generator is used
	// to create a unique key value.
	// Using a key that already exists in the database cause the value to
	// be overwritten.
	Put(db bequest.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db bequest.KVStore, key []byte) error

	// ByIndex returns all objects that secondary index with given name and
	// given key. Main index is always unique but secondary indexes can
	// return more than one value for the same key.
	// All matching entities are appended to given destination slice. The
	// keys of loaded entities are returned in the same order.
	ByIndex(db bequest.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) ([][]byte, error)

	// All loads every entity of this bucket, ordered by the primary key.
	All(db bequest.ReadOnlyKVStore, dest ModelSlicePtr) ([][]byte, error)
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *modelBucket)

// WithIndex configures the bucket to build a non-unique index with given name.
func WithIndex(name string, indexer Indexer) ModelBucketOption {
	if !isBucketName(name) {
		panic(errors.Wrapf(ErrInvalidIndex, "index name %q", name))
	}
	return func(mb *modelBucket) {
		mb.indexes[name] = index{
			prefix:  []byte("_i." + mb.name + "_" + name + ":"),
			indexer: indexer,
		}
	}
}

// NewModelBucket returns a ModelBucket storing models of the same type as m
// under the "<name>:" prefix.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic(errors.Wrapf(errors.ErrInput, "bucket name %q", name))
	}
	tp := reflect.TypeOf(m)
	if tp.Kind() != reflect.Ptr {
		panic(errors.Wrapf(errors.ErrType, "model %T must be a pointer", m))
	}
	mb := &modelBucket{
		name:    name,
		prefix:  []byte(name + ":"),
		model:   tp,
		seq:     NewSequence(name, "id"),
		indexes: make(map[string]index),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

var isBucketName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString

type modelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	seq     Sequence
	indexes map[string]index
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	return append(append([]byte(nil), mb.prefix...), key...)
}

func (mb *modelBucket) One(db bequest.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != mb.model {
		return errors.Wrapf(errors.ErrType, "%s cannot be represented as %T", mb.model, dest)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot get from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %x not in the store", mb.name, key)
	}
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %s: %s", mb.name, err)
	}
	return nil
}

func (mb *modelBucket) Has(db bequest.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrNotFound, "zero length key")
	}
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot query the database")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %x not in the store", mb.name, key)
	}
	return nil
}

func (mb *modelBucket) Put(db bequest.KVStore, key []byte, m Model) ([]byte, error) {
	if reflect.TypeOf(m) != mb.model {
		return nil, errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, mb.name)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	var prev Model
	if len(key) == 0 {
		next, err := mb.seq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "next key")
		}
		key = next
	} else {
		old, err := mb.load(db, key)
		if err != nil {
			return nil, err
		}
		prev = old
	}

	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot marshal %s: %s", mb.name, err)
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return nil, errors.Wrap(err, "cannot store in the database")
	}
	if err := mb.updateIndexes(db, key, prev, m); err != nil {
		return nil, errors.Wrap(err, "cannot update indexes")
	}
	return key, nil
}

func (mb *modelBucket) Delete(db bequest.KVStore, key []byte) error {
	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	if prev == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %x not in the store", mb.name, key)
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete from the database")
	}
	if err := mb.updateIndexes(db, key, prev, nil); err != nil {
		return errors.Wrap(err, "cannot update indexes")
	}
	return nil
}

// load returns the model stored under given key or nil if it does not exist.
func (mb *modelBucket) load(db bequest.ReadOnlyKVStore, key []byte) (Model, error) {
	m := reflect.New(mb.model.Elem()).Interface().(Model)
	switch err := mb.One(db, key, m); {
	case err == nil:
		return m, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

func (mb *modelBucket) updateIndexes(db bequest.KVStore, key []byte, prev, next Model) error {
	for name, idx := range mb.indexes {
		var prevVal, nextVal []byte
		var err error
		if prev != nil {
			if prevVal, err = idx.indexer(prev); err != nil {
				return errors.Wrapf(err, "index %s", name)
			}
		}
		if next != nil {
			if nextVal, err = idx.indexer(next); err != nil {
				return errors.Wrapf(err, "index %s", name)
			}
		}
		if prev != nil && next != nil && bytes.Equal(prevVal, nextVal) {
			continue
		}
		if prevVal != nil {
			if err := db.Delete(idx.refKey(prevVal, key)); err != nil {
				return err
			}
		}
		if nextVal != nil {
			if err := db.Set(idx.refKey(nextVal, key), []byte{}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (mb *modelBucket) ByIndex(db bequest.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) ([][]byte, error) {
	idx, ok := mb.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidIndex, "name %q", indexName)
	}
	prefix := idx.valuePrefix(key)
	keys, err := scanKeys(db, prefix)
	if err != nil {
		return nil, err
	}
	if err := mb.loadAll(db, keys, dest); err != nil {
		return nil, err
	}
	return keys, nil
}

func (mb *modelBucket) All(db bequest.ReadOnlyKVStore, dest ModelSlicePtr) ([][]byte, error) {
	keys, err := scanKeys(db, mb.prefix)
	if err != nil {
		return nil, err
	}
	if err := mb.loadAll(db, keys, dest); err != nil {
		return nil, err
	}
	return keys, nil
}

// loadAll appends the models stored under given keys to the destination
// slice. Both []T and []*T destinations are supported.
func (mb *modelBucket) loadAll(db bequest.ReadOnlyKVStore, keys [][]byte, dest ModelSlicePtr) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Ptr || dv.Elem().Kind() != reflect.Slice {
		return errors.Wrapf(errors.ErrType, "destination %T must be a pointer to a slice", dest)
	}
	slice := dv.Elem()
	elem := slice.Type().Elem()
	var byValue bool
	switch elem {
	case mb.model:
	case mb.model.Elem():
		byValue = true
	default:
		return errors.Wrapf(errors.ErrType, "cannot load %s into %T", mb.model, dest)
	}

	for _, key := range keys {
		m := reflect.New(mb.model.Elem())
		if err := mb.One(db, key, m.Interface().(Model)); err != nil {
			return err
		}
		if byValue {
			slice = reflect.Append(slice, m.Elem())
		} else {
			slice = reflect.Append(slice, m)
		}
	}
	dv.Elem().Set(slice)
	return nil
}

// scanKeys returns the suffix following given prefix of every key stored
// under that prefix.
func scanKeys(db bequest.ReadOnlyKVStore, prefix []byte) ([][]byte, error) {
	it, err := db.Iterator(prefix, prefixEnd(prefix))
	if err != nil {
		return nil, errors.Wrap(err, "cannot iterate")
	}
	defer it.Close()

	var keys [][]byte
	for it.Valid() {
		k := it.Key()
		keys = append(keys, append([]byte(nil), k[len(prefix):]...))
		if err := it.Next(); err != nil {
			return nil, errors.Wrap(err, "iterator next")
		}
	}
	return keys, nil
}

// prefixEnd returns the smallest key that is greater than every key with
// given prefix.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// index stores a reference for every indexed model under
//    _i.<bucket>_<name>:<len(value)><value><key>
// The value length prefix ensures that values being a prefix of each other
// do not collide.
type index struct {
	prefix  []byte
	indexer Indexer
}

func (i index) valuePrefix(value []byte) []byte {
	out := make([]byte, 0, len(i.prefix)+1+len(value))
	out = append(out, i.prefix...)
	out = append(out, byte(len(value)))
	return append(out, value...)
}

func (i index) refKey(value, key []byte) []byte {
	return append(i.valuePrefix(value), key...)
}
