package store

import (
	"bytes"

	"github.com/google/btree"
)

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// rangeBtree returns all items of the cache within [start, end) in ascending
// order. Nil start or end means the range is open on that side.
func rangeBtree(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	collect := func(item btree.Item) bool {
		items = append(items, item)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		bt.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	return items
}

// itemIter joins the items of a cache wrap with the iterator of the store it
// wraps, taking into consideration overwrites and deletes.
type itemIter struct {
	items   []btree.Item
	idx     int
	reverse bool
	parent  Iterator
}

var _ Iterator = (*itemIter)(nil)

func newItemIter(bt *btree.BTree, start, end []byte, reverse bool, parent Iterator) (*itemIter, error) {
	items := rangeBtree(bt, start, end)
	if reverse {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	iter := &itemIter{
		items:   items,
		reverse: reverse,
		parent:  parent,
	}
	if err := iter.skipAllDeleted(); err != nil {
		iter.Close()
		return nil, err
	}
	return iter, nil
}

func (i *itemIter) valid() bool {
	return i.idx < len(i.items)
}

func (i *itemIter) get() entry {
	return i.items[i.idx].(entry)
}

// Valid implements Iterator and returns true iff it can be read
func (i *itemIter) Valid() bool {
	return i.valid() || i.parentValid()
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
//
// If Valid returns false, this method will panic.
func (i *itemIter) Next() error {
	// advance either us, parent, or both
	switch i.firstKey() {
	case us:
		i.idx++
	case both:
		i.idx++
		if err := i.parent.Next(); err != nil {
			return err
		}
	case parent:
		if err := i.parent.Next(); err != nil {
			return err
		}
	default:
		panic("Advanced past the end!")
	}

	// keep advancing over all deleted entries
	return i.skipAllDeleted()
}

// Key returns the key of the cursor.
func (i *itemIter) Key() (key []byte) {
	switch i.firstKey() {
	case us, both:
		return i.get().key
	case parent:
		return i.parent.Key()
	default:
		panic("Advanced past the end!")
	}
}

// Value returns the value of the cursor.
func (i *itemIter) Value() (value []byte) {
	switch i.firstKey() {
	case us, both:
		return i.get().value
	case parent:
		return i.parent.Value()
	default:
		panic("Advanced past the end!")
	}
}

// Close releases the Iterator.
func (i *itemIter) Close() {
	if i.parent != nil {
		i.parent.Close()
	}
	i.items = nil
}

// skipAllDeleted advances over every deleted item that is currently in front.
// A deleted item hides the parent entry with the same key.
func (i *itemIter) skipAllDeleted() error {
	for {
		src := i.firstKey()
		if src != us && src != both {
			return nil
		}
		if !i.get().deleted {
			return nil
		}
		i.idx++
		if src == both {
			if err := i.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// firstKey selects the iterator with the lowest key is any
func (i *itemIter) firstKey() source {
	// if only one or none is valid, it is clear which to use
	if !i.parentValid() {
		if !i.valid() {
			return none
		}
		return us
	} else if !i.valid() {
		return parent
	}

	cmp := bytes.Compare(i.parent.Key(), i.get().key)
	if i.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}

// makes sure the parent is non-nil before checking if it is valid
func (i *itemIter) parentValid() bool {
	return (i.parent != nil) && i.parent.Valid()
}
