package bpfmap

// KeyIterator lazily walks a map's keys via repeated BPF_MAP_GET_NEXT_KEY
// calls. It holds no kernel lock; entries may appear or disappear between
// calls to Next, which is an accepted property of kernel map iteration,
// not a bug in this type.
type KeyIterator struct {
	m       *Map
	cur     []byte
	started bool
	err     error
}

// Keys returns a lazy iterator over the map's keys.
func (m *Map) Keys() *KeyIterator { return &KeyIterator{m: m} }

// Next advances the iterator, returning false at the end of the map or on
// error (check Err to distinguish the two).
func (it *KeyIterator) Next() bool {
	if it.err != nil {
		return false
	}
	seed := it.cur
	if !it.started {
		seed = nil
		it.started = true
	}
	next, ok, err := it.m.NextKey(seed)
	if err != nil {
		it.err = err
		return false
	}
	if !ok {
		return false
	}
	it.cur = next
	return true
}

// Key returns the current key. Only valid after a call to Next returned
// true.
func (it *KeyIterator) Key() []byte { return it.cur }

// Err returns the first error Next encountered, if any.
func (it *KeyIterator) Err() error { return it.err }

// Entry is one (key, value) pair produced by EntryIterator.
type Entry struct {
	Key   []byte
	Value []byte
}

// EntryIterator lazily walks a map's (key, value) pairs.
type EntryIterator struct {
	keys *KeyIterator
	cur  Entry
	err  error
}

// Entries returns a lazy iterator over the map's (key, value) pairs.
func (m *Map) Entries() *EntryIterator { return &EntryIterator{keys: m.Keys()} }

// Next advances the iterator. A key that disappears between the key walk
// and the value lookup is skipped rather than surfaced as an error, since
// iteration holds no kernel lock.
func (it *EntryIterator) Next() bool {
	for it.keys.Next() {
		key := it.keys.Key()
		value, ok, err := it.keys.m.Lookup(key)
		if err != nil {
			it.err = err
			return false
		}
		if !ok {
			continue
		}
		it.cur = Entry{Key: key, Value: value}
		return true
	}
	if err := it.keys.Err(); err != nil {
		it.err = err
	}
	return false
}

// Entry returns the current (key, value) pair.
func (it *EntryIterator) Entry() Entry { return it.cur }

// Err returns the first error Next encountered, if any.
func (it *EntryIterator) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.keys.Err()
}

// ValueIterator lazily walks a map's values, discarding keys.
type ValueIterator struct {
	entries *EntryIterator
}

// Values returns a lazy iterator over the map's values.
func (m *Map) Values() *ValueIterator { return &ValueIterator{entries: m.Entries()} }

func (it *ValueIterator) Next() bool   { return it.entries.Next() }
func (it *ValueIterator) Value() []byte { return it.entries.Entry().Value }
func (it *ValueIterator) Err() error   { return it.entries.Err() }

// Reduce consumes every (key, value) pair without materializing them all
// at once, folding fn over an accumulator seeded with init.
func (m *Map) Reduce(init any, fn func(acc any, e Entry) any) (any, error) {
	acc := init
	it := m.Entries()
	for it.Next() {
		acc = fn(acc, it.Entry())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return acc, nil
}

// Clear deletes every key currently in the map.
func (m *Map) Clear() error {
	it := m.Keys()
	var keys [][]byte
	for it.Next() {
		k := make([]byte, len(it.Key()))
		copy(k, it.Key())
		keys = append(keys, k)
	}
	if err := it.Err(); err != nil {
		return err
	}
	for _, k := range keys {
		if _, err := m.Delete(k); err != nil {
			return err
		}
	}
	return nil
}
