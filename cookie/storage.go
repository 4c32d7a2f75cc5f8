// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package cookie

// Storage is the backend that holds a jar's entries.  A Set serializes all
// access to its Storage, so implementations need not be safe for concurrent
// use unless they are shared outside a Set.
type Storage interface {
	// Entries returns every stored entry in insertion order.
	Entries() ([]Entry, error)

	// Upsert stores an entry.  If an entry with the same Key exists, it is
	// replaced in place and keeps its position.  Otherwise, the entry is
	// appended.
	Upsert(Entry) error

	// Delete removes the entry with the given key.  Deleting a key that
	// is not present is not an error.
	Delete(Key) error
}

// MemoryStorage is the default, in-memory Storage.
type MemoryStorage struct {
	entries []Entry
	index   map[Key]int
}

var _ Storage = (*MemoryStorage)(nil)

// NewMemoryStorage creates an empty in-memory Storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		index: make(map[Key]int),
	}
}

// Entries returns a copy of the stored entries.
func (ms *MemoryStorage) Entries() ([]Entry, error) {
	return append([]Entry{}, ms.entries...), nil
}

// Upsert never returns an error.
func (ms *MemoryStorage) Upsert(e Entry) error {
	k := e.Key()
	if i, ok := ms.index[k]; ok {
		ms.entries[i] = e
	} else {
		ms.index[k] = len(ms.entries)
		ms.entries = append(ms.entries, e)
	}

	return nil
}

// Delete never returns an error.
func (ms *MemoryStorage) Delete(k Key) error {
	i, ok := ms.index[k]
	if !ok {
		return nil
	}

	delete(ms.index, k)
	ms.entries = append(ms.entries[:i], ms.entries[i+1:]...)
	for j := i; j < len(ms.entries); j++ {
		ms.index[ms.entries[j].Key()] = j
	}

	return nil
}

// Len returns the number of stored entries.
func (ms *MemoryStorage) Len() int {
	return len(ms.entries)
}
