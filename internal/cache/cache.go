// Package cache provides the transposition table used by the search:
// a fixed-capacity, direct-mapped store from position keys to score
// bounds.
//
// Collisions overwrite, last write wins. Get verifies the stored key
// before returning a value, so a collision costs a recomputation but
// never a wrong answer.
package cache

// DefaultCapacity is the slot count used when no size is given,
// about 128 MB of entries.
const DefaultCapacity = 1 << 23

type entry struct {
	key   uint64 // 0 marks an empty slot
	value int8
}

// Table is a direct-mapped transposition table indexed by key modulo
// capacity. Position keys are never zero, which leaves 0 free as the
// empty-slot marker. A Table belongs to a single search at a time and
// keeps its counters without locks.
type Table struct {
	entries []entry
	used    uint64
	hits    uint64
	misses  uint64
	stores  uint64
}

// New creates a table with the given number of slots. Capacities below
// one fall back to DefaultCapacity.
func New(capacity int) *Table {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Table{entries: make([]entry, capacity)}
}

// Put stores value under key, overwriting whatever occupied the slot.
func (t *Table) Put(key uint64, value int8) {
	i := key % uint64(len(t.entries))
	if t.entries[i].key == 0 {
		t.used++
	}
	t.entries[i] = entry{key: key, value: value}
	t.stores++
}

// Get returns the value stored under key, or 0 when the slot is empty
// or holds a colliding key.
func (t *Table) Get(key uint64) int8 {
	i := key % uint64(len(t.entries))
	if t.entries[i].key != key {
		t.misses++
		return 0
	}
	t.hits++
	return t.entries[i].value
}

// Reset empties every slot and zeroes the counters.
func (t *Table) Reset() {
	clear(t.entries)
	t.used = 0
	t.hits = 0
	t.misses = 0
	t.stores = 0
}

// Stats describes table activity since the last Reset.
type Stats struct {
	Capacity int    `json:"capacity"`
	Used     uint64 `json:"used"`
	Hits     uint64 `json:"hits"`
	Misses   uint64 `json:"misses"`
	Stores   uint64 `json:"stores"`
}

// Stats returns a snapshot of the table's counters.
func (t *Table) Stats() Stats {
	return Stats{
		Capacity: len(t.entries),
		Used:     t.used,
		Hits:     t.hits,
		Misses:   t.misses,
		Stores:   t.stores,
	}
}
