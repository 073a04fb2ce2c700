// Copyright 2025 The strmap Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package strmap implements a fixed-contract associative container mapping
// string keys to string values, built on open addressing with linear probing
// over a flat, contiguously allocated slot array. If you're not familiar
// with open-addressing see https://en.wikipedia.org/wiki/Open_addressing.
//
// # Design
//
// The table allocates a power-of-two sized array of slots. To insert a key,
// a 64-bit hash of the key selects the starting index (hash masked by
// capacity-1) and the probe walks slots with +1 steps and wraparound until
// it finds a usable slot. Collisions are resolved by simply taking the next
// available slot, which keeps memory access linear and cache friendly for
// small-to-medium key sets where pointer-chasing structures would miss.
//
// Deletion is lazy: Delete clears the key and value but leaves the slot's
// hash in place as a tombstone. The slot stays claimed for probing purposes
// so that later lookups for keys that collided with the deleted one still
// traverse it correctly. Tombstones are only reclaimed by optimization.
//
// Each slot carries an explicit state (empty, deleted, or full) rather than
// encoding emptiness in a reserved hash value. The default hash function
// nonetheless preserves its historical contract of never producing zero;
// see Hash.
//
// The table tracks two counters besides its capacity: used, the number of
// live entries, and allocated, the number of slots ever claimed (live plus
// tombstones) since the last optimization. When an insert would consume the
// table's last empty slot, Put transparently optimizes first: a fresh array
// is allocated at the smallest power-of-two capacity that leaves at least
// eight slots free, every live entry is re-placed using its stored hash
// (hashes are never recomputed), and tombstones are dropped. The old array
// is fully replaced before it is released, so the rebuild is atomic from
// the caller's viewpoint. Optimization may shrink the table, but never
// below the minimum capacity of 8.
//
// Put does not overwrite: inserting a key that is already present fails
// with ErrKeyExists. Deliberately, there is no upsert operation.
//
// Keys and values are Go strings and therefore immutable values; the table
// stores them directly and imposes no lifetime requirements on the caller.
// Slot indices are internal and relocate wholesale on optimization.
//
// A Map is NOT goroutine-safe.
package strmap

import (
	"fmt"
	"strings"
)

const (
	debug = false

	// minEmptySlots is the free-slot margin optimization guarantees: after
	// a rebuild at least this many slots are empty. It doubles as the
	// minimum (and initial) capacity. Must be a power of two.
	minEmptySlots = 8
	minCapacity   = minEmptySlots
)

type slotState uint8

const (
	slotEmpty slotState = iota
	slotDeleted
	slotFull
)

// Slot is an entry in the backing array. A deleted slot (a tombstone) keeps
// the hash that originally claimed it so probe sequences for colliding keys
// remain intact, but holds no key or value.
type Slot struct {
	state slotState
	hash  int64
	key   string
	value string
}

// Map is an open-addressing hash table from string keys to string values
// with Put, Get, Delete, and All operations. By default a Map hashes keys
// with Hash; a different hash function can be specified using the WithHash
// option.
//
// The zero value for a Map is not usable until Init is called; New returns
// an initialized Map. A Map is NOT goroutine-safe.
type Map struct {
	// The hash function applied to keys. Fixed once the map is initialized.
	hash Hasher
	// The allocator used for the slot array.
	allocator Allocator
	// Optional instrumentation hooks.
	events Events
	// The backing slot array. len(slots) is the capacity and is always a
	// power of two >= minCapacity, so len(slots)-1 works as a probe mask.
	slots []Slot
	// The number of slots holding a live entry.
	used int
	// The number of slots ever claimed (live + tombstones) since the last
	// optimization. Monotonic between optimizations; reset to used by
	// optimize.
	allocated int
	// Pre-sizing hint installed by WithCapacity.
	hint int
	// init distinguishes an initialized map from zeroed or closed memory.
	init bool
}

// New constructs an initialized Map.
func New(options ...option) *Map {
	m := &Map{}
	m.Init(options...)
	return m
}

// Init initializes the map, allocating the minimum-capacity slot array (or
// a larger one if WithCapacity is given) and zeroing the counters. Init is
// a no-op on a nil Map and on a Map that is already initialized; a closed
// Map may be initialized again.
func (m *Map) Init(options ...option) {
	if m == nil || m.init {
		return
	}

	m.hash = Hash
	m.allocator = defaultAllocator{}
	for _, op := range options {
		op.apply(m)
	}

	capacity := minCapacity
	if m.hint > 0 {
		capacity = nextCapacity(m.hint)
	}
	m.slots = m.allocator.AllocSlots(capacity)
	m.used = 0
	m.allocated = 0
	m.init = true

	m.checkInvariants()
}

// Close releases the slot array back to the configured allocator and marks
// the map as not initialized: subsequent operations fail with
// ErrNotInitialized rather than touching freed memory. Close is idempotent
// and a no-op on a nil or never-initialized Map.
func (m *Map) Close() {
	if m == nil || !m.init {
		return
	}

	m.allocator.FreeSlots(m.slots)
	m.slots = nil
	m.used = 0
	m.allocated = 0
	m.init = false

	if m.events.OnClose != nil {
		m.events.OnClose()
	}
}

// Put inserts an entry into the map. It fails with ErrKeyExists if the key
// is already present; Put never overwrites. When the insert would consume
// the table's last empty slot, the map is optimized first — this is normal
// control flow, not a user-visible failure. No mutation occurs on failure.
func (m *Map) Put(key, value string) error {
	if m == nil {
		return ErrInvalidArgument
	}
	if !m.init {
		return ErrNotInitialized
	}

	h := m.hash(key)
	if m.find(key, h) >= 0 {
		return ErrKeyExists
	}

	// Keep at least one empty slot after the insert so that lookups always
	// terminate at an empty slot rather than walking the whole table.
	if m.allocated+1 >= len(m.slots) {
		m.optimize()
	}

	if err := m.place(key, value, h, false); err != nil {
		// place cannot fail here: find reported the key absent and
		// optimize guaranteed empty slots. Anything else is a broken
		// invariant.
		panic(fmt.Sprintf("strmap: internal consistency: put %q: %v\n%s", key, err, m.debugString()))
	}

	m.checkInvariants()
	return nil
}

// Get retrieves the value stored for key, returning ok=false if the key is
// not present or the map is invalid. A stored empty value is reported as
// ("", true); the ok result is the existence check that distinguishes it
// from an absent key.
func (m *Map) Get(key string) (value string, ok bool) {
	if m == nil || !m.init {
		return "", false
	}

	i := m.find(key, m.hash(key))
	if i < 0 {
		return "", false
	}
	return m.slots[i].value, true
}

// Delete removes the entry for key by tombstoning its slot: the key and
// value are cleared but the hash stays in place so colliding keys remain
// reachable. The slot is only reclaimed by a later optimization. Delete
// fails with ErrNoSuchKey if the key is not present. It never shrinks the
// table.
func (m *Map) Delete(key string) error {
	if m == nil {
		return ErrInvalidArgument
	}
	if !m.init {
		return ErrNotInitialized
	}

	i := m.find(key, m.hash(key))
	if i < 0 {
		return ErrNoSuchKey
	}

	s := &m.slots[i]
	s.state = slotDeleted
	s.key = ""
	s.value = ""
	m.used--

	if debug {
		fmt.Printf("delete(%q): index=%d used=%d allocated=%d\n", key, i, m.used, m.allocated)
	}
	if m.events.OnDelete != nil {
		m.events.OnDelete(key)
	}

	m.checkInvariants()
	return nil
}

// Len returns the number of live entries in the map, or 0 if the map is nil
// or not initialized.
func (m *Map) Len() int {
	if m == nil || !m.init {
		return 0
	}
	return m.used
}

// All calls yield sequentially for each key and value present in the map,
// in no particular order. If yield returns false, iteration stops. The
// slot array is snapshotted up front so iteration remains valid if the map
// is optimized during iteration, though mutations are not guaranteed to be
// visible.
func (m *Map) All(yield func(key, value string) bool) {
	if m == nil || !m.init {
		return
	}

	slots := m.slots
	for i := range slots {
		if slots[i].state != slotFull {
			continue
		}
		if !yield(slots[i].key, slots[i].value) {
			return
		}
	}
}

// capacity returns the size of the slot array.
func (m *Map) capacity() int {
	return len(m.slots)
}

// nextCapacity returns the smallest power of two that holds n live entries
// while keeping minEmptySlots slots free.
func nextCapacity(n int) int {
	capacity := minCapacity
	for capacity < n+minEmptySlots {
		capacity <<= 1
	}
	return capacity
}

// find returns the index of the live slot holding key, or -1 if the key is
// not present. The probe starts at the hash masked by capacity-1 and walks
// +1 with wraparound: an empty slot proves the key absent, a full slot with
// matching hash and equal key is a hit, and anything else is a collision to
// step over. Tombstones are traversed, never matched.
func (m *Map) find(key string, h int64) int {
	mask := uint64(len(m.slots) - 1)
	i := uint64(h) & mask

	if debug {
		fmt.Printf("find(%q): hash=%016x start=%d\n", key, uint64(h), i)
	}

	for n := len(m.slots); n > 0; n-- {
		s := &m.slots[i]
		if s.state == slotEmpty {
			return -1
		}
		if s.hash == h && s.state == slotFull && s.key == key {
			return int(i)
		}
		i = (i + 1) & mask
	}
	return -1
}

// errSaturated is the internal "requires optimization" condition: place
// walked the entire table without finding a usable slot. Put prevents this
// by optimizing before the last empty slot is consumed.
var errSaturated = fmt.Errorf("strmap: table saturated")

// place writes a key/value pair into the table, probing from the hash's
// home slot. The first empty slot is claimed (allocated and used both
// grow). A tombstone with a matching hash is reclaimed without growing
// allocated. A live slot with a matching hash and equal key fails with
// ErrKeyExists unless override is set, in which case the value is replaced
// in place; override is only used by optimize when re-inserting entries
// known to be distinct.
func (m *Map) place(key, value string, h int64, override bool) error {
	mask := uint64(len(m.slots) - 1)
	i := uint64(h) & mask

	for n := len(m.slots); n > 0; n-- {
		s := &m.slots[i]
		switch {
		case s.state == slotEmpty:
			s.state = slotFull
			s.hash = h
			s.key = key
			s.value = value
			m.allocated++
			m.used++
			if debug {
				fmt.Printf("place(%q): index=%d used=%d allocated=%d\n", key, i, m.used, m.allocated)
			}
			return nil

		case s.hash == h:
			if s.state == slotDeleted {
				// The tombstone already accounts for this hash in
				// allocated; only the live count grows.
				s.state = slotFull
				s.key = key
				s.value = value
				m.used++
				if debug {
					fmt.Printf("place(%q): index=%d reclaimed tombstone\n", key, i)
				}
				return nil
			}
			if s.key == key {
				if !override {
					return ErrKeyExists
				}
				s.value = value
				return nil
			}
			// Same hash, different key: a collision. Take the next slot.
		}
		i = (i + 1) & mask
	}
	return errSaturated
}

// optimize rebuilds the slot array at the smallest power-of-two capacity
// that leaves minEmptySlots slots free, which may grow or shrink the table
// (never below minCapacity). Live entries are re-placed using their stored
// hashes — keys are never rehashed — and tombstones are dropped, so
// allocated equals used afterwards. The old array is replaced before it is
// released.
func (m *Map) optimize() {
	oldSlots := m.slots
	newCapacity := nextCapacity(m.used)

	if debug {
		fmt.Printf("optimize: capacity=%d->%d used=%d allocated=%d\n",
			len(oldSlots), newCapacity, m.used, m.allocated)
	}
	if m.events.OnOptimize != nil {
		m.events.OnOptimize(len(oldSlots), newCapacity)
	}

	m.slots = m.allocator.AllocSlots(newCapacity)
	m.used = 0
	m.allocated = 0

	for i := range oldSlots {
		s := &oldSlots[i]
		if s.state != slotFull {
			continue
		}
		if err := m.place(s.key, s.value, s.hash, true); err != nil {
			// The new capacity exceeds the live count with margin, so a
			// failed re-insert means the table state is corrupt.
			panic(fmt.Sprintf("strmap: internal consistency: re-insert %q: %v\n%s", s.key, err, m.debugString()))
		}
	}

	m.allocator.FreeSlots(oldSlots)
	m.checkInvariants()
}

func (m *Map) checkInvariants() {
	if invariants {
		if m == nil || !m.init {
			return
		}

		capacity := len(m.slots)
		if capacity < minCapacity || capacity&(capacity-1) != 0 {
			panic(fmt.Sprintf("invariant failed: capacity %d is not a power of two >= %d\n%s",
				capacity, minCapacity, m.debugString()))
		}

		// For every live slot, verify we can retrieve the key using find,
		// which also checks the probe invariant: the slot is reached from
		// its home position before any empty slot. Count the live and
		// tombstoned slots.
		var used, deleted int
		for i := range m.slots {
			s := &m.slots[i]
			switch s.state {
			case slotFull:
				used++
				if j := m.find(s.key, s.hash); j != i {
					panic(fmt.Sprintf("invariant failed: slot(%d): %q found at %d\n%s",
						i, s.key, j, m.debugString()))
				}
			case slotDeleted:
				deleted++
				if s.key != "" || s.value != "" {
					panic(fmt.Sprintf("invariant failed: slot(%d): tombstone retains key/value\n%s",
						i, m.debugString()))
				}
			case slotEmpty:
				if s.hash != 0 || s.key != "" || s.value != "" {
					panic(fmt.Sprintf("invariant failed: slot(%d): empty slot is not zeroed\n%s",
						i, m.debugString()))
				}
			}
		}

		if used != m.used {
			panic(fmt.Sprintf("invariant failed: found %d live slots, but used count is %d\n%s",
				used, m.used, m.debugString()))
		}
		if used+deleted != m.allocated {
			panic(fmt.Sprintf("invariant failed: found %d claimed slots, but allocated count is %d\n%s",
				used+deleted, m.allocated, m.debugString()))
		}
		if m.allocated > capacity {
			panic(fmt.Sprintf("invariant failed: allocated %d exceeds capacity %d\n%s",
				m.allocated, capacity, m.debugString()))
		}
	}
}

func (m *Map) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d  used=%d  allocated=%d\n", len(m.slots), m.used, m.allocated)
	for i := range m.slots {
		s := &m.slots[i]
		switch s.state {
		case slotEmpty:
			fmt.Fprintf(&buf, "  %4d: empty\n", i)
		case slotDeleted:
			fmt.Fprintf(&buf, "  %4d: deleted [hash=%016x]\n", i, uint64(s.hash))
		default:
			fmt.Fprintf(&buf, "  %4d: %q [hash=%016x home=%d]\n",
				i, s.key, uint64(s.hash), uint64(s.hash)&uint64(len(m.slots)-1))
		}
	}
	return buf.String()
}
