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

package strmap

// option provides an interface to do work on a Map while it is being
// initialized.
type option interface {
	apply(m *Map)
}

type hashOption struct {
	hash Hasher
}

func (op hashOption) apply(m *Map) {
	m.hash = op.hash
}

// WithHash is an option to specify the hash function to use for a Map. The
// default is Hash. Entries keep the hash the installed function produced for
// as long as they live in the table, so the hash function of an initialized
// map must not be changed.
func WithHash(hash Hasher) option {
	return hashOption{hash}
}

// Allocator specifies an interface for allocating and releasing the slot
// array backing a Map. The default allocator utilizes Go's builtin make()
// and allows the GC to reclaim memory.
//
// If the allocator is manually managing memory and requires that slots be
// freed then Map.Close must be called in order to ensure FreeSlots is
// called.
type Allocator interface {
	// AllocSlots should return a slice equivalent to make([]Slot, n). The
	// returned slots must be zeroed.
	AllocSlots(n int) []Slot

	// FreeSlots can optionally release the memory associated with the
	// supplied slice that is guaranteed to have been allocated by
	// AllocSlots.
	FreeSlots(v []Slot)
}

type defaultAllocator struct{}

func (defaultAllocator) AllocSlots(n int) []Slot {
	return make([]Slot, n)
}

func (defaultAllocator) FreeSlots(v []Slot) {
}

type allocatorOption struct {
	allocator Allocator
}

func (op allocatorOption) apply(m *Map) {
	m.allocator = op.allocator
}

// WithAllocator is an option to specify the Allocator to use for a Map.
func WithAllocator(allocator Allocator) option {
	return allocatorOption{allocator}
}

type capacityOption struct {
	n int
}

func (op capacityOption) apply(m *Map) {
	m.hint = op.n
}

// WithCapacity is an option to pre-size a Map so that n entries can be
// inserted without triggering an optimization. The initial capacity is the
// smallest power of two that holds n entries while preserving the free-slot
// margin.
func WithCapacity(n int) option {
	return capacityOption{n}
}

// Events holds optional instrumentation hooks. All hooks are invoked
// synchronously from the operation that triggered them; a nil hook is
// skipped.
type Events struct {
	// OnDelete is invoked after a key has been tombstoned by Delete.
	OnDelete func(key string)
	// OnOptimize is invoked before the slot array is rebuilt, with the
	// capacities of the old and new arrays.
	OnOptimize func(oldCapacity, newCapacity int)
	// OnClose is invoked after Close has released the slot array.
	OnClose func()
}

type eventsOption struct {
	events Events
}

func (op eventsOption) apply(m *Map) {
	m.events = op.events
}

// WithEvents is an option to install instrumentation hooks on a Map.
func WithEvents(events Events) option {
	return eventsOption{events}
}
