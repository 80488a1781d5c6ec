// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package messages provides the ordered key/value bag that results use to accumulate diagnostic
// annotations. Keys are case-sensitive and keep their insertion order so that dumps are stable.
package messages

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"strconv"
	"sync"
)

// KeyExistAction controls what happens when a key being added is already present in a Bag.
type KeyExistAction int

const (
	// Rename appends a numeric suffix to the incoming key until it is unique.
	Rename KeyExistAction = iota
	// Overwrite replaces the existing value, keeping the key's original position.
	Overwrite
	// Ignore keeps the existing value and drops the incoming one.
	Ignore
)

func (a KeyExistAction) String() string {
	switch a {
	case Rename:
		return "Rename"
	case Overwrite:
		return "Overwrite"
	case Ignore:
		return "Ignore"
	default:
		return fmt.Sprintf("KeyExistAction(%d)", int(a))
	}
}

// renameSeparator joins a colliding key and its numeric suffix, e.g. "Message_1".
const renameSeparator = "_"

// Bag is an insertion-ordered string map. It is safe for concurrent use.
type Bag struct {
	mu     sync.RWMutex
	keys   []string
	values map[string]string
}

// New creates an empty Bag.
func New() *Bag {
	return &Bag{values: map[string]string{}}
}

// NewWithCapacity creates an empty Bag sized for n entries.
func NewWithCapacity(n int) *Bag {
	return &Bag{
		keys:   make([]string, 0, n),
		values: make(map[string]string, n),
	}
}

// FromPairs builds a Bag from alternating key/value arguments. Keys that collide are renamed.
// It panics when given an odd number of arguments.
func FromPairs(kv ...string) *Bag {
	if len(kv)%2 != 0 {
		panic("messages: FromPairs requires an even number of arguments")
	}

	b := NewWithCapacity(len(kv) / 2)
	for i := 0; i < len(kv); i += 2 {
		b.AddOrRename(kv[i], kv[i+1])
	}

	return b
}

// AddOrRename inserts value under key. When key already exists, a numeric suffix is appended
// ("key_1", "key_2", ...) until the key is unique. The key actually used is returned.
func (b *Bag) AddOrRename(key, value string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.addOrRenameLocked(key, value)
}

// Set inserts or overwrites value under key. Overwritten keys keep their position.
func (b *Bag) Set(key, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.setLocked(key, value)
}

// TryAdd inserts value under key only if key is not present yet.
func (b *Bag) TryAdd(key, value string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, has := b.values[key]; has {
		return false
	}

	b.insertLocked(key, value)
	return true
}

// Add inserts value under key resolving collisions with action. It returns the key under which the
// value was stored and false when the value was dropped because of Ignore.
func (b *Bag) Add(key, value string, action KeyExistAction) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.addLocked(key, value, action)
}

// TryAddRange merges every entry of other, in other's order, resolving collisions with action.
// The keys that were skipped because of Ignore are returned; the result is nil for the other actions.
func (b *Bag) TryAddRange(other *Bag, action KeyExistAction) []string {
	if other == nil {
		return nil
	}

	// snapshot first so that merging a bag into itself does not deadlock
	keys, values := other.snapshot()

	b.mu.Lock()
	defer b.mu.Unlock()

	var skipped []string
	for i, key := range keys {
		if _, added := b.addLocked(key, values[i], action); !added {
			skipped = append(skipped, key)
		}
	}

	return skipped
}

// Get returns the value stored under key.
func (b *Bag) Get(key string) (string, bool) {
	if b == nil {
		return "", false
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	value, has := b.values[key]
	return value, has
}

// Has reports whether key is present.
func (b *Bag) Has(key string) bool {
	_, has := b.Get(key)
	return has
}

// Len returns the number of entries.
func (b *Bag) Len() int {
	if b == nil {
		return 0
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.keys)
}

// Keys returns a copy of the keys in insertion order.
func (b *Bag) Keys() []string {
	keys, _ := b.snapshot()
	return keys
}

// All iterates over the entries in insertion order. The iteration works on a snapshot, so the bag
// may be modified while iterating.
func (b *Bag) All() iter.Seq2[string, string] {
	keys, values := b.snapshot()

	return func(yield func(string, string) bool) {
		for i, key := range keys {
			if !yield(key, values[i]) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the bag.
func (b *Bag) Clone() *Bag {
	keys, values := b.snapshot()

	clone := NewWithCapacity(len(keys))
	for i, key := range keys {
		clone.insertLocked(key, values[i])
	}

	return clone
}

// Map returns the entries as a plain map. Ordering is lost.
func (b *Bag) Map() map[string]string {
	keys, values := b.snapshot()

	m := make(map[string]string, len(keys))
	for i, key := range keys {
		m[key] = values[i]
	}

	return m
}

// MarshalJSON encodes the bag as a JSON object preserving insertion order.
func (b *Bag) MarshalJSON() ([]byte, error) {
	keys, values := b.snapshot()

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(values[i])
		if err != nil {
			return nil, err
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// String renders the bag as "key=value" pairs in insertion order.
func (b *Bag) String() string {
	keys, values := b.snapshot()

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(key)
		buf.WriteByte('=')
		buf.WriteString(strconv.Quote(values[i]))
	}
	buf.WriteByte(']')

	return buf.String()
}

func (b *Bag) snapshot() ([]string, []string) {
	if b == nil {
		return nil, nil
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, len(b.keys))
	values := make([]string, len(b.keys))
	for i, key := range b.keys {
		keys[i] = key
		values[i] = b.values[key]
	}

	return keys, values
}

func (b *Bag) addLocked(key, value string, action KeyExistAction) (string, bool) {
	switch action {
	case Overwrite:
		b.setLocked(key, value)
		return key, true
	case Ignore:
		if _, has := b.values[key]; has {
			return key, false
		}
		b.insertLocked(key, value)
		return key, true
	default:
		return b.addOrRenameLocked(key, value), true
	}
}

func (b *Bag) addOrRenameLocked(key, value string) string {
	unique := key
	for suffix := 1; ; suffix++ {
		if _, has := b.values[unique]; !has {
			break
		}
		unique = key + renameSeparator + strconv.Itoa(suffix)
	}

	b.insertLocked(unique, value)
	return unique
}

func (b *Bag) setLocked(key, value string) {
	if _, has := b.values[key]; has {
		b.values[key] = value
		return
	}

	b.insertLocked(key, value)
}

func (b *Bag) insertLocked(key, value string) {
	if b.values == nil {
		b.values = map[string]string{}
	}

	b.keys = append(b.keys, key)
	b.values[key] = value
}
