// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package linked implements an insertion-ordered map. It backs the active
// head's statement storage, where seconded statements must iterate before
// any other statement and iteration order otherwise only needs to be
// stable, not semantically meaningful.
package linked

import "container/list"

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Hashmap is a map that additionally remembers insertion order.
type Hashmap[K comparable, V any] struct {
	nodes map[K]*list.Element
	order *list.List
}

// NewHashmap returns a new, empty Hashmap.
func NewHashmap[K comparable, V any]() *Hashmap[K, V] {
	return &Hashmap[K, V]{
		nodes: make(map[K]*list.Element),
		order: list.New(),
	}
}

// Put inserts key/value, or overwrites value if key is already present.
// Overwriting does not change the key's position in iteration order.
func (h *Hashmap[K, V]) Put(key K, value V) {
	if node, ok := h.nodes[key]; ok {
		node.Value = entry[K, V]{key: key, value: value}
		return
	}
	node := h.order.PushBack(entry[K, V]{key: key, value: value})
	h.nodes[key] = node
}

// Get returns the value stored for key, if any.
func (h *Hashmap[K, V]) Get(key K) (V, bool) {
	if node, ok := h.nodes[key]; ok {
		return node.Value.(entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Delete removes key from the map.
func (h *Hashmap[K, V]) Delete(key K) {
	if node, ok := h.nodes[key]; ok {
		h.order.Remove(node)
		delete(h.nodes, key)
	}
}

// Len returns the number of entries in the map.
func (h *Hashmap[K, V]) Len() int {
	return h.order.Len()
}

// Iterate calls f for every entry in insertion order, stopping early if f
// returns false.
func (h *Hashmap[K, V]) Iterate(f func(K, V) bool) {
	for node := h.order.Front(); node != nil; node = node.Next() {
		e := node.Value.(entry[K, V])
		if !f(e.key, e.value) {
			return
		}
	}
}
