// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package head

import "github.com/luxfi/stmtdist/statement"

// Store is the table of ActiveHeadData keyed by relay parent, owned
// exclusively by the event loop.
type Store struct {
	byParent map[statement.Hash]*ActiveHeadData
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{byParent: make(map[statement.Hash]*ActiveHeadData)}
}

// Get returns the ActiveHeadData for relayParent, if any.
func (s *Store) Get(relayParent statement.Hash) (*ActiveHeadData, bool) {
	d, ok := s.byParent[relayParent]
	return d, ok
}

// Insert adds data for relayParent if absent, returning the (possibly
// pre-existing) entry.
func (s *Store) Insert(relayParent statement.Hash, data *ActiveHeadData) *ActiveHeadData {
	if existing, ok := s.byParent[relayParent]; ok {
		return existing
	}
	s.byParent[relayParent] = data
	return data
}

// Remove drops relayParent from the store.
func (s *Store) Remove(relayParent statement.Hash) {
	delete(s.byParent, relayParent)
}

// RetainOnly drops every entry whose relay parent is not in keep.
func (s *Store) RetainOnly(keep statement.View) {
	for parent := range s.byParent {
		if !keep.Contains(parent) {
			delete(s.byParent, parent)
		}
	}
}

// Len returns the number of relay parents currently tracked.
func (s *Store) Len() int {
	return len(s.byParent)
}
