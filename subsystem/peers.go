// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package subsystem

import (
	"github.com/luxfi/stmtdist/knowledge"
	"github.com/luxfi/stmtdist/statement"
)

// peerTable is the event loop's table of connected peers, owned
// exclusively by the loop goroutine. It satisfies gossip.Peers and
// ingress.Peers.
type peerTable struct {
	byID map[statement.NodeID]*knowledge.PeerData
}

func newPeerTable() *peerTable {
	return &peerTable{byID: make(map[statement.NodeID]*knowledge.PeerData)}
}

// Get returns the PeerData for id, if connected.
func (t *peerTable) Get(id statement.NodeID) (*knowledge.PeerData, bool) {
	d, ok := t.byID[id]
	return d, ok
}

// ForEach calls f for every connected peer.
func (t *peerTable) ForEach(f func(id statement.NodeID, data *knowledge.PeerData)) {
	for id, d := range t.byID {
		f(id, d)
	}
}

// Insert adds empty PeerData for a newly connected peer.
func (t *peerTable) Insert(id statement.NodeID) *knowledge.PeerData {
	if d, ok := t.byID[id]; ok {
		return d
	}
	d := knowledge.NewPeerData()
	t.byID[id] = d
	return d
}

// Remove drops a disconnected peer.
func (t *peerTable) Remove(id statement.NodeID) {
	delete(t.byID, id)
}

// Len returns the number of connected peers.
func (t *peerTable) Len() int {
	return len(t.byID)
}
