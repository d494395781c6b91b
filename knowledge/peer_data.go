// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package knowledge

import (
	"github.com/luxfi/log"

	"github.com/luxfi/stmtdist/statement"
)

// PeerData is the per-connected-peer state: its current view plus one
// PeerRelayParentKnowledge per relay parent it and we both track.
type PeerData struct {
	View      statement.View
	ByParent  map[statement.Hash]*PeerRelayParentKnowledge
}

// NewPeerData returns an empty PeerData for a newly-connected peer.
func NewPeerData() *PeerData {
	return &PeerData{
		ByParent: make(map[statement.Hash]*PeerRelayParentKnowledge),
	}
}

// Send decides whether fp may be sent to this peer at relayParent. ok is
// false either because the per-parent knowledge rejected the send, or
// because the peer does not track relayParent at all.
func (p *PeerData) Send(l log.Logger, relayParent statement.Hash, fp statement.Fingerprint) (ok bool, firstTime bool) {
	k, tracked := p.ByParent[relayParent]
	if !tracked {
		return false, false
	}
	return k.Send(l, fp)
}

// Receive decides whether fp may be accepted from this peer at relayParent.
// If the peer does not track relayParent, it is FaultUnexpected.
func (p *PeerData) Receive(relayParent statement.Hash, fp statement.Fingerprint, maxMessageCount int) (newCandidate bool, fault ReceiveFault) {
	k, tracked := p.ByParent[relayParent]
	if !tracked {
		return false, FaultUnexpected
	}
	return k.Receive(fp, maxMessageCount)
}

// InsertParent adds empty knowledge for relayParent, if not already present.
func (p *PeerData) InsertParent(relayParent statement.Hash) *PeerRelayParentKnowledge {
	if k, ok := p.ByParent[relayParent]; ok {
		return k
	}
	k := NewPeerRelayParentKnowledge()
	p.ByParent[relayParent] = k
	return k
}

// RemoveParent drops knowledge for relayParent, if present.
func (p *PeerData) RemoveParent(relayParent statement.Hash) {
	delete(p.ByParent, relayParent)
}

// UpdateView replaces the peer's view with next, dropping knowledge for any
// relay parent no longer in it. It returns the set of newly added relay
// parents so the caller can insert knowledge and flush statements for them.
func (p *PeerData) UpdateView(next statement.View) []statement.Hash {
	added := p.View.Added(next)
	removed := p.View.Removed(next)
	for _, r := range removed {
		p.RemoveParent(r)
	}
	p.View = next
	return added
}
