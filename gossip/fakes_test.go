// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gossip

import (
	"context"

	"github.com/luxfi/stmtdist/knowledge"
	"github.com/luxfi/stmtdist/network"
	"github.com/luxfi/stmtdist/statement"
)

// fakeBridge records every SendMessage call for inspection, in the style of
// networking/sender/sendertest.TestSender.
type fakeBridge struct {
	sent []sentMessage
}

type sentMessage struct {
	recipients []statement.NodeID
	protocolID string
	bytes      []byte
}

func (f *fakeBridge) RegisterEventProducer(string, network.MessageHandler) error { return nil }

func (f *fakeBridge) SendMessage(_ context.Context, recipients []statement.NodeID, protocolID string, bytes []byte) error {
	f.sent = append(f.sent, sentMessage{recipients: recipients, protocolID: protocolID, bytes: bytes})
	return nil
}

func (f *fakeBridge) ReportPeer(context.Context, statement.NodeID, network.ReputationChange) error {
	return nil
}

// fakePeers is a minimal in-memory peer table satisfying Peers.
type fakePeers struct {
	byID map[statement.NodeID]*knowledge.PeerData
}

func newFakePeers() *fakePeers {
	return &fakePeers{byID: make(map[statement.NodeID]*knowledge.PeerData)}
}

func (p *fakePeers) Get(id statement.NodeID) (*knowledge.PeerData, bool) {
	d, ok := p.byID[id]
	return d, ok
}

func (p *fakePeers) ForEach(f func(id statement.NodeID, data *knowledge.PeerData)) {
	for id, d := range p.byID {
		f(id, d)
	}
}

func (p *fakePeers) insert(id statement.NodeID) *knowledge.PeerData {
	d := knowledge.NewPeerData()
	p.byID[id] = d
	return d
}
