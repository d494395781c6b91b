// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ingress

import (
	"context"

	"github.com/luxfi/stmtdist/knowledge"
	"github.com/luxfi/stmtdist/network"
	"github.com/luxfi/stmtdist/statement"
)

type fakeBridge struct {
	reports []reportedFault
}

type reportedFault struct {
	peer   statement.NodeID
	change network.ReputationChange
}

func (f *fakeBridge) RegisterEventProducer(string, network.MessageHandler) error { return nil }
func (f *fakeBridge) SendMessage(context.Context, []statement.NodeID, string, []byte) error {
	return nil
}

func (f *fakeBridge) ReportPeer(_ context.Context, peer statement.NodeID, change network.ReputationChange) error {
	f.reports = append(f.reports, reportedFault{peer: peer, change: change})
	return nil
}

type fakeRuntime struct {
	signingCtx network.SigningContext
}

func (f *fakeRuntime) Validators(context.Context, statement.Hash) ([]statement.ValidatorID, error) {
	return nil, nil
}

func (f *fakeRuntime) SigningContext(context.Context, statement.Hash) (network.SigningContext, error) {
	return f.signingCtx, nil
}

type fakeBacking struct {
	statements []statement.SignedFullStatement
}

func (f *fakeBacking) Statement(_ context.Context, _ statement.Hash, stmt statement.SignedFullStatement) error {
	f.statements = append(f.statements, stmt)
	return nil
}

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
