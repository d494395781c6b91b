// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package subsystem

import (
	"context"
	"sync"

	"github.com/luxfi/version"

	"github.com/luxfi/stmtdist/network"
	"github.com/luxfi/stmtdist/statement"
)

type fakeBridge struct {
	mu        sync.Mutex
	sent      []sentMessage
	reports   []reportedFault
	registered string
	handler   network.MessageHandler
}

type sentMessage struct {
	recipients []statement.NodeID
	protocolID string
}

type reportedFault struct {
	peer   statement.NodeID
	change network.ReputationChange
}

func (f *fakeBridge) RegisterEventProducer(protocolID string, h network.MessageHandler) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = protocolID
	f.handler = h
	return nil
}

func (f *fakeBridge) SendMessage(_ context.Context, recipients []statement.NodeID, protocolID string, _ []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{recipients: recipients, protocolID: protocolID})
	return nil
}

func (f *fakeBridge) ReportPeer(_ context.Context, peer statement.NodeID, change network.ReputationChange) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, reportedFault{peer: peer, change: change})
	return nil
}

func (f *fakeBridge) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeRuntime struct {
	validators []statement.ValidatorID
	signingCtx network.SigningContext
}

func (f *fakeRuntime) Validators(context.Context, statement.Hash) ([]statement.ValidatorID, error) {
	return f.validators, nil
}

func (f *fakeRuntime) SigningContext(context.Context, statement.Hash) (network.SigningContext, error) {
	return f.signingCtx, nil
}

type connectorCall struct {
	peer      statement.NodeID
	connected bool
	nodeVer   *version.Application
}

type fakeValidatorConnector struct {
	mu    sync.Mutex
	calls []connectorCall
}

func (f *fakeValidatorConnector) Connected(_ context.Context, nodeID statement.NodeID, nodeVersion *version.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, connectorCall{peer: nodeID, connected: true, nodeVer: nodeVersion})
	return nil
}

func (f *fakeValidatorConnector) Disconnected(_ context.Context, nodeID statement.NodeID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, connectorCall{peer: nodeID, connected: false})
	return nil
}

type fakeBacking struct {
	mu         sync.Mutex
	statements []statement.SignedFullStatement
}

func (f *fakeBacking) Statement(_ context.Context, _ statement.Hash, stmt statement.SignedFullStatement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statements = append(f.statements, stmt)
	return nil
}
