// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package gossip implements the gossip engine (C5): circulating a newly
// accepted statement to eligible peers, and flushing dependents once a peer
// learns of a candidate.
package gossip

import (
	"context"
	"fmt"

	"github.com/luxfi/log"

	"github.com/luxfi/stmtdist/head"
	"github.com/luxfi/stmtdist/knowledge"
	"github.com/luxfi/stmtdist/metrics"
	"github.com/luxfi/stmtdist/network"
	"github.com/luxfi/stmtdist/statement"
	"github.com/luxfi/stmtdist/wire"
)

// Peers is the subset of the event loop's peer table the gossip engine
// needs: enumeration and per-peer send decisions.
type Peers interface {
	ForEach(f func(id statement.NodeID, data *knowledge.PeerData))
	Get(id statement.NodeID) (*knowledge.PeerData, bool)
}

// Engine circulates statements to peers and flushes dependents.
type Engine struct {
	log     log.Logger
	metrics *metrics.Metrics
	bridge  network.Bridge
	peers   Peers
	heads   *head.Store
	protocolID string
}

// New returns a gossip Engine.
func New(l log.Logger, m *metrics.Metrics, bridge network.Bridge, peers Peers, heads *head.Store, protocolID string) *Engine {
	return &Engine{log: l, metrics: m, bridge: bridge, peers: peers, heads: heads, protocolID: protocolID}
}

// CirculateStatement sends stored to every peer whose per-peer knowledge
// allows it, as a single wire message addressed to all eligible recipients.
// It returns the peers for whom this was the first time they learned of
// the statement's candidate.
func (e *Engine) CirculateStatement(ctx context.Context, relayParent statement.Hash, stored *statement.StoredStatement) ([]statement.NodeID, error) {
	fp := stored.Statement.Fingerprint()

	var recipients []statement.NodeID
	var firstTimers []statement.NodeID
	e.peers.ForEach(func(id statement.NodeID, data *knowledge.PeerData) {
		ok, firstTime := data.Send(e.log, relayParent, fp)
		if !ok {
			return
		}
		recipients = append(recipients, id)
		if firstTime {
			firstTimers = append(firstTimers, id)
		}
	})

	if len(recipients) == 0 {
		return nil, nil
	}

	msg := wire.Encode(wire.Message{RelayParent: relayParent, Statement: stored.Statement})
	if err := e.bridge.SendMessage(ctx, recipients, e.protocolID, msg); err != nil {
		return nil, fmt.Errorf("gossip: send statement: %w", err)
	}
	if e.metrics != nil {
		e.metrics.StatementsGossiped.Inc()
	}

	e.log.Debug("circulated statement",
		"relayParent", relayParent,
		"candidateHash", stored.Statement.CandidateHash(),
		"recipients", len(recipients),
	)

	return firstTimers, nil
}

// CirculateStatementAndDependents notes stmt against the active head for
// relayParent and, if it is newly useful, circulates it and flushes any
// statements about the same candidate that were previously blocked on the
// dependency. If there is no active head for relayParent, stmt is dropped
// silently.
func (e *Engine) CirculateStatementAndDependents(ctx context.Context, relayParent statement.Hash, stmt statement.SignedFullStatement) error {
	activeHead, ok := e.heads.Get(relayParent)
	if !ok {
		e.log.Debug("dropping statement for unknown active head", "relayParent", relayParent)
		return nil
	}

	result, stored := activeHead.NoteStatement(stmt)
	if result != head.Fresh {
		return nil
	}

	firstTimers, err := e.CirculateStatement(ctx, relayParent, stored)
	if err != nil {
		return err
	}

	for _, peer := range firstTimers {
		if err := e.SendStatementsAbout(ctx, peer, relayParent, stmt.CandidateHash()); err != nil {
			return err
		}
	}
	return nil
}

// SendStatementsAbout flushes every stored statement about candidateHash at
// relayParent to peer, skipping any the peer's knowledge rejects.
func (e *Engine) SendStatementsAbout(ctx context.Context, peer statement.NodeID, relayParent statement.Hash, candidateHash statement.Hash) error {
	activeHead, ok := e.heads.Get(relayParent)
	if !ok {
		return nil
	}
	data, ok := e.peers.Get(peer)
	if !ok {
		return nil
	}

	var sendErr error
	activeHead.StatementsAbout(candidateHash, func(stored *statement.StoredStatement) bool {
		ok, _ := data.Send(e.log, relayParent, stored.Statement.Fingerprint())
		if !ok {
			return true
		}
		msg := wire.Encode(wire.Message{RelayParent: relayParent, Statement: stored.Statement})
		if err := e.bridge.SendMessage(ctx, []statement.NodeID{peer}, e.protocolID, msg); err != nil {
			sendErr = fmt.Errorf("gossip: send statements about candidate: %w", err)
			return false
		}
		return true
	})
	return sendErr
}

// SendStatements sends every statement stored at relayParent to peer whose
// per-peer send succeeds, seconded statements first so dependents become
// sendable as they arrive. Called when peer newly adds relayParent to its
// view.
func (e *Engine) SendStatements(ctx context.Context, peer statement.NodeID, relayParent statement.Hash) error {
	activeHead, ok := e.heads.Get(relayParent)
	if !ok {
		return nil
	}
	data, ok := e.peers.Get(peer)
	if !ok {
		return nil
	}

	var sendErr error
	activeHead.Statements(func(stored *statement.StoredStatement) bool {
		ok, _ := data.Send(e.log, relayParent, stored.Statement.Fingerprint())
		if !ok {
			return true
		}
		msg := wire.Encode(wire.Message{RelayParent: relayParent, Statement: stored.Statement})
		if err := e.bridge.SendMessage(ctx, []statement.NodeID{peer}, e.protocolID, msg); err != nil {
			sendErr = fmt.Errorf("gossip: send statements: %w", err)
			return false
		}
		return true
	})
	return sendErr
}
