// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ingress implements the ingress handler (C6): decoding inbound
// wire messages, verifying signatures, applying the C2/C4 knowledge rules,
// emitting reputation deltas, and forwarding fresh statements to
// candidate-backing.
package ingress

import (
	"context"

	"github.com/luxfi/log"

	"github.com/luxfi/stmtdist/config"
	"github.com/luxfi/stmtdist/gossip"
	"github.com/luxfi/stmtdist/head"
	"github.com/luxfi/stmtdist/knowledge"
	"github.com/luxfi/stmtdist/metrics"
	"github.com/luxfi/stmtdist/network"
	"github.com/luxfi/stmtdist/network/sigverify"
	"github.com/luxfi/stmtdist/statement"
	"github.com/luxfi/stmtdist/wire"
)

// Peers is the subset of the event loop's peer table the ingress handler
// needs.
type Peers interface {
	Get(id statement.NodeID) (*knowledge.PeerData, bool)
}

// Handler decodes and validates inbound messages, applies knowledge rules,
// and reports reputation.
type Handler struct {
	log     log.Logger
	params  config.Parameters
	metrics *metrics.Metrics
	bridge  network.Bridge
	runtime network.RuntimeAPI
	backing network.CandidateBacking
	gossip  *gossip.Engine
	peers   Peers
	heads   *head.Store
	ourView func() statement.View
}

// New returns an ingress Handler.
func New(
	l log.Logger,
	params config.Parameters,
	m *metrics.Metrics,
	bridge network.Bridge,
	runtime network.RuntimeAPI,
	backing network.CandidateBacking,
	gossipEngine *gossip.Engine,
	peers Peers,
	heads *head.Store,
	ourView func() statement.View,
) *Handler {
	return &Handler{
		log:     l,
		params:  params,
		metrics: m,
		bridge:  bridge,
		runtime: runtime,
		backing: backing,
		gossip:  gossipEngine,
		peers:   peers,
		heads:   heads,
		ourView: ourView,
	}
}

func (h *Handler) reportFault(ctx context.Context, peer statement.NodeID, change network.ReputationChange) {
	if err := h.bridge.ReportPeer(ctx, peer, change); err != nil {
		h.log.Warn("failed to report peer", "peer", peer, "error", err)
	}
	if h.metrics != nil {
		h.metrics.ReputationReports.WithLabelValues(change.Reason).Inc()
	}
	h.log.Debug("reported peer",
		"peer", peer,
		"delta", change.Value,
		"reason", change.Reason,
	)
}

// HandleIncomingMessage processes one raw inbound message from peer,
// following the seven-step flow of spec §4.6.
func (h *Handler) HandleIncomingMessage(ctx context.Context, peer statement.NodeID, raw []byte) error {
	// 1. decode
	msg, err := wire.Decode(raw)
	if err != nil {
		h.reportFault(ctx, peer, h.cost(h.params.Reputation.InvalidMessage, "invalid or undecodable message"))
		return nil
	}

	relayParent := msg.RelayParent

	// 2. relay parent must be in our view
	if !h.ourView().Contains(relayParent) {
		h.reportFault(ctx, peer, h.cost(h.params.Reputation.UnexpectedStatement, "unexpected statement"))
		return nil
	}

	// 3. active head must exist
	activeHead, ok := h.heads.Get(relayParent)
	if !ok {
		h.log.Debug("dropping message for relay parent with no active head", "relayParent", relayParent)
		return nil
	}

	// 4. verify signature
	if int(msg.Statement.Validator) >= len(activeHead.Validators) {
		h.reportFault(ctx, peer, h.cost(h.params.Reputation.InvalidSignature, "invalid signature"))
		return nil
	}
	signingCtx, err := h.runtime.SigningContext(ctx, relayParent)
	if err != nil {
		return err
	}
	valid, err := sigverify.Verify(signingCtx, activeHead.Validators[msg.Statement.Validator], msg.Statement.Compact, msg.Statement.Signature)
	if err != nil || !valid {
		h.reportFault(ctx, peer, h.cost(h.params.Reputation.InvalidSignature, "invalid signature"))
		return nil
	}

	// 5. compute fingerprint and flood bound
	fp := msg.Statement.Fingerprint()
	maxMessageCount := h.params.FloodMultiplier * len(activeHead.Validators)

	// 6. apply per-peer knowledge rules
	data, tracked := h.peers.Get(peer)
	if !tracked {
		h.reportFault(ctx, peer, h.cost(h.params.Reputation.UnexpectedStatement, "unexpected statement"))
		return nil
	}
	newCandidate, fault := data.Receive(relayParent, fp, maxMessageCount)
	switch fault {
	case knowledge.FaultDuplicate:
		h.reportFault(ctx, peer, h.cost(h.params.Reputation.DuplicateStatement, "duplicate statement"))
		return nil
	case knowledge.FaultUnexpected:
		h.reportFault(ctx, peer, h.cost(h.params.Reputation.UnexpectedStatement, "unexpected statement"))
		return nil
	case knowledge.FaultApparentFlood:
		h.reportFault(ctx, peer, h.cost(h.params.Reputation.ApparentFlood, "peer appears to be flooding us with statements"))
		return nil
	}
	if h.metrics != nil {
		h.metrics.StatementsReceived.Inc()
	}
	if newCandidate {
		if err := h.gossip.SendStatementsAbout(ctx, peer, relayParent, msg.Statement.CandidateHash()); err != nil {
			return err
		}
	}

	// 7. apply to the active head
	result, stored := activeHead.NoteStatement(msg.Statement)
	switch result {
	case head.NotUseful:
		return nil
	case head.UsefulButKnown:
		h.reportFault(ctx, peer, h.cost(h.params.Reputation.ValidStatement, "valid statement"))
		return nil
	case head.Fresh:
		h.reportFault(ctx, peer, h.cost(h.params.Reputation.ValidStatementFirst, "valid statement, first"))
		return h.backing.Statement(ctx, relayParent, stored.Statement)
	}
	return nil
}

func (h *Handler) cost(value int32, reason string) network.ReputationChange {
	return network.ReputationChange{Value: value, Reason: reason}
}
