// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"context"
	"errors"
	"fmt"

	"github.com/luxfi/p2p"

	"github.com/luxfi/stmtdist/set"
	"github.com/luxfi/stmtdist/statement"
)

// GossipSender is the gossip-to-a-specific-peer-set capability the adapter
// needs, shaped after core/appsender.AppSender.SendAppGossipSpecific (the
// same capability the teacher aliases as AppSender = p2p.Sender).
type GossipSender interface {
	SendAppGossipSpecific(ctx context.Context, nodeIDs set.Set[statement.NodeID], bytes []byte) error
}

// ErrSenderIncompatible is returned by NewProductionAdapter when the given
// p2p.Sender does not implement GossipSender.
var ErrSenderIncompatible = errors.New("network: p2p.Sender does not implement GossipSender")

// ProtocolRegistrar registers an inbound-message handler for a protocol ID
// with the node's networking layer, external to this subsystem.
type ProtocolRegistrar interface {
	RegisterAppProtocol(protocolID string, handler MessageHandler) error
}

// Benchlister applies a reputation delta to a peer, external to this
// subsystem (the node's benchlist/scoring component).
type Benchlister interface {
	ReportPeer(ctx context.Context, peer statement.NodeID, value int32, reason string) error
}

// Adapter implements Bridge atop a GossipSender for outbound gossip, a
// ProtocolRegistrar for inbound routing, and a Benchlister for reputation
// reports -- the three external capabilities the original overseer exposes
// as NetworkBridge::SendMessage / RegisterEventProducer / ReportPeer.
type Adapter struct {
	sender    GossipSender
	registrar ProtocolRegistrar
	benchlist Benchlister
}

// NewAdapter returns a Bridge wired to the given collaborators.
func NewAdapter(sender GossipSender, registrar ProtocolRegistrar, benchlist Benchlister) *Adapter {
	return &Adapter{sender: sender, registrar: registrar, benchlist: benchlist}
}

// NewProductionAdapter wraps a p2p.Sender -- the capability the node passes
// to subsystems at runtime (engine/chain/block/vm.go's AppSender = p2p.Sender
// alias) -- for production use. It reports ErrSenderIncompatible if sender
// does not implement GossipSender.
func NewProductionAdapter(sender p2p.Sender, registrar ProtocolRegistrar, benchlist Benchlister) (*Adapter, error) {
	gs, ok := sender.(GossipSender)
	if !ok {
		return nil, ErrSenderIncompatible
	}
	return NewAdapter(gs, registrar, benchlist), nil
}

// RegisterEventProducer registers handler for protocolID.
func (a *Adapter) RegisterEventProducer(protocolID string, handler MessageHandler) error {
	if err := a.registrar.RegisterAppProtocol(protocolID, handler); err != nil {
		return fmt.Errorf("register event producer for %s: %w", protocolID, err)
	}
	return nil
}

// SendMessage gossips bytes to recipients over protocolID.
func (a *Adapter) SendMessage(ctx context.Context, recipients []statement.NodeID, protocolID string, bytes []byte) error {
	nodeIDs := set.Of(recipients...)
	if err := a.sender.SendAppGossipSpecific(ctx, nodeIDs, bytes); err != nil {
		return fmt.Errorf("send message over %s: %w", protocolID, err)
	}
	return nil
}

// ReportPeer applies change to peer.
func (a *Adapter) ReportPeer(ctx context.Context, peer statement.NodeID, change ReputationChange) error {
	if err := a.benchlist.ReportPeer(ctx, peer, change.Value, change.Reason); err != nil {
		return fmt.Errorf("report peer %s: %w", peer, err)
	}
	return nil
}
