// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package subsystem implements the event loop (C7): multiplexing overseer
// signals (start/stop work, conclude) and messages (share, network update)
// into the knowledge, head, gossip, and ingress packages.
package subsystem

import (
	"github.com/luxfi/version"

	"github.com/luxfi/stmtdist/statement"
)

// Signal is an overseer-facing control signal.
type Signal interface{ isSignal() }

// StartWork requests an ActiveHeadData be created for h, if absent, after
// the validator set and session index have been fetched.
type StartWork struct{ RelayParent statement.Hash }

// StopWork is a documented no-op; cleanup happens on the next OurViewChange.
type StopWork struct{ RelayParent statement.Hash }

// Conclude requests the event loop exit.
type Conclude struct{}

func (StartWork) isSignal() {}
func (StopWork) isSignal()  {}
func (Conclude) isSignal()  {}

// Message is an overseer-facing StatementDistributionMessage.
type Message interface{ isMessage() }

// Share is a locally-produced statement to circulate.
type Share struct {
	RelayParent statement.Hash
	Statement   statement.SignedFullStatement
}

// NetworkBridgeUpdate wraps a NetworkBridgeEvent.
type NetworkBridgeUpdate struct{ Event NetworkBridgeEvent }

func (Share) isMessage()               {}
func (NetworkBridgeUpdate) isMessage() {}

// NetworkBridgeEvent is one of PeerConnected, PeerDisconnected, PeerMessage,
// PeerViewChange, or OurViewChange.
type NetworkBridgeEvent interface{ isNetworkBridgeEvent() }

// PeerConnected announces a newly connected peer. NodeVersion is forwarded
// to the configured network.ValidatorConnector, if any; it may be nil when
// the transport layer does not report peer versions.
type PeerConnected struct {
	Peer        statement.NodeID
	NodeVersion *version.Application
}

// PeerDisconnected announces a disconnected peer.
type PeerDisconnected struct{ Peer statement.NodeID }

// PeerMessage carries a raw inbound wire message from peer.
type PeerMessage struct {
	Peer  statement.NodeID
	Bytes []byte
}

// PeerViewChange announces peer's new view.
type PeerViewChange struct {
	Peer    statement.NodeID
	NewView statement.View
}

// OurViewChange announces our own new view.
type OurViewChange struct{ NewView statement.View }

func (PeerConnected) isNetworkBridgeEvent()    {}
func (PeerDisconnected) isNetworkBridgeEvent() {}
func (PeerMessage) isNetworkBridgeEvent()      {}
func (PeerViewChange) isNetworkBridgeEvent()   {}
func (OurViewChange) isNetworkBridgeEvent()    {}
