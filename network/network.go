// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package network declares the external collaborators the subsystem talks
// to: the network bridge, the runtime-API, candidate-backing, and the
// provisioner. All are out of scope per the specification and are modeled
// here as interfaces so the subsystem package can be tested against
// in-memory fakes; the package also carries the production implementations
// Adapter (Bridge) and ValidatorStateRuntimeAPI (RuntimeAPI).
package network

import (
	"context"

	"github.com/luxfi/validators"
	"github.com/luxfi/version"

	"github.com/luxfi/stmtdist/statement"
)

// ReputationChange pairs a fixed reputation delta with a human-readable
// reason, mirroring the original's Rep::new(value, reason). The numeric
// value is what a scoring/benchlist component acts on; the reason is for
// operator-facing logs.
type ReputationChange struct {
	Value  int32
	Reason string
}

// Fixed reputation deltas, per spec.
var (
	CostUnexpectedStatement = ReputationChange{Value: -100, Reason: "unexpected statement"}
	CostInvalidSignature    = ReputationChange{Value: -500, Reason: "invalid signature"}
	CostInvalidMessage      = ReputationChange{Value: -500, Reason: "invalid or undecodable message"}
	CostDuplicateStatement  = ReputationChange{Value: -250, Reason: "duplicate statement"}
	CostApparentFlood       = ReputationChange{Value: -1000, Reason: "peer appears to be flooding us with statements"}
	BenefitValidStatement      = ReputationChange{Value: 5, Reason: "valid statement"}
	BenefitValidStatementFirst = ReputationChange{Value: 25, Reason: "valid statement, first"}
)

// Bridge is the network transport: sending wire messages and registering
// the protocol adapter. Production wiring is via Adapter, which delegates
// SendMessage to a p2p.Sender, matching the teacher's AppSender = p2p.Sender
// alias (engine/chain/block/vm.go); the interface itself stays narrow so
// test fakes need not reimplement the full p2p.Sender surface.
type Bridge interface {
	// RegisterEventProducer routes inbound messages for protocolID to this
	// subsystem.
	RegisterEventProducer(protocolID string, handler MessageHandler) error

	// SendMessage sends bytes over protocolID to every recipient.
	SendMessage(ctx context.Context, recipients []statement.NodeID, protocolID string, bytes []byte) error

	// ReportPeer applies a reputation change to peer.
	ReportPeer(ctx context.Context, peer statement.NodeID, change ReputationChange) error
}

// MessageHandler receives raw inbound bytes for a registered protocol.
type MessageHandler interface {
	HandleMessage(ctx context.Context, peer statement.NodeID, bytes []byte) error
}

// SigningContext binds a signature to a relay parent and session, per spec
// §3 and the GLOSSARY.
type SigningContext struct {
	SessionIndex uint64
	ParentHash   statement.Hash
}

// RuntimeAPI is the runtime-API subsystem: validator set and signing
// context lookups keyed by relay parent.
type RuntimeAPI interface {
	Validators(ctx context.Context, relayParent statement.Hash) ([]statement.ValidatorID, error)
	SigningContext(ctx context.Context, relayParent statement.Hash) (SigningContext, error)
}

// CandidateBacking receives freshly-accepted statements.
type CandidateBacking interface {
	Statement(ctx context.Context, relayParent statement.Hash, stmt statement.SignedFullStatement) error
}

// ValidatorConnector mirrors validators.Connector: peer connect/disconnect
// notifications carrying node version information. subsystem.Loop calls it,
// when configured, from its PeerConnected/PeerDisconnected handling so the
// node's validator-set manager learns about transport-level connectivity
// the same way the teacher's ChainRouter forwards Connected/Disconnected to
// validators.Connector implementations.
type ValidatorConnector interface {
	Connected(ctx context.Context, nodeID statement.NodeID, nodeVersion *version.Application) error
	Disconnected(ctx context.Context, nodeID statement.NodeID) error
}

// ValidatorState mirrors validators.State. ValidatorStateRuntimeAPI
// resolves RuntimeAPI's validator-set lookup through it.
type ValidatorState = validators.State
