// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"context"
	"fmt"
	"sort"

	"github.com/luxfi/ids"

	"github.com/luxfi/stmtdist/statement"
)

// SessionSource resolves the signing context active at a relay parent.
// validators.State is keyed by subnet/chain and block height, not by
// relay parent, so ValidatorStateRuntimeAPI delegates that half of
// RuntimeAPI to this node-internal collaborator instead.
type SessionSource interface {
	SigningContext(ctx context.Context, relayParent statement.Hash) (SigningContext, error)
}

// ValidatorStateRuntimeAPI implements RuntimeAPI atop a ValidatorState
// (validators.State), the node's validator-set authority, for production
// use. It is the concrete collaborator SPEC_FULL's RuntimeAPI component
// names: validators.GetValidatorOutput entries are converted into the
// []statement.ValidatorID slice head.ActiveHeadData indexes validators by.
type ValidatorStateRuntimeAPI struct {
	state    ValidatorState
	subnetID ids.ID
	sessions SessionSource
}

// NewValidatorStateRuntimeAPI returns a RuntimeAPI that fetches subnetID's
// current validator set from state and delegates signing-context lookups
// to sessions.
func NewValidatorStateRuntimeAPI(state ValidatorState, subnetID ids.ID, sessions SessionSource) *ValidatorStateRuntimeAPI {
	return &ValidatorStateRuntimeAPI{state: state, subnetID: subnetID, sessions: sessions}
}

// Validators fetches the subnet's current validator set and returns it as
// a deterministically ordered (by NodeID string) slice of opaque public
// keys. relayParent is unused: validators.State.GetCurrentValidators
// resolves the validator set active at the node's current head rather than
// at an arbitrary historical relay parent, which is the lookup this
// subsystem's StartWork needs.
func (r *ValidatorStateRuntimeAPI) Validators(_ context.Context, relayParent statement.Hash) ([]statement.ValidatorID, error) {
	out, err := r.state.GetCurrentValidators(r.subnetID)
	if err != nil {
		return nil, fmt.Errorf("network: fetch validator set for subnet %s: %w", r.subnetID, err)
	}

	nodeIDs := make([]ids.NodeID, 0, len(out))
	for nodeID := range out {
		nodeIDs = append(nodeIDs, nodeID)
	}
	sort.Slice(nodeIDs, func(i, j int) bool { return nodeIDs[i].String() < nodeIDs[j].String() })

	validatorIDs := make([]statement.ValidatorID, 0, len(nodeIDs))
	for _, nodeID := range nodeIDs {
		validatorIDs = append(validatorIDs, statement.ValidatorID(out[nodeID].PublicKey))
	}
	return validatorIDs, nil
}

// SigningContext delegates to sessions.
func (r *ValidatorStateRuntimeAPI) SigningContext(ctx context.Context, relayParent statement.Hash) (SigningContext, error) {
	return r.sessions.SigningContext(ctx, relayParent)
}
