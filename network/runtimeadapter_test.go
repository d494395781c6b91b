// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"context"
	"errors"
	"testing"

	"github.com/luxfi/ids"
	"github.com/luxfi/validators"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/stmtdist/statement"
)

type fakeValidatorState struct {
	subnetID ids.ID
	out      map[ids.NodeID]*validators.GetValidatorOutput
	err      error
}

func (f *fakeValidatorState) GetValidatorSet(_ context.Context, _ uint64, _ ids.ID) (map[ids.NodeID]*validators.GetValidatorOutput, error) {
	return nil, errors.New("not used by this test")
}

func (f *fakeValidatorState) GetCurrentValidators(subnetID ids.ID) (map[ids.NodeID]*validators.GetValidatorOutput, error) {
	if subnetID != f.subnetID {
		return nil, errors.New("unexpected subnet")
	}
	return f.out, f.err
}

type fakeSessionSource struct {
	ctx SigningContext
	err error
}

func (f *fakeSessionSource) SigningContext(_ context.Context, _ statement.Hash) (SigningContext, error) {
	return f.ctx, f.err
}

func TestValidatorStateRuntimeAPI_ValidatorsIsDeterministicallyOrdered(t *testing.T) {
	require := require.New(t)

	subnetID := ids.GenerateTestID()
	nodeA, nodeB := ids.GenerateTestNodeID(), ids.GenerateTestNodeID()
	state := &fakeValidatorState{
		subnetID: subnetID,
		out: map[ids.NodeID]*validators.GetValidatorOutput{
			nodeA: {NodeID: nodeA, PublicKey: []byte("pubkey-a")},
			nodeB: {NodeID: nodeB, PublicKey: []byte("pubkey-b")},
		},
	}
	api := NewValidatorStateRuntimeAPI(state, subnetID, &fakeSessionSource{})

	first, err := api.Validators(context.Background(), ids.GenerateTestID())
	require.NoError(err)
	second, err := api.Validators(context.Background(), ids.GenerateTestID())
	require.NoError(err)

	require.Equal(first, second)
	require.Len(first, 2)
	require.ElementsMatch(first, []statement.ValidatorID{
		statement.ValidatorID("pubkey-a"),
		statement.ValidatorID("pubkey-b"),
	})
}

func TestValidatorStateRuntimeAPI_ValidatorsWrapsStateError(t *testing.T) {
	require := require.New(t)

	subnetID := ids.GenerateTestID()
	wantErr := errors.New("validator set unavailable")
	api := NewValidatorStateRuntimeAPI(&fakeValidatorState{subnetID: subnetID, err: wantErr}, subnetID, &fakeSessionSource{})

	_, err := api.Validators(context.Background(), ids.GenerateTestID())
	require.ErrorIs(err, wantErr)
}

func TestValidatorStateRuntimeAPI_SigningContextDelegates(t *testing.T) {
	require := require.New(t)

	subnetID := ids.GenerateTestID()
	relayParent := ids.GenerateTestID()
	want := SigningContext{SessionIndex: 42, ParentHash: relayParent}
	api := NewValidatorStateRuntimeAPI(&fakeValidatorState{subnetID: subnetID}, subnetID, &fakeSessionSource{ctx: want})

	got, err := api.SigningContext(context.Background(), relayParent)
	require.NoError(err)
	require.Equal(want, got)
}
