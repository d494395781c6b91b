// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sigverify

import (
	"testing"

	"github.com/luxfi/crypto/bls"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/stmtdist/network"
	"github.com/luxfi/stmtdist/statement"
)

func TestSigningPayload_DeterministicAndContextBound(t *testing.T) {
	require := require.New(t)
	candidateHash := ids.GenerateTestID()
	compact := statement.Candidate(candidateHash)

	ctxA := network.SigningContext{SessionIndex: 3, ParentHash: ids.GenerateTestID()}
	ctxB := network.SigningContext{SessionIndex: 4, ParentHash: ctxA.ParentHash}

	a1 := SigningPayload(ctxA, compact)
	a2 := SigningPayload(ctxA, compact)
	require.Equal(a1, a2, "same context and statement must produce identical payloads")

	b := SigningPayload(ctxB, compact)
	require.NotEqual(a1, b, "differing session index must change the payload")
}

func TestSigningPayload_VariesByCompactStatement(t *testing.T) {
	require := require.New(t)
	ctx := network.SigningContext{SessionIndex: 1, ParentHash: ids.GenerateTestID()}
	h := ids.GenerateTestID()

	candidatePayload := SigningPayload(ctx, statement.Candidate(h))
	validPayload := SigningPayload(ctx, statement.Valid(h))
	require.NotEqual(candidatePayload, validPayload, "Kind byte must distinguish Candidate from Valid")
}

func TestVerify_AcceptsGenuineSignatureAndRejectsTampering(t *testing.T) {
	require := require.New(t)
	sk, err := bls.NewSecretKey()
	require.NoError(err)
	validator := statement.ValidatorID(bls.PublicKeyToCompressedBytes(sk.PublicKey()))

	ctx := network.SigningContext{SessionIndex: 5, ParentHash: ids.GenerateTestID()}
	compact := statement.Candidate(ids.GenerateTestID())

	payload := SigningPayload(ctx, compact)
	sig := statement.ValidatorSignature(bls.SignatureToBytes(sk.Sign(payload)))

	ok, err := Verify(ctx, validator, compact, sig)
	require.NoError(err)
	require.True(ok)

	otherCompact := statement.Valid(compact.CandidateHash)
	ok, err = Verify(ctx, validator, otherCompact, sig)
	require.NoError(err)
	require.False(ok, "signature over a different statement must not verify")
}

func TestVerify_RejectsMalformedKeyMaterial(t *testing.T) {
	require := require.New(t)
	ctx := network.SigningContext{SessionIndex: 1, ParentHash: ids.GenerateTestID()}
	compact := statement.Candidate(ids.GenerateTestID())

	_, err := Verify(ctx, statement.ValidatorID("too-short"), compact, statement.ValidatorSignature("also-too-short"))
	require.Error(err)
}
