// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sigverify checks a validator's signature over a CompactStatement
// under a SigningContext. Signature cryptography itself is out of this
// subsystem's scope; this package is the single call site into it.
package sigverify

import (
	"fmt"

	"github.com/luxfi/crypto/bls"
	"github.com/luxfi/warp"

	"github.com/luxfi/stmtdist/network"
	"github.com/luxfi/stmtdist/statement"
)

// SigningPayload builds the exact byte sequence a validator signs for a
// given statement under ctx, via warp.UnsignedMessage.Bytes(): the session
// index binds SourceChainID, the relay parent binds DestinationChainID, and
// the compact statement (kind byte + candidate hash) is the Payload.
func SigningPayload(ctx network.SigningContext, compact statement.CompactStatement) []byte {
	payload := make([]byte, 0, 1+32)
	payload = append(payload, byte(compact.Kind))
	payload = append(payload, compact.CandidateHash[:]...)

	msg := warp.UnsignedMessage{
		SourceChainID:      appendUint64(nil, ctx.SessionIndex),
		DestinationChainID: ctx.ParentHash[:],
		Payload:            payload,
	}
	return msg.Bytes()
}

func appendUint64(buf []byte, v uint64) []byte {
	var b [8]byte
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return append(buf, b[:]...)
}

// Verify reports whether sig is a valid signature by validator (a BLS
// public key) over stmt's compact payload under ctx.
func Verify(ctx network.SigningContext, validator statement.ValidatorID, compact statement.CompactStatement, sig statement.ValidatorSignature) (bool, error) {
	pk, err := bls.PublicKeyFromCompressedBytes(validator)
	if err != nil {
		return false, fmt.Errorf("sigverify: parse public key: %w", err)
	}
	blsSig, err := bls.SignatureFromBytes(sig)
	if err != nil {
		return false, fmt.Errorf("sigverify: parse signature: %w", err)
	}
	message := SigningPayload(ctx, compact)
	return bls.Verify(pk, blsSig, message), nil
}
