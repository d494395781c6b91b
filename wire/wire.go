// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package wire implements the compact binary codec for the sdn1 wire
// protocol: a single tagged message carrying a relay parent and a signed
// full statement. Encodings round-trip byte-for-byte.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/stmtdist/statement"
)

// ProtocolID is the 4-byte ASCII wire-protocol identifier registered with
// the network bridge.
const ProtocolID = "sdn1"

// tagStatement is the sole WireMessage variant tag. SCALE encodes an enum's
// variant index as a leading byte; with one variant that byte is always 0x00.
const tagStatement byte = 0x00

// hashLen is the fixed width of a Hash on the wire.
const hashLen = 32

// ErrUnknownMessage is returned by Decode when the leading tag byte does
// not match any known WireMessage variant.
var ErrUnknownMessage = errors.New("wire: unknown message tag")

// ErrShortBuffer is returned by Decode when buf is too short to contain a
// complete message for the tag it starts with.
var ErrShortBuffer = errors.New("wire: buffer too short")

// Message is the sole WireMessage variant: a statement observed at a given
// relay parent.
type Message struct {
	RelayParent statement.Hash
	Statement   statement.SignedFullStatement
}

// Encode serializes m as: 0x00 || RelayParent (32 bytes) || canonical
// SignedFullStatement encoding.
func Encode(m Message) []byte {
	stmt := encodeStatement(m.Statement)
	buf := make([]byte, 0, 1+hashLen+len(stmt))
	buf = append(buf, tagStatement)
	buf = append(buf, m.RelayParent[:]...)
	buf = append(buf, stmt...)
	return buf
}

// Decode parses buf into a Message. It returns ErrUnknownMessage for any
// tag byte other than the Statement tag, and ErrShortBuffer if buf is
// truncated.
func Decode(buf []byte) (Message, error) {
	if len(buf) < 1 {
		return Message{}, ErrShortBuffer
	}
	if buf[0] != tagStatement {
		return Message{}, fmt.Errorf("%w: tag 0x%02x", ErrUnknownMessage, buf[0])
	}
	buf = buf[1:]
	if len(buf) < hashLen {
		return Message{}, ErrShortBuffer
	}
	relayParent, err := ids.ToID(buf[:hashLen])
	if err != nil {
		return Message{}, fmt.Errorf("wire: decode relay parent: %w", err)
	}
	buf = buf[hashLen:]

	stmt, err := decodeStatement(buf)
	if err != nil {
		return Message{}, err
	}

	return Message{RelayParent: relayParent, Statement: stmt}, nil
}

// encodeStatement is the platform's canonical encoding of a
// SignedFullStatement: Kind (1 byte) || CandidateHash (32 bytes) ||
// ValidatorIndex (4 bytes, big endian) || len(Signature) (4 bytes, big
// endian) || Signature.
func encodeStatement(s statement.SignedFullStatement) []byte {
	buf := make([]byte, 0, 1+hashLen+4+4+len(s.Signature))
	buf = append(buf, byte(s.Compact.Kind))
	buf = append(buf, s.Compact.CandidateHash[:]...)

	var idxBuf [4]byte
	binary.BigEndian.PutUint32(idxBuf[:], uint32(s.Validator))
	buf = append(buf, idxBuf[:]...)

	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(s.Signature)))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, s.Signature...)
	return buf
}

func decodeStatement(buf []byte) (statement.SignedFullStatement, error) {
	const headerLen = 1 + 4 + 4
	if len(buf) < hashLen+headerLen {
		return statement.SignedFullStatement{}, ErrShortBuffer
	}

	kind := statement.Kind(buf[0])
	if kind > statement.KindInvalid {
		return statement.SignedFullStatement{}, fmt.Errorf("%w: statement kind 0x%02x", ErrUnknownMessage, buf[0])
	}
	buf = buf[1:]

	candidateHash, err := ids.ToID(buf[:hashLen])
	if err != nil {
		return statement.SignedFullStatement{}, fmt.Errorf("wire: decode candidate hash: %w", err)
	}
	buf = buf[hashLen:]

	validator := statement.ValidatorIndex(binary.BigEndian.Uint32(buf[:4]))
	buf = buf[4:]

	sigLen := binary.BigEndian.Uint32(buf[:4])
	buf = buf[4:]
	if uint32(len(buf)) < sigLen {
		return statement.SignedFullStatement{}, ErrShortBuffer
	}
	sig := make(statement.ValidatorSignature, sigLen)
	copy(sig, buf[:sigLen])

	return statement.SignedFullStatement{
		Compact:   statement.CompactStatement{Kind: kind, CandidateHash: candidateHash},
		Validator: validator,
		Signature: sig,
	}, nil
}
