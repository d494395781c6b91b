// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package statement defines the data model shared by the knowledge, head,
// gossip, and ingress packages: compact statements, their signed full form,
// the fingerprint used for deduplication, and the storage key that
// distinguishes equivocations.
package statement

import (
	"fmt"

	"github.com/luxfi/ids"
)

// Hash is an opaque 32-byte content identifier: a candidate hash or a
// relay-parent hash depending on context.
type Hash = ids.ID

// NodeID identifies a peer on the network.
type NodeID = ids.NodeID

// ValidatorIndex identifies a validator within the validator set active at
// a given relay parent.
type ValidatorIndex uint32

// ValidatorID is a validator's opaque public key, verified against a
// SigningContext by network/sigverify.
type ValidatorID []byte

// ValidatorSignature is a validator's opaque signature over a CompactStatement
// under a SigningContext.
type ValidatorSignature []byte

// Kind distinguishes the three CompactStatement variants.
type Kind uint8

const (
	// KindCandidate announces a new candidate (Seconded in the original protocol).
	KindCandidate Kind = iota
	// KindValid attests a previously-announced candidate is valid.
	KindValid
	// KindInvalid attests a previously-announced candidate is invalid.
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindCandidate:
		return "Candidate"
	case KindValid:
		return "Valid"
	case KindInvalid:
		return "Invalid"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// CompactStatement is a tagged variant over a candidate hash: Candidate,
// Valid, or Invalid.
type CompactStatement struct {
	Kind          Kind
	CandidateHash Hash
}

// Candidate returns a CompactStatement announcing h.
func Candidate(h Hash) CompactStatement { return CompactStatement{Kind: KindCandidate, CandidateHash: h} }

// Valid returns a CompactStatement attesting h is valid.
func Valid(h Hash) CompactStatement { return CompactStatement{Kind: KindValid, CandidateHash: h} }

// Invalid returns a CompactStatement attesting h is invalid.
func Invalid(h Hash) CompactStatement { return CompactStatement{Kind: KindInvalid, CandidateHash: h} }

// Fingerprint is the protocol-level identity of a statement message: its
// compact payload paired with the signing validator's index. It is used for
// deduplication and does not distinguish equivocations (see StoredStatementKey).
type Fingerprint struct {
	Compact        CompactStatement
	ValidatorIndex ValidatorIndex
}

// SignedFullStatement is a payload convertible to a CompactStatement, plus
// the signing validator's index and signature.
type SignedFullStatement struct {
	Compact   CompactStatement
	Validator ValidatorIndex
	Signature ValidatorSignature
}

// CandidateHash returns the candidate hash referenced by the statement,
// regardless of variant.
func (s SignedFullStatement) CandidateHash() Hash {
	return s.Compact.CandidateHash
}

// Fingerprint returns the statement's deduplication identity.
func (s SignedFullStatement) Fingerprint() Fingerprint {
	return Fingerprint{Compact: s.Compact, ValidatorIndex: s.Validator}
}

// StoredStatementKey uniquely identifies a stored statement. Two different
// signatures of the same compact payload by the same validator are distinct
// keys -- this is what lets the store retain equivocations as evidence
// rather than collapsing them.
type StoredStatementKey struct {
	Compact        CompactStatement
	ValidatorIndex ValidatorIndex
	Signature      string // string(ValidatorSignature): comparable map key
}

// Key returns the StoredStatementKey for s.
func (s SignedFullStatement) Key() StoredStatementKey {
	return StoredStatementKey{
		Compact:        s.Compact,
		ValidatorIndex: s.Validator,
		Signature:      string(s.Signature),
	}
}

// StoredStatement is a SignedFullStatement owned by exactly one
// ActiveHeadData, immutable once stored.
type StoredStatement struct {
	Statement SignedFullStatement
}

// View is an ordered set of relay-parent hashes a peer (or we) currently
// care about.
type View struct {
	parents []Hash
}

// NewView returns a View over the given relay parents, in order, with
// duplicates removed (keeping the first occurrence).
func NewView(parents ...Hash) View {
	v := View{parents: make([]Hash, 0, len(parents))}
	seen := make(map[Hash]struct{}, len(parents))
	for _, p := range parents {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		v.parents = append(v.parents, p)
	}
	return v
}

// Contains reports whether h is in the view.
func (v View) Contains(h Hash) bool {
	for _, p := range v.parents {
		if p == h {
			return true
		}
	}
	return false
}

// Parents returns the view's relay parents in order. The returned slice
// must not be mutated.
func (v View) Parents() []Hash {
	return v.parents
}

// Len returns the number of relay parents in the view.
func (v View) Len() int {
	return len(v.parents)
}

// Added returns the relay parents present in next but not in v.
func (v View) Added(next View) []Hash {
	var added []Hash
	for _, p := range next.parents {
		if !v.Contains(p) {
			added = append(added, p)
		}
	}
	return added
}

// Removed returns the relay parents present in v but not in next.
func (v View) Removed(next View) []Hash {
	return next.Added(v)
}
