// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package knowledge

import (
	"github.com/luxfi/log"

	"github.com/luxfi/stmtdist/set"
	"github.com/luxfi/stmtdist/statement"
)

// ReceiveFault classifies why Receive rejected a fingerprint. These are not
// Go errors: they are peer-attributable faults that the caller converts
// into a reputation delta, matching the original's Result<_, Rep>.
type ReceiveFault int

const (
	// FaultNone indicates Receive succeeded; the zero value is never
	// returned alongside an error condition.
	FaultNone ReceiveFault = iota
	// FaultDuplicate indicates the fingerprint was already received from
	// this peer at this relay parent.
	FaultDuplicate
	// FaultUnexpected indicates either the validator exceeded its
	// equivocation budget, or Valid/Invalid referenced an unknown candidate.
	FaultUnexpected
	// FaultApparentFlood indicates the peer exceeded the per-candidate
	// message bound.
	FaultApparentFlood
)

func (f ReceiveFault) String() string {
	switch f {
	case FaultNone:
		return "none"
	case FaultDuplicate:
		return "duplicate"
	case FaultUnexpected:
		return "unexpected"
	case FaultApparentFlood:
		return "apparent_flood"
	default:
		return "unknown"
	}
}

// PeerRelayParentKnowledge tracks which candidates and which statement
// fingerprints a single peer has sent us, or been sent by us, at a single
// relay parent.
type PeerRelayParentKnowledge struct {
	knownCandidates       set.Set[statement.Hash]
	sentStatements        set.Set[statement.Fingerprint]
	receivedStatements    set.Set[statement.Fingerprint]
	secondedCounts        map[statement.ValidatorIndex]*SecondedTracker
	receivedMessageCount  map[statement.Hash]int
}

// NewPeerRelayParentKnowledge returns an empty knowledge set.
func NewPeerRelayParentKnowledge() *PeerRelayParentKnowledge {
	return &PeerRelayParentKnowledge{
		knownCandidates:      set.NewSet[statement.Hash](0),
		sentStatements:       set.NewSet[statement.Fingerprint](0),
		receivedStatements:   set.NewSet[statement.Fingerprint](0),
		secondedCounts:       make(map[statement.ValidatorIndex]*SecondedTracker),
		receivedMessageCount: make(map[statement.Hash]int),
	}
}

func (k *PeerRelayParentKnowledge) trackerFor(v statement.ValidatorIndex) *SecondedTracker {
	t, ok := k.secondedCounts[v]
	if !ok {
		t = &SecondedTracker{}
		k.secondedCounts[v] = t
	}
	return t
}

// Send decides whether fingerprint may be sent to this peer. ok is false
// when the statement cannot be sent (duplicate, or dependency not yet
// known); firstTime is true the first time this peer learns of the
// statement's candidate hash via a Candidate statement.
func (k *PeerRelayParentKnowledge) Send(l log.Logger, fp statement.Fingerprint) (ok bool, firstTime bool) {
	if k.sentStatements.Contains(fp) || k.receivedStatements.Contains(fp) {
		return false, false
	}

	h := fp.Compact.CandidateHash
	switch fp.Compact.Kind {
	case statement.KindCandidate:
		k.trackerFor(fp.ValidatorIndex).NoteLocal(l, h)
		firstTime = !k.knownCandidates.Contains(h)
		k.knownCandidates.Add(h)
	default: // KindValid, KindInvalid
		if !k.knownCandidates.Contains(h) {
			return false, false
		}
		firstTime = false
	}

	k.sentStatements.Add(fp)
	return true, firstTime
}

// Receive decides whether fingerprint may be accepted from this peer.
// newCandidate is true when the candidate hash was not previously known
// (the peer just taught us about it); fault is FaultNone on success.
func (k *PeerRelayParentKnowledge) Receive(fp statement.Fingerprint, maxMessageCount int) (newCandidate bool, fault ReceiveFault) {
	if k.receivedStatements.Contains(fp) {
		return false, FaultDuplicate
	}

	h := fp.Compact.CandidateHash
	switch fp.Compact.Kind {
	case statement.KindCandidate:
		if !k.trackerFor(fp.ValidatorIndex).NoteRemote(h) {
			return false, FaultUnexpected
		}
	default: // KindValid, KindInvalid
		if !k.knownCandidates.Contains(h) {
			return false, FaultUnexpected
		}
	}

	cnt := k.receivedMessageCount[h]
	if cnt+1 >= maxMessageCount {
		return false, FaultApparentFlood
	}
	k.receivedMessageCount[h] = cnt + 1

	k.receivedStatements.Add(fp)
	newCandidate = !k.knownCandidates.Contains(h)
	k.knownCandidates.Add(h)
	return newCandidate, FaultNone
}
