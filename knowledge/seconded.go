// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package knowledge implements the per-peer-per-parent knowledge tracking
// state machine: the equivocation tracker (C1), the per-peer-per-relay-parent
// knowledge set (C2), and the per-peer dispatcher over it (C3).
package knowledge

import (
	"github.com/luxfi/log"

	"github.com/luxfi/stmtdist/statement"
)

// VCThreshold is the maximum number of Candidate (Seconded) statements a
// single validator may emit at one relay parent.
const VCThreshold = 2

// SecondedTracker is a pair of bounded lists of candidate hashes: what we
// have told a peer about (local) and what a peer has told us about
// (remote), for a single validator at a single relay parent. Capacity is
// fixed at VCThreshold and never heap-allocates per update.
type SecondedTracker struct {
	local     [VCThreshold]statement.Hash
	localLen  int
	remote    [VCThreshold]statement.Hash
	remoteLen int
}

func indexOf(list [VCThreshold]statement.Hash, n int, h statement.Hash) bool {
	for i := 0; i < n; i++ {
		if list[i] == h {
			return true
		}
	}
	return false
}

// NoteLocal records that we observed ourselves announcing h. If h is
// already present it is a silent no-op. If capacity is exhausted, this
// indicates a bug on our side (we tried to distribute a third candidate for
// one validator) rather than peer misbehavior, so it is logged and
// otherwise ignored -- it is never reported upward as a reputation fault.
func (t *SecondedTracker) NoteLocal(l log.Logger, h statement.Hash) {
	if indexOf(t.local, t.localLen, h) {
		return
	}
	if t.localLen < VCThreshold {
		t.local[t.localLen] = h
		t.localLen++
		return
	}
	l.Warn("erroneously attempting to distribute more than the allowed candidates for a validator",
		"threshold", VCThreshold,
		"candidateHash", h,
	)
}

// NoteRemote records that a peer told us about h. Returns false if the peer
// has exceeded its equivocation budget (h is new and no capacity remains).
func (t *SecondedTracker) NoteRemote(h statement.Hash) bool {
	if indexOf(t.remote, t.remoteLen, h) {
		return true
	}
	if t.remoteLen < VCThreshold {
		t.remote[t.remoteLen] = h
		t.remoteLen++
		return true
	}
	return false
}
