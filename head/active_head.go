// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package head implements the active-head store (C4): per-relay-parent
// validator set, session index, known candidates, and accepted statements.
package head

import (
	"github.com/luxfi/stmtdist/internal/linked"
	"github.com/luxfi/stmtdist/set"
	"github.com/luxfi/stmtdist/statement"
)

// NotedResult classifies the outcome of ActiveHeadData.NoteStatement.
type NotedResult int

const (
	// NotUseful means the statement exceeds a protocol bound (equivocation
	// cap, or dependency not satisfied) and was not stored.
	NotUseful NotedResult = iota
	// UsefulButKnown means the statement was already stored under the same
	// StoredStatementKey.
	UsefulButKnown
	// Fresh means the statement was newly stored.
	Fresh
)

func (r NotedResult) String() string {
	switch r {
	case NotUseful:
		return "NotUseful"
	case UsefulButKnown:
		return "UsefulButKnown"
	case Fresh:
		return "Fresh"
	default:
		return "unknown"
	}
}

// ActiveHeadData holds everything known about one relay parent we currently
// work on.
type ActiveHeadData struct {
	Validators     []statement.ValidatorID
	SessionIndex   uint64
	vcThreshold    int
	candidates     set.Set[statement.Hash]
	seconded       *linked.Hashmap[statement.StoredStatementKey, *statement.StoredStatement]
	other          *linked.Hashmap[statement.StoredStatementKey, *statement.StoredStatement]
	secondedCounts map[statement.ValidatorIndex]int
}

// NewActiveHeadData returns an ActiveHeadData for the given validator set,
// session index, and per-validator Candidate-statement cap (config.Parameters.VCThreshold),
// with no candidates or statements yet known.
func NewActiveHeadData(validators []statement.ValidatorID, sessionIndex uint64, vcThreshold int) *ActiveHeadData {
	return &ActiveHeadData{
		Validators:     validators,
		SessionIndex:   sessionIndex,
		vcThreshold:    vcThreshold,
		candidates:     set.NewSet[statement.Hash](0),
		seconded:       linked.NewHashmap[statement.StoredStatementKey, *statement.StoredStatement](),
		other:          linked.NewHashmap[statement.StoredStatementKey, *statement.StoredStatement](),
		secondedCounts: make(map[statement.ValidatorIndex]int),
	}
}

// Candidates reports whether h has been announced at this head.
func (a *ActiveHeadData) Candidates(h statement.Hash) bool {
	return a.candidates.Contains(h)
}

// NoteStatement attempts to store stmt, enforcing the VCThreshold
// equivocation cap for Candidate statements and the known-candidate
// dependency for Valid/Invalid statements.
func (a *ActiveHeadData) NoteStatement(stmt statement.SignedFullStatement) (NotedResult, *statement.StoredStatement) {
	key := stmt.Key()

	switch stmt.Compact.Kind {
	case statement.KindCandidate:
		h := stmt.Compact.CandidateHash
		if a.secondedCounts[stmt.Validator] >= a.vcThreshold {
			return NotUseful, nil
		}
		if existing, exists := a.seconded.Get(key); exists {
			return UsefulButKnown, existing
		}
		a.secondedCounts[stmt.Validator]++
		a.candidates.Add(h)
		stored := &statement.StoredStatement{Statement: stmt}
		a.seconded.Put(key, stored)
		return Fresh, stored
	default: // KindValid, KindInvalid
		h := stmt.Compact.CandidateHash
		if !a.candidates.Contains(h) {
			return NotUseful, nil
		}
		if existing, exists := a.other.Get(key); exists {
			return UsefulButKnown, existing
		}
		stored := &statement.StoredStatement{Statement: stmt}
		a.other.Put(key, stored)
		return Fresh, stored
	}
}

// Statements yields every stored statement, seconded statements first, then
// all others. Order within a bucket is insertion order, which is stable but
// not otherwise semantically meaningful.
func (a *ActiveHeadData) Statements(f func(*statement.StoredStatement) bool) {
	cont := true
	a.seconded.Iterate(func(_ statement.StoredStatementKey, s *statement.StoredStatement) bool {
		cont = f(s)
		return cont
	})
	if !cont {
		return
	}
	a.other.Iterate(func(_ statement.StoredStatementKey, s *statement.StoredStatement) bool {
		return f(s)
	})
}

// StatementsAbout yields stored statements (seconded first) whose candidate
// hash equals h.
func (a *ActiveHeadData) StatementsAbout(h statement.Hash, f func(*statement.StoredStatement) bool) {
	cont := true
	a.Statements(func(s *statement.StoredStatement) bool {
		if s.Statement.CandidateHash() != h {
			return true
		}
		cont = f(s)
		return cont
	})
}
