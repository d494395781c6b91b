// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package head

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/stmtdist/statement"
)

func signed(kind statement.Kind, h statement.Hash, v statement.ValidatorIndex, sig string) statement.SignedFullStatement {
	return statement.SignedFullStatement{
		Compact:   statement.CompactStatement{Kind: kind, CandidateHash: h},
		Validator: v,
		Signature: statement.ValidatorSignature(sig),
	}
}

func TestNoteStatement_TwoSecondedCap(t *testing.T) {
	// S1 -- two-seconded cap.
	require := require.New(t)
	a := NewActiveHeadData([]statement.ValidatorID{{0x0A}, {0x0B}, {0x0C}}, 1, 2)

	hX := ids.GenerateTestID()
	hY := ids.GenerateTestID()
	hZ := ids.GenerateTestID()

	result, stored := a.NoteStatement(signed(statement.KindCandidate, hX, 0, "sigX"))
	require.Equal(Fresh, result)
	require.NotNil(stored)

	result, _ = a.NoteStatement(signed(statement.KindCandidate, hY, 0, "sigY"))
	require.Equal(Fresh, result)

	result, stored = a.NoteStatement(signed(statement.KindCandidate, hZ, 0, "sigZ"))
	require.Equal(NotUseful, result)
	require.Nil(stored)

	require.True(a.Candidates(hX))
	require.True(a.Candidates(hY))
	require.False(a.Candidates(hZ))
}

func TestNoteStatement_Idempotent(t *testing.T) {
	require := require.New(t)
	a := NewActiveHeadData([]statement.ValidatorID{{0x0A}}, 1, 2)
	hX := ids.GenerateTestID()

	stmt := signed(statement.KindCandidate, hX, 0, "sig")
	result, first := a.NoteStatement(stmt)
	require.Equal(Fresh, result)

	result, second := a.NoteStatement(stmt)
	require.Equal(UsefulButKnown, result)
	require.Same(first, second)
}

func TestNoteStatement_Equivocation_BothRetained(t *testing.T) {
	require := require.New(t)
	a := NewActiveHeadData([]statement.ValidatorID{{0x0A}}, 1, 2)
	hX := ids.GenerateTestID()

	result1, _ := a.NoteStatement(signed(statement.KindCandidate, hX, 0, "sigA"))
	require.Equal(Fresh, result1)

	// Same compact payload, same validator, different signature: a
	// distinct StoredStatementKey, stored as equivocation evidence.
	result2, _ := a.NoteStatement(signed(statement.KindCandidate, hX, 0, "sigB"))
	require.Equal(Fresh, result2, "a second signature of the same payload is retained under its own key")
}

func TestNoteStatement_ValidRequiresKnownCandidate(t *testing.T) {
	require := require.New(t)
	a := NewActiveHeadData([]statement.ValidatorID{{0x0A}}, 1, 2)
	hX := ids.GenerateTestID()

	result, stored := a.NoteStatement(signed(statement.KindValid, hX, 0, "sig"))
	require.Equal(NotUseful, result)
	require.Nil(stored)

	a.NoteStatement(signed(statement.KindCandidate, hX, 0, "sigCandidate"))
	result, stored = a.NoteStatement(signed(statement.KindValid, hX, 0, "sigValid"))
	require.Equal(Fresh, result)
	require.NotNil(stored)
}

func TestStatements_SecondedFirst(t *testing.T) {
	require := require.New(t)
	a := NewActiveHeadData([]statement.ValidatorID{{0x0A}}, 1, 2)
	hX := ids.GenerateTestID()

	a.NoteStatement(signed(statement.KindCandidate, hX, 0, "sigCandidate"))
	a.NoteStatement(signed(statement.KindValid, hX, 0, "sigValid"))

	var kinds []statement.Kind
	a.Statements(func(s *statement.StoredStatement) bool {
		kinds = append(kinds, s.Statement.Compact.Kind)
		return true
	})

	require.Equal([]statement.Kind{statement.KindCandidate, statement.KindValid}, kinds)
}
