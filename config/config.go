// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the subsystem's tunables. There is no CLI, no
// config file, and no environment variable surface -- spec §6 is explicit
// that the embedding node constructs Parameters and passes it in directly.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors.
var (
	ErrVCThresholdTooLow    = errors.New("vc threshold must be >= 1")
	ErrFloodMultiplierTooLow = errors.New("flood multiplier must be >= 1")
	ErrProposeTimeoutTooLow = errors.New("propose timeout must be positive")
	ErrProtocolIDEmpty      = errors.New("protocol id must not be empty")
)

// Parameters holds the subsystem's tunables.
type Parameters struct {
	// VCThreshold is the maximum number of Candidate statements a single
	// validator may emit at one relay parent, enforced by
	// head.ActiveHeadData.NoteStatement. The per-peer equivocation tracker
	// (knowledge.SecondedTracker) enforces its own fixed knowledge.VCThreshold
	// constant independently: its bounded-array storage is sized at compile
	// time for zero-allocation updates, so it cannot take this value at
	// runtime. Both default to 2.
	VCThreshold int

	// FloodMultiplier scales the validator-set size into the per-candidate
	// received-message bound: max = FloodMultiplier * len(validators).
	FloodMultiplier int

	// ProposeTimeout is the hard wall-clock bound C8 races block proposal
	// against.
	ProposeTimeout time.Duration

	// ProtocolID is the wire-protocol identifier registered with the
	// network bridge.
	ProtocolID string

	// ReputationDeltas are the fixed scalar reputation costs/benefits
	// applied by the ingress handler.
	Reputation ReputationDeltas
}

// ReputationDeltas are the fixed reputation deltas from spec §4.6.
type ReputationDeltas struct {
	UnexpectedStatement int32
	InvalidSignature    int32
	InvalidMessage      int32
	DuplicateStatement  int32
	ApparentFlood       int32
	ValidStatement      int32
	ValidStatementFirst int32
}

// DefaultParameters returns the spec-mandated defaults.
func DefaultParameters() Parameters {
	return Parameters{
		VCThreshold:     2,
		FloodMultiplier: 2,
		ProposeTimeout:  2 * time.Second,
		ProtocolID:      "sdn1",
		Reputation: ReputationDeltas{
			UnexpectedStatement: -100,
			InvalidSignature:    -500,
			InvalidMessage:      -500,
			DuplicateStatement:  -250,
			ApparentFlood:       -1000,
			ValidStatement:      5,
			ValidStatementFirst: 25,
		},
	}
}

// Validate reports the first out-of-range parameter found, wrapped with the
// offending value.
func (p Parameters) Validate() error {
	if p.VCThreshold < 1 {
		return fmt.Errorf("%w: got %d", ErrVCThresholdTooLow, p.VCThreshold)
	}
	if p.FloodMultiplier < 1 {
		return fmt.Errorf("%w: got %d", ErrFloodMultiplierTooLow, p.FloodMultiplier)
	}
	if p.ProposeTimeout <= 0 {
		return fmt.Errorf("%w: got %s", ErrProposeTimeoutTooLow, p.ProposeTimeout)
	}
	if p.ProtocolID == "" {
		return ErrProtocolIDEmpty
	}
	return nil
}
