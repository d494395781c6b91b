// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"context"

	"github.com/luxfi/stmtdist/statement"
)

// InherentData is the set of inherent-data items keyed by identifier,
// merged into a proposal before block building.
type InherentData map[string][]byte

// Block is an opaque built block; block-builder internals are out of this
// subsystem's scope per spec §1.
type Block []byte

// Provisioner is the sibling subsystem that assembles inherent data for a
// proposal.
type Provisioner interface {
	// RequestInherentData issues a one-shot request for inherent data
	// rooted at parentHash. The returned channel carries exactly one reply
	// and is then closed; it is closed without a value if the provisioner
	// itself shuts down before replying.
	RequestInherentData(ctx context.Context, parentHash statement.Hash) (<-chan InherentData, error)
}

// BlockBuilder constructs a block given the (possibly augmented) inherent
// data, extra digests, and a record-proof flag.
type BlockBuilder interface {
	BuildBlock(ctx context.Context, parentHash statement.Hash, inherentData InherentData, digests [][]byte, recordProof bool) (Block, error)
}
