// Copyright 2025 The Chainmux Authors
// This file is part of Chainmux.
//
// Chainmux is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Chainmux is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Chainmux. If not, see <http://www.gnu.org/licenses/>.

package types

import (
	"github.com/holiman/uint256"
	libcommon "github.com/ledgerwatch/erigon-lib/common"
)

// Header is the subset of a block header this layer needs to carry. Validation
// and state-root computation happen in the execution backend; here headers are
// an opaque payload.
type Header struct {
	ParentHash libcommon.Hash
	Number     uint64
	Time       uint64
	Difficulty *uint256.Int
}

// Body carries block transactions in their encoded form. This layer never
// decodes them.
type Body struct {
	Transactions [][]byte
}

type Block struct {
	Header *Header
	Body   *Body
}

// NumberU64 returns the block height, 0 for a block without a header.
func (b *Block) NumberU64() uint64 {
	if b == nil || b.Header == nil {
		return 0
	}
	return b.Header.Number
}

// BlockWithSenders is a block whose transaction senders have already been
// recovered. Downloaders hand blocks over in this form so the execution
// backend does not repeat signature recovery.
type BlockWithSenders struct {
	Block   *Block
	Senders []libcommon.Address
}
