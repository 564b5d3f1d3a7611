// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"github.com/holiman/uint256"

	"github.com/vechain/rewardpool/builtin/rewardpool"
	"github.com/vechain/rewardpool/thor"
)

// Event is a pool event as stored in db.
type Event struct {
	Seq     uint64
	Kind    rewardpool.EventKind
	Pool    thor.Address
	Account thor.Address
	Amount  *uint256.Int
	Time    uint64
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is an inclusive time range. To is ignored when less than From.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// EventCriteria matches events by all of its non-nil fields.
type EventCriteria struct {
	Kind    *rewardpool.EventKind
	Pool    *thor.Address
	Account *thor.Address
}

// EventFilter selects events matching any of CriteriaSet within Range.
type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}
