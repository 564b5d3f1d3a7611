// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewardpool

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/vechain/rewardpool/thor"
)

// EventKind identifies what happened in the pool.
type EventKind uint8

const (
	EventStaked EventKind = iota + 1
	EventWithdrawn
	EventRewardPaid
	EventRewardAdded
	EventRewardsDurationUpdated
)

var eventKindNames = map[EventKind]string{
	EventStaked:                 "Staked",
	EventWithdrawn:              "Withdrawn",
	EventRewardPaid:             "RewardPaid",
	EventRewardAdded:            "RewardAdded",
	EventRewardsDurationUpdated: "RewardsDurationUpdated",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// ParseEventKind is the inverse of EventKind.String.
func ParseEventKind(name string) (EventKind, error) {
	for k, n := range eventKindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", name)
}

// Event is emitted by a successful pool operation.
// For RewardsDurationUpdated, Amount carries the new duration in seconds.
type Event struct {
	Kind    EventKind
	Pool    thor.Address
	Account thor.Address
	Amount  *uint256.Int
	Time    uint64
}

// EventSink receives the events of every successful top level operation, in emission order.
type EventSink interface {
	Write(events []*Event) error
}

func (p *Pool) emit(kind EventKind, account thor.Address, amount *uint256.Int, now uint64) {
	p.pending = append(p.pending, &Event{
		Kind:    kind,
		Pool:    p.addr,
		Account: account,
		Amount:  new(uint256.Int).Set(amount),
		Time:    now,
	})
}

func (p *Pool) flush() {
	events := p.pending
	p.pending = nil
	if p.sink == nil || len(events) == 0 {
		return
	}
	if err := p.sink.Write(events); err != nil {
		logger.Warn("failed to write events", "count", len(events), "error", err)
	}
}
