// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rewardpool implements a single-pool staking ledger that releases a funded
// reward linearly over a fixed duration, shared pro rata among stakers.
package rewardpool

import (
	"time"

	"github.com/holiman/uint256"

	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var logger = log.WithContext("pkg", "rewardpool")

func SetLogger(l log.Logger) {
	logger = l
}

// Transferrer moves a fungible asset between accounts.
// A false result without error means the transfer was refused.
type Transferrer interface {
	TransferFrom(spender, from, to thor.Address, amount *uint256.Int) (bool, error)
	Transfer(from, to thor.Address, amount *uint256.Int) (bool, error)
	BalanceOf(addr thor.Address) (*uint256.Int, error)
}

// Pool implements the reward pool contract stored under addr.
// Every mutating operation takes the current time and either applies all its
// writes or none of them. A Pool is not safe for concurrent use.
type Pool struct {
	addr    thor.Address
	state   *state.State
	storage *storage
	staking Transferrer
	rewards Transferrer

	sink    EventSink
	pending []*Event
	depth   int
}

// New create a new instance.
func New(addr thor.Address, state *state.State, staking, rewards Transferrer) *Pool {
	sctx := solidity.NewContext(addr, state)

	// debug override for testing
	duration := solidity.NewConfigVariable("rewards-duration", thor.RewardsDuration())
	duration.Override(sctx)

	return &Pool{
		addr:    addr,
		state:   state,
		storage: newStorage(sctx, duration.Get()),
		staking: staking,
		rewards: rewards,
	}
}

// SetEventSink sets where events of successful operations are delivered.
func (p *Pool) SetEventSink(sink EventSink) {
	p.sink = sink
}

func (p *Pool) Address() thor.Address {
	return p.addr
}

// execute runs fn inside a state checkpoint. On error every write made by fn,
// including writes of the transferrers sharing the state, is reverted and the
// events it emitted are discarded.
func (p *Pool) execute(op string, fn func() error) error {
	start := time.Now()
	rev := p.state.NewCheckpoint()
	mark := len(p.pending)

	p.depth++
	err := fn()
	p.depth--

	metricOpDuration().Observe(time.Since(start).Microseconds())
	if err != nil {
		p.state.RevertTo(rev)
		p.pending = p.pending[:mark]
		metricOpsCount().AddWithLabel(1, map[string]string{"op": op, "status": "failed"})
		logger.Info(op+" failed", "pool", p.addr, "error", err)
		return err
	}
	metricOpsCount().AddWithLabel(1, map[string]string{"op": op, "status": "success"})

	// nested calls made from within a transfer are flushed with the outer operation
	if p.depth == 0 {
		p.flush()
	}
	return nil
}

// updateReward brings the accumulator forward to now and, when user is given,
// settles the rewards of user against it.
func (p *Pool) updateReward(user *thor.Address, now uint64) error {
	sched, err := p.storage.getSchedule()
	if err != nil {
		return err
	}
	total, err := p.storage.getTotalSupply()
	if err != nil {
		return err
	}
	rpt, err := sched.rewardPerToken(total, now)
	if err != nil {
		return err
	}
	sched.RewardPerTokenStored = rpt
	if applicable := sched.lastTimeRewardApplicable(now); applicable > sched.UpdatedAt {
		sched.UpdatedAt = applicable
	}
	if err := p.storage.setSchedule(sched); err != nil {
		return err
	}

	if user == nil {
		return nil
	}
	acc, err := p.storage.getAccount(*user)
	if err != nil {
		return err
	}
	earned, err := acc.earned(rpt)
	if err != nil {
		return err
	}
	acc.Rewards = earned
	acc.RewardPerTokenPaid = rpt
	return p.storage.setAccount(*user, acc)
}

//
// Owner
//

// Initialize assigns the owner of a freshly deployed pool and records its duration.
func (p *Pool) Initialize(owner thor.Address) error {
	logger.Debug("initializing pool", "pool", p.addr, "owner", owner)

	return p.execute("initialize", func() error {
		if owner.IsZero() {
			return ErrZeroOwner
		}
		current, err := p.storage.getOwner()
		if err != nil {
			return err
		}
		if !current.IsZero() {
			return ErrAlreadyInitialized
		}
		p.storage.owner.Set(&owner)

		sched, err := p.storage.getSchedule()
		if err != nil {
			return err
		}
		return p.storage.setSchedule(sched)
	})
}

// IsOwner reports whether addr may fund the pool and change its duration.
func (p *Pool) IsOwner(addr thor.Address) (bool, error) {
	owner, err := p.storage.getOwner()
	if err != nil {
		return false, err
	}
	return isOwner(owner, addr), nil
}

func isOwner(owner, addr thor.Address) bool {
	return !owner.IsZero() && owner == addr
}

func (p *Pool) checkOwner(caller thor.Address) error {
	ok, err := p.IsOwner(caller)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnauthorized
	}
	return nil
}

func (p *Pool) Owner() (thor.Address, error) {
	return p.storage.getOwner()
}
