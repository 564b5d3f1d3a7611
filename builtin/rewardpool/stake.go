// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewardpool

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/thor"
)

// Stake pulls amount of the staking asset from caller and credits it to caller's balance.
// The caller must have approved the pool to spend amount.
func (p *Pool) Stake(caller thor.Address, amount *uint256.Int, now uint64) error {
	logger.Debug("staking", "pool", p.addr, "caller", caller, "amount", amount, "now", now)

	return p.execute("stake", func() error {
		if amount == nil || amount.IsZero() {
			return ErrInvalidAmount
		}
		if err := p.updateReward(&caller, now); err != nil {
			return err
		}

		acc, err := p.storage.getAccount(caller)
		if err != nil {
			return err
		}
		if _, overflow := acc.Balance.AddOverflow(acc.Balance, amount); overflow {
			return ErrOverflow
		}
		if err := p.storage.setAccount(caller, acc); err != nil {
			return err
		}
		if err := p.storage.addTotalSupply(amount); err != nil {
			return err
		}

		ok, err := p.staking.TransferFrom(p.addr, caller, p.addr, amount)
		if err != nil {
			return errors.Wrap(err, "failed to pull stake")
		}
		if !ok {
			return ErrTransferFailed
		}

		p.emit(EventStaked, caller, amount, now)
		return nil
	})
}

// Withdraw debits amount from caller's balance and sends it back to caller.
func (p *Pool) Withdraw(caller thor.Address, amount *uint256.Int, now uint64) error {
	logger.Debug("withdrawing", "pool", p.addr, "caller", caller, "amount", amount, "now", now)

	return p.execute("withdraw", func() error {
		return p.withdraw(caller, amount, now)
	})
}

func (p *Pool) withdraw(caller thor.Address, amount *uint256.Int, now uint64) error {
	if amount == nil || amount.IsZero() {
		return ErrInvalidAmount
	}
	if err := p.updateReward(&caller, now); err != nil {
		return err
	}

	acc, err := p.storage.getAccount(caller)
	if err != nil {
		return err
	}
	if acc.Balance.Lt(amount) {
		return ErrInsufficientBalance
	}
	acc.Balance.Sub(acc.Balance, amount)
	if err := p.storage.setAccount(caller, acc); err != nil {
		return err
	}
	if err := p.storage.subTotalSupply(amount); err != nil {
		return err
	}

	ok, err := p.staking.Transfer(p.addr, caller, amount)
	if err != nil {
		return errors.Wrap(err, "failed to return stake")
	}
	if !ok {
		return ErrTransferFailed
	}

	p.emit(EventWithdrawn, caller, amount, now)
	return nil
}

// GetReward pays out everything caller has earned so far. It does nothing when
// there is nothing to pay.
func (p *Pool) GetReward(caller thor.Address, now uint64) error {
	logger.Debug("claiming reward", "pool", p.addr, "caller", caller, "now", now)

	return p.execute("get_reward", func() error {
		return p.getReward(caller, now)
	})
}

func (p *Pool) getReward(caller thor.Address, now uint64) error {
	if err := p.updateReward(&caller, now); err != nil {
		return err
	}

	acc, err := p.storage.getAccount(caller)
	if err != nil {
		return err
	}
	if acc.Rewards.IsZero() {
		return nil
	}
	reward := acc.Rewards
	acc.Rewards = new(uint256.Int)
	if err := p.storage.setAccount(caller, acc); err != nil {
		return err
	}

	ok, err := p.rewards.Transfer(p.addr, caller, reward)
	if err != nil {
		return errors.Wrap(err, "failed to pay reward")
	}
	if !ok {
		return ErrTransferFailed
	}

	metricRewardsPaid().Add(1)
	p.emit(EventRewardPaid, caller, reward, now)
	return nil
}

// Exit withdraws the whole balance of caller and claims its rewards.
func (p *Pool) Exit(caller thor.Address, now uint64) error {
	logger.Debug("exiting", "pool", p.addr, "caller", caller, "now", now)

	return p.execute("exit", func() error {
		acc, err := p.storage.getAccount(caller)
		if err != nil {
			return err
		}
		if err := p.withdraw(caller, acc.Balance, now); err != nil {
			return err
		}
		return p.getReward(caller, now)
	})
}
