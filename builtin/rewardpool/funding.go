// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewardpool

import (
	"math"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/thor"
)

// SetRewardsDuration changes the length of the next reward period.
// It is only allowed to the owner while no period is active. Zero is accepted
// here, funding then fails until a non-zero duration is set.
func (p *Pool) SetRewardsDuration(caller thor.Address, duration uint64, now uint64) error {
	logger.Debug("setting rewards duration", "pool", p.addr, "caller", caller, "duration", duration, "now", now)

	return p.execute("set_duration", func() error {
		if err := p.checkOwner(caller); err != nil {
			return err
		}
		sched, err := p.storage.getSchedule()
		if err != nil {
			return err
		}
		if sched.isActive(now) {
			return ErrPeriodActive
		}
		sched.Duration = duration
		if err := p.storage.setSchedule(sched); err != nil {
			return err
		}

		p.emit(EventRewardsDurationUpdated, caller, uint256.NewInt(duration), now)
		logger.Info("rewards duration updated", "pool", p.addr, "duration", duration)
		return nil
	})
}

// NotifyRewardAmount starts a new reward period of the current duration releasing amount,
// plus whatever an active period had left to release. The pool must already hold the
// reward asset backing the whole period.
func (p *Pool) NotifyRewardAmount(caller thor.Address, amount *uint256.Int, now uint64) error {
	logger.Debug("notifying reward amount", "pool", p.addr, "caller", caller, "amount", amount, "now", now)

	return p.execute("notify_reward_amount", func() error {
		if err := p.checkOwner(caller); err != nil {
			return err
		}
		if amount == nil {
			amount = new(uint256.Int)
		}
		if err := p.updateReward(nil, now); err != nil {
			return err
		}

		sched, err := p.storage.getSchedule()
		if err != nil {
			return err
		}
		if sched.Duration > math.MaxUint64-now {
			return ErrOverflow
		}
		rate, err := sched.nextRate(amount, now)
		if err != nil {
			return err
		}
		sched.RewardRate = rate

		promised, err := sched.rewardForDuration()
		if err != nil {
			return err
		}
		balance, err := p.rewards.BalanceOf(p.addr)
		if err != nil {
			return errors.Wrap(err, "failed to get reward balance")
		}
		if promised.Gt(balance) {
			return ErrInsufficientFunding
		}

		sched.PeriodFinish = now + sched.Duration
		sched.UpdatedAt = now
		if err := p.storage.setSchedule(sched); err != nil {
			return err
		}

		metricFundingsCount().Add(1)
		p.emit(EventRewardAdded, caller, amount, now)
		logger.Info("reward added", "pool", p.addr, "amount", amount, "rate", rate, "finish", sched.PeriodFinish)
		return nil
	})
}
