// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewardpool

import (
	"github.com/holiman/uint256"

	"github.com/vechain/rewardpool/thor"
)

//
// Getters - no state change
//

// TotalSupply returns the total amount staked.
func (p *Pool) TotalSupply() (*uint256.Int, error) {
	return p.storage.getTotalSupply()
}

// BalanceOf returns the amount staked by addr.
func (p *Pool) BalanceOf(addr thor.Address) (*uint256.Int, error) {
	acc, err := p.storage.getAccount(addr)
	if err != nil {
		return nil, err
	}
	return acc.Balance, nil
}

func (p *Pool) RewardRate() (*uint256.Int, error) {
	sched, err := p.storage.getSchedule()
	if err != nil {
		return nil, err
	}
	return sched.RewardRate, nil
}

func (p *Pool) PeriodFinish() (uint64, error) {
	sched, err := p.storage.getSchedule()
	if err != nil {
		return 0, err
	}
	return sched.PeriodFinish, nil
}

// UpdatedAt returns the time the accumulator was last brought forward to.
func (p *Pool) UpdatedAt() (uint64, error) {
	sched, err := p.storage.getSchedule()
	if err != nil {
		return 0, err
	}
	return sched.UpdatedAt, nil
}

func (p *Pool) Duration() (uint64, error) {
	sched, err := p.storage.getSchedule()
	if err != nil {
		return 0, err
	}
	return sched.Duration, nil
}

func (p *Pool) RewardPerTokenStored() (*uint256.Int, error) {
	sched, err := p.storage.getSchedule()
	if err != nil {
		return nil, err
	}
	return sched.RewardPerTokenStored, nil
}

func (p *Pool) UserRewardPerTokenPaid(addr thor.Address) (*uint256.Int, error) {
	acc, err := p.storage.getAccount(addr)
	if err != nil {
		return nil, err
	}
	return acc.RewardPerTokenPaid, nil
}

// Rewards returns the rewards settled for addr at its last reconciliation.
// Use Earned for the up to date amount.
func (p *Pool) Rewards(addr thor.Address) (*uint256.Int, error) {
	acc, err := p.storage.getAccount(addr)
	if err != nil {
		return nil, err
	}
	return acc.Rewards, nil
}

// LastTimeRewardApplicable returns min(now, periodFinish).
func (p *Pool) LastTimeRewardApplicable(now uint64) (uint64, error) {
	sched, err := p.storage.getSchedule()
	if err != nil {
		return 0, err
	}
	return sched.lastTimeRewardApplicable(now), nil
}

// RewardPerToken returns the accumulator as it would be after a reconciliation at now.
func (p *Pool) RewardPerToken(now uint64) (*uint256.Int, error) {
	sched, err := p.storage.getSchedule()
	if err != nil {
		return nil, err
	}
	total, err := p.storage.getTotalSupply()
	if err != nil {
		return nil, err
	}
	return sched.rewardPerToken(total, now)
}

// Earned returns the rewards addr could claim at now.
func (p *Pool) Earned(addr thor.Address, now uint64) (*uint256.Int, error) {
	rpt, err := p.RewardPerToken(now)
	if err != nil {
		return nil, err
	}
	acc, err := p.storage.getAccount(addr)
	if err != nil {
		return nil, err
	}
	return acc.earned(rpt)
}

// GetRewardForDuration returns the reward released over a full period at the current rate.
func (p *Pool) GetRewardForDuration() (*uint256.Int, error) {
	sched, err := p.storage.getSchedule()
	if err != nil {
		return nil, err
	}
	return sched.rewardForDuration()
}
