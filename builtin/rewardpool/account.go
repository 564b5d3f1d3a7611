// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewardpool

import (
	"github.com/holiman/uint256"
)

// Account is the per-user ledger entry.
type Account struct {
	Balance            *uint256.Int // staked amount
	RewardPerTokenPaid *uint256.Int // accumulator snapshot at the last reconciliation
	Rewards            *uint256.Int // accrued and unclaimed
}

func (a *Account) normalize() {
	if a.Balance == nil {
		a.Balance = new(uint256.Int)
	}
	if a.RewardPerTokenPaid == nil {
		a.RewardPerTokenPaid = new(uint256.Int)
	}
	if a.Rewards == nil {
		a.Rewards = new(uint256.Int)
	}
}

// IsEmpty returns whether all fields are zero.
func (a *Account) IsEmpty() bool {
	return (a.Balance == nil || a.Balance.IsZero()) &&
		(a.RewardPerTokenPaid == nil || a.RewardPerTokenPaid.IsZero()) &&
		(a.Rewards == nil || a.Rewards.IsZero())
}

// earned returns the rewards of the account after accruing up to rewardPerToken.
// balance * (rewardPerToken - paid) / RewardScale + rewards, truncated toward zero.
func (a *Account) earned(rewardPerToken *uint256.Int) (*uint256.Int, error) {
	delta, underflow := new(uint256.Int).SubOverflow(rewardPerToken, a.RewardPerTokenPaid)
	if underflow {
		return nil, ErrOverflow
	}
	accrued, overflow := new(uint256.Int).MulOverflow(a.Balance, delta)
	if overflow {
		return nil, ErrOverflow
	}
	accrued.Div(accrued, scale)
	if _, overflow := accrued.AddOverflow(accrued, a.Rewards); overflow {
		return nil, ErrOverflow
	}
	return accrued, nil
}
