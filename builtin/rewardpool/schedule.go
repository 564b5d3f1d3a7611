// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewardpool

import (
	"github.com/holiman/uint256"

	"github.com/vechain/rewardpool/thor"
)

var scale = thor.RewardScale()

// schedule holds the pool wide emission state.
type schedule struct {
	RewardRate           *uint256.Int // reward units released per second
	RewardPerTokenStored *uint256.Int // accumulator, scaled by RewardScale
	PeriodFinish         uint64
	UpdatedAt            uint64
	Duration             uint64
}

func newSchedule(duration uint64) *schedule {
	return &schedule{
		RewardRate:           new(uint256.Int),
		RewardPerTokenStored: new(uint256.Int),
		Duration:             duration,
	}
}

func (s *schedule) normalize() {
	if s.RewardRate == nil {
		s.RewardRate = new(uint256.Int)
	}
	if s.RewardPerTokenStored == nil {
		s.RewardPerTokenStored = new(uint256.Int)
	}
}

// isActive reports whether rewards are still being released at now.
func (s *schedule) isActive(now uint64) bool {
	return s.PeriodFinish > now
}

func (s *schedule) lastTimeRewardApplicable(now uint64) uint64 {
	return min(now, s.PeriodFinish)
}

// rewardPerToken returns the accumulator brought forward to now:
// stored + rate * (applicable - updatedAt) * RewardScale / totalSupply.
// With nothing staked the accumulator does not move.
func (s *schedule) rewardPerToken(totalSupply *uint256.Int, now uint64) (*uint256.Int, error) {
	stored := new(uint256.Int).Set(s.RewardPerTokenStored)
	applicable := s.lastTimeRewardApplicable(now)
	if totalSupply.IsZero() || applicable <= s.UpdatedAt {
		return stored, nil
	}

	delta, overflow := new(uint256.Int).MulOverflow(s.RewardRate, uint256.NewInt(applicable-s.UpdatedAt))
	if overflow {
		return nil, ErrOverflow
	}
	if _, overflow := delta.MulOverflow(delta, scale); overflow {
		return nil, ErrOverflow
	}
	delta.Div(delta, totalSupply)

	if _, overflow := stored.AddOverflow(stored, delta); overflow {
		return nil, ErrOverflow
	}
	return stored, nil
}

// rewardForDuration returns rate * duration.
func (s *schedule) rewardForDuration() (*uint256.Int, error) {
	total, overflow := new(uint256.Int).MulOverflow(s.RewardRate, uint256.NewInt(s.Duration))
	if overflow {
		return nil, ErrOverflow
	}
	return total, nil
}

// nextRate computes the rate after adding amount at now. Rewards not yet released
// by an active period are rolled into the new rate. Division truncates and the
// remainder is dropped.
func (s *schedule) nextRate(amount *uint256.Int, now uint64) (*uint256.Int, error) {
	if s.Duration == 0 {
		return nil, ErrZeroRewardRate
	}
	total := new(uint256.Int).Set(amount)
	if s.isActive(now) {
		leftover, overflow := new(uint256.Int).MulOverflow(s.RewardRate, uint256.NewInt(s.PeriodFinish-now))
		if overflow {
			return nil, ErrOverflow
		}
		if _, overflow := total.AddOverflow(total, leftover); overflow {
			return nil, ErrOverflow
		}
	}
	rate := total.Div(total, uint256.NewInt(s.Duration))
	if rate.IsZero() {
		return nil, ErrZeroRewardRate
	}
	return rate, nil
}
