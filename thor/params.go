// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"github.com/holiman/uint256"
)

// Constants of the reward pool.
const (
	// RewardScaleDecimals is the number of decimals carried by the reward-per-token accumulator.
	RewardScaleDecimals = 18

	// InitialRewardsDuration is the emission period length (in seconds) a fresh pool starts with.
	InitialRewardsDuration uint64 = 7 * 24 * 60 * 60 // 7 days

	// InitialStateCacheSize is the number of committed storage values kept decoded in memory.
	InitialStateCacheSize = 4096
)

// RewardScale returns the fixed-point scale of the reward-per-token accumulator (1e18).
// All divisions by it truncate toward zero. Each call returns a fresh value.
func RewardScale() *uint256.Int {
	return uint256.NewInt(1e18)
}
