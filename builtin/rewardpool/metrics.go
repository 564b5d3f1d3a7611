// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewardpool

import "github.com/vechain/rewardpool/metrics"

var (
	metricOpsCount      = metrics.LazyLoadCounterVec("ops_count", []string{"op", "status"})
	metricOpDuration    = metrics.LazyLoadHistogram("op_duration_us", metrics.Bucket10s)
	metricRewardsPaid   = metrics.LazyLoadCounter("rewards_paid_count")
	metricFundingsCount = metrics.LazyLoadCounter("fundings_count")
)
