// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/vechain/rewardpool/metrics"

var (
	metricStorageCacheHit  = metrics.LazyLoadGauge("state_storage_cache_hit")
	metricStorageCacheMiss = metrics.LazyLoadGauge("state_storage_cache_miss")
	metricStorageCommit    = metrics.LazyLoadCounterVec("state_storage_commit_count", []string{"type"})
)
