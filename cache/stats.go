// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats counts cache hits and misses. It is safe for concurrent use.
type Stats struct {
	hit, miss atomic.Int64
	permille  atomic.Int32 // hit rate seen by the last Snapshot
}

// StatsSnapshot is a point-in-time read of Stats.
type StatsSnapshot struct {
	Hit  int64
	Miss int64
	// Changed is set when the hit rate moved by at least 0.1% since the previous snapshot.
	Changed bool
}

// HitRate returns hits over lookups, or zero before any lookup.
func (s StatsSnapshot) HitRate() float64 {
	if lookups := s.Hit + s.Miss; lookups > 0 {
		return float64(s.Hit) / float64(lookups)
	}
	return 0
}

// Hit records a hit.
func (cs *Stats) Hit() int64 { return cs.hit.Add(1) }

// Miss records a miss.
func (cs *Stats) Miss() int64 { return cs.miss.Add(1) }

// Snapshot reads the counters and marks the current hit rate as seen.
func (cs *Stats) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{
		Hit:  cs.hit.Load(),
		Miss: cs.miss.Load(),
	}
	permille := int32(snap.HitRate() * 1000)
	snap.Changed = cs.permille.Swap(permille) != permille
	return snap
}
