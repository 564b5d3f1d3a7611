// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb_test

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/vechain/rewardpool/builtin/rewardpool"
	"github.com/vechain/rewardpool/builtin/token"
	"github.com/vechain/rewardpool/logdb"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var (
	poolAddr = thor.BytesToAddress([]byte("pool"))
	alice    = thor.BytesToAddress([]byte("alice"))
	bob      = thor.BytesToAddress([]byte("bob"))
)

func newEvents() []*rewardpool.Event {
	var events []*rewardpool.Event
	for i := range 100 {
		account := alice
		if i%2 == 1 {
			account = bob
		}
		kind := rewardpool.EventStaked
		if i%5 == 0 {
			kind = rewardpool.EventRewardPaid
		}
		events = append(events, &rewardpool.Event{
			Kind:    kind,
			Pool:    poolAddr,
			Account: account,
			Amount:  uint256.NewInt(uint64(i)),
			Time:    uint64(1000 + i),
		})
	}
	return events
}

func kindPtr(k rewardpool.EventKind) *rewardpool.EventKind { return &k }

func TestLogDB_WriteAndFilter(t *testing.T) {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	events := newEvents()
	require.NoError(t, db.Write(events[:50]))
	require.NoError(t, db.Write(events[50:]))
	require.NoError(t, db.Write(nil))

	ctx := context.Background()

	all, err := db.FilterEvents(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 100)
	for i, ev := range all {
		assert.Equal(t, uint64(i+1), ev.Seq)
		assert.Equal(t, events[i].Kind, ev.Kind)
		assert.Equal(t, events[i].Account, ev.Account)
		assert.Equal(t, events[i].Pool, ev.Pool)
		assert.Equal(t, events[i].Amount, ev.Amount)
		assert.Equal(t, events[i].Time, ev.Time)
	}

	tests := []struct {
		name   string
		filter *logdb.EventFilter
		want   []uint64 // times
	}{
		{
			"range",
			&logdb.EventFilter{Range: &logdb.Range{From: 1010, To: 1012}},
			[]uint64{1010, 1011, 1012},
		},
		{
			"open range",
			&logdb.EventFilter{Range: &logdb.Range{From: 1097}},
			[]uint64{1097, 1098, 1099},
		},
		{
			"kind and account",
			&logdb.EventFilter{
				CriteriaSet: []*logdb.EventCriteria{{Kind: kindPtr(rewardpool.EventRewardPaid), Account: &bob}},
				Range:       &logdb.Range{From: 1000, To: 1030},
			},
			[]uint64{1005, 1015, 1025},
		},
		{
			"criteria union",
			&logdb.EventFilter{
				CriteriaSet: []*logdb.EventCriteria{
					{Kind: kindPtr(rewardpool.EventRewardPaid), Account: &alice},
					{Account: &bob},
				},
				Range: &logdb.Range{From: 1000, To: 1004},
			},
			[]uint64{1000, 1001, 1003},
		},
		{
			"desc with paging",
			&logdb.EventFilter{Order: logdb.DESC, Options: &logdb.Options{Offset: 2, Limit: 3}},
			[]uint64{1097, 1096, 1095},
		},
		{
			"unbounded range and limit",
			&logdb.EventFilter{
				Range:   &logdb.Range{From: 1098, To: math.MaxUint64},
				Options: &logdb.Options{Limit: math.MaxUint64},
			},
			[]uint64{1098, 1099},
		},
		{
			"range beyond stored times",
			&logdb.EventFilter{Range: &logdb.Range{From: math.MaxUint64}},
			nil,
		},
		{
			"unknown pool",
			&logdb.EventFilter{CriteriaSet: []*logdb.EventCriteria{{Pool: &alice}}},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.FilterEvents(ctx, tt.filter)
			require.NoError(t, err)
			var times []uint64
			for _, ev := range got {
				times = append(times, ev.Time)
			}
			assert.Equal(t, tt.want, times)
		})
	}
}

func TestLogDB_WriteTimeOutOfRange(t *testing.T) {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	events := newEvents()[:2]
	events[1].Time = math.MaxUint64
	assert.Error(t, db.Write(events))

	// the whole batch is rolled back
	got, err := db.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	events[1].Time = math.MaxInt64
	require.NoError(t, db.Write(events))
	got, err = db.FilterEvents(context.Background(), &logdb.EventFilter{Range: &logdb.Range{From: math.MaxInt64}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(math.MaxInt64), got[0].Time)
}

func TestLogDB_CancelledContext(t *testing.T) {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Write(newEvents()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = db.FilterEvents(ctx, &logdb.EventFilter{})
	assert.Error(t, err)
}

func TestLogDB_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	db, err := logdb.New(path)
	require.NoError(t, err)
	assert.Equal(t, path, db.Path())
	require.NoError(t, db.Write(newEvents()[:3]))
	require.NoError(t, db.Close())

	db, err = logdb.New(path)
	require.NoError(t, err)
	defer db.Close()
	got, err := db.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestLogDB_ConcurrentReaders(t *testing.T) {
	db, err := logdb.New(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Write(newEvents()))

	g, ctx := errgroup.WithContext(context.Background())
	for i := range 8 {
		account := alice
		if i%2 == 1 {
			account = bob
		}
		g.Go(func() error {
			got, err := db.FilterEvents(ctx, &logdb.EventFilter{
				CriteriaSet: []*logdb.EventCriteria{{Account: &account}},
			})
			if err != nil {
				return err
			}
			if len(got) != 50 {
				return fmt.Errorf("want 50 events, got %d", len(got))
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestLogDB_PoolSink(t *testing.T) {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	store, err := lvldb.NewMem()
	require.NoError(t, err)
	st, err := state.New(store)
	require.NoError(t, err)

	owner := thor.BytesToAddress([]byte("owner"))
	staking := token.New(thor.BytesToAddress([]byte("stake")), st)
	rewards := token.New(thor.BytesToAddress([]byte("reward")), st)
	pool := rewardpool.New(poolAddr, st, staking, rewards)
	pool.SetEventSink(db)
	require.NoError(t, pool.Initialize(owner))

	amount := uint256.NewInt(1e18)
	require.NoError(t, staking.Mint(alice, amount))
	require.NoError(t, staking.Approve(alice, poolAddr, amount))
	require.NoError(t, pool.Stake(alice, amount, 100))

	funding := new(uint256.Int).Mul(uint256.NewInt(1000), thor.RewardScale())
	require.NoError(t, rewards.Mint(poolAddr, funding))
	require.NoError(t, pool.NotifyRewardAmount(owner, funding, 100))
	require.Error(t, pool.Withdraw(alice, uint256.NewInt(2e18), 200))
	require.NoError(t, pool.Exit(alice, 200))

	got, err := db.FilterEvents(context.Background(), &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{{Account: &alice}},
	})
	require.NoError(t, err)
	var kinds []rewardpool.EventKind
	for _, ev := range got {
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []rewardpool.EventKind{
		rewardpool.EventStaked,
		rewardpool.EventWithdrawn,
		rewardpool.EventRewardPaid,
	}, kinds)
}
