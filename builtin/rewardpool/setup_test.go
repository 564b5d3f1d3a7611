// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewardpool

import (
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/builtin/token"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/metrics"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

const (
	week  = uint64(7 * 24 * 60 * 60)
	day   = uint64(24 * 60 * 60)
	start = uint64(1_700_000_000)
)

var (
	poolAddr   = thor.BytesToAddress([]byte("pool"))
	stakeAddr  = thor.BytesToAddress([]byte("stake-token"))
	rewardAddr = thor.BytesToAddress([]byte("reward-token"))
	owner      = thor.BytesToAddress([]byte("owner"))
	alice      = thor.BytesToAddress([]byte("alice"))
	bob        = thor.BytesToAddress([]byte("bob"))
	carol      = thor.BytesToAddress([]byte("carol"))
)

func init() {
	SetLogger(log.NewLogger(log.DiscardHandler()))
	// meters are bound on first use, so this must run before any operation
	metrics.InitializePrometheusMetrics()
}

// e18 returns n whole units at 18 decimals.
func e18(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), thor.RewardScale())
}

type recordingSink struct {
	events []*Event
}

func (s *recordingSink) Write(events []*Event) error {
	s.events = append(s.events, events...)
	return nil
}

func (s *recordingSink) kinds() []EventKind {
	kinds := make([]EventKind, 0, len(s.events))
	for _, ev := range s.events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

type testEnv struct {
	db          *lvldb.LevelDB
	state       *state.State
	stakeToken  *token.Token
	rewardToken *token.Token
	pool        *Pool
	sink        *recordingSink
}

func newTestEnv(t require.TestingT) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	return newTestEnvWithDB(t, db, true)
}

func newTestEnvWithDB(t require.TestingT, db *lvldb.LevelDB, initialize bool) *testEnv {
	st, err := state.New(db)
	require.NoError(t, err)

	env := &testEnv{
		db:          db,
		state:       st,
		stakeToken:  token.New(stakeAddr, st),
		rewardToken: token.New(rewardAddr, st),
		sink:        &recordingSink{},
	}
	env.pool = New(poolAddr, st, env.stakeToken, env.rewardToken)
	env.pool.SetEventSink(env.sink)
	if initialize {
		require.NoError(t, env.pool.Initialize(owner))
	}
	return env
}

// stake mints amount of the staking asset to user, approves the pool and stakes it.
func (e *testEnv) stake(t require.TestingT, user thor.Address, amount *uint256.Int, now uint64) {
	require.NoError(t, e.stakeToken.Mint(user, amount))
	require.NoError(t, e.stakeToken.Approve(user, poolAddr, amount))
	require.NoError(t, e.pool.Stake(user, amount, now))
}

// fund mints amount of the reward asset to the pool and notifies it.
func (e *testEnv) fund(t require.TestingT, amount *uint256.Int, now uint64) {
	require.NoError(t, e.rewardToken.Mint(poolAddr, amount))
	require.NoError(t, e.pool.NotifyRewardAmount(owner, amount, now))
}

func (e *testEnv) earned(t require.TestingT, user thor.Address, now uint64) *uint256.Int {
	v, err := e.pool.Earned(user, now)
	require.NoError(t, err)
	return v
}

func (e *testEnv) balanceOf(t require.TestingT, user thor.Address) *uint256.Int {
	v, err := e.pool.BalanceOf(user)
	require.NoError(t, err)
	return v
}

func (e *testEnv) totalSupply(t require.TestingT) *uint256.Int {
	v, err := e.pool.TotalSupply()
	require.NoError(t, err)
	return v
}

func (e *testEnv) rewardBalance(t require.TestingT, addr thor.Address) *uint256.Int {
	v, err := e.rewardToken.BalanceOf(addr)
	require.NoError(t, err)
	return v
}

func (e *testEnv) stakeBalance(t require.TestingT, addr thor.Address) *uint256.Int {
	v, err := e.stakeToken.BalanceOf(addr)
	require.NoError(t, err)
	return v
}
