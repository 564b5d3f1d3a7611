// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewardpool

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vechain/rewardpool/thor"
)

var micro = uint256.NewInt(1e12)

// poolMachine drives a pool with random operations and checks the ledger invariants after each one.
type poolMachine struct {
	env     *testEnv
	users   []thor.Address
	now     uint64
	funded  *uint256.Int
	claimed *uint256.Int
	lastRPT *uint256.Int
}

func newPoolMachine(t *rapid.T) *poolMachine {
	return &poolMachine{
		env:     newTestEnv(t),
		users:   []thor.Address{alice, bob, carol},
		now:     start,
		funded:  new(uint256.Int),
		claimed: new(uint256.Int),
		lastRPT: new(uint256.Int),
	}
}

func (m *poolMachine) user(t *rapid.T) thor.Address {
	return rapid.SampledFrom(m.users).Draw(t, "user")
}

func (m *poolMachine) Stake(t *rapid.T) {
	user := m.user(t)
	amount := new(uint256.Int).Mul(uint256.NewInt(rapid.Uint64Range(1, 1_000_000).Draw(t, "amount")), micro)
	m.env.stake(t, user, amount, m.now)
}

func (m *poolMachine) Withdraw(t *rapid.T) {
	user := m.user(t)
	bal := m.env.balanceOf(t, user)
	pct := rapid.Uint64Range(1, 100).Draw(t, "percent")
	amount := new(uint256.Int).Div(new(uint256.Int).Mul(bal, uint256.NewInt(pct)), uint256.NewInt(100))

	err := m.env.pool.Withdraw(user, amount, m.now)
	if amount.IsZero() {
		require.ErrorIs(t, err, ErrInvalidAmount)
		return
	}
	require.NoError(t, err)
}

func (m *poolMachine) GetReward(t *rapid.T) {
	user := m.user(t)
	earned := m.env.earned(t, user, m.now)
	before := m.env.rewardBalance(t, user)

	require.NoError(t, m.env.pool.GetReward(user, m.now))

	after := m.env.rewardBalance(t, user)
	require.Equal(t, new(uint256.Int).Add(before, earned), after)
	m.claimed.Add(m.claimed, earned)

	rewards, err := m.env.pool.Rewards(user)
	require.NoError(t, err)
	require.True(t, rewards.IsZero())
}

func (m *poolMachine) Fund(t *rapid.T) {
	amount := e18(rapid.Uint64Range(1, 1000).Draw(t, "reward"))
	m.env.fund(t, amount, m.now)
	m.funded.Add(m.funded, amount)
}

func (m *poolMachine) SetDuration(t *rapid.T) {
	duration := rapid.Uint64Range(day, 2*week).Draw(t, "duration")
	finish, err := m.env.pool.PeriodFinish()
	require.NoError(t, err)

	err = m.env.pool.SetRewardsDuration(owner, duration, m.now)
	if finish > m.now {
		require.ErrorIs(t, err, ErrPeriodActive)
		return
	}
	require.NoError(t, err)
}

func (m *poolMachine) Advance(t *rapid.T) {
	m.now += rapid.Uint64Range(0, 2*day).Draw(t, "advance")
}

func (m *poolMachine) Check(t *rapid.T) {
	sum := new(uint256.Int)
	earned := new(uint256.Int)
	for _, u := range m.users {
		sum.Add(sum, m.env.balanceOf(t, u))
		earned.Add(earned, m.env.earned(t, u, m.now))
	}
	require.Equal(t, m.env.totalSupply(t), sum, "total supply must equal the sum of balances")

	rpt, err := m.env.pool.RewardPerToken(m.now)
	require.NoError(t, err)
	require.False(t, rpt.Lt(m.lastRPT), "reward per token decreased")
	m.lastRPT = rpt

	emitted := new(uint256.Int).Add(earned, m.claimed)
	require.False(t, emitted.Gt(m.funded), "emitted %s more than funded %s", emitted, m.funded)
	require.False(t, earned.Gt(m.env.rewardBalance(t, poolAddr)), "pool cannot cover earned rewards")
}

func TestPoolProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := newPoolMachine(t)
		t.Repeat(map[string]func(*rapid.T){
			"stake":        m.Stake,
			"withdraw":     m.Withdraw,
			"get_reward":   m.GetReward,
			"fund":         m.Fund,
			"set_duration": m.SetDuration,
			"advance":      m.Advance,
			"":             m.Check,
		})
	})
}

func TestViewIdempotenceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		env := newTestEnv(t)
		env.stake(t, alice, e18(rapid.Uint64Range(1, 1000).Draw(t, "stake")), start)
		env.fund(t, e18(rapid.Uint64Range(1, 1000).Draw(t, "reward")), start)

		now := start + rapid.Uint64Range(0, 2*week).Draw(t, "elapsed")
		first := env.earned(t, alice, now)
		second := env.earned(t, alice, now)
		require.Equal(t, first, second)

		later := env.earned(t, alice, now+rapid.Uint64Range(0, week).Draw(t, "later"))
		require.False(t, later.Lt(first), "earned decreased without a claim")
	})
}
