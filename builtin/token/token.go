// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements a state-backed fungible token with balances and approvals.
package token

import (
	"github.com/holiman/uint256"

	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var (
	slotTotalSupply = thor.Keccak256([]byte("token-supply"))
	slotBalances    = thor.Keccak256([]byte("token-balances"))
	slotAllowances  = thor.Keccak256([]byte("token-allowances"))
)

type approvalKey struct {
	owner   thor.Address
	spender thor.Address
}

func (k approvalKey) Bytes() []byte {
	return append(k.owner.Bytes(), k.spender.Bytes()...)
}

// Token is a fungible asset whose ledger lives in the storage of addr.
type Token struct {
	addr        thor.Address
	totalSupply *solidity.Uint256
	balances    *solidity.Mapping[thor.Address, *uint256.Int]
	allowances  *solidity.Mapping[approvalKey, *uint256.Int]
}

func New(addr thor.Address, state *state.State) *Token {
	ctx := solidity.NewContext(addr, state)
	return &Token{
		addr:        addr,
		totalSupply: solidity.NewUint256(ctx, slotTotalSupply),
		balances:    solidity.NewMapping[thor.Address, *uint256.Int](ctx, slotBalances),
		allowances:  solidity.NewMapping[approvalKey, *uint256.Int](ctx, slotAllowances),
	}
}

// Address returns the address the token ledger is stored under.
func (t *Token) Address() thor.Address {
	return t.addr
}

func (t *Token) TotalSupply() (*uint256.Int, error) {
	return t.totalSupply.Get()
}

func (t *Token) BalanceOf(addr thor.Address) (*uint256.Int, error) {
	return t.balances.Get(addr)
}

func (t *Token) setBalance(addr thor.Address, balance *uint256.Int) error {
	if balance.IsZero() {
		t.balances.Delete(addr)
		return nil
	}
	return t.balances.Set(addr, balance)
}

// Mint creates amount new tokens owned by to.
func (t *Token) Mint(to thor.Address, amount *uint256.Int) error {
	if err := t.totalSupply.Add(amount); err != nil {
		return err
	}
	bal, err := t.balances.Get(to)
	if err != nil {
		return err
	}
	if _, overflow := bal.AddOverflow(bal, amount); overflow {
		return solidity.ErrUint256Overflow
	}
	return t.setBalance(to, bal)
}

// Transfer moves amount from one account to another. It returns false without
// touching the ledger when from holds less than amount.
func (t *Token) Transfer(from, to thor.Address, amount *uint256.Int) (bool, error) {
	fromBal, err := t.balances.Get(from)
	if err != nil {
		return false, err
	}
	if fromBal.Lt(amount) {
		return false, nil
	}
	if from == to || amount.IsZero() {
		return true, nil
	}
	toBal, err := t.balances.Get(to)
	if err != nil {
		return false, err
	}
	if _, overflow := toBal.AddOverflow(toBal, amount); overflow {
		return false, solidity.ErrUint256Overflow
	}
	fromBal.Sub(fromBal, amount)

	if err := t.setBalance(from, fromBal); err != nil {
		return false, err
	}
	if err := t.setBalance(to, toBal); err != nil {
		return false, err
	}
	return true, nil
}

// Approve sets the amount spender may move out of owner's account.
func (t *Token) Approve(owner, spender thor.Address, amount *uint256.Int) error {
	key := approvalKey{owner, spender}
	if amount.IsZero() {
		t.allowances.Delete(key)
		return nil
	}
	return t.allowances.Set(key, amount)
}

func (t *Token) Allowance(owner, spender thor.Address) (*uint256.Int, error) {
	return t.allowances.Get(approvalKey{owner, spender})
}

// TransferFrom moves amount out of from's account on behalf of spender, consuming allowance.
// An owner spending its own tokens needs no allowance.
func (t *Token) TransferFrom(spender, from, to thor.Address, amount *uint256.Int) (bool, error) {
	if spender == from {
		return t.Transfer(from, to, amount)
	}
	allowance, err := t.Allowance(from, spender)
	if err != nil {
		return false, err
	}
	if allowance.Lt(amount) {
		return false, nil
	}
	ok, err := t.Transfer(from, to, amount)
	if err != nil || !ok {
		return ok, err
	}
	if err := t.Approve(from, spender, allowance.Sub(allowance, amount)); err != nil {
		return false, err
	}
	return true, nil
}
