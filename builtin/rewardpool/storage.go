// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewardpool

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/thor"
)

var (
	slotOwner       = nameToSlot("owner")
	slotTotalSupply = nameToSlot("total-supply")
	slotSchedule    = nameToSlot("reward-schedule")
	slotAccounts    = nameToSlot("accounts")
)

func nameToSlot(name string) thor.Bytes32 {
	return thor.BytesToBytes32([]byte(name))
}

// storage represents the root storage for the reward pool.
type storage struct {
	context     *solidity.Context
	owner       *solidity.Address
	totalSupply *solidity.Uint256
	schedule    *solidity.Raw[*schedule]
	accounts    *solidity.Mapping[thor.Address, *Account]

	defaultDuration uint64
}

func newStorage(context *solidity.Context, defaultDuration uint64) *storage {
	return &storage{
		context:         context,
		owner:           solidity.NewAddress(context, slotOwner),
		totalSupply:     solidity.NewUint256(context, slotTotalSupply),
		schedule:        solidity.NewRaw[*schedule](context, slotSchedule),
		accounts:        solidity.NewMapping[thor.Address, *Account](context, slotAccounts),
		defaultDuration: defaultDuration,
	}
}

// getSchedule returns the stored schedule. A pool that was never written
// reports an idle schedule with the default duration.
func (s *storage) getSchedule() (*schedule, error) {
	sched, err := s.schedule.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get schedule")
	}
	if sched == nil {
		return newSchedule(s.defaultDuration), nil
	}
	sched.normalize()
	return sched, nil
}

func (s *storage) setSchedule(sched *schedule) error {
	if err := s.schedule.Upsert(sched); err != nil {
		return errors.Wrap(err, "failed to set schedule")
	}
	return nil
}

func (s *storage) getAccount(addr thor.Address) (*Account, error) {
	acc, err := s.accounts.Get(addr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get account %s", addr)
	}
	acc.normalize()
	return acc, nil
}

// setAccount persists acc, empty accounts are removed from storage.
func (s *storage) setAccount(addr thor.Address, acc *Account) error {
	if acc.IsEmpty() {
		s.accounts.Delete(addr)
		return nil
	}
	if err := s.accounts.Set(addr, acc); err != nil {
		return errors.Wrapf(err, "failed to set account %s", addr)
	}
	return nil
}

func (s *storage) getTotalSupply() (*uint256.Int, error) {
	total, err := s.totalSupply.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get total supply")
	}
	return total, nil
}

func (s *storage) addTotalSupply(amount *uint256.Int) error {
	if err := s.totalSupply.Add(amount); err != nil {
		if errors.Is(err, solidity.ErrUint256Overflow) {
			return ErrOverflow
		}
		return errors.Wrap(err, "failed to add total supply")
	}
	return nil
}

func (s *storage) subTotalSupply(amount *uint256.Int) error {
	if err := s.totalSupply.Sub(amount); err != nil {
		if errors.Is(err, solidity.ErrUint256Underflow) {
			return ErrInsufficientBalance
		}
		return errors.Wrap(err, "failed to sub total supply")
	}
	return nil
}

func (s *storage) getOwner() (thor.Address, error) {
	owner, err := s.owner.Get()
	if err != nil {
		return thor.Address{}, errors.Wrap(err, "failed to get owner")
	}
	return owner, nil
}
