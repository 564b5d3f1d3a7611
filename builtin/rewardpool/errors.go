// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewardpool

import "github.com/vechain/rewardpool/builtin/reverts"

var (
	ErrInvalidAmount       = reverts.New("amount must be greater than zero")
	ErrInsufficientBalance = reverts.New("insufficient staked balance")
	ErrUnauthorized        = reverts.New("caller is not the owner")
	ErrPeriodActive        = reverts.New("reward period is still active")
	ErrZeroRewardRate      = reverts.New("reward rate is zero")
	ErrInsufficientFunding = reverts.New("reward amount exceeds pool balance")
	ErrTransferFailed      = reverts.New("asset transfer failed")
	ErrOverflow            = reverts.New("arithmetic overflow")

	ErrAlreadyInitialized = reverts.New("pool already initialized")
	ErrZeroOwner          = reverts.New("owner cannot be the zero address")
)
