// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

type TestStruct struct {
	Field1 uint64
	Field2 *uint256.Int
	Addr1  thor.Address
}

// newTestContext returns a fresh Context over an in-memory store.
func newTestContext(t *testing.T) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st, err := state.New(db)
	require.NoError(t, err)
	return NewContext(thor.Address{1}, st)
}

func TestMapping_StructPointer(t *testing.T) {
	ctx := newTestContext(t)
	mapping := NewMapping[thor.Address, *TestStruct](ctx, thor.Bytes32{1})

	empty, err := mapping.Get(thor.Address{2})
	require.NoError(t, err)
	require.NotNil(t, empty)
	assert.Equal(t, uint64(0), empty.Field1)

	value := &TestStruct{Field1: 7, Field2: uint256.NewInt(1e18), Addr1: thor.Address{9}}
	require.NoError(t, mapping.Set(thor.Address{2}, value))

	got, err := mapping.Get(thor.Address{2})
	require.NoError(t, err)
	assert.Equal(t, value.Field1, got.Field1)
	assert.Equal(t, value.Addr1, got.Addr1)
	assert.True(t, value.Field2.Eq(got.Field2))

	mapping.Delete(thor.Address{2})
	got, err = mapping.Get(thor.Address{2})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got.Field1)
}

func TestMapping_KeysDoNotCollide(t *testing.T) {
	ctx := newTestContext(t)
	a := NewMapping[thor.Address, uint64](ctx, thor.Bytes32{1})
	b := NewMapping[thor.Address, uint64](ctx, thor.Bytes32{2})

	require.NoError(t, a.Set(thor.Address{1}, 10))
	require.NoError(t, b.Set(thor.Address{1}, 20))

	v, err := a.Get(thor.Address{1})
	require.NoError(t, err)
	assert.Equal(t, uint64(10), v)
	v, err = b.Get(thor.Address{1})
	require.NoError(t, err)
	assert.Equal(t, uint64(20), v)
}

func TestRaw(t *testing.T) {
	ctx := newTestContext(t)
	raw := NewRaw[*TestStruct](ctx, thor.Bytes32{3})

	v, err := raw.Get()
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, raw.Upsert(&TestStruct{Field1: 1, Field2: uint256.NewInt(2)}))
	v, err = raw.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v.Field1)
	assert.Equal(t, uint64(2), v.Field2.Uint64())

	raw.Delete()
	v, err = raw.Get()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestUint256(t *testing.T) {
	ctx := newTestContext(t)
	u := NewUint256(ctx, thor.Bytes32{4})

	v, err := u.Get()
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	require.NoError(t, u.Add(uint256.NewInt(100)))
	require.NoError(t, u.Sub(uint256.NewInt(40)))
	v, err = u.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(60), v.Uint64())

	assert.ErrorIs(t, u.Sub(uint256.NewInt(61)), ErrUint256Underflow)

	max := new(uint256.Int).SetAllOne()
	u.Set(max)
	assert.ErrorIs(t, u.Add(uint256.NewInt(1)), ErrUint256Overflow)

	v, err = u.Get()
	require.NoError(t, err)
	assert.True(t, v.Eq(max), "failed ops must not write")
}

func TestUint256_SharesSlotWithRawStorage(t *testing.T) {
	ctx := newTestContext(t)
	u := NewUint256(ctx, thor.Bytes32{5})
	u.Set(uint256.NewInt(0xff))

	storage, err := ctx.State().GetStorage(ctx.Address(), thor.Bytes32{5})
	require.NoError(t, err)
	assert.Equal(t, byte(0xff), storage[31])
}

func TestAddress(t *testing.T) {
	ctx := newTestContext(t)
	a := NewAddress(ctx, thor.Bytes32{6})

	v, err := a.Get()
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	addr := thor.MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	a.Set(&addr)
	v, err = a.Get()
	require.NoError(t, err)
	assert.Equal(t, addr, v)

	a.Set(nil)
	v, err = a.Get()
	require.NoError(t, err)
	assert.True(t, v.IsZero())
}

func TestConfigVariable(t *testing.T) {
	ctx := newTestContext(t)

	t.Run("default", func(t *testing.T) {
		cv := NewConfigVariable("unset", 42)
		cv.Override(ctx)
		assert.Equal(t, uint64(42), cv.Get())
		assert.Equal(t, "unset", cv.Name())
	})

	t.Run("override", func(t *testing.T) {
		cv := NewConfigVariable("set", 42)
		ctx.State().SetStorage(ctx.Address(), cv.Slot(), thor.BytesToBytes32([]byte{0x01, 0x00}))
		cv.Override(ctx)
		assert.Equal(t, uint64(256), cv.Get())

		// later storage changes are ignored
		ctx.State().SetStorage(ctx.Address(), cv.Slot(), thor.BytesToBytes32([]byte{0x05}))
		cv.Override(ctx)
		assert.Equal(t, uint64(256), cv.Get())
	})
}
