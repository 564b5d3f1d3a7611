// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRUGetOrLoad(t *testing.T) {
	c, err := NewLRU(2)
	assert.Nil(t, err)

	loads := 0
	loader := func(key any) (any, error) {
		loads++
		return key.(string) + "-v", nil
	}

	v, err := c.GetOrLoad("a", loader)
	assert.Nil(t, err)
	assert.Equal(t, "a-v", v)

	v, err = c.GetOrLoad("a", loader)
	assert.Nil(t, err)
	assert.Equal(t, "a-v", v)
	assert.Equal(t, 1, loads)

	snap := c.Stats().Snapshot()
	assert.Equal(t, int64(1), snap.Hit)
	assert.Equal(t, int64(1), snap.Miss)
	assert.Equal(t, 0.5, snap.HitRate())

	_, err = c.GetOrLoad("b", func(any) (any, error) { return nil, errors.New("boom") })
	assert.EqualError(t, err, "boom")
	_, ok := c.Get("b")
	assert.False(t, ok, "failed loads are not cached")

	_, err = NewLRU(0)
	assert.Error(t, err)
}

func TestStatsSnapshot(t *testing.T) {
	var s Stats
	snap := s.Snapshot()
	assert.False(t, snap.Changed)
	assert.Equal(t, float64(0), snap.HitRate())

	s.Hit()
	snap = s.Snapshot()
	assert.True(t, snap.Changed)
	assert.Equal(t, int64(1), snap.Hit)
	assert.Equal(t, int64(0), snap.Miss)

	assert.False(t, s.Snapshot().Changed)

	s.Miss()
	assert.True(t, s.Snapshot().Changed)

	// same rate, more lookups
	s.Hit()
	s.Miss()
	snap = s.Snapshot()
	assert.False(t, snap.Changed)
	assert.Equal(t, 0.5, snap.HitRate())
}
