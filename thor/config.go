// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the configurable parameters of the reward pool. Parameters have default values and
// will be 'locked' for production deployments. For testing purposes the parameters can be updated.

var (
	rewardsDuration = InitialRewardsDuration
	stateCacheSize  = InitialStateCacheSize

	locked bool
)

type Config struct {
	RewardsDuration uint64 `json:"rewardsDuration" yaml:"rewardsDuration"` // default emission period of a new pool, in seconds.
	StateCacheSize  int    `json:"stateCacheSize" yaml:"stateCacheSize"`   // committed storage values cached per state.
}

// SetConfig sets the config.
// If the config is not set, the default values will be used.
// If the config is locked, will panic.
func SetConfig(cfg Config) {
	if locked {
		panic("config is locked, cannot be set")
	}

	if cfg.RewardsDuration != 0 {
		rewardsDuration = cfg.RewardsDuration
	}

	if cfg.StateCacheSize != 0 {
		stateCacheSize = cfg.StateCacheSize
	}
}

// LoadConfig reads a yaml encoded config file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "decode config %s", path)
	}
	return cfg, nil
}

// LockConfig locks the config, preventing any further changes.
func LockConfig() {
	locked = true
}

func RewardsDuration() uint64 {
	return rewardsDuration
}

func StateCacheSize() int {
	return stateCacheSize
}
