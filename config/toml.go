package config

import (
	cmtconfig "github.com/cometbft/cometbft/config"
)

// DefaultDirPerm is the default permissions used when creating directories.
const DefaultDirPerm = 0o700

// WriteConfigFile writes the comet portion of config to configFilePath.
// App-level settings are derived from the home dir, not persisted.
func WriteConfigFile(configFilePath string, config *Config) {
	cmtconfig.WriteConfigFile(configFilePath, config.Config)
}
