package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cometbft/cometbft/config"
	"github.com/cometbft/cometbft/crypto"
	"github.com/cometbft/cometbft/p2p"
	"github.com/cometbft/cometbft/privval"
)

type GovAppConfig struct {
	Home          string `mapstructure:"-"`
	TimeoutCommit uint64 `mapstructure:"-"`
	ApiAddr       string `mapstructure:"-"`
}

func DefaultGovAppConfig(home string) *GovAppConfig {
	return &GovAppConfig{
		Home:    home,
		ApiAddr: ":8080",
	}
}

// StakePerPower converts one unit of consensus voting power into staked
// balance. Height-parameterized so a future upgrade can reprice it.
func StakePerPower(height uint64) uint64 {
	return 1000000000
}

func PowerPerStake(stake uint64, height uint64) int64 {
	return int64(stake / StakePerPower(height))
}

// Config embeds the cometbft node config and adds the governance app
// section.
type Config struct {
	*config.Config `mapstructure:",squash"`

	App *GovAppConfig `mapstructure:"app"`
}

func NewGovConfig(home string) *Config {
	if len(home) == 0 {
		home = os.ExpandEnv("$HOME/.gov")
	}
	_ = os.MkdirAll(home+"/config", 0755)
	cfg := &Config{
		DefaultGovCometConfig(),
		DefaultGovAppConfig(home),
	}
	cfg.RootDir = home
	return cfg
}

func InitializeNodeValidatorFiles(cfg *Config, privKey crypto.PrivKey) (nodeID string, pk crypto.PubKey, err error) {
	nodeKey, err := p2p.LoadOrGenNodeKey(cfg.NodeKeyFile())
	if err != nil {
		return "", nil, err
	}
	nodeID = string(nodeKey.ID())

	pvKeyFile := cfg.PrivValidatorKeyFile()
	if err := os.MkdirAll(filepath.Dir(pvKeyFile), 0o777); err != nil {
		return "", nil, fmt.Errorf("could not create directory %q: %w", filepath.Dir(pvKeyFile), err)
	}

	pvStateFile := cfg.PrivValidatorStateFile()
	if err := os.MkdirAll(filepath.Dir(pvStateFile), 0o777); err != nil {
		return "", nil, fmt.Errorf("could not create directory %q: %w", filepath.Dir(pvStateFile), err)
	}

	var filePV *privval.FilePV
	if privKey == nil {
		filePV = privval.LoadOrGenFilePV(pvKeyFile, pvStateFile)
	} else {
		filePV = privval.NewFilePV(privKey, pvKeyFile, pvStateFile)
		filePV.Save()
	}
	pubKey, err := filePV.GetPubKey()
	if err != nil {
		return "", nil, err
	}

	return nodeID, pubKey, nil
}

func DefaultGovCometConfig() *config.Config {
	cometConfig := config.DefaultConfig()
	cometConfig.Consensus.TimeoutPropose = time.Second * 10
	cometConfig.Consensus.TimeoutPrevote = time.Second * 1
	cometConfig.Consensus.TimeoutPrecommit = time.Second * 1
	cometConfig.Consensus.TimeoutCommit = time.Millisecond * 1200
	return cometConfig
}
