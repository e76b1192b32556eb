package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cometbft/cometbft/crypto"
	cmtjson "github.com/cometbft/cometbft/libs/json"
	cmttypes "github.com/cometbft/cometbft/types"
)

const GovModuleName = "gov"
const DefaultPower = 1000

const (
	DefaultQuorum       = 3000 // 30%
	DefaultThreshold    = 5000 // 50%
	DefaultVotingPeriod = 10000
	DefaultTimelock     = 10000
	DefaultMinDeposit   = 10000000000
)

type GenesisValidator struct {
	Address crypto.Address `json:"address"`
	PubKey  crypto.PubKey  `json:"pub_key"`
	Power   int64          `json:"power"`
	Name    string         `json:"name"`
}

// GenesisAccount seeds the staking ledger: the quorum denominator of the
// first polls comes from these stakes.
type GenesisAccount struct {
	PubKey []byte `json:"pub_key"`
	Stake  uint64 `json:"stake"`
}

// GovGenesisState is the app_state payload of the genesis document.
type GovGenesisState struct {
	Config   GovConfig        `json:"config"`
	Accounts []GenesisAccount `json:"accounts"`
}

func DefaultGovGenesisState(owner string) *GovGenesisState {
	return &GovGenesisState{
		Config: GovConfig{
			Owner:           owner,
			Quorum:          DefaultQuorum,
			Threshold:       DefaultThreshold,
			VotingPeriod:    DefaultVotingPeriod,
			TimelockPeriod:  DefaultTimelock,
			MinDeposit:      DefaultMinDeposit,
			AllowEmptyPolls: true,
		},
	}
}

// GenesisDoc defines the initial conditions of the governance chain, in
// particular its validator set and governance parameters.
type GenesisDoc struct {
	GenesisTime     time.Time                 `json:"genesis_time"`
	ChainID         string                    `json:"chain_id"`
	InitialHeight   int64                     `json:"initial_height"`
	ConsensusParams *cmttypes.ConsensusParams `json:"consensus_params,omitempty"`
	Validators      []GenesisValidator        `json:"validators"`
	AppHash         []byte                    `json:"app_hash"`
	AppState        json.RawMessage           `json:"app_state"`
}

// SaveAs is a utility method for saving GenensisDoc as a JSON file.
func (genDoc *GenesisDoc) SaveAs(file string) error {
	genDocBytes, err := cmtjson.MarshalIndent(genDoc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, genDocBytes, 0o600)
}

func (ag *GenesisDoc) ValidateAndComplete() error {
	if ag.ChainID == "" {
		return errors.New("genesis doc must include non-empty chain_id")
	}

	if ag.InitialHeight < 0 {
		return fmt.Errorf("initial_height cannot be negative (got %v)", ag.InitialHeight)
	}

	if ag.InitialHeight == 0 {
		ag.InitialHeight = 1
	}

	if ag.GenesisTime.IsZero() {
		ag.GenesisTime = time.Now().Round(0).UTC()
	}

	return nil
}

func ExportGenesisFile(genesis *GenesisDoc, genFile string) error {
	if err := genesis.ValidateAndComplete(); err != nil {
		return err
	}
	return genesis.SaveAs(genFile)
}
