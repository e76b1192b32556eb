package state

import (
	"encoding/json"
	"fmt"

	"github.com/ezaanm/anchor-token-contracts/types"
)

// Ledger moves deposit balances between a creator's stake and the
// escrow pool. The default implementation books against the in-state
// accounts; tests may substitute their own.
type Ledger interface {
	Escrow(creator uint64, amount uint64) error
	Refund(creator uint64, amount uint64) error
	Forfeit(amount uint64) error
}

type accountLedger struct {
	s *State
}

func (l *accountLedger) Escrow(creator uint64, amount uint64) error {
	a, err := l.s.GetAccount(creator)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrAccountNoexists
	}
	a = a.Clone()
	a.pruneLocks(l.s.header.Height)
	if a.Stake < amount || a.Stake-amount < a.maxLocked() {
		return ErrInsufficientStake
	}
	a.Stake -= amount
	l.s.markAccount(a)
	l.s.header.TotalStake -= amount
	l.s.header.TotalDeposit += amount
	return nil
}

func (l *accountLedger) Refund(creator uint64, amount uint64) error {
	a, err := l.s.GetAccount(creator)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrAccountNoexists
	}
	a = a.Clone()
	a.Stake += amount
	l.s.markAccount(a)
	l.s.header.TotalStake += amount
	l.s.header.TotalDeposit -= amount
	return nil
}

func (l *accountLedger) Forfeit(amount uint64) error {
	// forfeited deposits leave the voting supply entirely
	l.s.header.TotalDeposit -= amount
	return nil
}

// GovContract is the reserved contract name resolving to the engine
// itself; a passed poll may reconfigure governance through it.
const GovContract = "gov"

// MsgExecFunc applies one passed-poll message against the state.
type MsgExecFunc func(s *State, msg json.RawMessage) error

// RegisterExecutor routes messages addressed to contract through fn.
func (s *State) RegisterExecutor(contract string, fn MsgExecFunc) {
	s.executors[contract] = fn
}

func (s *State) dispatchMsg(m types.ExecuteMsg) error {
	fn, ok := s.executors[m.Contract]
	if !ok {
		return fmt.Errorf("no executor for contract %s", m.Contract)
	}
	return fn(s, m.Msg)
}

type govUpdateConfigMsg struct {
	UpdateConfig *configPatch `json:"update_config"`
}

type configPatch struct {
	Owner             *string `json:"owner,omitempty"`
	Quorum            *uint64 `json:"quorum,omitempty"`
	Threshold         *uint64 `json:"threshold,omitempty"`
	VotingPeriod      *uint64 `json:"voting_period,omitempty"`
	TimelockPeriod    *uint64 `json:"timelock_period,omitempty"`
	MinDeposit        *uint64 `json:"min_deposit,omitempty"`
	AllowEmptyPolls   *bool   `json:"allow_empty_polls,omitempty"`
	RefundWhenExpired *bool   `json:"refund_when_expired,omitempty"`
}

// executeGovMsg is the built-in executor for the gov contract. The only
// message it understands is update_config.
func executeGovMsg(s *State, raw json.RawMessage) error {
	var m govUpdateConfigMsg
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}
	if m.UpdateConfig == nil {
		return fmt.Errorf("unknown gov msg")
	}
	return s.applyConfigPatch(m.UpdateConfig)
}

func (s *State) applyConfigPatch(p *configPatch) error {
	cfg := *s.govConfig
	if p.Owner != nil {
		cfg.Owner = *p.Owner
	}
	if p.Quorum != nil {
		cfg.Quorum = *p.Quorum
	}
	if p.Threshold != nil {
		cfg.Threshold = *p.Threshold
	}
	if p.VotingPeriod != nil {
		cfg.VotingPeriod = *p.VotingPeriod
	}
	if p.TimelockPeriod != nil {
		cfg.TimelockPeriod = *p.TimelockPeriod
	}
	if p.MinDeposit != nil {
		cfg.MinDeposit = *p.MinDeposit
	}
	if p.AllowEmptyPolls != nil {
		cfg.AllowEmptyPolls = *p.AllowEmptyPolls
	}
	if p.RefundWhenExpired != nil {
		cfg.RefundWhenExpired = *p.RefundWhenExpired
	}
	return s.SetConfig(&cfg)
}
