package tx

import (
	"encoding/json"

	"github.com/ezaanm/anchor-token-contracts/types"
)

// GovTx is the signed envelope every governance action travels in. The
// host runtime delivers envelopes one at a time; Sender is the account
// index whose nonce and signature are checked against state.
type GovTx struct {
	Version uint8     `json:"version"`
	Type    GovTxType `json:"type"`
	Nonce   uint64    `json:"nonce"`
	Sender  uint64    `json:"sender"`
	Tx      any       `json:"tx"`
	Sig     [][]byte  `json:"sig"`
}

type CreatePollTx struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Link        string             `json:"link,omitempty"`
	Deposit     uint64             `json:"deposit"`
	ExecuteMsgs []types.ExecuteMsg `json:"execute_msgs,omitempty"`
}

type CastVoteTx struct {
	Poll   uint64           `json:"poll"`
	Option types.VoteOption `json:"option"`
}

type EndPollTx struct {
	Poll uint64 `json:"poll"`
}

type ExecutePollTx struct {
	Poll uint64 `json:"poll"`
}

// UpdateConfigTx carries a partial update; nil fields keep the current
// value. Only the stored owner address may send it.
type UpdateConfigTx struct {
	Owner             *string `json:"owner,omitempty"`
	Quorum            *uint64 `json:"quorum,omitempty"`
	Threshold         *uint64 `json:"threshold,omitempty"`
	VotingPeriod      *uint64 `json:"voting_period,omitempty"`
	TimelockPeriod    *uint64 `json:"timelock_period,omitempty"`
	MinDeposit        *uint64 `json:"min_deposit,omitempty"`
	AllowEmptyPolls   *bool   `json:"allow_empty_polls,omitempty"`
	RefundWhenExpired *bool   `json:"refund_when_expired,omitempty"`
}

type StakeTx struct {
	Amount uint64 `json:"amount"`
}

type UnstakeTx struct {
	Amount uint64 `json:"amount"`
}

type govTxTmpl[Tx any] struct {
	Version uint8     `json:"version"`
	Type    GovTxType `json:"type"`
	Nonce   uint64    `json:"nonce"`
	Sender  uint64    `json:"sender"`
	Tx      Tx        `json:"tx"`
	Sig     [][]byte  `json:"sig"`
}

// SigData is the byte string a sender signs: the envelope with the
// signature slot replaced by the chain id, so signatures cannot be
// replayed across chains.
func (tx *GovTx) SigData(ext []byte) (dat []byte, err error) {
	ntx := *tx
	ntx.Sig = [][]byte{ext}
	dat, err = json.Marshal(ntx)
	return
}

func parseGovTxType(dat []byte) GovTxType {
	var tx struct {
		Type GovTxType `json:"type"`
	}
	err := json.Unmarshal(dat, &tx)
	if err != nil {
		return GovTxTypeUnknown
	}
	return tx.Type
}

func unmarshalGovTx[Tx any](dat []byte) (btx *GovTx, err error) {
	var txt govTxTmpl[Tx]
	err = json.Unmarshal(dat, &txt)
	if err != nil {
		return
	}
	btx = new(GovTx)
	btx.Version = txt.Version
	btx.Type = txt.Type
	btx.Nonce = txt.Nonce
	btx.Sender = txt.Sender
	btx.Tx = &txt.Tx
	btx.Sig = txt.Sig
	return
}

func UnmarshalGovTx(dat []byte) (btx *GovTx, err error) {
	tp := parseGovTxType(dat)
	switch tp {
	case GovTxTypeCreatePoll:
		return unmarshalGovTx[CreatePollTx](dat)
	case GovTxTypeCastVote:
		return unmarshalGovTx[CastVoteTx](dat)
	case GovTxTypeEndPoll:
		return unmarshalGovTx[EndPollTx](dat)
	case GovTxTypeExecutePoll:
		return unmarshalGovTx[ExecutePollTx](dat)
	case GovTxTypeUpdateConfig:
		return unmarshalGovTx[UpdateConfigTx](dat)
	case GovTxTypeStake:
		return unmarshalGovTx[StakeTx](dat)
	case GovTxTypeUnstake:
		return unmarshalGovTx[UnstakeTx](dat)
	default:
		err = ErrUnsupportedTxType
	}
	return
}

func MarshalGovTx(btx *GovTx) (dat []byte, err error) {
	return json.Marshal(btx)
}
