package tx

import "errors"

type GovTxType uint8

const (
	GovTxTypeUnknown      GovTxType = 0
	GovTxTypeCreatePoll   GovTxType = 1
	GovTxTypeCastVote     GovTxType = 2
	GovTxTypeEndPoll      GovTxType = 3
	GovTxTypeExecutePoll  GovTxType = 4
	GovTxTypeUpdateConfig GovTxType = 5
	GovTxTypeStake        GovTxType = 6
	GovTxTypeUnstake      GovTxType = 7
)

const (
	GovTxVersion0 uint8 = 0
	GovTxVersion1 uint8 = 1
)

var (
	ErrInvalidTx         = errors.New("invalid tx")
	ErrUnsupportedTxType = errors.New("unsupported tx type")
	ErrUnmatchedTxType   = errors.New("unmatched tx type")

	ErrUnsupportedTxVersion = errors.New("unsupported tx version")
)
