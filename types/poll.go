package types

import "encoding/json"

type PollStatus uint64

const (
	PollStatusInProgress PollStatus = 1
	PollStatusPassed     PollStatus = 2
	PollStatusRejected   PollStatus = 3
	PollStatusExpired    PollStatus = 4
	PollStatusExecuted   PollStatus = 5
	PollStatusExecFailed PollStatus = 6
)

func (s PollStatus) String() string {
	switch s {
	case PollStatusInProgress:
		return "in_progress"
	case PollStatusPassed:
		return "passed"
	case PollStatusRejected:
		return "rejected"
	case PollStatusExpired:
		return "expired"
	case PollStatusExecuted:
		return "executed"
	case PollStatusExecFailed:
		return "execution_failed"
	}
	return "unknown"
}

// Terminal reports whether the poll has been finalized. Every status
// except InProgress is the result of exactly one EndPoll call.
func (s PollStatus) Terminal() bool {
	return s != PollStatusInProgress && s != 0
}

type VoteOption uint64

const (
	VoteOptionYes     VoteOption = 1
	VoteOptionNo      VoteOption = 2
	VoteOptionAbstain VoteOption = 3
)

func (o VoteOption) String() string {
	switch o {
	case VoteOptionYes:
		return "yes"
	case VoteOptionNo:
		return "no"
	case VoteOptionAbstain:
		return "abstain"
	}
	return "unknown"
}

func (o VoteOption) Valid() bool {
	return o == VoteOptionYes || o == VoteOptionNo || o == VoteOptionAbstain
}

// ExecuteMsg is an opaque command descriptor attached to a poll. The
// engine never interprets Msg; it only orders the batch by Order and
// hands it to the host executor when the poll passes.
type ExecuteMsg struct {
	Order    uint64          `json:"order"`
	Contract string          `json:"contract"`
	Msg      json.RawMessage `json:"msg"`
}

// PollParams is the value snapshot of the governance parameters a poll
// is tallied against. It is fixed at creation so config updates never
// retroactively change the outcome of an in-flight poll.
type PollParams struct {
	Quorum            uint64 `json:"quorum"`    // basis points of snapshot supply
	Threshold         uint64 `json:"threshold"` // basis points of yes+no weight
	TimelockPeriod    uint64 `json:"timelock_period"`
	RefundWhenExpired bool   `json:"refund_when_expired"`
}

type Poll struct {
	Id             uint64       `json:"id"`
	Creator        uint64       `json:"creator"`
	CreatorAddress string       `json:"creator_address"`
	DepositAmount  uint64       `json:"deposit_amount"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Link           string       `json:"link,omitempty"`
	ExecuteMsgs    []ExecuteMsg `json:"execute_msgs,omitempty"`
	StartHeight    uint64       `json:"start_height"`
	StartTime      int64        `json:"start_time"`
	EndHeight      uint64       `json:"end_height"`
	Status         PollStatus   `json:"status"`
	YesVotes       uint64       `json:"yes_votes"`
	NoVotes        uint64       `json:"no_votes"`
	AbstainVotes   uint64       `json:"abstain_votes"`
	SnapshotSupply uint64       `json:"snapshot_supply"`
	Params         PollParams   `json:"params"`
	TotalCastAtEnd uint64       `json:"total_cast_at_end,omitempty"`
	ExecuteError   string       `json:"execute_error,omitempty"`
}

type Vote struct {
	Poll         uint64     `json:"poll"`
	Voter        uint64     `json:"voter"`
	VoterAddress string     `json:"voter_address"`
	Option       VoteOption `json:"option"`
	Weight       uint64     `json:"weight"`
	Height       uint64     `json:"height"`
	LockedUntil  uint64     `json:"locked_until"`
}

// GovConfig is the mutable singleton; only the Owner address may change
// it, and changes apply solely to polls created afterwards.
type GovConfig struct {
	Owner             string `json:"owner"`
	Quorum            uint64 `json:"quorum"`
	Threshold         uint64 `json:"threshold"`
	VotingPeriod      uint64 `json:"voting_period"`
	TimelockPeriod    uint64 `json:"timelock_period"`
	MinDeposit        uint64 `json:"min_deposit"`
	AllowEmptyPolls   bool   `json:"allow_empty_polls"`
	RefundWhenExpired bool   `json:"refund_when_expired"`
}

// PollSnapshot fixes the tally-relevant parameters for a new poll.
func (c *GovConfig) PollSnapshot() PollParams {
	return PollParams{
		Quorum:            c.Quorum,
		Threshold:         c.Threshold,
		TimelockPeriod:    c.TimelockPeriod,
		RefundWhenExpired: c.RefundWhenExpired,
	}
}
