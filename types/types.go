package types

import (
	"fmt"
	"strconv"

	abci "github.com/cometbft/cometbft/abci/types"
)

const (
	EventPollType         = "create_poll"
	EventVoteType         = "cast_vote"
	EventEndPollType      = "end_poll"
	EventExecutePollType  = "execute_poll"
	EventUpdateConfigType = "update_config"
	EventStakeType        = "stake"
)

const (
	FlagHome      = "home"
	FlagChainID   = "chain-id"
	FlagOverwrite = "overwrite"
)

type EventPoll struct {
	Poll           uint64 `json:"poll"`
	Creator        uint64 `json:"creatorIndex"`
	CreatorAddress string `json:"creatorAddress"`
	Deposit        uint64 `json:"deposit"`
	EndHeight      uint64 `json:"endHeight"`
	Title          string `json:"title"`
	Link           string `json:"link"`
	SnapshotSupply uint64 `json:"snapshotSupply"`
}

func EncodeEventPoll(event *EventPoll) abci.Event {
	return abci.Event{
		Type: EventPollType,
		Attributes: []abci.EventAttribute{
			{Key: "poll", Value: fmt.Sprintf("%v", event.Poll), Index: true},
			{Key: "creator", Value: fmt.Sprintf("%v", event.Creator), Index: true},
			{Key: "creatorAddress", Value: event.CreatorAddress, Index: false},
			{Key: "deposit", Value: fmt.Sprintf("%v", event.Deposit), Index: false},
			{Key: "endHeight", Value: fmt.Sprintf("%v", event.EndHeight), Index: false},
			{Key: "title", Value: event.Title, Index: false},
			{Key: "link", Value: event.Link, Index: false},
			{Key: "snapshotSupply", Value: fmt.Sprintf("%v", event.SnapshotSupply), Index: false},
		},
	}
}

func DecodeEventPoll(originEvent abci.Event) *EventPoll {
	event := &EventPoll{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "poll":
			poll, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Poll = poll
		case "creator":
			creator, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Creator = creator
		case "creatorAddress":
			event.CreatorAddress = v.Value
		case "deposit":
			deposit, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Deposit = deposit
		case "endHeight":
			endHeight, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.EndHeight = endHeight
		case "title":
			event.Title = v.Value
		case "link":
			event.Link = v.Value
		case "snapshotSupply":
			supply, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.SnapshotSupply = supply
		}
	}
	return event
}

type EventVote struct {
	Poll         uint64 `json:"poll"`
	Voter        uint64 `json:"voterIndex"`
	VoterAddress string `json:"voterAddress"`
	Option       uint64 `json:"option"`
	Weight       uint64 `json:"weight"`
}

func EncodeEventVote(event *EventVote) abci.Event {
	return abci.Event{
		Type: EventVoteType,
		Attributes: []abci.EventAttribute{
			{Key: "poll", Value: fmt.Sprintf("%v", event.Poll), Index: true},
			{Key: "voter", Value: fmt.Sprintf("%v", event.Voter), Index: true},
			{Key: "voterAddress", Value: event.VoterAddress, Index: false},
			{Key: "option", Value: fmt.Sprintf("%v", event.Option), Index: false},
			{Key: "weight", Value: fmt.Sprintf("%v", event.Weight), Index: false},
		},
	}
}

func DecodeEventVote(originEvent abci.Event) *EventVote {
	event := &EventVote{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "poll":
			poll, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Poll = poll
		case "voter":
			voter, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Voter = voter
		case "voterAddress":
			event.VoterAddress = v.Value
		case "option":
			option, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Option = option
		case "weight":
			weight, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Weight = weight
		}
	}
	return event
}

type EventEndPoll struct {
	Poll           uint64 `json:"poll"`
	Status         uint64 `json:"status"`
	Passed         bool   `json:"passed"`
	RejectedReason string `json:"rejectedReason"`
	TotalCast      uint64 `json:"totalCast"`
}

func EncodeEventEndPoll(event *EventEndPoll) abci.Event {
	return abci.Event{
		Type: EventEndPollType,
		Attributes: []abci.EventAttribute{
			{Key: "poll", Value: fmt.Sprintf("%v", event.Poll), Index: true},
			{Key: "status", Value: fmt.Sprintf("%v", event.Status), Index: true},
			{Key: "passed", Value: fmt.Sprintf("%v", event.Passed), Index: false},
			{Key: "rejectedReason", Value: event.RejectedReason, Index: false},
			{Key: "totalCast", Value: fmt.Sprintf("%v", event.TotalCast), Index: false},
		},
	}
}

func DecodeEventEndPoll(originEvent abci.Event) *EventEndPoll {
	event := &EventEndPoll{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "poll":
			poll, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Poll = poll
		case "status":
			status, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Status = status
		case "passed":
			passed, err := strconv.ParseBool(v.Value)
			if err != nil {
				return nil
			}
			event.Passed = passed
		case "rejectedReason":
			event.RejectedReason = v.Value
		case "totalCast":
			totalCast, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.TotalCast = totalCast
		}
	}
	return event
}

type EventExecutePoll struct {
	Poll     uint64 `json:"poll"`
	Status   uint64 `json:"status"`
	Executed bool   `json:"executed"`
	Error    string `json:"error"`
}

func EncodeEventExecutePoll(event *EventExecutePoll) abci.Event {
	return abci.Event{
		Type: EventExecutePollType,
		Attributes: []abci.EventAttribute{
			{Key: "poll", Value: fmt.Sprintf("%v", event.Poll), Index: true},
			{Key: "status", Value: fmt.Sprintf("%v", event.Status), Index: false},
			{Key: "executed", Value: fmt.Sprintf("%v", event.Executed), Index: false},
			{Key: "error", Value: event.Error, Index: false},
		},
	}
}

func DecodeEventExecutePoll(originEvent abci.Event) *EventExecutePoll {
	event := &EventExecutePoll{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "poll":
			poll, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Poll = poll
		case "status":
			status, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Status = status
		case "executed":
			executed, err := strconv.ParseBool(v.Value)
			if err != nil {
				return nil
			}
			event.Executed = executed
		case "error":
			event.Error = v.Value
		}
	}
	return event
}

type EventUpdateConfig struct {
	Owner        string `json:"owner"`
	Quorum       uint64 `json:"quorum"`
	Threshold    uint64 `json:"threshold"`
	VotingPeriod uint64 `json:"votingPeriod"`
	MinDeposit   uint64 `json:"minDeposit"`
}

func EncodeEventUpdateConfig(event *EventUpdateConfig) abci.Event {
	return abci.Event{
		Type: EventUpdateConfigType,
		Attributes: []abci.EventAttribute{
			{Key: "owner", Value: event.Owner, Index: false},
			{Key: "quorum", Value: fmt.Sprintf("%v", event.Quorum), Index: false},
			{Key: "threshold", Value: fmt.Sprintf("%v", event.Threshold), Index: false},
			{Key: "votingPeriod", Value: fmt.Sprintf("%v", event.VotingPeriod), Index: false},
			{Key: "minDeposit", Value: fmt.Sprintf("%v", event.MinDeposit), Index: false},
		},
	}
}

func DecodeEventUpdateConfig(originEvent abci.Event) *EventUpdateConfig {
	event := &EventUpdateConfig{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "owner":
			event.Owner = v.Value
		case "quorum":
			quorum, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Quorum = quorum
		case "threshold":
			threshold, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Threshold = threshold
		case "votingPeriod":
			votingPeriod, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.VotingPeriod = votingPeriod
		case "minDeposit":
			minDeposit, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.MinDeposit = minDeposit
		}
	}
	return event
}

type EventStake struct {
	Account uint64 `json:"accountIndex"`
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
	Unstake bool   `json:"unstake"`
}

func EncodeEventStake(event *EventStake) abci.Event {
	return abci.Event{
		Type: EventStakeType,
		Attributes: []abci.EventAttribute{
			{Key: "account", Value: fmt.Sprintf("%v", event.Account), Index: true},
			{Key: "address", Value: event.Address, Index: false},
			{Key: "amount", Value: fmt.Sprintf("%v", event.Amount), Index: false},
			{Key: "unstake", Value: fmt.Sprintf("%v", event.Unstake), Index: false},
		},
	}
}

func DecodeEventStake(originEvent abci.Event) *EventStake {
	event := &EventStake{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "account":
			account, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Account = account
		case "address":
			event.Address = v.Value
		case "amount":
			amount, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Amount = amount
		case "unstake":
			unstake, err := strconv.ParseBool(v.Value)
			if err != nil {
				return nil
			}
			event.Unstake = unstake
		}
	}
	return event
}
