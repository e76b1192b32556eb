package state

import (
	"errors"
	"sort"

	txtypes "github.com/ezaanm/anchor-token-contracts/tx"
	"github.com/ezaanm/anchor-token-contracts/types"
)

const (
	MinTitleLength       = 4
	MaxTitleLength       = 64
	MinDescriptionLength = 4
	MaxDescriptionLength = 1024
	MinLinkLength        = 12
	MaxLinkLength        = 128
)

var (
	ErrInvalidTitle       = errors.New("title length must be within limits")
	ErrInvalidDescription = errors.New("description length must be within limits")
	ErrInvalidLink        = errors.New("link length must be within limits")
	ErrZeroAmount         = errors.New("amount must be positive")
)

func validatePollText(title, description, link string) error {
	if len(title) < MinTitleLength || len(title) > MaxTitleLength {
		return ErrInvalidTitle
	}
	if len(description) < MinDescriptionLength || len(description) > MaxDescriptionLength {
		return ErrInvalidDescription
	}
	if link != "" && (len(link) < MinLinkLength || len(link) > MaxLinkLength) {
		return ErrInvalidLink
	}
	return nil
}

// CreatePoll opens a new poll at the current height. The deposit moves
// into escrow before the supply snapshot is taken, so the creator's own
// deposit never counts toward quorum.
func (s *State) CreatePoll(sender uint64, ptx *txtypes.CreatePollTx, height uint64, now int64, checkOnly bool) (*types.EventPoll, error) {
	cfg := s.govConfig
	if cfg == nil {
		return nil, ErrNotFound
	}
	if err := validatePollText(ptx.Title, ptx.Description, ptx.Link); err != nil {
		return nil, err
	}
	if ptx.Deposit < cfg.MinDeposit {
		return nil, ErrInsufficientDeposit
	}
	if len(ptx.ExecuteMsgs) == 0 && !cfg.AllowEmptyPolls {
		return nil, ErrEmptyPoll
	}
	creator, err := s.GetAccount(sender)
	if err != nil {
		return nil, err
	}
	creator = creator.Clone()
	creator.pruneLocks(height)
	if creator.Stake < ptx.Deposit || creator.Stake-ptx.Deposit < creator.maxLocked() {
		return nil, ErrInsufficientStake
	}
	if checkOnly {
		return nil, nil
	}

	if err = s.ledger.Escrow(sender, ptx.Deposit); err != nil {
		return nil, err
	}
	// re-read after escrow so the nonce bump keeps the debited stake
	creator, err = s.GetAccount(sender)
	if err != nil {
		return nil, err
	}
	creator = creator.Clone()

	msgs := make([]types.ExecuteMsg, len(ptx.ExecuteMsgs))
	copy(msgs, ptx.ExecuteMsgs)
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Order < msgs[j].Order })

	s.pollMaxIndex += 1
	poll := &types.Poll{
		Id:             s.pollMaxIndex,
		Creator:        sender,
		CreatorAddress: creator.Address(),
		DepositAmount:  ptx.Deposit,
		Title:          ptx.Title,
		Description:    ptx.Description,
		Link:           ptx.Link,
		ExecuteMsgs:    msgs,
		StartHeight:    height,
		StartTime:      now,
		EndHeight:      height + cfg.VotingPeriod,
		Status:         types.PollStatusInProgress,
		SnapshotSupply: s.header.TotalStake,
		Params:         cfg.PollSnapshot(),
	}
	s.setPoll(poll)
	s.touchAccount(creator)

	return &types.EventPoll{
		Poll:           poll.Id,
		Creator:        sender,
		CreatorAddress: poll.CreatorAddress,
		Deposit:        poll.DepositAmount,
		EndHeight:      poll.EndHeight,
		Title:          poll.Title,
		Link:           poll.Link,
		SnapshotSupply: poll.SnapshotSupply,
	}, nil
}

// CastVote records a ballot with the voter's full current stake as its
// weight. The weight is frozen here; later stake changes never touch
// the poll's running totals. The voting window is closed at EndHeight.
func (s *State) CastVote(sender uint64, vtx *txtypes.CastVoteTx, height uint64, checkOnly bool) (*types.EventVote, error) {
	if !vtx.Option.Valid() {
		return nil, ErrInvalidVoteOption
	}
	poll, err := s.GetPoll(vtx.Poll)
	if err != nil {
		return nil, err
	}
	if poll.Status != types.PollStatusInProgress {
		return nil, ErrPollNotInProgress
	}
	if height >= poll.EndHeight {
		return nil, ErrPollNotInProgress
	}
	voter, err := s.GetAccount(sender)
	if err != nil {
		return nil, err
	}
	voter = voter.Clone()
	voter.pruneLocks(height)
	if voter.Stake == 0 {
		return nil, ErrNoVotingPower
	}
	prev, err := s.GetVote(vtx.Poll, voter.Address())
	if err != nil {
		return nil, err
	}
	if prev != nil {
		return nil, ErrAlreadyVoted
	}
	if checkOnly {
		return nil, nil
	}

	weight := voter.Stake
	switch vtx.Option {
	case types.VoteOptionYes:
		poll.YesVotes += weight
	case types.VoteOptionNo:
		poll.NoVotes += weight
	case types.VoteOptionAbstain:
		poll.AbstainVotes += weight
	}
	s.setPoll(poll)

	vote := &types.Vote{
		Poll:         poll.Id,
		Voter:        sender,
		VoterAddress: voter.Address(),
		Option:       vtx.Option,
		Weight:       weight,
		Height:       height,
		LockedUntil:  poll.EndHeight,
	}
	s.newVotes = append(s.newVotes, vote)

	voter.Locks = append(voter.Locks, VoteLock{Poll: poll.Id, Amount: weight, Until: poll.EndHeight})
	s.touchAccount(voter)

	return &types.EventVote{
		Poll:         poll.Id,
		Voter:        sender,
		VoterAddress: vote.VoterAddress,
		Option:       uint64(vtx.Option),
		Weight:       weight,
	}, nil
}

// EndPoll finalizes a poll whose voting window has expired. Anyone may
// call it; the tally reads only the running totals accumulated at vote
// time. On pass it refunds the creator's deposit and returns the poll's
// messages in execution order; rejected polls forfeit the deposit, and
// quorum-failed polls follow the snapshotted refund policy.
func (s *State) EndPoll(sender uint64, etx *txtypes.EndPollTx, height uint64, checkOnly bool) (*types.EventEndPoll, []types.ExecuteMsg, error) {
	poll, err := s.GetPoll(etx.Poll)
	if err != nil {
		return nil, nil, err
	}
	if poll.Status != types.PollStatusInProgress {
		return nil, nil, ErrAlreadyFinalized
	}
	if height < poll.EndHeight {
		return nil, nil, ErrVotingStillOpen
	}
	if checkOnly {
		return nil, nil, nil
	}

	outcome := tallyPoll(poll.YesVotes, poll.NoVotes, poll.AbstainVotes,
		poll.SnapshotSupply, poll.Params.Quorum, poll.Params.Threshold)

	event := &types.EventEndPoll{
		Poll:      poll.Id,
		TotalCast: poll.YesVotes + poll.NoVotes + poll.AbstainVotes,
	}
	poll.TotalCastAtEnd = event.TotalCast

	var msgs []types.ExecuteMsg
	switch outcome {
	case OutcomePassed:
		poll.Status = types.PollStatusPassed
		event.Passed = true
		msgs = make([]types.ExecuteMsg, len(poll.ExecuteMsgs))
		copy(msgs, poll.ExecuteMsgs)
		if err = s.ledger.Refund(poll.Creator, poll.DepositAmount); err != nil {
			return nil, nil, err
		}
	case OutcomeRejected:
		poll.Status = types.PollStatusRejected
		event.RejectedReason = "threshold not reached"
		if err = s.ledger.Forfeit(poll.DepositAmount); err != nil {
			return nil, nil, err
		}
	case OutcomeExpired:
		poll.Status = types.PollStatusExpired
		event.RejectedReason = "quorum not reached"
		if poll.Params.RefundWhenExpired {
			err = s.ledger.Refund(poll.Creator, poll.DepositAmount)
		} else {
			err = s.ledger.Forfeit(poll.DepositAmount)
		}
		if err != nil {
			return nil, nil, err
		}
	}
	event.Status = uint64(poll.Status)
	s.setPoll(poll)

	caller, err := s.GetAccount(sender)
	if err != nil {
		return nil, nil, err
	}
	s.touchAccount(caller.Clone())

	return event, msgs, nil
}

// ExecutePoll dispatches a passed poll's messages after the timelock.
// It is attempted once: a failing message flips the poll to the
// execution-failed terminal status instead of failing the transaction,
// so the state transition still commits and the error is surfaced in
// the event.
func (s *State) ExecutePoll(sender uint64, xtx *txtypes.ExecutePollTx, height uint64, checkOnly bool) (*types.EventExecutePoll, error) {
	poll, err := s.GetPoll(xtx.Poll)
	if err != nil {
		return nil, err
	}
	if poll.Status != types.PollStatusPassed {
		return nil, ErrPollNotPassed
	}
	if height < poll.EndHeight+poll.Params.TimelockPeriod {
		return nil, ErrTimelockNotExpired
	}
	if checkOnly {
		return nil, nil
	}

	event := &types.EventExecutePoll{Poll: poll.Id}
	var execErr error
	for _, m := range poll.ExecuteMsgs {
		if execErr = s.dispatchMsg(m); execErr != nil {
			break
		}
	}
	if execErr != nil {
		poll.Status = types.PollStatusExecFailed
		poll.ExecuteError = execErr.Error()
		event.Error = poll.ExecuteError
	} else {
		poll.Status = types.PollStatusExecuted
		event.Executed = true
	}
	event.Status = uint64(poll.Status)
	s.setPoll(poll)

	caller, err := s.GetAccount(sender)
	if err != nil {
		return nil, err
	}
	s.touchAccount(caller.Clone())

	return event, nil
}

// UpdateConfig applies a partial config change from the stored owner.
// Polls already open keep their creation-time snapshot.
func (s *State) UpdateConfig(sender uint64, utx *txtypes.UpdateConfigTx, checkOnly bool) (*types.EventUpdateConfig, error) {
	cfg := s.govConfig
	if cfg == nil {
		return nil, ErrNotFound
	}
	a, err := s.GetAccount(sender)
	if err != nil {
		return nil, err
	}
	if a.Address() != cfg.Owner {
		return nil, ErrUnauthorized
	}
	patch := &configPatch{
		Owner:             utx.Owner,
		Quorum:            utx.Quorum,
		Threshold:         utx.Threshold,
		VotingPeriod:      utx.VotingPeriod,
		TimelockPeriod:    utx.TimelockPeriod,
		MinDeposit:        utx.MinDeposit,
		AllowEmptyPolls:   utx.AllowEmptyPolls,
		RefundWhenExpired: utx.RefundWhenExpired,
	}
	if checkOnly {
		trial := *s.govConfig
		trialState := &State{govConfig: &trial}
		return nil, trialState.applyConfigPatch(patch)
	}
	if err = s.applyConfigPatch(patch); err != nil {
		return nil, err
	}
	s.touchAccount(a.Clone())
	ncfg := s.govConfig
	return &types.EventUpdateConfig{
		Owner:        ncfg.Owner,
		Quorum:       ncfg.Quorum,
		Threshold:    ncfg.Threshold,
		VotingPeriod: ncfg.VotingPeriod,
		MinDeposit:   ncfg.MinDeposit,
	}, nil
}

// Stake credits newly bonded balance to the sender.
func (s *State) Stake(sender uint64, amount uint64, checkOnly bool) (*types.EventStake, error) {
	if amount == 0 {
		return nil, ErrZeroAmount
	}
	a, err := s.GetAccount(sender)
	if err != nil {
		return nil, err
	}
	if checkOnly {
		return nil, nil
	}
	a = a.Clone()
	a.Stake += amount
	s.header.TotalStake += amount
	s.touchAccount(a)
	return &types.EventStake{
		Account: sender,
		Address: a.Address(),
		Amount:  amount,
	}, nil
}

// Unstake releases bonded balance not locked by live votes or escrow.
func (s *State) Unstake(sender uint64, amount uint64, height uint64, checkOnly bool) (*types.EventStake, error) {
	if amount == 0 {
		return nil, ErrZeroAmount
	}
	a, err := s.GetAccount(sender)
	if err != nil {
		return nil, err
	}
	a = a.Clone()
	a.pruneLocks(height)
	if a.Stake < amount {
		return nil, ErrInsufficientStake
	}
	if a.Stake-amount < a.maxLocked() {
		return nil, ErrStakeLocked
	}
	if checkOnly {
		return nil, nil
	}
	a.Stake -= amount
	s.header.TotalStake -= amount
	s.touchAccount(a)
	return &types.EventStake{
		Account: sender,
		Address: a.Address(),
		Amount:  amount,
		Unstake: true,
	}, nil
}
