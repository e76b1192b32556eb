package state

import (
	"encoding/json"
	"testing"

	txtypes "github.com/ezaanm/anchor-token-contracts/tx"
	"github.com/ezaanm/anchor-token-contracts/types"
	"github.com/cometbft/cometbft/crypto/ed25519"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/cosmos/iavl"
	dbm "github.com/cosmos/iavl/db"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	logger := cmtlog.NewNopLogger()
	tree := iavl.NewMutableTree(dbm.NewMemDB(), 128, true, TreeLogger(logger))
	s := newState(tree, logger)
	s.SetChainId("gov-test")
	return s
}

func addTestAccount(t *testing.T, s *State, stake uint64) *Account {
	t.Helper()
	var a Account
	a.SetPubKey(ed25519.GenPrivKey().PubKey().Bytes())
	a.Stake = stake
	require.NoError(t, s.AddAccount(&a))
	acnt, err := s.GetAccount(a.Index)
	require.NoError(t, err)
	return acnt
}

func testConfig(owner string) *types.GovConfig {
	return &types.GovConfig{
		Owner:             owner,
		Quorum:            3000,
		Threshold:         5000,
		VotingPeriod:      100,
		TimelockPeriod:    10,
		MinDeposit:        100,
		AllowEmptyPolls:   true,
		RefundWhenExpired: false,
	}
}

func newPollTx(deposit uint64, msgs ...types.ExecuteMsg) *txtypes.CreatePollTx {
	return &txtypes.CreatePollTx{
		Title:       "gov poll",
		Description: "a poll for testing",
		Deposit:     deposit,
		ExecuteMsgs: msgs,
	}
}

func TestCreatePoll(t *testing.T) {
	s := newTestState(t)
	creator := addTestAccount(t, s, 400)
	addTestAccount(t, s, 300)
	addTestAccount(t, s, 300)
	require.NoError(t, s.SetConfig(testConfig(creator.Address())))

	ev, err := s.CreatePoll(creator.Index, newPollTx(100), 10, 1700000000, false)
	require.NoError(t, err)
	require.NotNil(t, ev)
	require.Equal(t, uint64(1), ev.Poll)

	poll, err := s.GetPoll(1)
	require.NoError(t, err)
	require.Equal(t, types.PollStatusInProgress, poll.Status)
	require.Equal(t, uint64(110), poll.EndHeight)
	// the escrowed deposit leaves the voting supply before the snapshot
	require.Equal(t, uint64(900), poll.SnapshotSupply)
	require.Equal(t, uint64(900), s.Header().TotalStake)
	require.Equal(t, uint64(100), s.Header().TotalDeposit)

	a, err := s.GetAccount(creator.Index)
	require.NoError(t, err)
	require.Equal(t, uint64(300), a.Stake)
	require.Equal(t, uint64(1), a.Nonce)

	// params are frozen at creation
	require.Equal(t, uint64(3000), poll.Params.Quorum)
	require.Equal(t, uint64(5000), poll.Params.Threshold)
}

func TestCreatePollValidation(t *testing.T) {
	s := newTestState(t)
	creator := addTestAccount(t, s, 400)
	cfg := testConfig(creator.Address())
	require.NoError(t, s.SetConfig(cfg))

	ptx := newPollTx(100)
	ptx.Title = "ab"
	_, err := s.CreatePoll(creator.Index, ptx, 10, 0, false)
	require.ErrorIs(t, err, ErrInvalidTitle)

	ptx = newPollTx(100)
	ptx.Description = "x"
	_, err = s.CreatePoll(creator.Index, ptx, 10, 0, false)
	require.ErrorIs(t, err, ErrInvalidDescription)

	ptx = newPollTx(100)
	ptx.Link = "short"
	_, err = s.CreatePoll(creator.Index, ptx, 10, 0, false)
	require.ErrorIs(t, err, ErrInvalidLink)

	_, err = s.CreatePoll(creator.Index, newPollTx(99), 10, 0, false)
	require.ErrorIs(t, err, ErrInsufficientDeposit)

	_, err = s.CreatePoll(creator.Index, newPollTx(500), 10, 0, false)
	require.ErrorIs(t, err, ErrInsufficientStake)

	cfg.AllowEmptyPolls = false
	require.NoError(t, s.SetConfig(cfg))
	_, err = s.CreatePoll(creator.Index, newPollTx(100), 10, 0, false)
	require.ErrorIs(t, err, ErrEmptyPoll)

	// checkOnly leaves no trace
	cfg.AllowEmptyPolls = true
	require.NoError(t, s.SetConfig(cfg))
	_, err = s.CreatePoll(creator.Index, newPollTx(100), 10, 0, true)
	require.NoError(t, err)
	require.Equal(t, uint64(0), s.PollCount())
}

func TestCastVote(t *testing.T) {
	s := newTestState(t)
	creator := addTestAccount(t, s, 400)
	voter := addTestAccount(t, s, 300)
	broke := addTestAccount(t, s, 0)
	require.NoError(t, s.SetConfig(testConfig(creator.Address())))
	_, err := s.CreatePoll(creator.Index, newPollTx(100), 10, 0, false)
	require.NoError(t, err)

	vtx := &txtypes.CastVoteTx{Poll: 1, Option: types.VoteOptionYes}
	ev, err := s.CastVote(voter.Index, vtx, 50, false)
	require.NoError(t, err)
	require.Equal(t, uint64(300), ev.Weight)

	poll, err := s.GetPoll(1)
	require.NoError(t, err)
	require.Equal(t, uint64(300), poll.YesVotes)

	vote, err := s.GetVote(1, voter.Address())
	require.NoError(t, err)
	require.NotNil(t, vote)
	require.Equal(t, uint64(110), vote.LockedUntil)

	_, err = s.CastVote(voter.Index, vtx, 60, false)
	require.ErrorIs(t, err, ErrAlreadyVoted)

	_, err = s.CastVote(broke.Index, vtx, 60, false)
	require.ErrorIs(t, err, ErrNoVotingPower)

	_, err = s.CastVote(creator.Index, &txtypes.CastVoteTx{Poll: 1, Option: 9}, 60, false)
	require.ErrorIs(t, err, ErrInvalidVoteOption)

	_, err = s.CastVote(creator.Index, &txtypes.CastVoteTx{Poll: 7, Option: types.VoteOptionNo}, 60, false)
	require.ErrorIs(t, err, ErrPollNotFound)

	// the voting window is closed at the end height
	_, err = s.CastVote(creator.Index, &txtypes.CastVoteTx{Poll: 1, Option: types.VoteOptionNo}, 110, false)
	require.ErrorIs(t, err, ErrPollNotInProgress)
}

func TestVoteWeightFrozenAtCast(t *testing.T) {
	s := newTestState(t)
	creator := addTestAccount(t, s, 400)
	voter := addTestAccount(t, s, 300)
	require.NoError(t, s.SetConfig(testConfig(creator.Address())))
	_, err := s.CreatePoll(creator.Index, newPollTx(100), 10, 0, false)
	require.NoError(t, err)

	_, err = s.CastVote(voter.Index, &txtypes.CastVoteTx{Poll: 1, Option: types.VoteOptionYes}, 50, false)
	require.NoError(t, err)

	// staking after the vote must not change the recorded totals
	_, err = s.Stake(voter.Index, 1000, false)
	require.NoError(t, err)

	poll, err := s.GetPoll(1)
	require.NoError(t, err)
	require.Equal(t, uint64(300), poll.YesVotes)
	vote, err := s.GetVote(1, voter.Address())
	require.NoError(t, err)
	require.Equal(t, uint64(300), vote.Weight)
}

func TestEndPollPassedRefundsDeposit(t *testing.T) {
	s := newTestState(t)
	creator := addTestAccount(t, s, 400)
	voterA := addTestAccount(t, s, 300)
	voterB := addTestAccount(t, s, 300)
	require.NoError(t, s.SetConfig(testConfig(creator.Address())))

	msg := types.ExecuteMsg{Order: 1, Contract: GovContract, Msg: json.RawMessage(`{"update_config":{"quorum":4000}}`)}
	_, err := s.CreatePoll(creator.Index, newPollTx(100, msg), 10, 0, false)
	require.NoError(t, err)

	_, err = s.CastVote(voterA.Index, &txtypes.CastVoteTx{Poll: 1, Option: types.VoteOptionYes}, 50, false)
	require.NoError(t, err)
	_, err = s.CastVote(voterB.Index, &txtypes.CastVoteTx{Poll: 1, Option: types.VoteOptionNo}, 51, false)
	require.NoError(t, err)

	_, _, err = s.EndPoll(creator.Index, &txtypes.EndPollTx{Poll: 1}, 109, false)
	require.ErrorIs(t, err, ErrVotingStillOpen)

	// 300 yes vs 300 no sits exactly at the 50% threshold, which passes
	ev, msgs, err := s.EndPoll(creator.Index, &txtypes.EndPollTx{Poll: 1}, 110, false)
	require.NoError(t, err)
	require.True(t, ev.Passed)
	require.Equal(t, uint64(types.PollStatusPassed), ev.Status)
	require.Len(t, msgs, 1)
	require.Equal(t, uint64(600), ev.TotalCast)

	a, err := s.GetAccount(creator.Index)
	require.NoError(t, err)
	require.Equal(t, uint64(400), a.Stake)
	require.Equal(t, uint64(0), s.Header().TotalDeposit)

	_, _, err = s.EndPoll(creator.Index, &txtypes.EndPollTx{Poll: 1}, 111, false)
	require.ErrorIs(t, err, ErrAlreadyFinalized)
}

func TestEndPollRejectedForfeitsDeposit(t *testing.T) {
	s := newTestState(t)
	creator := addTestAccount(t, s, 400)
	voterA := addTestAccount(t, s, 200)
	voterB := addTestAccount(t, s, 400)
	require.NoError(t, s.SetConfig(testConfig(creator.Address())))
	_, err := s.CreatePoll(creator.Index, newPollTx(100), 10, 0, false)
	require.NoError(t, err)

	_, err = s.CastVote(voterA.Index, &txtypes.CastVoteTx{Poll: 1, Option: types.VoteOptionYes}, 50, false)
	require.NoError(t, err)
	_, err = s.CastVote(voterB.Index, &txtypes.CastVoteTx{Poll: 1, Option: types.VoteOptionNo}, 51, false)
	require.NoError(t, err)

	ev, msgs, err := s.EndPoll(creator.Index, &txtypes.EndPollTx{Poll: 1}, 110, false)
	require.NoError(t, err)
	require.False(t, ev.Passed)
	require.Equal(t, uint64(types.PollStatusRejected), ev.Status)
	require.Equal(t, "threshold not reached", ev.RejectedReason)
	require.Nil(t, msgs)

	// rejected polls forfeit the escrowed deposit
	a, err := s.GetAccount(creator.Index)
	require.NoError(t, err)
	require.Equal(t, uint64(300), a.Stake)
	require.Equal(t, uint64(0), s.Header().TotalDeposit)
}

func TestEndPollPassedReturnsMsgsInOrder(t *testing.T) {
	s := newTestState(t)
	creator := addTestAccount(t, s, 400)
	voter := addTestAccount(t, s, 600)
	require.NoError(t, s.SetConfig(testConfig(creator.Address())))

	m2 := types.ExecuteMsg{Order: 2, Contract: GovContract, Msg: json.RawMessage(`{"update_config":{"threshold":6000}}`)}
	m1 := types.ExecuteMsg{Order: 1, Contract: GovContract, Msg: json.RawMessage(`{"update_config":{"quorum":4000}}`)}
	_, err := s.CreatePoll(creator.Index, newPollTx(100, m2, m1), 10, 0, false)
	require.NoError(t, err)

	_, err = s.CastVote(voter.Index, &txtypes.CastVoteTx{Poll: 1, Option: types.VoteOptionYes}, 50, false)
	require.NoError(t, err)

	ev, msgs, err := s.EndPoll(creator.Index, &txtypes.EndPollTx{Poll: 1}, 110, false)
	require.NoError(t, err)
	require.True(t, ev.Passed)
	require.Len(t, msgs, 2)
	require.Equal(t, uint64(1), msgs[0].Order)
	require.Equal(t, uint64(2), msgs[1].Order)

	poll, err := s.GetPoll(1)
	require.NoError(t, err)
	require.Equal(t, types.PollStatusPassed, poll.Status)
}

func TestEndPollExpiredForfeitsDeposit(t *testing.T) {
	s := newTestState(t)
	creator := addTestAccount(t, s, 400)
	voter := addTestAccount(t, s, 100)
	addTestAccount(t, s, 500)
	require.NoError(t, s.SetConfig(testConfig(creator.Address())))
	_, err := s.CreatePoll(creator.Index, newPollTx(100), 10, 0, false)
	require.NoError(t, err)

	// 100 of 900 cast, quorum needs 270
	_, err = s.CastVote(voter.Index, &txtypes.CastVoteTx{Poll: 1, Option: types.VoteOptionYes}, 50, false)
	require.NoError(t, err)

	ev, msgs, err := s.EndPoll(creator.Index, &txtypes.EndPollTx{Poll: 1}, 110, false)
	require.NoError(t, err)
	require.Nil(t, msgs)
	require.Equal(t, uint64(types.PollStatusExpired), ev.Status)
	require.Equal(t, "quorum not reached", ev.RejectedReason)

	a, err := s.GetAccount(creator.Index)
	require.NoError(t, err)
	require.Equal(t, uint64(300), a.Stake)
	require.Equal(t, uint64(0), s.Header().TotalDeposit)
}

func TestEndPollExpiredRefundsWhenConfigured(t *testing.T) {
	s := newTestState(t)
	creator := addTestAccount(t, s, 400)
	addTestAccount(t, s, 600)
	cfg := testConfig(creator.Address())
	cfg.RefundWhenExpired = true
	require.NoError(t, s.SetConfig(cfg))
	_, err := s.CreatePoll(creator.Index, newPollTx(100), 10, 0, false)
	require.NoError(t, err)

	_, _, err = s.EndPoll(creator.Index, &txtypes.EndPollTx{Poll: 1}, 110, false)
	require.NoError(t, err)

	a, err := s.GetAccount(creator.Index)
	require.NoError(t, err)
	require.Equal(t, uint64(400), a.Stake)
}

func TestExecutePoll(t *testing.T) {
	s := newTestState(t)
	creator := addTestAccount(t, s, 400)
	voter := addTestAccount(t, s, 600)
	require.NoError(t, s.SetConfig(testConfig(creator.Address())))

	msg := types.ExecuteMsg{Order: 1, Contract: GovContract, Msg: json.RawMessage(`{"update_config":{"quorum":4000}}`)}
	_, err := s.CreatePoll(creator.Index, newPollTx(100, msg), 10, 0, false)
	require.NoError(t, err)
	_, err = s.CastVote(voter.Index, &txtypes.CastVoteTx{Poll: 1, Option: types.VoteOptionYes}, 50, false)
	require.NoError(t, err)

	_, err = s.ExecutePoll(creator.Index, &txtypes.ExecutePollTx{Poll: 1}, 200, false)
	require.ErrorIs(t, err, ErrPollNotPassed)

	_, _, err = s.EndPoll(creator.Index, &txtypes.EndPollTx{Poll: 1}, 110, false)
	require.NoError(t, err)

	_, err = s.ExecutePoll(creator.Index, &txtypes.ExecutePollTx{Poll: 1}, 119, false)
	require.ErrorIs(t, err, ErrTimelockNotExpired)

	ev, err := s.ExecutePoll(creator.Index, &txtypes.ExecutePollTx{Poll: 1}, 120, false)
	require.NoError(t, err)
	require.True(t, ev.Executed)

	poll, err := s.GetPoll(1)
	require.NoError(t, err)
	require.Equal(t, types.PollStatusExecuted, poll.Status)
	require.Equal(t, uint64(4000), s.Config().Quorum)
}

func TestExecutePollFailureIsTerminal(t *testing.T) {
	s := newTestState(t)
	creator := addTestAccount(t, s, 400)
	voter := addTestAccount(t, s, 600)
	require.NoError(t, s.SetConfig(testConfig(creator.Address())))

	msg := types.ExecuteMsg{Order: 1, Contract: "treasury", Msg: json.RawMessage(`{"spend":{}}`)}
	_, err := s.CreatePoll(creator.Index, newPollTx(100, msg), 10, 0, false)
	require.NoError(t, err)
	_, err = s.CastVote(voter.Index, &txtypes.CastVoteTx{Poll: 1, Option: types.VoteOptionYes}, 50, false)
	require.NoError(t, err)
	_, _, err = s.EndPoll(creator.Index, &txtypes.EndPollTx{Poll: 1}, 110, false)
	require.NoError(t, err)

	ev, err := s.ExecutePoll(creator.Index, &txtypes.ExecutePollTx{Poll: 1}, 120, false)
	require.NoError(t, err)
	require.False(t, ev.Executed)
	require.NotEmpty(t, ev.Error)

	poll, err := s.GetPoll(1)
	require.NoError(t, err)
	require.Equal(t, types.PollStatusExecFailed, poll.Status)
	require.NotEmpty(t, poll.ExecuteError)

	// no second attempt
	_, err = s.ExecutePoll(creator.Index, &txtypes.ExecutePollTx{Poll: 1}, 130, false)
	require.ErrorIs(t, err, ErrPollNotPassed)
}

func TestConfigSnapshotShieldsOpenPolls(t *testing.T) {
	s := newTestState(t)
	creator := addTestAccount(t, s, 400)
	voter := addTestAccount(t, s, 600)
	require.NoError(t, s.SetConfig(testConfig(creator.Address())))
	_, err := s.CreatePoll(creator.Index, newPollTx(100), 10, 0, false)
	require.NoError(t, err)

	// raise quorum over everything the open poll could reach
	q := uint64(9999)
	_, err = s.UpdateConfig(creator.Index, &txtypes.UpdateConfigTx{Quorum: &q}, false)
	require.NoError(t, err)

	_, err = s.CastVote(voter.Index, &txtypes.CastVoteTx{Poll: 1, Option: types.VoteOptionYes}, 50, false)
	require.NoError(t, err)
	ev, _, err := s.EndPoll(creator.Index, &txtypes.EndPollTx{Poll: 1}, 110, false)
	require.NoError(t, err)
	require.True(t, ev.Passed)
}

func TestUpdateConfig(t *testing.T) {
	s := newTestState(t)
	owner := addTestAccount(t, s, 400)
	stranger := addTestAccount(t, s, 400)
	require.NoError(t, s.SetConfig(testConfig(owner.Address())))

	q := uint64(4000)
	_, err := s.UpdateConfig(stranger.Index, &txtypes.UpdateConfigTx{Quorum: &q}, false)
	require.ErrorIs(t, err, ErrUnauthorized)

	bad := uint64(20000)
	_, err = s.UpdateConfig(owner.Index, &txtypes.UpdateConfigTx{Quorum: &bad}, false)
	require.ErrorIs(t, err, ErrInvalidQuorum)

	newOwner := stranger.Address()
	ev, err := s.UpdateConfig(owner.Index, &txtypes.UpdateConfigTx{Quorum: &q, Owner: &newOwner}, false)
	require.NoError(t, err)
	require.Equal(t, uint64(4000), ev.Quorum)
	require.Equal(t, newOwner, s.Config().Owner)
	// untouched fields keep their values
	require.Equal(t, uint64(5000), s.Config().Threshold)

	_, err = s.UpdateConfig(owner.Index, &txtypes.UpdateConfigTx{Quorum: &q}, false)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestStakeUnstake(t *testing.T) {
	s := newTestState(t)
	owner := addTestAccount(t, s, 400)
	a := addTestAccount(t, s, 300)
	require.NoError(t, s.SetConfig(testConfig(owner.Address())))

	_, err := s.Stake(a.Index, 0, false)
	require.ErrorIs(t, err, ErrZeroAmount)

	_, err = s.Stake(a.Index, 200, false)
	require.NoError(t, err)
	acct, _ := s.GetAccount(a.Index)
	require.Equal(t, uint64(500), acct.Stake)
	require.Equal(t, uint64(900), s.Header().TotalStake)

	_, err = s.Unstake(a.Index, 600, 20, false)
	require.ErrorIs(t, err, ErrInsufficientStake)

	ev, err := s.Unstake(a.Index, 500, 20, false)
	require.NoError(t, err)
	require.True(t, ev.Unstake)
	acct, _ = s.GetAccount(a.Index)
	require.Equal(t, uint64(0), acct.Stake)
	require.Equal(t, uint64(400), s.Header().TotalStake)
}

func TestUnstakeLockedByLiveVote(t *testing.T) {
	s := newTestState(t)
	creator := addTestAccount(t, s, 400)
	voter := addTestAccount(t, s, 300)
	require.NoError(t, s.SetConfig(testConfig(creator.Address())))
	_, err := s.CreatePoll(creator.Index, newPollTx(100), 10, 0, false)
	require.NoError(t, err)
	_, err = s.CastVote(voter.Index, &txtypes.CastVoteTx{Poll: 1, Option: types.VoteOptionYes}, 50, false)
	require.NoError(t, err)

	// the full vote weight stays locked until the poll's end height
	_, err = s.Unstake(voter.Index, 1, 60, false)
	require.ErrorIs(t, err, ErrStakeLocked)

	_, err = s.Unstake(voter.Index, 300, 110, false)
	require.NoError(t, err)
}

func TestEscrowRespectsVoteLocks(t *testing.T) {
	s := newTestState(t)
	creator := addTestAccount(t, s, 400)
	voter := addTestAccount(t, s, 300)
	require.NoError(t, s.SetConfig(testConfig(creator.Address())))
	_, err := s.CreatePoll(creator.Index, newPollTx(100), 10, 0, false)
	require.NoError(t, err)
	_, err = s.CastVote(voter.Index, &txtypes.CastVoteTx{Poll: 1, Option: types.VoteOptionYes}, 50, false)
	require.NoError(t, err)

	// the voter's whole stake backs a live vote, so no deposit fits
	_, err = s.CreatePoll(voter.Index, newPollTx(100), 60, 0, false)
	require.ErrorIs(t, err, ErrInsufficientStake)

	// once the first poll's window closes the lock is gone
	s.header.Height = 110
	_, err = s.CreatePoll(voter.Index, newPollTx(100), 110, 0, false)
	require.NoError(t, err)
}

func TestPersistenceAcrossReload(t *testing.T) {
	logger := cmtlog.NewNopLogger()
	tree := iavl.NewMutableTree(dbm.NewMemDB(), 128, true, TreeLogger(logger))
	s := newState(tree, logger)
	s.SetChainId("gov-test")

	creator := addTestAccount(t, s, 400)
	voter := addTestAccount(t, s, 300)
	require.NoError(t, s.SetConfig(testConfig(creator.Address())))
	_, err := s.CreatePoll(creator.Index, newPollTx(100), 10, 0, false)
	require.NoError(t, err)
	_, err = s.CastVote(voter.Index, &txtypes.CastVoteTx{Poll: 1, Option: types.VoteOptionYes}, 50, false)
	require.NoError(t, err)

	_, err = s.Update()
	require.NoError(t, err)
	h1, err := s.save()
	require.NoError(t, err)

	reloaded := newState(tree, logger)
	require.NoError(t, reloaded.load())
	require.Equal(t, uint64(1), reloaded.PollCount())

	poll, err := reloaded.GetPoll(1)
	require.NoError(t, err)
	require.Equal(t, uint64(300), poll.YesVotes)

	vote, err := reloaded.GetVote(1, voter.Address())
	require.NoError(t, err)
	require.NotNil(t, vote)

	cfg := reloaded.Config()
	require.NotNil(t, cfg)
	require.Equal(t, uint64(3000), cfg.Quorum)
	require.Equal(t, h1.Bytes(), reloaded.header.Hash)
}

func TestListPolls(t *testing.T) {
	s := newTestState(t)
	creator := addTestAccount(t, s, 10000)
	require.NoError(t, s.SetConfig(testConfig(creator.Address())))
	for i := 0; i < 5; i++ {
		_, err := s.CreatePoll(creator.Index, newPollTx(100), 10, 0, false)
		require.NoError(t, err)
	}
	// finalize poll 2 so the status filter has something to find
	_, _, err := s.EndPoll(creator.Index, &txtypes.EndPollTx{Poll: 2}, 110, false)
	require.NoError(t, err)
	_, err = s.Update()
	require.NoError(t, err)
	_, err = s.save()
	require.NoError(t, err)

	polls, err := s.ListPolls(0, 0, 10, false)
	require.NoError(t, err)
	require.Len(t, polls, 5)
	require.Equal(t, uint64(1), polls[0].Id)

	polls, err = s.ListPolls(0, 2, 10, false)
	require.NoError(t, err)
	require.Len(t, polls, 3)
	require.Equal(t, uint64(3), polls[0].Id)

	polls, err = s.ListPolls(0, 0, 2, true)
	require.NoError(t, err)
	require.Len(t, polls, 2)
	require.Equal(t, uint64(5), polls[0].Id)

	polls, err = s.ListPolls(types.PollStatusExpired, 0, 10, false)
	require.NoError(t, err)
	require.Len(t, polls, 1)
	require.Equal(t, uint64(2), polls[0].Id)
}

func TestListVoters(t *testing.T) {
	s := newTestState(t)
	creator := addTestAccount(t, s, 400)
	v1 := addTestAccount(t, s, 300)
	v2 := addTestAccount(t, s, 300)
	require.NoError(t, s.SetConfig(testConfig(creator.Address())))
	_, err := s.CreatePoll(creator.Index, newPollTx(100), 10, 0, false)
	require.NoError(t, err)
	_, err = s.CastVote(v1.Index, &txtypes.CastVoteTx{Poll: 1, Option: types.VoteOptionYes}, 50, false)
	require.NoError(t, err)
	_, err = s.CastVote(v2.Index, &txtypes.CastVoteTx{Poll: 1, Option: types.VoteOptionNo}, 51, false)
	require.NoError(t, err)
	_, err = s.Update()
	require.NoError(t, err)
	_, err = s.save()
	require.NoError(t, err)

	votes, err := s.ListVoters(1, 10)
	require.NoError(t, err)
	require.Len(t, votes, 2)
}
