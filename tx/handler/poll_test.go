package handler

import (
	"context"
	"testing"

	"github.com/ezaanm/anchor-token-contracts/state"
	"github.com/ezaanm/anchor-token-contracts/tx"
	"github.com/ezaanm/anchor-token-contracts/types"
	"github.com/cometbft/cometbft/crypto/ed25519"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/stretchr/testify/require"
)

func newHandlerState(t *testing.T) (*state.State, uint64) {
	t.Helper()
	logger := cmtlog.NewNopLogger()
	sdb, err := state.NewStateDB(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sdb.Close() })
	st := sdb.NewState()
	st.SetChainId("gov-test")

	var a state.Account
	a.SetPubKey(ed25519.GenPrivKey().PubKey().Bytes())
	a.Stake = 1000
	require.NoError(t, st.AddAccount(&a))
	require.NoError(t, st.SetConfig(&types.GovConfig{
		Owner: a.Address(), Quorum: 3000, Threshold: 5000,
		VotingPeriod: 100, TimelockPeriod: 10, MinDeposit: 100,
		AllowEmptyPolls: true,
	}))
	return st, a.Index
}

func createPollTx(sender uint64) *tx.GovTx {
	return &tx.GovTx{
		Version: tx.GovTxVersion1,
		Type:    tx.GovTxTypeCreatePoll,
		Sender:  sender,
		Tx: &tx.CreatePollTx{
			Title:       "gov poll",
			Description: "a poll for testing",
			Deposit:     100,
		},
	}
}

func TestCreatePollTxHandlerCheck(t *testing.T) {
	st, sender := newHandlerState(t)
	h := NewCreatePollTxHandler(cmtlog.NewNopLogger())

	res, err := h.Check(context.Background(), st, createPollTx(sender))
	require.NoError(t, err)
	require.Equal(t, uint32(0), res.Code)

	// Check must not stage anything
	require.Equal(t, uint64(0), st.PollCount())

	bad := createPollTx(sender)
	bad.Tx.(*tx.CreatePollTx).Deposit = 1
	res, err = h.Check(context.Background(), st, bad)
	require.NoError(t, err)
	require.Equal(t, uint32(1), res.Code)
	require.NotEmpty(t, res.Log)
}

func TestCreatePollTxHandlerOnePerBlock(t *testing.T) {
	st, sender := newHandlerState(t)
	h := NewCreatePollTxHandler(cmtlog.NewNopLogger())
	ctx := context.Background()
	h.NewContext(ctx)

	res, err := h.Process(ctx, st, createPollTx(sender))
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	require.Equal(t, types.EventPollType, res.Events[0].Type)

	_, err = h.Process(ctx, st, createPollTx(sender))
	require.ErrorIs(t, err, state.ErrOneActionInOneBlock)

	// a fresh block clears the per-sender guard
	h.NewContext(ctx)
	_, err = h.Process(ctx, st, createPollTx(sender))
	require.NoError(t, err)
	require.Equal(t, uint64(2), st.PollCount())
}

func TestEndPollTxHandlerDedupesOnPoll(t *testing.T) {
	st, sender := newHandlerState(t)
	ctx := context.Background()

	ch := NewCreatePollTxHandler(cmtlog.NewNopLogger())
	ch.NewContext(ctx)
	_, err := ch.Process(ctx, st, createPollTx(sender))
	require.NoError(t, err)

	// move past the voting window; nobody voted so the poll expires
	st.Header().Height = 200

	eh := NewEndPollTxHandler(cmtlog.NewNopLogger())
	eh.NewContext(ctx)
	etx := &tx.GovTx{
		Version: tx.GovTxVersion1,
		Type:    tx.GovTxTypeEndPoll,
		Sender:  sender,
		Tx:      &tx.EndPollTx{Poll: 1},
	}
	res, err := eh.Process(ctx, st, etx)
	require.NoError(t, err)
	require.Len(t, res.Events, 1)

	_, err = eh.Process(ctx, st, etx)
	require.ErrorIs(t, err, state.ErrAlreadyFinalized)
}
