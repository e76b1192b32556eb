package handler

import (
	"context"

	"github.com/ezaanm/anchor-token-contracts/state"
	"github.com/ezaanm/anchor-token-contracts/tx"
	"github.com/ezaanm/anchor-token-contracts/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

type CastVoteTxHandler struct {
	logger cmtlog.Logger

	senderSet map[uint64]bool
}

func NewCastVoteTxHandler(logger cmtlog.Logger) (h *CastVoteTxHandler) {
	logger = logger.With("module", "castVoteTx")
	h = &CastVoteTxHandler{
		logger:    logger,
		senderSet: make(map[uint64]bool),
	}
	return
}

func (h *CastVoteTxHandler) Check(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ResponseCheckTx, err error) {
	res = &abcitypes.ResponseCheckTx{Code: 0}
	vtx := btx.Tx.(*tx.CastVoteTx)
	_, err1 := st.CastVote(btx.Sender, vtx, st.Header().Height, true)
	if err1 != nil {
		h.logger.Info("CheckTx CastVoteTx fail", "err", err1)
		res.Code = 1
		res.Log = err1.Error()
	}
	return
}

func (h *CastVoteTxHandler) NewContext(ctx context.Context) {
	h.senderSet = make(map[uint64]bool)
}

func (h *CastVoteTxHandler) handle(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ExecTxResult, err error) {
	if _, ok := h.senderSet[btx.Sender]; ok {
		return nil, state.ErrOneActionInOneBlock
	}
	vtx := btx.Tx.(*tx.CastVoteTx)
	event, err := st.CastVote(btx.Sender, vtx, st.Header().Height, false)
	if err != nil {
		return nil, err
	}
	h.senderSet[btx.Sender] = true
	res = &abcitypes.ExecTxResult{}
	if event != nil {
		res.Events = []abcitypes.Event{types.EncodeEventVote(event)}
	}
	return
}

func (h *CastVoteTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *CastVoteTxHandler) Process(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}
