package handler

import (
	"context"

	"github.com/ezaanm/anchor-token-contracts/state"
	"github.com/ezaanm/anchor-token-contracts/tx"
	"github.com/ezaanm/anchor-token-contracts/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

type CreatePollTxHandler struct {
	logger cmtlog.Logger

	senderSet map[uint64]bool
}

func NewCreatePollTxHandler(logger cmtlog.Logger) (h *CreatePollTxHandler) {
	logger = logger.With("module", "createPollTx")
	h = &CreatePollTxHandler{
		logger:    logger,
		senderSet: make(map[uint64]bool),
	}
	return
}

func (h *CreatePollTxHandler) Check(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ResponseCheckTx, err error) {
	res = &abcitypes.ResponseCheckTx{Code: 0}
	ptx := btx.Tx.(*tx.CreatePollTx)
	_, err1 := st.CreatePoll(btx.Sender, ptx, st.Header().Height, st.BlockTime(), true)
	if err1 != nil {
		h.logger.Info("CheckTx CreatePollTx fail", "err", err1)
		res.Code = 1
		res.Log = err1.Error()
	}
	return
}

func (h *CreatePollTxHandler) NewContext(ctx context.Context) {
	h.senderSet = make(map[uint64]bool)
}

func (h *CreatePollTxHandler) handle(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ExecTxResult, err error) {
	if _, ok := h.senderSet[btx.Sender]; ok {
		return nil, state.ErrOneActionInOneBlock
	}
	ptx := btx.Tx.(*tx.CreatePollTx)
	event, err := st.CreatePoll(btx.Sender, ptx, st.Header().Height, st.BlockTime(), false)
	if err != nil {
		return nil, err
	}
	h.senderSet[btx.Sender] = true
	res = &abcitypes.ExecTxResult{}
	if event != nil {
		res.Events = []abcitypes.Event{types.EncodeEventPoll(event)}
	}
	return
}

func (h *CreatePollTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *CreatePollTxHandler) Process(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}
