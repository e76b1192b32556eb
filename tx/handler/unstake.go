package handler

import (
	"context"

	"github.com/ezaanm/anchor-token-contracts/state"
	"github.com/ezaanm/anchor-token-contracts/tx"
	"github.com/ezaanm/anchor-token-contracts/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

type UnstakeTxHandler struct {
	logger cmtlog.Logger

	senderSet map[uint64]bool
}

func NewUnstakeTxHandler(logger cmtlog.Logger) (h *UnstakeTxHandler) {
	logger = logger.With("module", "unstakeTx")
	h = &UnstakeTxHandler{
		logger:    logger,
		senderSet: make(map[uint64]bool),
	}
	return
}

func (h *UnstakeTxHandler) Check(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ResponseCheckTx, err error) {
	res = &abcitypes.ResponseCheckTx{Code: 0}
	utx := btx.Tx.(*tx.UnstakeTx)
	_, err1 := st.Unstake(btx.Sender, utx.Amount, st.Header().Height, true)
	if err1 != nil {
		h.logger.Info("CheckTx UnstakeTx fail", "err", err1)
		res.Code = 1
		res.Log = err1.Error()
	}
	return
}

func (h *UnstakeTxHandler) NewContext(ctx context.Context) {
	h.senderSet = make(map[uint64]bool)
}

func (h *UnstakeTxHandler) handle(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ExecTxResult, err error) {
	if _, ok := h.senderSet[btx.Sender]; ok {
		return nil, state.ErrOneActionInOneBlock
	}
	utx := btx.Tx.(*tx.UnstakeTx)
	event, err := st.Unstake(btx.Sender, utx.Amount, st.Header().Height, false)
	if err != nil {
		return nil, err
	}
	h.senderSet[btx.Sender] = true
	res = &abcitypes.ExecTxResult{}
	if event != nil {
		res.Events = []abcitypes.Event{types.EncodeEventStake(event)}
	}
	return
}

func (h *UnstakeTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *UnstakeTxHandler) Process(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}
