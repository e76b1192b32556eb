package handler

import (
	"context"

	"github.com/ezaanm/anchor-token-contracts/state"
	"github.com/ezaanm/anchor-token-contracts/tx"
	"github.com/ezaanm/anchor-token-contracts/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

type ExecutePollTxHandler struct {
	logger cmtlog.Logger

	executedSet map[uint64]bool
}

func NewExecutePollTxHandler(logger cmtlog.Logger) (h *ExecutePollTxHandler) {
	logger = logger.With("module", "executePollTx")
	h = &ExecutePollTxHandler{
		logger:      logger,
		executedSet: make(map[uint64]bool),
	}
	return
}

func (h *ExecutePollTxHandler) Check(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ResponseCheckTx, err error) {
	res = &abcitypes.ResponseCheckTx{Code: 0}
	xtx := btx.Tx.(*tx.ExecutePollTx)
	_, err1 := st.ExecutePoll(btx.Sender, xtx, st.Header().Height, true)
	if err1 != nil {
		h.logger.Info("CheckTx ExecutePollTx fail", "err", err1)
		res.Code = 1
		res.Log = err1.Error()
	}
	return
}

func (h *ExecutePollTxHandler) NewContext(ctx context.Context) {
	h.executedSet = make(map[uint64]bool)
}

func (h *ExecutePollTxHandler) handle(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ExecTxResult, err error) {
	xtx := btx.Tx.(*tx.ExecutePollTx)
	if _, ok := h.executedSet[xtx.Poll]; ok {
		return nil, state.ErrPollNotPassed
	}
	event, err := st.ExecutePoll(btx.Sender, xtx, st.Header().Height, false)
	if err != nil {
		return nil, err
	}
	h.executedSet[xtx.Poll] = true
	res = &abcitypes.ExecTxResult{}
	if event != nil {
		if event.Error != "" {
			h.logger.Error("poll execution failed", "poll", event.Poll, "err", event.Error)
		}
		res.Events = []abcitypes.Event{types.EncodeEventExecutePoll(event)}
	}
	return
}

func (h *ExecutePollTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *ExecutePollTxHandler) Process(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}
