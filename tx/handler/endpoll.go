package handler

import (
	"context"

	"github.com/ezaanm/anchor-token-contracts/state"
	"github.com/ezaanm/anchor-token-contracts/tx"
	"github.com/ezaanm/anchor-token-contracts/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

type EndPollTxHandler struct {
	logger cmtlog.Logger

	endedSet map[uint64]bool
}

func NewEndPollTxHandler(logger cmtlog.Logger) (h *EndPollTxHandler) {
	logger = logger.With("module", "endPollTx")
	h = &EndPollTxHandler{
		logger:   logger,
		endedSet: make(map[uint64]bool),
	}
	return
}

func (h *EndPollTxHandler) Check(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ResponseCheckTx, err error) {
	res = &abcitypes.ResponseCheckTx{Code: 0}
	etx := btx.Tx.(*tx.EndPollTx)
	_, _, err1 := st.EndPoll(btx.Sender, etx, st.Header().Height, true)
	if err1 != nil {
		h.logger.Info("CheckTx EndPollTx fail", "err", err1)
		res.Code = 1
		res.Log = err1.Error()
	}
	return
}

func (h *EndPollTxHandler) NewContext(ctx context.Context) {
	h.endedSet = make(map[uint64]bool)
}

// dedupe keys on the poll id: two EndPoll txs for the same poll in one
// block would both pass Check against the pre-block state.
func (h *EndPollTxHandler) handle(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ExecTxResult, err error) {
	etx := btx.Tx.(*tx.EndPollTx)
	if _, ok := h.endedSet[etx.Poll]; ok {
		return nil, state.ErrAlreadyFinalized
	}
	event, _, err := st.EndPoll(btx.Sender, etx, st.Header().Height, false)
	if err != nil {
		return nil, err
	}
	h.endedSet[etx.Poll] = true
	res = &abcitypes.ExecTxResult{}
	if event != nil {
		res.Events = []abcitypes.Event{types.EncodeEventEndPoll(event)}
	}
	return
}

func (h *EndPollTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *EndPollTxHandler) Process(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}
