package handler

import (
	"context"

	"github.com/ezaanm/anchor-token-contracts/state"
	"github.com/ezaanm/anchor-token-contracts/tx"
	"github.com/ezaanm/anchor-token-contracts/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

type UpdateConfigTxHandler struct {
	logger cmtlog.Logger

	senderSet map[uint64]bool
}

func NewUpdateConfigTxHandler(logger cmtlog.Logger) (h *UpdateConfigTxHandler) {
	logger = logger.With("module", "updateConfigTx")
	h = &UpdateConfigTxHandler{
		logger:    logger,
		senderSet: make(map[uint64]bool),
	}
	return
}

func (h *UpdateConfigTxHandler) Check(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ResponseCheckTx, err error) {
	res = &abcitypes.ResponseCheckTx{Code: 0}
	utx := btx.Tx.(*tx.UpdateConfigTx)
	_, err1 := st.UpdateConfig(btx.Sender, utx, true)
	if err1 != nil {
		h.logger.Info("CheckTx UpdateConfigTx fail", "err", err1)
		res.Code = 1
		res.Log = err1.Error()
	}
	return
}

func (h *UpdateConfigTxHandler) NewContext(ctx context.Context) {
	h.senderSet = make(map[uint64]bool)
}

func (h *UpdateConfigTxHandler) handle(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ExecTxResult, err error) {
	if _, ok := h.senderSet[btx.Sender]; ok {
		return nil, state.ErrOneActionInOneBlock
	}
	utx := btx.Tx.(*tx.UpdateConfigTx)
	event, err := st.UpdateConfig(btx.Sender, utx, false)
	if err != nil {
		return nil, err
	}
	h.senderSet[btx.Sender] = true
	res = &abcitypes.ExecTxResult{}
	if event != nil {
		res.Events = []abcitypes.Event{types.EncodeEventUpdateConfig(event)}
	}
	return
}

func (h *UpdateConfigTxHandler) Prepare(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}

func (h *UpdateConfigTxHandler) Process(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ExecTxResult, err error) {
	return h.handle(ctx, st, btx)
}
