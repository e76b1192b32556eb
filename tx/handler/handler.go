package handler

import (
	"context"

	"github.com/ezaanm/anchor-token-contracts/state"
	"github.com/ezaanm/anchor-token-contracts/tx"
	abcitypes "github.com/cometbft/cometbft/abci/types"
)

// TxHandler processes one governance tx type. Check validates against
// the mempool state without mutating it; Prepare and Process apply the
// tx to the block's working state. NewContext resets per-block
// bookkeeping before a proposal round.
type TxHandler interface {
	Check(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ResponseCheckTx, err error)
	NewContext(ctx context.Context)
	Prepare(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ExecTxResult, err error)
	Process(ctx context.Context, st *state.State, btx *tx.GovTx) (res *abcitypes.ExecTxResult, err error)
}
