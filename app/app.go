package app

import (
	"context"
	"encoding/json"

	"github.com/ezaanm/anchor-token-contracts/config"
	"github.com/ezaanm/anchor-token-contracts/state"
	"github.com/ezaanm/anchor-token-contracts/tx"
	"github.com/ezaanm/anchor-token-contracts/tx/handler"
	"github.com/ezaanm/anchor-token-contracts/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/cometbft/cometbft/store"
	"github.com/ethereum/go-ethereum/common"
)

type finalizeBlock struct {
	Height uint64
	Hash   common.Hash
}

func (b *finalizeBlock) Set(blk *abcitypes.RequestFinalizeBlock) {
	b.Height = uint64(blk.Height)
	b.Hash = common.BytesToHash(blk.Hash)
}

var _ abcitypes.Application = &GovApp{}

// GovApp is the ABCI application hosting the governance engine. The
// consensus layer hands it one tx at a time; all poll and stake state
// lives in the versioned tree behind StateDB.
type GovApp struct {
	cfg    *config.GovAppConfig
	logger cmtlog.Logger

	db       *state.StateDB
	lastBlk  finalizeBlock
	txHdlrs  map[tx.GovTxType]handler.TxHandler
	queriers map[string]Querier

	st *state.State
}

func NewGovApp(cfg *config.GovAppConfig, logger cmtlog.Logger) (app *GovApp, err error) {
	logger = logger.With("module", "app")

	dir := cfg.Home + "/data"
	db, err := state.NewStateDB(dir, logger)
	if err != nil {
		return nil, err
	}

	app = &GovApp{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		txHdlrs:  make(map[tx.GovTxType]handler.TxHandler),
		queriers: make(map[string]Querier),
	}
	app.registerTxHandler()
	app.registerQuerier()
	return
}

func (app *GovApp) Start(bs *store.BlockStore) {
	height := app.db.Header().Height
	if height > 0 {
		blk := bs.LoadBlock(int64(height))
		if blk == nil {
			panic("unexpected BlockStore")
		}
		app.lastBlk.Height = height
		app.lastBlk.Hash = common.BytesToHash(blk.Hash())
	}
}

func (app *GovApp) Stop() {
	err := app.db.Close()
	if err != nil {
		app.logger.Error("close db fail", "err", err)
	}
	app.logger.Info("gov app stopped")
}

func (app *GovApp) registerTxHandler() {
	app.txHdlrs = map[tx.GovTxType]handler.TxHandler{
		tx.GovTxTypeCreatePoll:   handler.NewCreatePollTxHandler(app.logger),
		tx.GovTxTypeCastVote:     handler.NewCastVoteTxHandler(app.logger),
		tx.GovTxTypeEndPoll:      handler.NewEndPollTxHandler(app.logger),
		tx.GovTxTypeExecutePoll:  handler.NewExecutePollTxHandler(app.logger),
		tx.GovTxTypeUpdateConfig: handler.NewUpdateConfigTxHandler(app.logger),
		tx.GovTxTypeStake:        handler.NewStakeTxHandler(app.logger),
		tx.GovTxTypeUnstake:      handler.NewUnstakeTxHandler(app.logger),
	}
}

func (app *GovApp) registerQuerier() {
	app.queriers["/accounts/"] = NewAccountQuerier(app.db, app.logger)
	app.queriers["/polls/"] = NewPollQuerier(app.db, app.logger)
	app.queriers["/votes/"] = NewVoteQuerier(app.db, app.logger)
	app.queriers["/config/"] = NewConfigQuerier(app.db, app.logger)
}

func (app *GovApp) InitChain(_ context.Context, chain *abcitypes.RequestInitChain) (res *abcitypes.ResponseInitChain, err error) {
	st := app.db.NewState()
	st.SetChainId(chain.ChainId)

	gen := new(types.GovGenesisState)
	if len(chain.AppStateBytes) > 0 {
		if err = json.Unmarshal(chain.AppStateBytes, gen); err != nil {
			app.logger.Error("InitChain parse app state fail", "err", err)
			return nil, err
		}
	}
	for _, v := range chain.Validators {
		var acnt state.Account
		acnt.SetPubKey(v.PubKey.GetEd25519())
		acnt.Stake = uint64(v.Power) * config.StakePerPower(0)
		err = st.AddAccount(&acnt)
		if err != nil {
			app.logger.Error("InitChain add account fail", "err", err)
			return nil, err
		}
	}
	for _, ga := range gen.Accounts {
		var acnt state.Account
		acnt.SetPubKey(ga.PubKey)
		acnt.Stake = ga.Stake
		err = st.AddAccount(&acnt)
		if err == state.ErrAccountExists {
			app.logger.Info("InitChain duplicate account skipped", "addr", acnt.Address())
			err = nil
			continue
		}
		if err != nil {
			app.logger.Error("InitChain add account fail", "err", err)
			return nil, err
		}
	}
	cfg := gen.Config
	if cfg.Quorum == 0 && cfg.Threshold == 0 {
		cfg = types.DefaultGovGenesisState("").Config
	}
	if err = st.SetConfig(&cfg); err != nil {
		app.logger.Error("InitChain set config fail", "err", err)
		return nil, err
	}

	var h common.Hash
	_, err = st.Update()
	if err != nil {
		app.logger.Error("InitChain update state fail", "err", err)
		return nil, err
	}
	h, err = app.db.SetState(st)
	if err != nil {
		app.logger.Error("InitChain apply state fail", "err", err)
		return nil, err
	}
	return &abcitypes.ResponseInitChain{
		AppHash: h.Bytes(),
	}, nil
}

func (app *GovApp) Info(ctx context.Context, info *abcitypes.RequestInfo) (*abcitypes.ResponseInfo, error) {
	header := app.db.Header()
	return &abcitypes.ResponseInfo{
		LastBlockHeight:  int64(header.Height),
		LastBlockAppHash: header.Hash,
	}, nil
}

func (app *GovApp) ExtendVote(_ context.Context, extend *abcitypes.RequestExtendVote) (*abcitypes.ResponseExtendVote, error) {
	return &abcitypes.ResponseExtendVote{}, nil
}

func (app *GovApp) VerifyVoteExtension(_ context.Context, verify *abcitypes.RequestVerifyVoteExtension) (*abcitypes.ResponseVerifyVoteExtension, error) {
	return &abcitypes.ResponseVerifyVoteExtension{}, nil
}

func (app *GovApp) ApplySnapshotChunk(context.Context, *abcitypes.RequestApplySnapshotChunk) (*abcitypes.ResponseApplySnapshotChunk, error) {
	return nil, nil
}

func (app *GovApp) ListSnapshots(context.Context, *abcitypes.RequestListSnapshots) (*abcitypes.ResponseListSnapshots, error) {
	return nil, nil
}

func (app *GovApp) LoadSnapshotChunk(context.Context, *abcitypes.RequestLoadSnapshotChunk) (*abcitypes.ResponseLoadSnapshotChunk, error) {
	return nil, nil
}

func (app *GovApp) OfferSnapshot(context.Context, *abcitypes.RequestOfferSnapshot) (*abcitypes.ResponseOfferSnapshot, error) {
	return nil, nil
}
