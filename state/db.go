package state

import (
	"sync"

	"github.com/ezaanm/anchor-token-contracts/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/cosmos/iavl"
	dbm "github.com/cosmos/iavl/db"
	"github.com/ethereum/go-ethereum/common"
)

type StateDB struct {
	mtx sync.RWMutex

	dir    string
	logger cmtlog.Logger
	db     *iavl.MutableTree

	state *State
}

func NewStateDB(dir string, logger cmtlog.Logger) (db *StateDB, err error) {
	logger = logger.With("module", "govdb")
	ldb, err := dbm.NewDB("gov", "goleveldb", dir)
	if err != nil {
		return nil, err
	}
	tdb := iavl.NewMutableTree(ldb, 128, true, TreeLogger(logger))
	version, err := tdb.Load()
	if err != nil {
		return nil, err
	}
	logger.Info("load db success", "version", version)
	st := newState(tdb, logger)
	err = st.load()
	if err != nil {
		logger.Error("from govdb load fail", "err", err)
		return nil, err
	}
	db = &StateDB{
		dir:    dir,
		logger: logger,
		db:     tdb,
		state:  st,
	}
	return
}

func (db *StateDB) Close() (err error) {
	err = db.db.Close()
	return
}

func (db *StateDB) Header() (header *StateHeader) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	header = db.state.Header()
	return
}

func (db *StateDB) State() *State {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	return db.state
}

func (db *StateDB) NewState() (st *State) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	st = db.state.nextState()
	return
}

func (db *StateDB) SetState(st *State) (hash common.Hash, err error) {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	hash, err = st.save()
	if err != nil {
		return
	}
	db.state = st
	return
}

func (db *StateDB) GetAccountByIndex(idx uint64) (acnt *Account, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	acnt, err = db.state.GetAccount(idx)
	if err != nil {
		return
	}
	if acnt != nil {
		acnt = acnt.Clone()
	}
	height = db.state.header.Height

	return

}

func (db *StateDB) GetAccountByAddress(addr []byte) (acnt *Account, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	acnt, err = db.state.FindAccount(addr)
	if err != nil {
		return
	}
	if acnt != nil {
		acnt = acnt.Clone()
	}
	height = db.state.header.Height

	return
}

func (db *StateDB) GetPoll(id uint64) (poll *types.Poll, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	poll, err = db.state.GetPoll(id)
	height = db.state.header.Height
	return
}

func (db *StateDB) ListPolls(filter types.PollStatus, startAfter uint64, limit int, desc bool) (polls []*types.Poll, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	polls, err = db.state.ListPolls(filter, startAfter, limit, desc)
	height = db.state.header.Height
	return
}

func (db *StateDB) GetVote(pollId uint64, voter string) (vote *types.Vote, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	vote, err = db.state.GetVote(pollId, voter)
	height = db.state.header.Height
	return
}

func (db *StateDB) ListVoters(pollId uint64, limit int) (votes []*types.Vote, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	votes, err = db.state.ListVoters(pollId, limit)
	height = db.state.header.Height
	return
}

func (db *StateDB) GetConfig() (cfg *types.GovConfig, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	if db.state.govConfig == nil {
		return nil, db.state.header.Height, ErrNotFound
	}
	c := *db.state.govConfig
	return &c, db.state.header.Height, nil
}
