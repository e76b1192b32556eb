package state

import (
	"bytes"
	"container/heap"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/ezaanm/anchor-token-contracts/config"
	txtypes "github.com/ezaanm/anchor-token-contracts/tx"
	"github.com/ezaanm/anchor-token-contracts/types"
	abci_types "github.com/cometbft/cometbft/abci/types"
	cmtcrypto "github.com/cometbft/cometbft/crypto"
	"github.com/cometbft/cometbft/crypto/ed25519"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/cosmos/iavl"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/syndtr/goleveldb/leveldb"
)

const (
	StartAccountIdx = 65536

	ModifiedFlagNew = 1 << 0
	ModifiedFlagMod = 1 << 1
	ModifiedFlagPK  = 1 << 2

	MaxValidators = 100

	DefaultPageLimit = 10
	MaxPageLimit     = 30
)

var (
	ErrNotFound = errors.New("not found")
)

var (
	KeyState        = "s"
	KeyAccountIndex = "i%s"
	KeyAccountBody  = "a%x"
	KeyConfig       = "c"
	KeyPollIndex    = "pi"
	KeyPollBody     = "p%016x"
	KeyVoteBody     = "v%016x:%s"
	KeyVotePrefix   = "v%016x:"
)

var (
	ErrTxSenderNoexists  = errors.New("sender account noexists")
	ErrTxNonceInvalid    = errors.New("nonce invalid")
	ErrTxSigInvalid      = errors.New("signature invalid")
	ErrAccountExists     = errors.New("account already exists")
	ErrAccountNoexists   = errors.New("account noexists")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidQuorum     = errors.New("quorum must be within 0 to 1")
	ErrInvalidThreshold  = errors.New("threshold must be within 0 to 1")
	ErrInvalidVoteOption = errors.New("invalid vote option")
	ErrInsufficientStake = errors.New("insufficient staked balance")
	ErrStakeLocked       = errors.New("stake locked by in-progress poll votes")

	ErrOneActionInOneBlock = errors.New("one action of a kind per sender per block")

	ErrPollNotFound        = errors.New("poll does not exist")
	ErrPollNotInProgress   = errors.New("poll is not in progress")
	ErrVotingStillOpen     = errors.New("voting period has not expired")
	ErrAlreadyFinalized    = errors.New("poll already finalized")
	ErrAlreadyVoted        = errors.New("voter already voted")
	ErrNoVotingPower       = errors.New("voter has no voting power")
	ErrInsufficientDeposit = errors.New("deposit smaller than minimum poll deposit")
	ErrEmptyPoll           = errors.New("poll must carry at least one execute msg")
	ErrPollNotPassed       = errors.New("poll is not in passed status")
	ErrTimelockNotExpired  = errors.New("timelock period has not expired")
)

// State is one block's view of the governance tree. Domain operations
// stage changes in memory; Update flushes them into the iavl working
// set and save commits a version. The host applies transactions
// serially, so operations never race each other.
type State struct {
	logger cmtlog.Logger
	db     *iavl.MutableTree
	dbVer  int64

	header     *StateHeader
	validators []abci_types.ValidatorUpdate
	idxs       map[string]uint64
	acnts      map[uint64]*Account

	modifiedAcnts map[uint64]uint32
	pollMaxIndex  uint64
	modPolls      map[uint64]*types.Poll
	newVotes      []*types.Vote
	govConfig     *types.GovConfig
	configDirty   bool
	blockTime     int64

	ledger    Ledger
	executors map[string]MsgExecFunc
}

// SetBlockTime records the current block's timestamp for poll metadata.
func (s *State) SetBlockTime(t int64) {
	s.blockTime = t
}

func (s *State) BlockTime() int64 {
	return s.blockTime
}

func newState(db *iavl.MutableTree, logger cmtlog.Logger) *State {
	s := &State{
		logger:        logger,
		db:            db,
		dbVer:         0,
		header:        new(StateHeader),
		validators:    []abci_types.ValidatorUpdate{},
		idxs:          make(map[string]uint64),
		acnts:         make(map[uint64]*Account),
		modifiedAcnts: make(map[uint64]uint32),
		pollMaxIndex:  0,
		modPolls:      make(map[uint64]*types.Poll),
		newVotes:      []*types.Vote{},
		executors:     map[string]MsgExecFunc{},
	}
	s.header.AccountIdx = StartAccountIdx
	s.ledger = &accountLedger{s}
	s.executors[GovContract] = executeGovMsg
	return s
}

func (s *State) nextState() *State {
	n := &State{
		logger:        s.logger,
		db:            s.db,
		dbVer:         s.dbVer,
		idxs:          make(map[string]uint64),
		acnts:         make(map[uint64]*Account),
		modifiedAcnts: make(map[uint64]uint32),
		pollMaxIndex:  s.pollMaxIndex,
		modPolls:      make(map[uint64]*types.Poll),
		newVotes:      []*types.Vote{},
		govConfig:     s.govConfig,
		executors:     s.executors,
	}
	n.header = s.header.Clone()
	if s.header.Hash != nil {
		n.header.Height = s.header.Height + 1
	}
	n.ledger = &accountLedger{n}
	return n
}

func deepCopyMap[K comparable, V any](source map[K]V) map[K]V {
	res := make(map[K]V)
	for k, v := range source {
		switch x := any(v).(type) {
		case *Account:
			res[k] = any(x.Clone()).(V)
		case *types.Poll:
			res[k] = any(clonePoll(x)).(V)
		default:
			res[k] = v
		}
	}
	return res
}

func deepCopySlice[E any](source []E) []E {
	res := make([]E, len(source))
	copy(res, source)
	return res
}

func clonePoll(p *types.Poll) *types.Poll {
	n := *p
	if len(p.ExecuteMsgs) > 0 {
		n.ExecuteMsgs = make([]types.ExecuteMsg, len(p.ExecuteMsgs))
		copy(n.ExecuteMsgs, p.ExecuteMsgs)
	}
	return &n
}

func (s *State) Clone() *State {
	n := &State{
		logger:        s.logger,
		db:            s.db,
		dbVer:         s.dbVer,
		header:        s.header.Clone(),
		validators:    deepCopySlice(s.validators),
		idxs:          deepCopyMap(s.idxs),
		acnts:         deepCopyMap(s.acnts),
		modifiedAcnts: deepCopyMap(s.modifiedAcnts),
		pollMaxIndex:  s.pollMaxIndex,
		modPolls:      deepCopyMap(s.modPolls),
		newVotes:      append([]*types.Vote{}, s.newVotes...),
		govConfig:     s.govConfig,
		configDirty:   s.configDirty,
		executors:     s.executors,
	}
	if s.header.Hash != nil {
		n.header.Height = s.header.Height + 1
	}
	n.ledger = &accountLedger{n}
	return n
}

func (s *State) load() (err error) {
	val, err := s.db.Get([]byte(KeyPollIndex))
	if err != nil {
		if err != leveldb.ErrNotFound {
			return err
		}
	}
	s.pollMaxIndex = new(big.Int).SetBytes(val).Uint64()
	val, err = s.db.Get([]byte(KeyConfig))
	if err != nil {
		if err != leveldb.ErrNotFound {
			return err
		}
	}
	if val != nil {
		cfg := new(types.GovConfig)
		if err = json.Unmarshal(val, cfg); err != nil {
			return err
		}
		s.govConfig = cfg
	}
	val, err = s.db.Get([]byte(KeyState))
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil
		}
		return err
	}
	if val != nil {
		err = json.Unmarshal(val, s.header)
		if err != nil {
			return
		}
		h := s.db.Hash()
		if h != nil {
			s.calcHash(h, true)
		}
	}
	return
}

func (s *State) calcHash(rootHash []byte, update bool) (h common.Hash) {
	h = crypto.Keccak256Hash(rootHash)
	if update {
		if s.header.RootHash == nil {
			s.header.RootHash = make([]byte, len(rootHash))
		}
		copy(s.header.RootHash, rootHash)
		if s.header.Hash == nil {
			s.header.Hash = make([]byte, len(h))
		}
		copy(s.header.Hash, h[:])
	}
	return
}

// Update flushes staged changes into the iavl working set and returns
// the resulting app hash. Nothing is durable until save.
func (s *State) Update() (h common.Hash, err error) {
	var hash []byte
	defer func() {
		if hash == nil {
			s.db.Rollback()
		}
	}()
	var val []byte
	val, err = json.Marshal(s.header)
	if err != nil {
		return
	}
	_, err = s.db.Set([]byte(KeyState), val)
	if err != nil {
		return
	}

	if s.configDirty && s.govConfig != nil {
		val, err = json.Marshal(s.govConfig)
		if err != nil {
			return
		}
		_, err = s.db.Set([]byte(KeyConfig), val)
		if err != nil {
			return
		}
	}

	if len(s.modPolls) != 0 {
		_, err = s.db.Set([]byte(KeyPollIndex), big.NewInt(int64(s.pollMaxIndex)).Bytes())
		if err != nil {
			return
		}
		ids := make([]uint64, 0, len(s.modPolls))
		for id := range s.modPolls {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			poll := s.modPolls[id]
			key := fmt.Sprintf(KeyPollBody, poll.Id)
			var pollBz []byte
			pollBz, err = json.Marshal(poll)
			if err != nil {
				return
			}
			_, err = s.db.Set([]byte(key), pollBz)
			if err != nil {
				return
			}
		}
	}

	for _, vote := range s.newVotes {
		key := fmt.Sprintf(KeyVoteBody, vote.Poll, vote.VoterAddress)
		var voteBz []byte
		voteBz, err = json.Marshal(vote)
		if err != nil {
			return
		}
		_, err = s.db.Set([]byte(key), voteBz)
		if err != nil {
			return
		}
	}

	n := len(s.modifiedAcnts)
	if n > 0 {
		idxs := make([]uint64, n)
		i := 0
		for idx := range s.modifiedAcnts {
			idxs[i] = idx
			i += 1
		}
		sort.Slice(idxs, func(i, j int) bool {
			return idxs[i] < idxs[j]
		})
		for _, idx := range idxs {
			flag := s.modifiedAcnts[idx]
			acnt := s.acnts[idx]
			key := fmt.Sprintf(KeyAccountBody, acnt.Index)
			val, err = json.Marshal(acnt)
			if err != nil {
				return
			}
			_, err = s.db.Set([]byte(key), val)
			if err != nil {
				return
			}
			if (flag&ModifiedFlagNew == ModifiedFlagNew) || (flag&ModifiedFlagPK == ModifiedFlagPK) {
				key = fmt.Sprintf(KeyAccountIndex, acnt.Address())
				val, err = rlp.EncodeToBytes(acnt.Index)
				if err != nil {
					return
				}
				_, err = s.db.Set([]byte(key), val)
				if err != nil {
					return
				}
			}
		}
	}
	hash = s.db.WorkingHash()
	h = s.calcHash(hash, false)
	s.modifiedAcnts = make(map[uint64]uint32)
	s.modPolls = make(map[uint64]*types.Poll)
	s.newVotes = []*types.Vote{}
	s.configDirty = false
	return
}

func (s *State) save() (h common.Hash, err error) {
	hash, ver, err := s.db.SaveVersion()
	if err != nil {
		return h, err
	}

	s.dbVer = ver
	h = s.calcHash(hash, true)

	return
}

func (s *State) PollCount() uint64 {
	return s.pollMaxIndex
}

// GetPoll reads a poll, preferring this block's staged copy over the
// committed tree.
func (s *State) GetPoll(id uint64) (poll *types.Poll, err error) {
	if p, ok := s.modPolls[id]; ok {
		return clonePoll(p), nil
	}
	if id == 0 || id > s.pollMaxIndex {
		return nil, ErrPollNotFound
	}
	key := fmt.Sprintf(KeyPollBody, id)
	val, err := s.db.Get([]byte(key))
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, ErrPollNotFound
		}
		return nil, err
	}
	if val == nil {
		return nil, ErrPollNotFound
	}
	poll = new(types.Poll)
	err = json.Unmarshal(val, poll)
	return
}

func (s *State) setPoll(poll *types.Poll) {
	s.modPolls[poll.Id] = clonePoll(poll)
}

// GetVote returns nil without error when the voter has not voted.
func (s *State) GetVote(pollId uint64, voterAddress string) (vote *types.Vote, err error) {
	for _, v := range s.newVotes {
		if v.Poll == pollId && v.VoterAddress == voterAddress {
			n := *v
			return &n, nil
		}
	}
	key := fmt.Sprintf(KeyVoteBody, pollId, voterAddress)
	val, err := s.db.Get([]byte(key))
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	vote = new(types.Vote)
	err = json.Unmarshal(val, vote)
	return
}

// ListVoters iterates a poll's committed votes in voter-address order.
func (s *State) ListVoters(pollId uint64, limit int) (votes []*types.Vote, err error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	start := []byte(fmt.Sprintf(KeyVotePrefix, pollId))
	end := PrefixEndBytes(start)
	it, err := s.db.Iterator(start, end, true)
	if err != nil {
		return nil, err
	}
	defer it.Close()
	for ; it.Valid() && len(votes) < limit; it.Next() {
		var v types.Vote
		if err = json.Unmarshal(it.Value(), &v); err != nil {
			return nil, err
		}
		votes = append(votes, &v)
	}
	return votes, nil
}

// ListPolls pages through committed polls by id, optionally filtering by
// status. startAfter is an exclusive cursor; desc reverses the scan.
func (s *State) ListPolls(filter types.PollStatus, startAfter uint64, limit int, desc bool) (polls []*types.Poll, err error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	prefix := []byte("p")
	start := []byte(fmt.Sprintf(KeyPollBody, uint64(0)))
	end := PrefixEndBytes(prefix)
	if desc {
		if startAfter > 0 {
			end = []byte(fmt.Sprintf(KeyPollBody, startAfter))
		}
	} else {
		if startAfter > 0 {
			start = []byte(fmt.Sprintf(KeyPollBody, startAfter+1))
		}
	}
	it, err := s.db.Iterator(start, end, !desc)
	if err != nil {
		return nil, err
	}
	defer it.Close()
	for ; it.Valid() && len(polls) < limit; it.Next() {
		// "pi" sorts between poll body keys, skip it
		if !bytes.HasPrefix(it.Key(), prefix) || bytes.Equal(it.Key(), []byte(KeyPollIndex)) {
			continue
		}
		var p types.Poll
		if err = json.Unmarshal(it.Value(), &p); err != nil {
			return nil, err
		}
		if filter != 0 && p.Status != filter {
			continue
		}
		polls = append(polls, &p)
	}
	return polls, nil
}

func (s *State) GetAccount(idx uint64) (acnt *Account, err error) {
	if idx >= s.header.AccountIdx {
		err = ErrAccountNoexists
		return
	}
	acnt = s.acnts[idx]
	if acnt != nil {
		return
	}
	key := fmt.Sprintf(KeyAccountBody, idx)
	val, err := s.db.Get([]byte(key))
	if err != nil {
		return nil, err
	}
	if val == nil {
		err = ErrNotFound
		return
	}
	acnt = new(Account)
	err = json.Unmarshal(val, acnt)
	if err != nil {
		acnt = nil
	}
	s.acnts[idx] = acnt
	return
}

func (s *State) FindAccount(addr []byte) (acnt *Account, err error) {
	saddr := cmtcrypto.Address(addr).String()
	idx, ok := s.idxs[saddr]
	if !ok {
		key := fmt.Sprintf(KeyAccountIndex, saddr)
		val, err := s.db.Get([]byte(key))
		if err != nil {
			if err == leveldb.ErrNotFound {
				return nil, nil
			}
			return nil, err
		}
		if val == nil {
			return nil, nil
		}
		err = rlp.DecodeBytes(val, &idx)
		if err != nil {
			return nil, err
		}
		s.idxs[saddr] = idx
	}
	acnt, err = s.GetAccount(idx)

	return
}

func (s *State) Header() *StateHeader {
	return s.header
}

func (s *State) Hash() (h common.Hash) {
	if s.header.Hash != nil {
		copy(h[:], s.header.Hash)
	}
	return
}

func (s *State) SetChainId(chainId string) {
	s.header.ChainId = chainId
}

func (s *State) Config() *types.GovConfig {
	return s.govConfig
}

// SetConfig installs the governance parameters, used at genesis and by
// the config update paths afterwards.
func (s *State) SetConfig(cfg *types.GovConfig) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}
	s.govConfig = cfg
	s.configDirty = true
	return nil
}

func validateConfig(cfg *types.GovConfig) error {
	if cfg.Quorum == 0 || cfg.Quorum > BpsDenom {
		return ErrInvalidQuorum
	}
	if cfg.Threshold == 0 || cfg.Threshold > BpsDenom {
		return ErrInvalidThreshold
	}
	return nil
}

func (s *State) AddAccount(acnt *Account) (err error) {
	a, err := s.FindAccount(acnt.AddrBytes())
	if err != nil {
		return err
	}
	if a != nil {
		err = ErrAccountExists
		return
	}
	acnt.Index = s.header.AccountIdx
	s.header.AccountIdx += 1
	s.header.TotalStake += acnt.Stake
	s.acnts[acnt.Index] = acnt.Clone()
	s.modifiedAcnts[acnt.Index] = ModifiedFlagNew
	return
}

func (s *State) Verify(tx *txtypes.GovTx, allowNonceGap bool) (succ bool, err error) {
	a, err := s.GetAccount(tx.Sender)
	if err != nil {
		return succ, err
	}
	if a == nil {
		err = ErrTxSenderNoexists
		return
	}
	if !(a.Nonce == tx.Nonce || (allowNonceGap && a.Nonce < tx.Nonce)) {
		err = ErrTxNonceInvalid
		return
	}
	dat, err := tx.SigData([]byte(s.header.ChainId))
	if err != nil {
		return succ, err
	}
	succ = a.Verify(dat, tx.Sig)
	if !succ {
		err = ErrTxSigInvalid
	}
	return
}

func (s *State) touchAccount(a *Account) {
	a.Nonce += 1
	s.markAccount(a)
}

func (s *State) markAccount(a *Account) {
	v := s.modifiedAcnts[a.Index]
	v |= ModifiedFlagMod
	s.modifiedAcnts[a.Index] = v
	s.acnts[a.Index] = a.Clone()
}

func (s *State) Validators() (updateVals map[string]abci_types.ValidatorUpdate, err error) {
	updateVals = make(map[string]abci_types.ValidatorUpdate, 0)
	start := []byte("a")
	end := PrefixEndBytes(start)
	aIterator, err := s.db.Iterator(start, end, false)
	if err != nil {
		return nil, err
	}
	defer aIterator.Close()

	valsQueue := &PowerQueue{}
	heap.Init(valsQueue)
	for ; aIterator.Valid(); aIterator.Next() {
		var act Account
		valBytes := aIterator.Value()
		err = json.Unmarshal(valBytes, &act)
		if err != nil {
			return nil, err
		}
		power := config.PowerPerStake(act.Stake, s.header.Height)
		if power > 0 {
			heap.Push(valsQueue, validatorWithPower{
				Index:  act.Index,
				Pubkey: act.PubKey,
				Power:  power,
			})
		}
	}

	vals := make([]abci_types.ValidatorUpdate, 0)
	for valsQueue.Len() > 0 && len(vals) < MaxValidators {
		val := heap.Pop(valsQueue).(validatorWithPower)
		vals = append(vals, abci_types.Ed25519ValidatorUpdate(val.Pubkey, val.Power))
	}
	s.validators = vals

	for _, val := range vals {
		updateVals[val.PubKey.String()] = val
	}

	return updateVals, nil
}

func (s *State) ValidatorAccounts() (acounts []*Account, height uint64, err error) {
	vals := s.validators
	for _, val := range vals {
		pk := ed25519.PubKey(val.PubKey.GetEd25519()[:])
		addr := pk.Address()[:]
		act, _ := s.FindAccount(addr)
		if act != nil {
			acounts = append(acounts, act)
		}
	}
	height = s.header.Height
	return
}

func (s *State) ValidatorsUpdate(curVals map[string]abci_types.ValidatorUpdate) (updateVals []abci_types.ValidatorUpdate, err error) {
	nextVals, err := s.Validators()
	if err != nil {
		return nil, err
	}

	for key, val := range nextVals {
		if v, ok := curVals[key]; ok {
			if v.Power != val.Power {
				updateVals = append(updateVals, val)
			}
		} else {
			updateVals = append(updateVals, val)
		}
	}

	for key, curVal := range curVals {
		if _, ok := nextVals[key]; !ok {
			curVal.Power = 0
			updateVals = append(updateVals, curVal)
		}
	}
	return
}

type validatorWithPower struct {
	Index  uint64
	Pubkey []byte
	Power  int64
}

type PowerQueue []validatorWithPower

func (pq PowerQueue) Len() int { return len(pq) }

func (pq PowerQueue) Less(i, j int) bool {
	if pq[i].Power == pq[j].Power {
		return pq[i].Index < pq[j].Index
	}
	return pq[i].Power > pq[j].Power
}

func (pq PowerQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *PowerQueue) Push(x any) {
	item := x.(validatorWithPower)
	*pq = append(*pq, item)
}

func (pq *PowerQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

func PrefixEndBytes(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}

	end := make([]byte, len(prefix))
	copy(end, prefix)

	for {
		if end[len(end)-1] != byte(255) {
			end[len(end)-1]++
			break
		}

		end = end[:len(end)-1]

		if len(end) == 0 {
			end = nil
			break
		}
	}

	return end
}
