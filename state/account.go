package state

import (
	"github.com/cometbft/cometbft/crypto/ed25519"
)

// VoteLock marks stake referenced by a vote in a poll that is still in
// progress. Until expires at the poll's end height; expired locks are
// pruned lazily on unstake.
type VoteLock struct {
	Poll   uint64 `json:"poll"`
	Amount uint64 `json:"amount"`
	Until  uint64 `json:"until"`
}

// Account is a staking-ledger entry. Stake is the liquid staked balance;
// escrowed poll deposits are moved out of Stake for the life of the poll.
type Account struct {
	Index  uint64     `json:"index"`
	PubKey []byte     `json:"pubKey"`
	Stake  uint64     `json:"stake"`
	Nonce  uint64     `json:"nonce"`
	Locks  []VoteLock `json:"locks,omitempty"`
}

func (a *Account) Clone() *Account {
	n := &Account{
		Index: a.Index,
		Stake: a.Stake,
		Nonce: a.Nonce,
	}
	if a.PubKey != nil {
		n.PubKey = make([]byte, len(a.PubKey))
		copy(n.PubKey, a.PubKey)
	}
	if len(a.Locks) > 0 {
		n.Locks = make([]VoteLock, len(a.Locks))
		copy(n.Locks, a.Locks)
	}
	return n
}

func (a *Account) SetPubKey(pkey []byte) {
	if a.PubKey == nil {
		a.PubKey = make([]byte, len(pkey))
	}
	copy(a.PubKey, pkey)
}

func (a *Account) AddrBytes() []byte {
	pk := ed25519.PubKey(a.PubKey[:])
	return pk.Address()[:]
}

func (a *Account) Address() string {
	pk := ed25519.PubKey(a.PubKey[:])
	return pk.Address().String()
}

func (a *Account) Verify(msg []byte, sigs [][]byte) (succ bool) {
	if len(sigs) != 1 {
		return false
	}
	pk := ed25519.PubKey(a.PubKey[:])
	return pk.VerifySignature(msg, sigs[0])
}

// pruneLocks drops locks whose poll window has ended.
func (a *Account) pruneLocks(height uint64) {
	if len(a.Locks) == 0 {
		return
	}
	kept := a.Locks[:0]
	for _, l := range a.Locks {
		if l.Until > height {
			kept = append(kept, l)
		}
	}
	a.Locks = kept
}

// maxLocked is the largest single-poll vote weight still locked; stake
// below this amount cannot be withdrawn.
func (a *Account) maxLocked() (max uint64) {
	for _, l := range a.Locks {
		if l.Amount > max {
			max = l.Amount
		}
	}
	return
}

// StateHeader is the singleton record tying the tree together. TotalStake
// is maintained on every stake movement so poll creation can snapshot the
// quorum denominator without scanning accounts.
type StateHeader struct {
	ChainId      string `json:"chain_id"`
	Height       uint64 `json:"height"`
	AccountIdx   uint64 `json:"account_idx"`
	TotalStake   uint64 `json:"total_stake"`
	TotalDeposit uint64 `json:"total_deposit"`
	RootHash     []byte `json:"root_hash"`
	Hash         []byte `json:"hash"`
}

func (h *StateHeader) Clone() *StateHeader {
	n := &StateHeader{
		ChainId:      h.ChainId,
		Height:       h.Height,
		AccountIdx:   h.AccountIdx,
		TotalStake:   h.TotalStake,
		TotalDeposit: h.TotalDeposit,
	}
	if h.RootHash != nil {
		n.RootHash = make([]byte, len(h.RootHash))
		copy(n.RootHash, h.RootHash)
	}
	if h.Hash != nil {
		n.Hash = make([]byte, len(h.Hash))
		copy(n.Hash, h.Hash)
	}
	return n
}
