package state

import (
	"testing"

	"github.com/cometbft/cometbft/crypto/ed25519"
	"github.com/stretchr/testify/require"
)

func TestAccountVerify(t *testing.T) {
	sk := ed25519.GenPrivKey()
	var a Account
	a.SetPubKey(sk.PubKey().Bytes())

	msg := []byte("governance payload")
	sig, err := sk.Sign(msg)
	require.NoError(t, err)

	require.True(t, a.Verify(msg, [][]byte{sig}))
	require.False(t, a.Verify([]byte("other payload"), [][]byte{sig}))
	require.False(t, a.Verify(msg, nil))
	require.False(t, a.Verify(msg, [][]byte{sig, sig}))

	other := ed25519.GenPrivKey()
	badSig, err := other.Sign(msg)
	require.NoError(t, err)
	require.False(t, a.Verify(msg, [][]byte{badSig}))
}

func TestAccountLocks(t *testing.T) {
	a := &Account{Stake: 500, Locks: []VoteLock{
		{Poll: 1, Amount: 300, Until: 100},
		{Poll: 2, Amount: 200, Until: 150},
	}}

	require.Equal(t, uint64(300), a.maxLocked())

	a.pruneLocks(99)
	require.Len(t, a.Locks, 2)

	// a lock expires once the poll's end height is reached
	a.pruneLocks(100)
	require.Len(t, a.Locks, 1)
	require.Equal(t, uint64(200), a.maxLocked())

	a.pruneLocks(150)
	require.Empty(t, a.Locks)
	require.Equal(t, uint64(0), a.maxLocked())
}

func TestAccountClone(t *testing.T) {
	sk := ed25519.GenPrivKey()
	a := &Account{Index: 65536, Stake: 100, Nonce: 2, Locks: []VoteLock{{Poll: 1, Amount: 50, Until: 10}}}
	a.SetPubKey(sk.PubKey().Bytes())

	n := a.Clone()
	require.Equal(t, a, n)

	n.Locks[0].Amount = 99
	n.PubKey[0] ^= 0xff
	require.Equal(t, uint64(50), a.Locks[0].Amount)
	require.Equal(t, sk.PubKey().Bytes(), a.PubKey)
}
