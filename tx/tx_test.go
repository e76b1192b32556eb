package tx

import (
	"testing"

	"github.com/ezaanm/anchor-token-contracts/types"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalGovTxRoundTrip(t *testing.T) {
	orig := &GovTx{
		Version: GovTxVersion1,
		Type:    GovTxTypeCreatePoll,
		Nonce:   3,
		Sender:  65537,
		Tx: &CreatePollTx{
			Title:       "raise the quorum",
			Description: "bump quorum to 40%",
			Deposit:     500,
			ExecuteMsgs: []types.ExecuteMsg{
				{Order: 1, Contract: "gov", Msg: []byte(`{"update_config":{"quorum":4000}}`)},
			},
		},
		Sig: [][]byte{[]byte("sig")},
	}
	dat, err := MarshalGovTx(orig)
	require.NoError(t, err)

	btx, err := UnmarshalGovTx(dat)
	require.NoError(t, err)
	require.Equal(t, orig.Type, btx.Type)
	require.Equal(t, orig.Nonce, btx.Nonce)
	require.Equal(t, orig.Sender, btx.Sender)

	ptx, ok := btx.Tx.(*CreatePollTx)
	require.True(t, ok)
	require.Equal(t, "raise the quorum", ptx.Title)
	require.Equal(t, uint64(500), ptx.Deposit)
	require.Len(t, ptx.ExecuteMsgs, 1)
	require.Equal(t, "gov", ptx.ExecuteMsgs[0].Contract)
}

func TestUnmarshalGovTxPayloadTypes(t *testing.T) {
	cases := []struct {
		tp GovTxType
		in any
	}{
		{GovTxTypeCastVote, &CastVoteTx{Poll: 1, Option: types.VoteOptionYes}},
		{GovTxTypeEndPoll, &EndPollTx{Poll: 1}},
		{GovTxTypeExecutePoll, &ExecutePollTx{Poll: 1}},
		{GovTxTypeStake, &StakeTx{Amount: 100}},
		{GovTxTypeUnstake, &UnstakeTx{Amount: 100}},
	}
	for _, c := range cases {
		dat, err := MarshalGovTx(&GovTx{Version: GovTxVersion1, Type: c.tp, Sender: 65536, Tx: c.in})
		require.NoError(t, err)
		btx, err := UnmarshalGovTx(dat)
		require.NoError(t, err)
		require.Equal(t, c.tp, btx.Type)
		switch c.tp {
		case GovTxTypeCastVote:
			vtx, ok := btx.Tx.(*CastVoteTx)
			require.True(t, ok)
			require.Equal(t, types.VoteOptionYes, vtx.Option)
		case GovTxTypeStake:
			stx, ok := btx.Tx.(*StakeTx)
			require.True(t, ok)
			require.Equal(t, uint64(100), stx.Amount)
		}
	}
}

func TestUnmarshalGovTxUnknownType(t *testing.T) {
	_, err := UnmarshalGovTx([]byte(`{"version":1,"type":99,"tx":{}}`))
	require.ErrorIs(t, err, ErrUnsupportedTxType)

	_, err = UnmarshalGovTx([]byte(`not json`))
	require.Error(t, err)
}

func TestUpdateConfigTxPartialFields(t *testing.T) {
	q := uint64(4000)
	dat, err := MarshalGovTx(&GovTx{
		Version: GovTxVersion1,
		Type:    GovTxTypeUpdateConfig,
		Sender:  65536,
		Tx:      &UpdateConfigTx{Quorum: &q},
	})
	require.NoError(t, err)
	btx, err := UnmarshalGovTx(dat)
	require.NoError(t, err)
	utx, ok := btx.Tx.(*UpdateConfigTx)
	require.True(t, ok)
	require.NotNil(t, utx.Quorum)
	require.Equal(t, uint64(4000), *utx.Quorum)
	require.Nil(t, utx.Threshold)
	require.Nil(t, utx.Owner)
}

func TestSigDataBindsChainId(t *testing.T) {
	btx := &GovTx{
		Version: GovTxVersion1,
		Type:    GovTxTypeStake,
		Nonce:   1,
		Sender:  65536,
		Tx:      &StakeTx{Amount: 100},
		Sig:     [][]byte{[]byte("existing")},
	}
	d1, err := btx.SigData([]byte("chain-a"))
	require.NoError(t, err)
	d2, err := btx.SigData([]byte("chain-b"))
	require.NoError(t, err)
	require.NotEqual(t, d1, d2)

	// computing the digest must not disturb the envelope's signatures
	require.Equal(t, [][]byte{[]byte("existing")}, btx.Sig)
}
