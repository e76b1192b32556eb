package crypto

import (
	"fmt"
	"os"

	"github.com/cometbft/cometbft/crypto"
	cmtjson "github.com/cometbft/cometbft/libs/json"
	"github.com/cometbft/cometbft/privval"
)

// PV wraps a file-backed validator key for signing governance
// transactions outside the consensus path.
type PV struct {
	priv crypto.PrivKey
	pub  crypto.PubKey
}

func LoadFilePV(keyFilePath string) (*PV, error) {
	bz, err := os.ReadFile(keyFilePath)
	if err != nil {
		return nil, err
	}
	var pvKey privval.FilePVKey
	if err = cmtjson.Unmarshal(bz, &pvKey); err != nil {
		return nil, fmt.Errorf("read validator key %v: %w", keyFilePath, err)
	}
	return &PV{priv: pvKey.PrivKey, pub: pvKey.PubKey}, nil
}

func (k *PV) PublicKey() []byte {
	return k.pub.Bytes()
}

func (k *PV) Address() string {
	return k.pub.Address().String()
}

func (k *PV) Sign(data []byte) ([]byte, error) {
	return k.priv.Sign(data)
}
