package indexer

// sqlite models

type Height struct {
	Id     uint64 `gorm:"primaryKey" json:"id"`
	Height uint64 `json:"height"`
}

type Poll struct {
	Id             uint64 `gorm:"primaryKey" json:"id"`
	CreatorIndex   uint64 `json:"creator_index"`
	CreatorAddress string `json:"creator_address"`
	Deposit        uint64 `json:"deposit"`
	Title          string `json:"title"`
	Link           string `json:"link"`
	StartHeight    uint64 `json:"start_height"`
	EndHeight      uint64 `json:"end_height"`
	SettleHeight   uint64 `json:"settle_height"`
	ExecuteHeight  uint64 `json:"execute_height"`
	Status         uint64 `json:"status"`
	SnapshotSupply uint64 `json:"snapshot_supply"`
	TotalCast      uint64 `json:"total_cast"`
	ExecuteError   string `json:"execute_error"`
}

type Vote struct {
	Id           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Poll         uint64 `json:"poll"`
	VoterIndex   uint64 `json:"voter_index"`
	VoterAddress string `json:"voter_address"`
	Option       uint64 `json:"option"`
	Weight       uint64 `json:"weight"`
	Height       uint64 `json:"height"`
}

type StakeChange struct {
	Id           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountIndex uint64 `json:"account_index"`
	Address      string `json:"address"`
	Amount       uint64 `json:"amount"`
	Unstake      bool   `json:"unstake"`
	Height       uint64 `json:"height"`
}
