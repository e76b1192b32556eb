package indexer

import (
	"context"
	"errors"
	"time"

	"github.com/ezaanm/anchor-token-contracts/types"
	abci "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	comethttp "github.com/cometbft/cometbft/rpc/client/http"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// ChainIndexer follows finalized blocks over RPC and mirrors poll and
// vote events into a local sqlite db for the HTTP API.
type ChainIndexer struct {
	logger        cmtlog.Logger
	Url           string
	Height        int64
	db            *gorm.DB
	cli           *comethttp.HTTP
	eventHandlers map[string]eventHandler
}

func NewChainIndexer(logger cmtlog.Logger, dbPath string, chainUrl string) (*ChainIndexer, error) {
	logger.Info("NewChainIndexer", "dbPath", dbPath, "url", chainUrl)
	cli, err := comethttp.New(chainUrl, "/websocket")
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Poll{}, &Vote{}, &StakeChange{}, &Height{}).Error; err != nil {
		return nil, err
	}
	h := Height{Id: 1}
	if err = db.First(&h).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := ChainIndexer{
		logger:        logger.With("module", "indexer"),
		Url:           chainUrl,
		Height:        int64(h.Height + 1),
		db:            db,
		cli:           cli,
		eventHandlers: map[string]eventHandler{},
	}

	c.eventHandlers = map[string]eventHandler{
		types.EventPollType:        c.handleEventPoll,
		types.EventVoteType:        c.handleEventVote,
		types.EventEndPollType:     c.handleEventEndPoll,
		types.EventExecutePollType: c.handleEventExecutePoll,
		types.EventStakeType:       c.handleEventStake,
	}
	return &c, nil
}

type eventHandler func(ctx context.Context, event abci.Event, height int64)

func (c *ChainIndexer) handleEvent(ctx context.Context, event abci.Event, height int64) {
	if h, ok := c.eventHandlers[event.Type]; ok {
		h(ctx, event, height)
	}
}

func (c *ChainIndexer) handleEventPoll(ctx context.Context, event abci.Event, height int64) {
	ev := types.DecodeEventPoll(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	poll := Poll{
		Id:             ev.Poll,
		CreatorIndex:   ev.Creator,
		CreatorAddress: ev.CreatorAddress,
		Deposit:        ev.Deposit,
		Title:          ev.Title,
		Link:           ev.Link,
		StartHeight:    uint64(height),
		EndHeight:      ev.EndHeight,
		Status:         uint64(types.PollStatusInProgress),
		SnapshotSupply: ev.SnapshotSupply,
	}
	if err := c.db.Save(&poll).Error; err != nil {
		c.logger.Error("save poll fail", "err", err)
	}
}

func (c *ChainIndexer) handleEventVote(ctx context.Context, event abci.Event, height int64) {
	ev := types.DecodeEventVote(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	vote := Vote{
		Poll:         ev.Poll,
		VoterIndex:   ev.Voter,
		VoterAddress: ev.VoterAddress,
		Option:       ev.Option,
		Weight:       ev.Weight,
		Height:       uint64(height),
	}
	if err := c.db.Create(&vote).Error; err != nil {
		c.logger.Error("save vote fail", "err", err)
	}
}

func (c *ChainIndexer) handleEventEndPoll(ctx context.Context, event abci.Event, height int64) {
	ev := types.DecodeEventEndPoll(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	var poll Poll
	if err := c.db.First(&poll, ev.Poll).Error; err != nil {
		c.logger.Error("get poll fail", "err", err)
		return
	}
	poll.Status = ev.Status
	poll.SettleHeight = uint64(height)
	poll.TotalCast = ev.TotalCast
	if err := c.db.Save(&poll).Error; err != nil {
		c.logger.Error("save poll fail", "err", err)
	}
}

func (c *ChainIndexer) handleEventExecutePoll(ctx context.Context, event abci.Event, height int64) {
	ev := types.DecodeEventExecutePoll(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	var poll Poll
	if err := c.db.First(&poll, ev.Poll).Error; err != nil {
		c.logger.Error("get poll fail", "err", err)
		return
	}
	poll.Status = ev.Status
	poll.ExecuteHeight = uint64(height)
	poll.ExecuteError = ev.Error
	if err := c.db.Save(&poll).Error; err != nil {
		c.logger.Error("save poll fail", "err", err)
	}
}

func (c *ChainIndexer) handleEventStake(ctx context.Context, event abci.Event, height int64) {
	ev := types.DecodeEventStake(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	change := StakeChange{
		AccountIndex: ev.Account,
		Address:      ev.Address,
		Amount:       ev.Amount,
		Unstake:      ev.Unstake,
		Height:       uint64(height),
	}
	if err := c.db.Create(&change).Error; err != nil {
		c.logger.Error("save stake change fail", "err", err)
	}
}

func (c *ChainIndexer) Start(ctx context.Context) {
	var err error
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.cli == nil {
				c.cli, err = comethttp.New(c.Url, "/websocket")
				if err != nil {
					c.logger.Error("connect fail", "err", err)
					continue
				}
			}
			b, err := c.cli.Status(context.TODO())
			if err != nil {
				c.logger.Error("get status fail", "err", err)
				if !c.cli.IsRunning() {
					c.cli.Stop()
					c.cli, err = comethttp.New(c.Url, "/websocket")
					if err != nil {
						c.logger.Error("reconnect fail", "err", err)
						continue
					}
				}
				continue
			}
			for b.SyncInfo.LatestBlockHeight > c.Height {
				time.Sleep(time.Millisecond * 100)
				c.logger.Info("indexer syncing", "height", c.Height)
				events, err := c.cli.BlockResults(ctx, &c.Height)
				if err != nil {
					c.logger.Error("get block results fail", "err", err)
					if !c.cli.IsRunning() {
						c.cli.Stop()
						c.cli, err = comethttp.New(c.Url, "/websocket")
						if err != nil {
							c.logger.Error("reconnect fail", "err", err)
						}
					}
					break
				}
				for _, res := range events.TxsResults {
					for _, event := range res.Events {
						c.handleEvent(ctx, event, c.Height)
					}
				}
				if err := c.db.Save(&Height{
					Id:     1,
					Height: uint64(c.Height),
				}).Error; err != nil {
					c.logger.Error("save height fail", "err", err)
					continue
				}
				c.Height++
			}
		}
	}
}

func (c *ChainIndexer) getPollById(pollId uint64) (Poll, error) {
	var poll Poll
	err := c.db.First(&poll, pollId).Error
	return poll, err
}

func (c *ChainIndexer) getPolls(page int, pageSize int) ([]Poll, uint64, error) {
	var polls []Poll
	var total uint64
	if err := c.db.Model(&Poll{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := c.db.Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&polls).Error
	return polls, total, err
}

func (c *ChainIndexer) getPollsByStatus(status uint64, page int, pageSize int) ([]Poll, uint64, error) {
	var polls []Poll
	var total uint64
	q := c.db.Model(&Poll{}).Where("status = ?", status)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&polls).Error
	return polls, total, err
}

func (c *ChainIndexer) getPollsByCreator(creatorAddr string, page int, pageSize int) ([]Poll, uint64, error) {
	var polls []Poll
	var total uint64
	q := c.db.Model(&Poll{}).Where("creator_address = ?", creatorAddr)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&polls).Error
	return polls, total, err
}

func (c *ChainIndexer) getVotesByPoll(poll uint64, page int, pageSize int) ([]Vote, uint64, error) {
	var votes []Vote
	var total uint64
	q := c.db.Model(&Vote{}).Where("poll = ?", poll)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("height asc").Offset(page * pageSize).Limit(pageSize).Find(&votes).Error
	return votes, total, err
}

func (c *ChainIndexer) getVotesByVoter(voter string, page int, pageSize int) ([]Vote, uint64, error) {
	var votes []Vote
	var total uint64
	q := c.db.Model(&Vote{}).Where("voter_address = ?", voter)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("height desc").Offset(page * pageSize).Limit(pageSize).Find(&votes).Error
	return votes, total, err
}

func (c *ChainIndexer) getStakeChanges(address string, page int, pageSize int) ([]StakeChange, uint64, error) {
	var changes []StakeChange
	var total uint64
	q := c.db.Model(&StakeChange{})
	if address != "" {
		q = q.Where("address = ?", address)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("height desc").Offset(page * pageSize).Limit(pageSize).Find(&changes).Error
	return changes, total, err
}
