package app

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ezaanm/anchor-token-contracts/state"
	"github.com/ezaanm/anchor-token-contracts/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

func (app *GovApp) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	path := req.Path
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	q, ok := app.queriers[path]
	if !ok {
		res = &abcitypes.ResponseQuery{}
		res.Code = 404
		return
	}
	res, err = q.Query(ctx, req)
	return
}

type Querier interface {
	Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error)
}

type AccountQuerier struct {
	db     *state.StateDB
	logger cmtlog.Logger
}

func NewAccountQuerier(db *state.StateDB, logger cmtlog.Logger) (q *AccountQuerier) {
	q = &AccountQuerier{
		db:     db,
		logger: logger,
	}
	return
}

func (q *AccountQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	var a *state.Account
	var height uint64
	if len(req.Data) == 20 {
		a, height, _ = q.db.GetAccountByAddress(req.Data)
	} else if len(req.Data) <= 8 {
		var idx uint64
		for _, v := range req.Data {
			idx <<= 8
			idx |= uint64(v)
		}
		a, height, _ = q.db.GetAccountByIndex(idx)
	}
	if a != nil {
		res.Value, _ = json.Marshal(a)
		res.Height = int64(height)
	} else {
		res.Code = 1
	}
	return
}

// PollQuery selects either a single poll by id or a page of polls.
type PollQuery struct {
	Poll       uint64           `json:"poll,omitempty"`
	Status     types.PollStatus `json:"status,omitempty"`
	StartAfter uint64           `json:"start_after,omitempty"`
	Limit      int              `json:"limit,omitempty"`
	Desc       bool             `json:"desc,omitempty"`
}

type PollQuerier struct {
	db     *state.StateDB
	logger cmtlog.Logger
}

func NewPollQuerier(db *state.StateDB, logger cmtlog.Logger) (q *PollQuerier) {
	q = &PollQuerier{
		db:     db,
		logger: logger,
	}
	return
}

func (q *PollQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	var pq PollQuery
	if len(req.Data) > 0 {
		if err := json.Unmarshal(req.Data, &pq); err != nil {
			res.Code = 1
			res.Log = err.Error()
			return res, nil
		}
	}
	if pq.Poll != 0 {
		poll, height, err := q.db.GetPoll(pq.Poll)
		if err != nil {
			res.Code = 1
			res.Log = err.Error()
			return res, nil
		}
		res.Height = int64(height)
		res.Value, _ = json.Marshal(poll)
		return res, nil
	}
	polls, height, err := q.db.ListPolls(pq.Status, pq.StartAfter, pq.Limit, pq.Desc)
	if err != nil {
		res.Code = 1
		res.Log = err.Error()
		return res, nil
	}
	res.Height = int64(height)
	res.Value, _ = json.Marshal(polls)
	return res, nil
}

type VoteQuery struct {
	Poll  uint64 `json:"poll"`
	Voter string `json:"voter,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

type VoteQuerier struct {
	db     *state.StateDB
	logger cmtlog.Logger
}

func NewVoteQuerier(db *state.StateDB, logger cmtlog.Logger) (q *VoteQuerier) {
	q = &VoteQuerier{
		db:     db,
		logger: logger,
	}
	return
}

func (q *VoteQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	var vq VoteQuery
	if err := json.Unmarshal(req.Data, &vq); err != nil {
		res.Code = 1
		res.Log = err.Error()
		return res, nil
	}
	if vq.Voter != "" {
		vote, height, err := q.db.GetVote(vq.Poll, vq.Voter)
		if err != nil || vote == nil {
			res.Code = 1
			res.Log = "vote not found"
			return res, nil
		}
		res.Height = int64(height)
		res.Value, _ = json.Marshal(vote)
		return res, nil
	}
	votes, height, err := q.db.ListVoters(vq.Poll, vq.Limit)
	if err != nil {
		res.Code = 1
		res.Log = err.Error()
		return res, nil
	}
	res.Height = int64(height)
	res.Value, _ = json.Marshal(votes)
	return res, nil
}

type ConfigQuerier struct {
	db     *state.StateDB
	logger cmtlog.Logger
}

func NewConfigQuerier(db *state.StateDB, logger cmtlog.Logger) (q *ConfigQuerier) {
	q = &ConfigQuerier{
		db:     db,
		logger: logger,
	}
	return
}

func (q *ConfigQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	cfg, height, err := q.db.GetConfig()
	if err != nil {
		res.Code = 1
		res.Log = err.Error()
		return res, nil
	}
	res.Height = int64(height)
	res.Value, _ = json.Marshal(cfg)
	return res, nil
}
