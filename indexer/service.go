package indexer

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Service exposes the indexed polls and votes over HTTP.
type Service struct {
	engine     *gin.Engine
	indexer    *ChainIndexer
	listenAddr string
}

func NewService(ListenAddr string, indexer *ChainIndexer) *Service {
	r := gin.Default()
	s := &Service{
		engine:     r,
		indexer:    indexer,
		listenAddr: ListenAddr,
	}
	s.engine.POST("/getPolls", s.handleGetPolls)
	s.engine.POST("/getVotes", s.handleGetVotes)
	s.engine.POST("/getStakeChanges", s.handleGetStakeChanges)
	return s
}

func (s *Service) Start() {
	s.engine.Run(s.listenAddr)
}

type GetPollsReq struct {
	PollId   uint64 `json:"pollId"`
	Status   uint64 `json:"status"`
	Creator  string `json:"creator"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

type PollInfo struct {
	Poll    Poll   `json:"poll"`
	VoteCnt uint64 `json:"voteCnt"`
}

type GetPollsResponse struct {
	Polls []PollInfo `json:"polls"`
	Total uint64     `json:"total"`
}

func (s *Service) handleGetPolls(c *gin.Context) {
	var response GetPollsResponse
	response.Polls = make([]PollInfo, 0)
	var requestData GetPollsReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if requestData.PageSize == 0 {
		requestData.PageSize = 20
	}

	if requestData.PollId != 0 {
		poll, err := s.indexer.getPollById(requestData.PollId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		_, voteCnt, err := s.indexer.getVotesByPoll(poll.Id, 0, 1)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		response.Polls = append(response.Polls, PollInfo{Poll: poll, VoteCnt: voteCnt})
		response.Total = 1
		c.JSON(http.StatusOK, response)
		return
	}

	var polls []Poll
	var total uint64
	var err error
	switch {
	case requestData.Creator != "":
		polls, total, err = s.indexer.getPollsByCreator(requestData.Creator, requestData.Page, requestData.PageSize)
	case requestData.Status != 0:
		polls, total, err = s.indexer.getPollsByStatus(requestData.Status, requestData.Page, requestData.PageSize)
	default:
		polls, total, err = s.indexer.getPolls(requestData.Page, requestData.PageSize)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	response.Total = total
	for _, poll := range polls {
		_, voteCnt, err := s.indexer.getVotesByPoll(poll.Id, 0, 1)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		response.Polls = append(response.Polls, PollInfo{Poll: poll, VoteCnt: voteCnt})
	}
	c.JSON(http.StatusOK, response)
}

type GetVotesReq struct {
	PollId   uint64 `json:"pollId"`
	Voter    string `json:"voter"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

type GetVotesResponse struct {
	Votes []Vote `json:"votes"`
	Total uint64 `json:"total"`
}

func (s *Service) handleGetVotes(c *gin.Context) {
	var response GetVotesResponse
	response.Votes = make([]Vote, 0)
	var requestData GetVotesReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if requestData.PageSize == 0 {
		requestData.PageSize = 20
	}

	var votes []Vote
	var total uint64
	var err error
	if requestData.Voter != "" {
		votes, total, err = s.indexer.getVotesByVoter(requestData.Voter, requestData.Page, requestData.PageSize)
	} else {
		votes, total, err = s.indexer.getVotesByPoll(requestData.PollId, requestData.Page, requestData.PageSize)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	response.Votes = votes
	response.Total = total
	c.JSON(http.StatusOK, response)
}

type GetStakeChangesReq struct {
	Address  string `json:"address"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

type GetStakeChangesResponse struct {
	Changes []StakeChange `json:"changes"`
	Total   uint64        `json:"total"`
}

func (s *Service) handleGetStakeChanges(c *gin.Context) {
	var response GetStakeChangesResponse
	response.Changes = make([]StakeChange, 0)
	var requestData GetStakeChangesReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if requestData.PageSize == 0 {
		requestData.PageSize = 20
	}
	changes, total, err := s.indexer.getStakeChanges(requestData.Address, requestData.Page, requestData.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	response.Changes = changes
	response.Total = total
	c.JSON(http.StatusOK, response)
}
