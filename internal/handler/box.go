package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/lootbox"
)

// OpenBoxRequest carries the attached native deposit in the smallest unit
type OpenBoxRequest struct {
	Deposit string `json:"deposit" validate:"required,amount"`
}

// OpenBoxResponse is the outcome of one box open
type OpenBoxResponse struct {
	Tier          int    `json:"tier"`
	TokenAmount   string `json:"token_amount"`
	NativeAmount  string `json:"native_amount"`
	PoolShortfall bool   `json:"pool_shortfall,omitempty"`
}

// UserRewardsResponse is the reward summary of one account
type UserRewardsResponse struct {
	Account     string `json:"account"`
	TokenTotal  string `json:"token_total"`
	NativeTotal string `json:"native_total"`
	BoxesOpened uint32 `json:"boxes_opened"`
}

// TotalStatsResponse is the sale-wide snapshot. Supply holds
// [total_supply, lp_supply, pool_remaining].
type TotalStatsResponse struct {
	TotalParticipants  uint32                            `json:"total_participants"`
	Remaining          [domain.TierCount]uint32          `json:"remaining"`
	TotalRemaining     uint32                            `json:"total_remaining"`
	TotalInit          uint32                            `json:"total_init"`
	Supply             [3]string                         `json:"supply"`
	DisplayMultipliers [domain.TierCount]decimal.Decimal `json:"display_multipliers" swaggertype:"array,string"`
	StartTimestamp     int64                             `json:"start_timestamp"`
}

// ParticipantsResponse lists the roster with token reward totals
type ParticipantsResponse struct {
	Participants []domain.LeaderboardEntry `json:"participants"`
}

// LeaderboardsResponse holds both top lists
type LeaderboardsResponse struct {
	Native []domain.LeaderboardEntry `json:"native"`
	Token  []domain.LeaderboardEntry `json:"token"`
}

// PremiumLeftResponse reports the remaining premium quota of an account
type PremiumLeftResponse struct {
	Account     string `json:"account"`
	PremiumLeft uint32 `json:"premium_left"`
}

// BoxHandler serves the box sale endpoints
type BoxHandler struct {
	svc lootbox.Service
}

// NewBoxHandler creates a new BoxHandler
func NewBoxHandler(svc lootbox.Service) *BoxHandler {
	return &BoxHandler{svc: svc}
}

// HandleOpenBox opens one box for the caller
// @Summary Open a box
// @Description Pays the attached deposit and draws a reward tier for the caller
// @Tags box
// @Accept json
// @Produce json
// @Param X-Account-ID header string true "Caller account"
// @Param request body OpenBoxRequest true "Deposit"
// @Success 200 {object} OpenBoxResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/box/open [post]
// @Security ApiKeyAuth
func (h *BoxHandler) HandleOpenBox(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r, w)
	if !ok {
		return
	}

	var req OpenBoxRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Open box"); err != nil {
		return
	}

	deposit, err := domain.ParseAmount(req.Deposit)
	if err != nil {
		respondServiceError(w, r, ErrMsgOpenBoxFailed, err)
		return
	}

	result, err := h.svc.OpenBox(r.Context(), caller, deposit)
	if err != nil {
		respondServiceError(w, r, ErrMsgOpenBoxFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, OpenBoxResponse{
		Tier:          result.Tier,
		TokenAmount:   result.TokenAmount.String(),
		NativeAmount:  result.NativeAmount.String(),
		PoolShortfall: result.PoolShortfall,
	})
}

// HandleGetRewards returns the reward totals of an account
// @Summary Get user rewards
// @Tags box
// @Produce json
// @Param account query string true "Account id"
// @Success 200 {object} UserRewardsResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/box/rewards [get]
func (h *BoxHandler) HandleGetRewards(w http.ResponseWriter, r *http.Request) {
	account, ok := GetAccountParam(r, w, "account")
	if !ok {
		return
	}

	rewards, err := h.svc.GetUserRewards(r.Context(), account)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetRewardsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, UserRewardsResponse{
		Account:     account,
		TokenTotal:  rewards.TokenTotal.String(),
		NativeTotal: rewards.NativeTotal.String(),
		BoxesOpened: rewards.BoxesOpened,
	})
}

// HandleGetStats returns the sale-wide snapshot
// @Summary Get total stats
// @Tags box
// @Produce json
// @Success 200 {object} TotalStatsResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/box/stats [get]
func (h *BoxHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GetTotalStats(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGetStatsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, TotalStatsResponse{
		TotalParticipants: stats.TotalParticipants,
		Remaining:         stats.Remaining,
		TotalRemaining:    stats.TotalRemaining,
		TotalInit:         stats.TotalInit,
		Supply: [3]string{
			stats.TotalSupply.String(),
			stats.LPSupply.String(),
			stats.PoolRemaining.String(),
		},
		DisplayMultipliers: stats.DisplayMultipliers,
		StartTimestamp:     stats.StartTimestamp,
	})
}

// HandleGetParticipants returns the roster
// @Summary Get participants
// @Tags box
// @Produce json
// @Success 200 {object} ParticipantsResponse
// @Router /api/v1/box/participants [get]
func (h *BoxHandler) HandleGetParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.svc.GetAllParticipants(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGetParticipantsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, ParticipantsResponse{Participants: nonNil(participants)})
}

// HandleGetLeaderboards returns the native and token top lists
// @Summary Get leaderboards
// @Tags box
// @Produce json
// @Success 200 {object} LeaderboardsResponse
// @Router /api/v1/box/leaderboards [get]
func (h *BoxHandler) HandleGetLeaderboards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.svc.GetLeaderboards(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGetLeaderboardsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, LeaderboardsResponse{
		Native: nonNil(boards.Native),
		Token:  nonNil(boards.Token),
	})
}

// HandleGetPremiumLeft returns how many premium boxes an account may still receive
// @Summary Get premium boxes left
// @Tags box
// @Produce json
// @Param account query string true "Account id"
// @Success 200 {object} PremiumLeftResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/box/premium-left [get]
func (h *BoxHandler) HandleGetPremiumLeft(w http.ResponseWriter, r *http.Request) {
	account, ok := GetAccountParam(r, w, "account")
	if !ok {
		return
	}

	left, err := h.svc.UserPremiumBoxesLeft(r.Context(), account)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetPremiumLeftFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, PremiumLeftResponse{Account: account, PremiumLeft: left})
}

// nonNil keeps empty lists encoded as [] instead of null
func nonNil(entries []domain.LeaderboardEntry) []domain.LeaderboardEntry {
	if entries == nil {
		return []domain.LeaderboardEntry{}
	}
	return entries
}
