package handler

import (
	"net/http"

	"github.com/osse101/BoxLedger_Go/internal/logger"
	"github.com/osse101/BoxLedger_Go/internal/lootbox"
)

// GrantPremiumRequest raises the premium quota of an account
type GrantPremiumRequest struct {
	Account string `json:"account" validate:"required,account"`
	Amount  uint32 `json:"amount" validate:"required,min=1"`
}

// GrantPremiumResponse reports the account's additional premium total after the grant
type GrantPremiumResponse struct {
	Account           string `json:"account"`
	AdditionalPremium uint32 `json:"additional_premium"`
}

// HandleGrantPremium grants additional premium boxes to an account (owner only)
// @Summary Grant additional premium boxes
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Account-ID header string true "Owner account"
// @Param request body GrantPremiumRequest true "Grant"
// @Success 200 {object} GrantPremiumResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/admin/premium [post]
// @Security ApiKeyAuth
func HandleGrantPremium(svc lootbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		caller, ok := callerFrom(r, w)
		if !ok {
			return
		}

		var req GrantPremiumRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Grant premium"); err != nil {
			return
		}

		total, err := svc.GrantAdditionalPremium(r.Context(), caller, req.Account, req.Amount)
		if err != nil {
			respondServiceError(w, r, ErrMsgGrantPremiumFailed, err)
			return
		}

		log.Info("Premium boxes granted", "account", req.Account, "amount", req.Amount, "additional_premium", total)

		respondJSON(w, http.StatusOK, GrantPremiumResponse{Account: req.Account, AdditionalPremium: total})
	}
}

// HandleEraseState clears the roster, both leaderboards and the tier counters (owner only)
// @Summary Erase transient state
// @Tags admin
// @Produce json
// @Param X-Account-ID header string true "Owner account"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/admin/erase [post]
// @Security ApiKeyAuth
func HandleEraseState(svc lootbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		caller, ok := callerFrom(r, w)
		if !ok {
			return
		}

		if err := svc.EraseTransientState(r.Context(), caller); err != nil {
			respondServiceError(w, r, ErrMsgEraseStateFailed, err)
			return
		}

		log.Warn("Transient state erased", "caller", caller)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgStateErasedSuccess})
	}
}
