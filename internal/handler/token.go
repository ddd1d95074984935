package handler

import (
	"net/http"

	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/logger"
	"github.com/osse101/BoxLedger_Go/internal/token"
)

// TransferRequest moves tokens from the caller to a receiver
type TransferRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required,account"`
	Amount     string `json:"amount" validate:"required,amount"`
	Memo       string `json:"memo,omitempty" validate:"max=256"`
}

// TransferCallRequest is a transfer that also notifies the receiver with Msg
type TransferCallRequest struct {
	TransferRequest
	Msg string `json:"msg" validate:"max=4096"`
}

// TransferResponse describes a committed transfer
type TransferResponse struct {
	From           string `json:"from"`
	To             string `json:"to"`
	Amount         string `json:"amount"`
	Fee            string `json:"fee"`
	Memo           string `json:"memo,omitempty"`
	NotificationID string `json:"notification_id,omitempty"`
}

// RegisterRequest registers a balance row. An empty account registers the caller.
type RegisterRequest struct {
	AccountID string `json:"account_id,omitempty" validate:"omitempty,account"`
}

// RegisterResponse reports whether a new balance row was created
type RegisterResponse struct {
	Account string `json:"account"`
	Created bool   `json:"created"`
	Message string `json:"message"`
}

// BalanceResponse is the token balance of an account
type BalanceResponse struct {
	Account string `json:"account"`
	Balance string `json:"balance"`
}

// SupplyResponse is the total token supply
type SupplyResponse struct {
	TotalSupply string `json:"total_supply"`
}

// TokenHandler serves the token endpoints
type TokenHandler struct {
	gw token.Gateway
}

// NewTokenHandler creates a new TokenHandler
func NewTokenHandler(gw token.Gateway) *TokenHandler {
	return &TokenHandler{gw: gw}
}

// HandleTransfer moves tokens from the caller, burning the transfer fee
// @Summary Transfer tokens
// @Description Transfers amount minus a 1% fee to the receiver; the fee is burned
// @Tags token
// @Accept json
// @Produce json
// @Param X-Account-ID header string true "Caller account"
// @Param request body TransferRequest true "Transfer"
// @Success 200 {object} TransferResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/token/transfer [post]
// @Security ApiKeyAuth
func (h *TokenHandler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r, w)
	if !ok {
		return
	}

	var req TransferRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Transfer"); err != nil {
		return
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		respondServiceError(w, r, ErrMsgTransferFailed, err)
		return
	}

	result, err := h.gw.Transfer(r.Context(), caller, req.ReceiverID, amount, req.Memo)
	if err != nil {
		respondServiceError(w, r, ErrMsgTransferFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, newTransferResponse(result))
}

// HandleTransferCall transfers tokens and queues a notification for the receiver
// @Summary Transfer tokens with notification
// @Tags token
// @Accept json
// @Produce json
// @Param X-Account-ID header string true "Caller account"
// @Param request body TransferCallRequest true "Transfer with message"
// @Success 200 {object} TransferResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/token/transfer-call [post]
// @Security ApiKeyAuth
func (h *TokenHandler) HandleTransferCall(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r, w)
	if !ok {
		return
	}

	var req TransferCallRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Transfer call"); err != nil {
		return
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		respondServiceError(w, r, ErrMsgTransferFailed, err)
		return
	}

	result, err := h.gw.TransferWithNotification(r.Context(), caller, req.ReceiverID, amount, req.Memo, req.Msg)
	if err != nil {
		respondServiceError(w, r, ErrMsgTransferFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, newTransferResponse(result))
}

// HandleRegister creates a zero balance row
// @Summary Register account
// @Tags token
// @Accept json
// @Produce json
// @Param X-Account-ID header string true "Caller account"
// @Param request body RegisterRequest false "Account to register"
// @Success 200 {object} RegisterResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/token/register [post]
// @Security ApiKeyAuth
func (h *TokenHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	caller, ok := callerFrom(r, w)
	if !ok {
		return
	}

	var req RegisterRequest
	if r.ContentLength != 0 {
		if err := DecodeAndValidateRequest(r, w, &req, "Register"); err != nil {
			return
		}
	}
	account := req.AccountID
	if account == "" {
		account = caller
	}

	created, err := h.gw.RegisterAccount(r.Context(), account)
	if err != nil {
		respondServiceError(w, r, ErrMsgRegisterFailed, err)
		return
	}

	msg := MsgAccountAlreadyRegistered
	if created {
		msg = MsgAccountRegisteredSuccess
		log.Info("Token account registered", "account", account, "caller", caller)
	}

	respondJSON(w, http.StatusOK, RegisterResponse{Account: account, Created: created, Message: msg})
}

// HandleGetBalance returns the token balance of an account
// @Summary Get balance
// @Tags token
// @Produce json
// @Param account query string true "Account id"
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/token/balance [get]
func (h *TokenHandler) HandleGetBalance(w http.ResponseWriter, r *http.Request) {
	account, ok := GetAccountParam(r, w, "account")
	if !ok {
		return
	}

	balance, err := h.gw.BalanceOf(r.Context(), account)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetBalanceFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, BalanceResponse{Account: account, Balance: balance.String()})
}

// HandleGetSupply returns the total token supply
// @Summary Get total supply
// @Tags token
// @Produce json
// @Success 200 {object} SupplyResponse
// @Router /api/v1/token/supply [get]
func (h *TokenHandler) HandleGetSupply(w http.ResponseWriter, r *http.Request) {
	supply, err := h.gw.TotalSupply(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGetSupplyFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SupplyResponse{TotalSupply: supply.String()})
}

// HandleGetMetadata returns the token metadata
// @Summary Get token metadata
// @Tags token
// @Produce json
// @Success 200 {object} domain.TokenMetadata
// @Router /api/v1/token/metadata [get]
func (h *TokenHandler) HandleGetMetadata(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.gw.Metadata())
}

func newTransferResponse(result *domain.TransferResult) TransferResponse {
	return TransferResponse{
		From:           result.From,
		To:             result.To,
		Amount:         result.Net.String(),
		Fee:            result.Fee.String(),
		Memo:           result.Memo,
		NotificationID: result.NotificationID,
	}
}
