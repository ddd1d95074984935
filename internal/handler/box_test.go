package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/middleware"
	"github.com/osse101/BoxLedger_Go/mocks"
)

const testCaller = "alice.near"

// newRequest builds a request with an optional JSON body and caller
func newRequest(t *testing.T, method, target string, body interface{}, caller string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, target, &buf)
	if caller != "" {
		req = req.WithContext(middleware.WithCaller(req.Context(), caller))
	}
	return req
}

func TestHandleOpenBox(t *testing.T) {
	price := domain.DefaultBoxPrice

	tests := []struct {
		name           string
		caller         string
		reqBody        interface{}
		setupMocks     func(*mocks.MockLootboxService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Missing caller",
			reqBody:        OpenBoxRequest{Deposit: price.String()},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid JSON",
			caller:         testCaller,
			reqBody:        "invalid json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Deposit not a number",
			caller:         testCaller,
			reqBody:        OpenBoxRequest{Deposit: "0.075"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"deposit"`,
		},
		{
			name:    "Insufficient payment",
			caller:  testCaller,
			reqBody: OpenBoxRequest{Deposit: "1"},
			setupMocks: func(m *mocks.MockLootboxService) {
				m.On("OpenBox", mock.Anything, testCaller, domain.OneUnit()).
					Return(nil, fmt.Errorf("%w: attached 1", domain.ErrInsufficientPayment))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInsufficientPaymentError,
		},
		{
			name:    "Sold out",
			caller:  testCaller,
			reqBody: OpenBoxRequest{Deposit: price.String()},
			setupMocks: func(m *mocks.MockLootboxService) {
				m.On("OpenBox", mock.Anything, testCaller, price).Return(nil, domain.ErrSoldOut)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgSoldOutError,
		},
		{
			name:    "Not initialized",
			caller:  testCaller,
			reqBody: OpenBoxRequest{Deposit: price.String()},
			setupMocks: func(m *mocks.MockLootboxService) {
				m.On("OpenBox", mock.Anything, testCaller, price).Return(nil, domain.ErrNotInitialized)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:    "Unexpected error hides details",
			caller:  testCaller,
			reqBody: OpenBoxRequest{Deposit: price.String()},
			setupMocks: func(m *mocks.MockLootboxService) {
				m.On("OpenBox", mock.Anything, testCaller, price).Return(nil, errors.New("pq: connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrMsgGenericServerError,
		},
		{
			name:    "Success",
			caller:  testCaller,
			reqBody: OpenBoxRequest{Deposit: price.String()},
			setupMocks: func(m *mocks.MockLootboxService) {
				m.On("OpenBox", mock.Anything, testCaller, price).Return(&domain.OpenBoxResult{
					Tier:         domain.TierLegendary,
					TokenAmount:  domain.Tokens(100),
					NativeAmount: domain.Tokens(1000),
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"native_amount":"1000000000000000000000000000"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockLootboxService(t)
			if tt.setupMocks != nil {
				tt.setupMocks(svc)
			}
			h := NewBoxHandler(svc)

			rec := httptest.NewRecorder()
			h.HandleOpenBox(rec, newRequest(t, http.MethodPost, "/api/v1/box/open", tt.reqBody, tt.caller))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestHandleOpenBox_ResponseShape(t *testing.T) {
	svc := mocks.NewMockLootboxService(t)
	svc.On("OpenBox", mock.Anything, testCaller, domain.DefaultBoxPrice).Return(&domain.OpenBoxResult{
		Tier:          domain.TierCommon,
		TokenAmount:   domain.Tokens(1000),
		NativeAmount:  domain.ZeroAmount(),
		PoolShortfall: true,
	}, nil)

	rec := httptest.NewRecorder()
	NewBoxHandler(svc).HandleOpenBox(rec, newRequest(t, http.MethodPost, "/api/v1/box/open",
		OpenBoxRequest{Deposit: domain.DefaultBoxPrice.String()}, testCaller))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp OpenBoxResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, OpenBoxResponse{
		Tier:          0,
		TokenAmount:   domain.Tokens(1000).String(),
		NativeAmount:  "0",
		PoolShortfall: true,
	}, resp)
}

func TestHandleOpenBox_DoesNotLogReward(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	svc := mocks.NewMockLootboxService(t)
	svc.On("OpenBox", mock.Anything, testCaller, domain.DefaultBoxPrice).Return(&domain.OpenBoxResult{
		Tier:         domain.TierCommon,
		TokenAmount:  domain.Tokens(1000),
		NativeAmount: domain.ZeroAmount(),
	}, nil)

	rec := httptest.NewRecorder()
	NewBoxHandler(svc).HandleOpenBox(rec, newRequest(t, http.MethodPost, "/api/v1/box/open",
		OpenBoxRequest{Deposit: domain.DefaultBoxPrice.String()}, testCaller))

	require.Equal(t, http.StatusOK, rec.Code)
	// the service owns the reward line
	assert.Empty(t, buf.String())
}

func TestHandleGetRewards(t *testing.T) {
	t.Run("Missing account", func(t *testing.T) {
		svc := mocks.NewMockLootboxService(t)
		rec := httptest.NewRecorder()
		NewBoxHandler(svc).HandleGetRewards(rec, newRequest(t, http.MethodGet, "/api/v1/box/rewards", nil, ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), fmt.Sprintf(ErrMsgMissingQueryParam, "account"))
	})

	t.Run("Malformed account", func(t *testing.T) {
		svc := mocks.NewMockLootboxService(t)
		rec := httptest.NewRecorder()
		NewBoxHandler(svc).HandleGetRewards(rec, newRequest(t, http.MethodGet, "/api/v1/box/rewards?account=Bad..id", nil, ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), fmt.Sprintf(ErrMsgInvalidQueryParam, "account"))
	})

	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewMockLootboxService(t)
		svc.On("GetUserRewards", mock.Anything, "bob.near").Return(&domain.UserRewards{
			TokenTotal:  domain.Tokens(5),
			NativeTotal: domain.ZeroAmount(),
			BoxesOpened: 3,
		}, nil)

		rec := httptest.NewRecorder()
		NewBoxHandler(svc).HandleGetRewards(rec, newRequest(t, http.MethodGet, "/api/v1/box/rewards?account=bob.near", nil, ""))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp UserRewardsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "bob.near", resp.Account)
		assert.Equal(t, domain.Tokens(5).String(), resp.TokenTotal)
		assert.Equal(t, "0", resp.NativeTotal)
		assert.Equal(t, uint32(3), resp.BoxesOpened)
	})
}

func TestHandleGetStats(t *testing.T) {
	svc := mocks.NewMockLootboxService(t)
	svc.On("GetTotalStats", mock.Anything).Return(&domain.TotalStats{
		TotalParticipants:  2,
		Remaining:          domain.InitialRemaining,
		TotalRemaining:     50000,
		TotalInit:          50000,
		TotalSupply:        domain.TotalSupply,
		LPSupply:           domain.LPSupply,
		PoolRemaining:      domain.RewardPoolSupply,
		DisplayMultipliers: domain.DisplayMultipliers,
		StartTimestamp:     domain.MintStartTimestamp,
	}, nil)

	rec := httptest.NewRecorder()
	NewBoxHandler(svc).HandleGetStats(rec, newRequest(t, http.MethodGet, "/api/v1/box/stats", nil, ""))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"remaining":[44449,5000,500,50,1]`)
	assert.Contains(t, body, `"display_multipliers":["0","0.1","1","10","1000"]`)
	assert.Contains(t, body, `"supply":["`+domain.TotalSupply.String()+`","`+domain.LPSupply.String()+`","`+domain.RewardPoolSupply.String()+`"]`)
	assert.Contains(t, body, `"start_timestamp":1704531600000000000`)
}

func TestHandleGetLeaderboards_EmptyListsEncodeAsArrays(t *testing.T) {
	svc := mocks.NewMockLootboxService(t)
	svc.On("GetLeaderboards", mock.Anything).Return(&domain.Leaderboards{
		Token: []domain.LeaderboardEntry{{AccountID: "bob.near", Amount: domain.Tokens(7)}},
	}, nil)

	rec := httptest.NewRecorder()
	NewBoxHandler(svc).HandleGetLeaderboards(rec, newRequest(t, http.MethodGet, "/api/v1/box/leaderboards", nil, ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"native":[]`)
	assert.Contains(t, rec.Body.String(), `"token":[{"account_id":"bob.near","amount":"`+domain.Tokens(7).String()+`"}]`)
}

func TestHandleGetParticipants(t *testing.T) {
	svc := mocks.NewMockLootboxService(t)
	svc.On("GetAllParticipants", mock.Anything).Return(nil, nil)

	rec := httptest.NewRecorder()
	NewBoxHandler(svc).HandleGetParticipants(rec, newRequest(t, http.MethodGet, "/api/v1/box/participants", nil, ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"participants":[]}`, rec.Body.String())
}

func TestHandleGetPremiumLeft(t *testing.T) {
	svc := mocks.NewMockLootboxService(t)
	svc.On("UserPremiumBoxesLeft", mock.Anything, "bob.near").Return(uint32(97), nil)

	rec := httptest.NewRecorder()
	NewBoxHandler(svc).HandleGetPremiumLeft(rec, newRequest(t, http.MethodGet, "/api/v1/box/premium-left?account=bob.near", nil, ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"account":"bob.near","premium_left":97}`, rec.Body.String())
}
