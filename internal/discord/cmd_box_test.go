package discord

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/handler"
)

func TestBoxStatsCommand(t *testing.T) {
	ctx := SetupTestContext(t)
	cmd, h := BoxStatsCommand()

	ctx.Mux.HandleFunc(pathBoxStats, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("X-API-Key"))
		WriteJSON(w, handler.TotalStatsResponse{
			TotalParticipants: 3,
			Remaining:         [domain.TierCount]uint32{44000, 4990, 499, 50, 1},
			TotalRemaining:    49540,
			TotalInit:         50000,
			Supply: [3]string{
				domain.Tokens(1000000).String(),
				domain.Tokens(100000).String(),
				domain.Tokens(500000).String(),
			},
			DisplayMultipliers: [domain.TierCount]decimal.Decimal{
				decimal.NewFromInt(1), decimal.NewFromInt(2), decimal.NewFromInt(5),
				decimal.NewFromInt(20), decimal.NewFromInt(100),
			},
			StartTimestamp: domain.MintStartTimestamp,
		})
	})

	h(ctx.Session, commandInteraction(cmd.Name, nil), ctx.APIClient)

	embed := ctx.LastEmbed()
	require.NotNil(t, embed)
	assert.Equal(t, "📦 Box Sale", embed.Title)
	assert.Contains(t, embed.Description, "**Legendary** (x100): 1")
	assert.Contains(t, embed.Description, "**Common** (x1): 44000")
	require.Len(t, embed.Fields, 6)
	assert.Equal(t, "49540 / 50000", embed.Fields[0].Value)
	assert.Equal(t, "3", embed.Fields[1].Value)
	assert.Equal(t, "1000000 LOL", embed.Fields[3].Value)
	assert.Equal(t, FooterBoxLedger, embed.Footer.Text)
}

func TestRewardsCommand(t *testing.T) {
	ctx := SetupTestContext(t)
	cmd, h := RewardsCommand()

	ctx.Mux.HandleFunc(pathRewards, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "alice.near", r.URL.Query().Get("account"))
		WriteJSON(w, handler.UserRewardsResponse{
			Account:     "alice.near",
			TokenTotal:  domain.Tokens(250).String(),
			NativeTotal: domain.Tokens(3).String(),
			BoxesOpened: 7,
		})
	})

	h(ctx.Session, commandInteraction(cmd.Name, map[string]string{"account": "alice.near"}), ctx.APIClient)

	embed := ctx.LastEmbed()
	require.NotNil(t, embed)
	assert.Equal(t, "🎁 Rewards for alice.near", embed.Title)
	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "7", embed.Fields[0].Value)
	assert.Equal(t, "3 NEAR", embed.Fields[1].Value)
	assert.Equal(t, "250 LOL", embed.Fields[2].Value)
}

func TestRewardsCommand_InvalidAccountSkipsAPI(t *testing.T) {
	ctx := SetupTestContext(t)
	cmd, h := RewardsCommand()

	called := false
	ctx.Mux.HandleFunc(pathRewards, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	h(ctx.Session, commandInteraction(cmd.Name, map[string]string{"account": "Not Valid!"}), ctx.APIClient)

	assert.False(t, called)
	assert.Nil(t, ctx.LastEmbed())
	assert.Equal(t, MsgInvalidAccount, ctx.LastContent())
}

func TestPremiumLeftCommand_APIError(t *testing.T) {
	ctx := SetupTestContext(t)
	cmd, h := PremiumLeftCommand()

	ctx.Mux.HandleFunc(pathPremiumLeft, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		WriteJSON(w, handler.ErrorResponse{Error: handler.ErrMsgNotInitializedError})
	})

	h(ctx.Session, commandInteraction(cmd.Name, map[string]string{"account": "bob.near"}), ctx.APIClient)

	// 5xx is retried then surfaced as unavailable
	assert.Equal(t, MsgServerUnavailable, ctx.LastContent())
}

func TestPremiumLeftCommand(t *testing.T) {
	ctx := SetupTestContext(t)
	cmd, h := PremiumLeftCommand()

	ctx.Mux.HandleFunc(pathPremiumLeft, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, handler.PremiumLeftResponse{Account: "bob.near", PremiumLeft: 42})
	})

	h(ctx.Session, commandInteraction(cmd.Name, map[string]string{"account": "bob.near"}), ctx.APIClient)

	embed := ctx.LastEmbed()
	require.NotNil(t, embed)
	assert.Contains(t, embed.Description, "**bob.near** can still win **42** premium boxes.")
	assert.Equal(t, ColorPremium, embed.Color)
}

func TestLeaderboardCommand(t *testing.T) {
	ctx := SetupTestContext(t)
	cmd, h := LeaderboardCommand()

	ctx.Mux.HandleFunc(pathLeaderboards, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, handler.LeaderboardsResponse{
			Native: []domain.LeaderboardEntry{{AccountID: "alice.near", Amount: domain.Tokens(9)}},
			Token: []domain.LeaderboardEntry{
				{AccountID: "bob.near", Amount: domain.Tokens(500)},
				{AccountID: "alice.near", Amount: domain.Tokens(20)},
			},
		})
	})

	t.Run("both boards", func(t *testing.T) {
		h(ctx.Session, commandInteraction(cmd.Name, nil), ctx.APIClient)
		embed := ctx.LastEmbed()
		require.NotNil(t, embed)
		require.Len(t, embed.Fields, 2)
		assert.Equal(t, "Native", embed.Fields[0].Name)
		assert.Equal(t, "🥇 **alice.near** 9 NEAR", embed.Fields[0].Value)
		assert.Equal(t, "🥇 **bob.near** 500 LOL\n🥈 **alice.near** 20 LOL", embed.Fields[1].Value)
	})

	t.Run("token only", func(t *testing.T) {
		h(ctx.Session, commandInteraction(cmd.Name, map[string]string{"board": "token"}), ctx.APIClient)
		embed := ctx.LastEmbed()
		require.NotNil(t, embed)
		require.Len(t, embed.Fields, 1)
		assert.Equal(t, "Token", embed.Fields[0].Name)
	})
}

func TestPingCommand(t *testing.T) {
	ctx := SetupTestContext(t)
	cmd, h := PingCommand()

	ctx.Mux.HandleFunc(pathHealthz, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h(ctx.Session, commandInteraction(cmd.Name, nil), ctx.APIClient)

	embed := ctx.LastEmbed()
	require.NotNil(t, embed)
	assert.Contains(t, embed.Description, "Box service is up")
}
