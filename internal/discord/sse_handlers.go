package discord

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/event"
)

// embedSender is the slice of the Discord session the notifier needs
type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// SSENotifier posts sale events to a Discord channel
type SSENotifier struct {
	session            embedSender
	notificationChanID string
	now                func() time.Time
}

// NewSSENotifier creates a new SSE notifier
func NewSSENotifier(session embedSender, notificationChanID string) *SSENotifier {
	return &SSENotifier{
		session:            session,
		notificationChanID: notificationChanID,
		now:                time.Now,
	}
}

// RegisterHandlers registers all SSE event handlers with the client
func (n *SSENotifier) RegisterHandlers(client *SSEClient) {
	client.OnEvent(SSEEventTypeBoxOpened, n.handleBoxOpened)
	client.OnEvent(SSEEventTypeLeaderboardUpdated, n.handleLeaderboardUpdated)
	client.OnEvent(SSEEventTypeStateErased, n.handleStateErased)
}

func (n *SSENotifier) send(evt SSEEvent, embed *discordgo.MessageEmbed, attrs ...any) error {
	if n.notificationChanID == "" {
		return nil
	}
	embed.Timestamp = n.now().Format(time.RFC3339)
	if embed.Footer == nil {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: FooterNotifications}
	}

	if _, err := n.session.ChannelMessageSendEmbed(n.notificationChanID, embed); err != nil {
		slog.Error(sseLogMsgNotificationError, "error", err, "event_type", evt.Type)
		return err
	}
	slog.Info(sseLogMsgNotificationSent, append([]any{"event_type", evt.Type}, attrs...)...)
	return nil
}

// decodePayload logs and reports false for frames that cannot be read
func decodePayload(evt SSEEvent, out any) bool {
	if err := json.Unmarshal(evt.Payload, out); err != nil {
		slog.Warn(sseLogMsgParseError, "error", err, "event_type", evt.Type)
		return false
	}
	return true
}

// handleBoxOpened announces rare and better opens; common boxes would flood the channel
func (n *SSENotifier) handleBoxOpened(evt SSEEvent) error {
	var payload event.BoxOpenedPayloadV1
	if !decodePayload(evt, &payload) {
		return nil
	}
	if payload.Tier < announceMinTier {
		return nil
	}

	color := ColorPremium
	title := fmt.Sprintf("%s box opened!", tierName(payload.Tier))
	if payload.Tier == domain.TierLegendary {
		color = ColorJackpot
		title = "🎉 Legendary box opened!"
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: fmt.Sprintf("**%s** just pulled a %s box.", payload.AccountID, strings.ToLower(tierName(payload.Tier))),
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Native", Value: formatAmount(payload.NativeAmount, nativeSymbol), Inline: true},
			{Name: "Tokens", Value: formatAmount(payload.TokenAmount, domain.TokenSymbol), Inline: true},
			{Name: "Boxes Left", Value: fmt.Sprintf("%d", payload.TotalRemaining), Inline: true},
		},
	}
	if payload.PoolShortfall {
		embed.Description += "\n_The reward pool was short, part of the payout is pending._"
	}

	return n.send(evt, embed, "account_id", payload.AccountID, "tier", payload.Tier)
}

func (n *SSENotifier) handleLeaderboardUpdated(evt SSEEvent) error {
	var payload event.LeaderboardUpdatedPayloadV1
	if !decodePayload(evt, &payload) {
		return nil
	}

	symbol := domain.TokenSymbol
	if payload.Board == "native" {
		symbol = nativeSymbol
	}

	entries := make([]domain.LeaderboardEntry, 0, len(payload.Entries))
	for _, e := range payload.Entries {
		amount, err := domain.ParseAmount(e.Amount)
		if err != nil {
			slog.Warn(sseLogMsgParseError, "error", err, "event_type", evt.Type)
			return nil
		}
		entries = append(entries, domain.LeaderboardEntry{AccountID: e.AccountID, Amount: amount})
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏆 " + boardName(payload.Board) + " leaderboard changed",
		Description: formatLeaderboard(entries, symbol),
		Color:       ColorLeaderboard,
	}
	return n.send(evt, embed, "board", payload.Board)
}

func (n *SSENotifier) handleStateErased(evt SSEEvent) error {
	var payload event.StateErasedPayloadV1
	if !decodePayload(evt, &payload) {
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Sale closed",
		Description: "The box sale state was erased. No more boxes can be opened.",
		Color:       ColorErase,
	}
	return n.send(evt, embed, "erased_by", payload.ErasedBy)
}
