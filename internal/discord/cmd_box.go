package discord

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/handler"
)

// accountOption is the shared "account" argument of the lookup commands
func accountOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "account",
		Description: description,
		Required:    true,
	}
}

// requireAccount reads and checks the account option before any API call
func requireAccount(i *discordgo.InteractionCreate) (string, error) {
	account := stringOption(i, "account")
	if account == "" {
		return "", errors.New(MsgMissingAccount)
	}
	if !domain.IsValidAccountID(account) {
		return "", errors.New(handler.ErrMsgInvalidAccountIDError)
	}
	return account, nil
}

// BoxStatsCommand returns the /boxstats command definition and handler
func BoxStatsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "boxstats",
		Description: "Show remaining boxes per tier and token supply",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (*discordgo.MessageEmbed, error) {
			stats, err := client.GetStats()
			if err != nil {
				return nil, err
			}

			var tiers strings.Builder
			for tier, left := range stats.Remaining {
				fmt.Fprintf(&tiers, "**%s** (x%s): %d\n", tierName(tier), stats.DisplayMultipliers[tier].String(), left)
			}

			start := time.Unix(0, stats.StartTimestamp).UTC()
			return &discordgo.MessageEmbed{
				Description: strings.TrimSuffix(tiers.String(), "\n"),
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Boxes Left", Value: fmt.Sprintf("%d / %d", stats.TotalRemaining, stats.TotalInit), Inline: true},
					{Name: "Participants", Value: fmt.Sprintf("%d", stats.TotalParticipants), Inline: true},
					{Name: "Sale Opens", Value: fmt.Sprintf("<t:%d:R>", start.Unix()), Inline: true},
					{Name: "Total Supply", Value: formatAmount(stats.Supply[0], domain.TokenSymbol), Inline: true},
					{Name: "LP Supply", Value: formatAmount(stats.Supply[1], domain.TokenSymbol), Inline: true},
					{Name: "Reward Pool", Value: formatAmount(stats.Supply[2], domain.TokenSymbol), Inline: true},
				},
			}, nil
		}, ResponseConfig{Title: "📦 Box Sale", Color: ColorStats})
	}

	return cmd, handler
}

// RewardsCommand returns the /rewards command definition and handler
func RewardsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "rewards",
		Description: "Show what an account has won from boxes",
		Options:     []*discordgo.ApplicationCommandOption{accountOption("Account to look up, e.g. alice.near")},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (*discordgo.MessageEmbed, error) {
			account, err := requireAccount(i)
			if err != nil {
				return nil, err
			}
			rewards, err := client.GetRewards(account)
			if err != nil {
				return nil, err
			}

			return &discordgo.MessageEmbed{
				Title: "🎁 Rewards for " + rewards.Account,
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Boxes Opened", Value: fmt.Sprintf("%d", rewards.BoxesOpened), Inline: true},
					{Name: "Native Won", Value: formatAmount(rewards.NativeTotal, nativeSymbol), Inline: true},
					{Name: "Tokens Won", Value: formatAmount(rewards.TokenTotal, domain.TokenSymbol), Inline: true},
				},
			}, nil
		}, ResponseConfig{Title: "🎁 Rewards", Color: ColorRewards})
	}

	return cmd, handler
}

// LeaderboardCommand returns the /leaderboard command definition and handler
func LeaderboardCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "leaderboard",
		Description: "Show the top native and token winners",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "board",
				Description: "Which board to show (default: both)",
				Required:    false,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Native", Value: "native"},
					{Name: "Token", Value: "token"},
				},
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (*discordgo.MessageEmbed, error) {
			boards, err := client.GetLeaderboards()
			if err != nil {
				return nil, err
			}

			board := stringOption(i, "board")
			embed := &discordgo.MessageEmbed{}
			if board == "" || board == "native" {
				embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
					Name:  boardName("native"),
					Value: formatLeaderboard(boards.Native, nativeSymbol),
				})
			}
			if board == "" || board == "token" {
				embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
					Name:  boardName("token"),
					Value: formatLeaderboard(boards.Token, domain.TokenSymbol),
				})
			}
			return embed, nil
		}, ResponseConfig{Title: "🏆 Leaderboard", Color: ColorLeaderboard})
	}

	return cmd, handler
}

// PremiumLeftCommand returns the /premiumleft command definition and handler
func PremiumLeftCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "premiumleft",
		Description: "Show how many premium boxes an account can still win",
		Options:     []*discordgo.ApplicationCommandOption{accountOption("Account to look up, e.g. alice.near")},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (*discordgo.MessageEmbed, error) {
			account, err := requireAccount(i)
			if err != nil {
				return nil, err
			}
			left, err := client.GetPremiumLeft(account)
			if err != nil {
				return nil, err
			}

			return &discordgo.MessageEmbed{
				Description: fmt.Sprintf("**%s** can still win **%d** premium boxes.", left.Account, left.PremiumLeft),
			}, nil
		}, ResponseConfig{Title: "💎 Premium Boxes Left", Color: ColorPremium})
	}

	return cmd, handler
}

// BalanceCommand returns the /balance command definition and handler
func BalanceCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "balance",
		Description: "Show the token balance of an account",
		Options:     []*discordgo.ApplicationCommandOption{accountOption("Account to look up, e.g. alice.near")},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (*discordgo.MessageEmbed, error) {
			account, err := requireAccount(i)
			if err != nil {
				return nil, err
			}
			bal, err := client.GetBalance(account)
			if err != nil {
				return nil, err
			}

			return &discordgo.MessageEmbed{
				Description: fmt.Sprintf("**%s** holds **%s**.", bal.Account, formatAmount(bal.Balance, domain.TokenSymbol)),
			}, nil
		}, ResponseConfig{Title: "💰 Balance", Color: ColorBalance})
	}

	return cmd, handler
}

// PingCommand returns the ping command definition and handler
func PingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Check if the bot and the box service are alive",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (*discordgo.MessageEmbed, error) {
			status := "Pong! 🏓 Box service is up."
			if !client.Healthy() {
				status = "Pong! 🏓 Box service is **not** answering."
			}
			return &discordgo.MessageEmbed{Description: status}, nil
		}, ResponseConfig{Title: "Ping", Color: ColorStats})
	}

	return cmd, handler
}
