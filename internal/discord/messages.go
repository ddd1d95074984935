package discord

// Friendly message constants for Discord responses
const (
	MsgInvalidAccount    = "👤 **Invalid Account**\nAccount ids look like `alice.near`: lowercase letters, digits, `-`, `_` and dots."
	MsgSaleNotStarted    = "📦 **Sale Not Ready**\nThe box sale has not been set up yet."
	MsgServerUnavailable = "🛠️ **Server Unavailable**\nThe box service is not answering right now. Try again shortly."
	MsgMissingAccount    = "👤 **Missing Account**\nPass the account to look up."
	MsgNoEntries         = "_No entries yet._"

	MsgGenericError = "❌ Something went wrong."
)

// Embed colors
const (
	ColorStats       = 0x3498db // blue
	ColorRewards     = 0x2ecc71 // green
	ColorLeaderboard = 0x1abc9c // teal
	ColorPremium     = 0x9b59b6 // purple
	ColorBalance     = 0xf1c40f // yellow
	ColorJackpot     = 0xffd700 // gold
	ColorErase       = 0xe74c3c // red
)
