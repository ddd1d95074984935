package leaderboard

// Leaderboard names used by the API and events
const (
	KindNameNative = "native"
	KindNameToken  = "token"
)
