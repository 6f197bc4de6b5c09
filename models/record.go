package models

// Record is one result row keyed by column name.
type Record map[string]any

// Pair is two player slots produced by team pairing. A zero slot means "no partner".
type Pair struct {
	PlayerOne int `json:"player_one"`
	PlayerTwo int `json:"player_two"`
}

// TournamentSummary is a tournament row with its membership count.
type TournamentSummary struct {
	Tournament
	PlayerCount int `json:"player_count"`
}
