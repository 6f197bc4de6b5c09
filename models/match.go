package models

import "time"

type MatchStatus string

const (
	MatchNotStarted MatchStatus = "not_started"
	MatchInProgress MatchStatus = "in_progress"
	MatchFinished   MatchStatus = "finished"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchNotStarted, MatchInProgress, MatchFinished:
		return true
	}
	return false
}

// Match opposes side one (team_one or player slots one/two) to side two
// (team_two or player slots three/four).
type Match struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	SessionID    *int        `json:"session_id" db:"session_id"`
	TeamOne      *int        `json:"team_one" db:"team_one"`
	TeamTwo      *int        `json:"team_two" db:"team_two"`
	PlayerOne    *int        `json:"player_one" db:"player_one"`
	PlayerTwo    *int        `json:"player_two" db:"player_two"`
	PlayerThree  *int        `json:"player_three" db:"player_three"`
	PlayerFour   *int        `json:"player_four" db:"player_four"`
	Terrain      *string     `json:"terrain" db:"terrain"`
	Status       MatchStatus `json:"status" db:"status"`
	ScoreTeamOne int         `json:"score_team_one" db:"score_team_one"`
	ScoreTeamTwo int         `json:"score_team_two" db:"score_team_two"`
	Date         *time.Time  `json:"date" db:"date"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
}
