package models

import "time"

type Team struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	PlayerOne    int       `json:"player_one" db:"player_one"`
	PlayerTwo    int       `json:"player_two" db:"player_two"`
	Pseudo       *string   `json:"pseudo" db:"pseudo"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Заполняются только при сборке турнира целиком.
	PlayerOneDetails *Player `json:"player_one_details,omitempty" db:"-"`
	PlayerTwoDetails *Player `json:"player_two_details,omitempty" db:"-"`
}
