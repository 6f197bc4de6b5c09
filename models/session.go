package models

import "time"

type Session struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Reference    *string   `json:"reference" db:"reference"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Matches []Match `json:"matches" db:"-"`
}
