package models

import "time"

// TournamentStatus is the lifecycle label of a tournament.
type TournamentStatus string

const (
	TournamentNotStarted TournamentStatus = "not_started"
	TournamentInProgress TournamentStatus = "in_progress"
	TournamentFinished   TournamentStatus = "finished"
)

func (s TournamentStatus) Valid() bool {
	switch s {
	case TournamentNotStarted, TournamentInProgress, TournamentFinished:
		return true
	}
	return false
}

type Tournament struct {
	ID         int              `json:"id" db:"id"`
	Name       string           `json:"name" db:"name"`
	IsTimeFree bool             `json:"is_time_free" db:"is_time_free"`
	Time       *string          `json:"time" db:"time"`
	Status     TournamentStatus `json:"status" db:"status"`
	Place      *string          `json:"place" db:"place"`
	StartDate  *time.Time       `json:"start_date" db:"start_date"`
	EndDate    *time.Time       `json:"end_date" db:"end_date"`
	CreatedAt  time.Time        `json:"created_at" db:"created_at"`
}

// TournamentAggregate is a tournament with everything that hangs under it.
type TournamentAggregate struct {
	Tournament *Tournament `json:"tournament"`
	Players    []Player    `json:"players"`
	Teams      []Team      `json:"teams"`
	Sessions   []Session   `json:"sessions"`
	Matches    []Match     `json:"matches"`
}

type SessionRef struct {
	ID        int    `json:"id"`
	Reference string `json:"reference"`
}

type TeamRef struct {
	ID        int     `json:"id"`
	Reference *string `json:"reference"`
}

type CreateTournamentResult struct {
	TournamentID int          `json:"tournament_id"`
	Teams        []TeamRef    `json:"teams"`
	Sessions     []SessionRef `json:"sessions"`
}
