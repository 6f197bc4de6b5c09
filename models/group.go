package models

import "time"

// Group is a named set of players ("groupe" in the public API).
type Group struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// GroupMember is one membership row; Added reports whether the last add wrote it.
type GroupMember struct {
	GroupID  int  `json:"group_id" db:"group_id"`
	PlayerID int  `json:"player_id" db:"player_id"`
	Added    bool `json:"added" db:"-"`
}
