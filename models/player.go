package models

import "time"

type Player struct {
	ID         int       `json:"id" db:"id"`
	Pseudo     string    `json:"pseudo" db:"pseudo"`
	HaveAvatar bool      `json:"have_avatar" db:"have_avatar"`
	AvatarURL  *string   `json:"avatar_url" db:"avatar_url"`
	AvatarKey  *string   `json:"-" db:"avatar_key"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
