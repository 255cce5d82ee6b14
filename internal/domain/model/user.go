package model

import (
	"time"
)

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Not exposed
	CreatedAt      time.Time `json:"created_at"`
}
