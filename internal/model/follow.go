package model

import (
	"time"

	"github.com/google/uuid"
)

type Follow struct {
	ID               uuid.UUID
	FollowerAddress  string
	FollowingAddress string
	CreatedAt        time.Time
}
