package model

import (
	"time"

	"github.com/google/uuid"
)

type Referral struct {
	ID              uuid.UUID
	ReferrerAddress string
	ReferredAddress string
	ReferralCode    string
	PointsEarned    int
	Claimed         bool
	CreatedAt       time.Time
}
