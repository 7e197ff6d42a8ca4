package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationReward          = "reward"
	NotificationStreakMilestone = "streak_milestone"
	NotificationCoinCreated     = "coin_created"
	NotificationReferralBonus   = "referral_bonus"
)

type Notification struct {
	ID          uuid.UUID
	UserAddress string
	Type        string
	Title       string
	Message     string
	Metadata    *NotificationMetadata
	Read        bool
	CreatedAt   time.Time
}

type NotificationMetadata struct {
	Points       int    `json:"points,omitempty"`
	TotalPoints  int    `json:"total_points,omitempty"`
	StreakDays   int    `json:"streak_days,omitempty"`
	ReferralCode string `json:"referral_code,omitempty"`
	CoinID       string `json:"coin_id,omitempty"`
}
