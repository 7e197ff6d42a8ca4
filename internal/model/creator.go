package model

import "time"

type Creator struct {
	ID           string
	Address      string
	Name         string
	Bio          string
	Avatar       string
	Verified     bool
	IsAdmin      bool
	TotalCoins   int
	Followers    int
	Points       int
	ReferralCode string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreatorUpdate carries the profile fields a PATCH may change.
// Nil means "leave as is".
type CreatorUpdate struct {
	Name     *string
	Bio      *string
	Avatar   *string
	Verified *bool
}
