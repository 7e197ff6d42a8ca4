package model

import "time"

// LoginStreak tracks one user's daily check-in history. Calendar dates
// are stored as UTC "2006-01-02" strings; LastLoginDate is nil before
// the first check-in.
type LoginStreak struct {
	UserAddress   string
	CurrentStreak int
	LongestStreak int
	LastLoginDate *string
	TotalPoints   int
	LoginDates    []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CheckInResult struct {
	PointsEarned     int
	IsFirstLogin     bool
	AlreadyCheckedIn bool
	Streak           *LoginStreak
}
