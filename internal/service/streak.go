package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"e1xp_creator_backend/internal/model"
	"e1xp_creator_backend/internal/repository"
	"e1xp_creator_backend/pkg/logger"

	"go.uber.org/zap"
)

const (
	// BasePoints is awarded for every state-changing check-in,
	// including the first one.
	BasePoints = 10
	// WeeklyBonusPoints is added whenever the streak length lands on a
	// multiple of 7: day 7, 14, 21 and so on.
	WeeklyBonusPoints = 5

	DateLayout = "2006-01-02"
)

// Clock supplies "now" so check-ins can be evaluated against fixed
// dates in tests. All calendar math is UTC.
type Clock interface {
	Now() time.Time
}

type UTCClock struct{}

func (UTCClock) Now() time.Time { return time.Now().UTC() }

// StreakOutcome is the result of evaluating one check-in against the
// prior record. Streak is the post-check-in state; on the same-day path
// it is the prior state unchanged.
type StreakOutcome struct {
	Streak           *model.LoginStreak
	IsFirstLogin     bool
	IsNewStreak      bool
	AlreadyCheckedIn bool
}

// EvaluateStreak decides whether today's check-in starts, extends or
// resets the streak. Pure: no clock, no storage.
func EvaluateStreak(prev *model.LoginStreak, today string) StreakOutcome {
	if prev == nil || prev.LastLoginDate == nil {
		streak := &model.LoginStreak{
			CurrentStreak: 1,
			LongestStreak: 1,
			LastLoginDate: &today,
			LoginDates:    []string{today},
		}
		if prev != nil {
			streak.UserAddress = prev.UserAddress
			streak.TotalPoints = prev.TotalPoints
			if prev.LongestStreak > 1 {
				streak.LongestStreak = prev.LongestStreak
			}
			streak.LoginDates = append(append([]string{}, prev.LoginDates...), today)
		}
		return StreakOutcome{Streak: streak, IsFirstLogin: true}
	}

	if *prev.LastLoginDate == today {
		return StreakOutcome{Streak: prev, AlreadyCheckedIn: true}
	}

	streak := &model.LoginStreak{
		UserAddress:   prev.UserAddress,
		LongestStreak: prev.LongestStreak,
		LastLoginDate: &today,
		TotalPoints:   prev.TotalPoints,
		LoginDates:    append(append([]string{}, prev.LoginDates...), today),
	}

	if isYesterday(*prev.LastLoginDate, today) {
		streak.CurrentStreak = prev.CurrentStreak + 1
		if streak.CurrentStreak > streak.LongestStreak {
			streak.LongestStreak = streak.CurrentStreak
		}
		return StreakOutcome{Streak: streak}
	}

	// Gap of two or more days, or an unparseable prior date: the
	// streak restarts at 1 and the longest streak is preserved.
	streak.CurrentStreak = 1
	if streak.LongestStreak < 1 {
		streak.LongestStreak = 1
	}
	return StreakOutcome{Streak: streak, IsNewStreak: true}
}

func isYesterday(prevDate, today string) bool {
	prev, err := time.Parse(DateLayout, prevDate)
	if err != nil {
		return false
	}
	cur, err := time.Parse(DateLayout, today)
	if err != nil {
		return false
	}
	return prev.AddDate(0, 0, 1).Equal(cur)
}

// PointsForCheckIn maps a streak outcome to the point award.
func PointsForCheckIn(currentStreak int, isFirstLogin, alreadyCheckedIn bool) int {
	if alreadyCheckedIn {
		return 0
	}
	if isFirstLogin {
		return BasePoints
	}
	points := BasePoints
	if currentStreak > 0 && currentStreak%7 == 0 {
		points += WeeklyBonusPoints
	}
	return points
}

type StreakService struct {
	repo  StreakRepository
	sink  NotificationSink
	clock Clock
}

func NewStreakService(repo StreakRepository, sink NotificationSink, clock Clock) *StreakService {
	return &StreakService{
		repo:  repo,
		sink:  sink,
		clock: clock,
	}
}

// CheckIn runs the daily check-in for a wallet. It is idempotent per
// calendar day: repeat calls return AlreadyCheckedIn with zero points.
// The persisted write is conditional on the previously observed
// last_login_date, so two racing same-day calls award points once; the
// loser is reported as already checked in.
func (s *StreakService) CheckIn(ctx context.Context, userAddress string) (*model.CheckInResult, error) {
	userAddress = strings.ToLower(userAddress)

	streak, err := s.repo.GetLoginStreak(ctx, userAddress)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to get login streak: %w", err)
		}
		streak, err = s.repo.CreateLoginStreak(ctx, userAddress)
		if errors.Is(err, repository.ErrStreakExists) {
			streak, err = s.repo.GetLoginStreak(ctx, userAddress)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create login streak: %w", err)
		}
	}

	today := s.clock.Now().UTC().Format(DateLayout)
	outcome := EvaluateStreak(streak, today)

	if outcome.AlreadyCheckedIn {
		return &model.CheckInResult{
			AlreadyCheckedIn: true,
			Streak:           outcome.Streak,
		}, nil
	}

	points := PointsForCheckIn(outcome.Streak.CurrentStreak, outcome.IsFirstLogin, false)
	outcome.Streak.UserAddress = userAddress
	outcome.Streak.TotalPoints = streak.TotalPoints + points

	err = s.repo.UpdateLoginStreak(ctx, outcome.Streak, points, streak.LastLoginDate)
	if err != nil {
		if errors.Is(err, repository.ErrStreakConflict) {
			return s.checkedInElsewhere(ctx, userAddress)
		}
		return nil, fmt.Errorf("failed to update login streak: %w", err)
	}

	s.notifyReward(ctx, userAddress, points, outcome)

	return &model.CheckInResult{
		PointsEarned:     points,
		IsFirstLogin:     outcome.IsFirstLogin,
		AlreadyCheckedIn: false,
		Streak:           outcome.Streak,
	}, nil
}

// checkedInElsewhere refreshes the record after a lost conditional
// write. The concurrent winner already took today's award.
func (s *StreakService) checkedInElsewhere(ctx context.Context, userAddress string) (*model.CheckInResult, error) {
	streak, err := s.repo.GetLoginStreak(ctx, userAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh login streak: %w", err)
	}
	return &model.CheckInResult{
		AlreadyCheckedIn: true,
		Streak:           streak,
	}, nil
}

func (s *StreakService) notifyReward(ctx context.Context, userAddress string, points int, outcome StreakOutcome) {
	n := &model.Notification{
		UserAddress: userAddress,
		Type:        model.NotificationReward,
		Title:       "Daily check-in reward",
		Message:     fmt.Sprintf("You earned %d E1XP for your day %d check-in", points, outcome.Streak.CurrentStreak),
		Metadata: &model.NotificationMetadata{
			Points:      points,
			TotalPoints: outcome.Streak.TotalPoints,
			StreakDays:  outcome.Streak.CurrentStreak,
		},
	}
	if outcome.Streak.CurrentStreak%7 == 0 {
		n.Type = model.NotificationStreakMilestone
		n.Title = fmt.Sprintf("%d day streak!", outcome.Streak.CurrentStreak)
	}

	// Check-in state is already committed; a failed notification is
	// logged, not surfaced.
	if err := s.sink.Create(ctx, n); err != nil {
		logger.Logger().Warn("failed to create check-in notification",
			zap.String("user_address", userAddress),
			zap.Error(err))
	}
}

// GetStreak returns the current snapshot. Wallets that never checked in
// get an empty record rather than an error.
func (s *StreakService) GetStreak(ctx context.Context, userAddress string) (*model.LoginStreak, error) {
	userAddress = strings.ToLower(userAddress)

	streak, err := s.repo.GetLoginStreak(ctx, userAddress)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &model.LoginStreak{
				UserAddress: userAddress,
				LoginDates:  []string{},
			}, nil
		}
		return nil, fmt.Errorf("failed to get login streak: %w", err)
	}
	return streak, nil
}

// Week reports check-in activity for the 7 days ending today, per this
// service's clock.
func (s *StreakService) Week(dates []string) [7]bool {
	today := s.clock.Now().UTC().Format(DateLayout)
	return WeeklyActivity(dates, today)
}

// WeeklyActivity reports which of the 7 days ending today have a
// recorded check-in, oldest first. Used for the weekly activity view.
func WeeklyActivity(dates []string, today string) [7]bool {
	var week [7]bool
	end, err := time.Parse(DateLayout, today)
	if err != nil {
		return week
	}

	seen := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		seen[d] = struct{}{}
	}

	for i := 0; i < 7; i++ {
		day := end.AddDate(0, 0, i-6).Format(DateLayout)
		_, week[i] = seen[day]
	}
	return week
}
