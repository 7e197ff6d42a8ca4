package service

import (
	"context"
	"testing"
	"time"

	"e1xp_creator_backend/internal/model"
	"e1xp_creator_backend/internal/repository"
	"e1xp_creator_backend/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(DateLayout, value)
	assert.NoError(t, err)
	return parsed
}

func strPtr(s string) *string { return &s }

func TestStreakService_CheckIn(t *testing.T) {
	const addr = "0xabc123"

	tests := []struct {
		name        string
		today       string
		setupMocks  func(repo *mocks.MockStreakRepository, sink *mocks.MockNotificationSink)
		checkResult func(t *testing.T, result *model.CheckInResult)
	}{
		{
			name:  "First ever check-in",
			today: "2024-01-01",
			setupMocks: func(repo *mocks.MockStreakRepository, sink *mocks.MockNotificationSink) {
				repo.On("GetLoginStreak", mock.Anything, addr).
					Return(nil, repository.ErrNotFound).Once()
				repo.On("CreateLoginStreak", mock.Anything, addr).
					Return(&model.LoginStreak{UserAddress: addr, LoginDates: []string{}}, nil)

				repo.On("UpdateLoginStreak", mock.Anything, mock.MatchedBy(func(s *model.LoginStreak) bool {
					return s.UserAddress == addr &&
						s.CurrentStreak == 1 &&
						s.LongestStreak == 1 &&
						s.LastLoginDate != nil && *s.LastLoginDate == "2024-01-01" &&
						s.TotalPoints == 10 &&
						len(s.LoginDates) == 1 && s.LoginDates[0] == "2024-01-01"
				}), 10, (*string)(nil)).Return(nil)

				sink.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
					return n.UserAddress == addr &&
						n.Type == model.NotificationReward &&
						n.Metadata != nil && n.Metadata.Points == 10
				})).Return(nil)
			},
			checkResult: func(t *testing.T, result *model.CheckInResult) {
				assert.True(t, result.IsFirstLogin)
				assert.False(t, result.AlreadyCheckedIn)
				assert.Equal(t, 10, result.PointsEarned)
				assert.Equal(t, 1, result.Streak.CurrentStreak)
			},
		},
		{
			name:  "Second call same day is a no-op",
			today: "2024-01-01",
			setupMocks: func(repo *mocks.MockStreakRepository, sink *mocks.MockNotificationSink) {
				repo.On("GetLoginStreak", mock.Anything, addr).
					Return(&model.LoginStreak{
						UserAddress:   addr,
						CurrentStreak: 1,
						LongestStreak: 1,
						LastLoginDate: strPtr("2024-01-01"),
						TotalPoints:   10,
						LoginDates:    []string{"2024-01-01"},
					}, nil)
			},
			checkResult: func(t *testing.T, result *model.CheckInResult) {
				assert.True(t, result.AlreadyCheckedIn)
				assert.Equal(t, 0, result.PointsEarned)
				assert.Equal(t, 10, result.Streak.TotalPoints)
			},
		},
		{
			name:  "Day 7 pays the weekly bonus",
			today: "2024-01-08",
			setupMocks: func(repo *mocks.MockStreakRepository, sink *mocks.MockNotificationSink) {
				repo.On("GetLoginStreak", mock.Anything, addr).
					Return(&model.LoginStreak{
						UserAddress:   addr,
						CurrentStreak: 6,
						LongestStreak: 6,
						LastLoginDate: strPtr("2024-01-07"),
						TotalPoints:   60,
						LoginDates:    []string{"2024-01-07"},
					}, nil)

				repo.On("UpdateLoginStreak", mock.Anything, mock.MatchedBy(func(s *model.LoginStreak) bool {
					return s.CurrentStreak == 7 &&
						s.LongestStreak == 7 &&
						s.TotalPoints == 75
				}), 15, mock.MatchedBy(func(prev *string) bool {
					return prev != nil && *prev == "2024-01-07"
				})).Return(nil)

				sink.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
					return n.Type == model.NotificationStreakMilestone &&
						n.Metadata.StreakDays == 7
				})).Return(nil)
			},
			checkResult: func(t *testing.T, result *model.CheckInResult) {
				assert.Equal(t, 15, result.PointsEarned)
				assert.Equal(t, 7, result.Streak.CurrentStreak)
				assert.GreaterOrEqual(t, result.Streak.LongestStreak, 7)
			},
		},
		{
			name:  "Gap of three days resets the streak",
			today: "2024-01-10",
			setupMocks: func(repo *mocks.MockStreakRepository, sink *mocks.MockNotificationSink) {
				repo.On("GetLoginStreak", mock.Anything, addr).
					Return(&model.LoginStreak{
						UserAddress:   addr,
						CurrentStreak: 5,
						LongestStreak: 5,
						LastLoginDate: strPtr("2024-01-07"),
						TotalPoints:   50,
						LoginDates:    []string{"2024-01-07"},
					}, nil)

				repo.On("UpdateLoginStreak", mock.Anything, mock.MatchedBy(func(s *model.LoginStreak) bool {
					return s.CurrentStreak == 1 && s.LongestStreak == 5
				}), 10, mock.Anything).Return(nil)

				sink.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			checkResult: func(t *testing.T, result *model.CheckInResult) {
				assert.Equal(t, 10, result.PointsEarned)
				assert.Equal(t, 1, result.Streak.CurrentStreak)
				assert.Equal(t, 5, result.Streak.LongestStreak)
			},
		},
		{
			name:  "Streak 13 to 14 pays the milestone again",
			today: "2024-01-07",
			setupMocks: func(repo *mocks.MockStreakRepository, sink *mocks.MockNotificationSink) {
				repo.On("GetLoginStreak", mock.Anything, addr).
					Return(&model.LoginStreak{
						UserAddress:   addr,
						CurrentStreak: 13,
						LongestStreak: 13,
						LastLoginDate: strPtr("2024-01-06"),
						TotalPoints:   140,
						LoginDates:    []string{"2024-01-06"},
					}, nil)

				repo.On("UpdateLoginStreak", mock.Anything, mock.MatchedBy(func(s *model.LoginStreak) bool {
					return s.CurrentStreak == 14 && s.LongestStreak == 14
				}), 15, mock.Anything).Return(nil)

				sink.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			checkResult: func(t *testing.T, result *model.CheckInResult) {
				assert.Equal(t, 15, result.PointsEarned)
				assert.Equal(t, 14, result.Streak.CurrentStreak)
				assert.Equal(t, 14, result.Streak.LongestStreak)
			},
		},
		{
			name:  "Lost conditional write reports already checked in",
			today: "2024-01-02",
			setupMocks: func(repo *mocks.MockStreakRepository, sink *mocks.MockNotificationSink) {
				repo.On("GetLoginStreak", mock.Anything, addr).
					Return(&model.LoginStreak{
						UserAddress:   addr,
						CurrentStreak: 3,
						LongestStreak: 3,
						LastLoginDate: strPtr("2024-01-01"),
						TotalPoints:   30,
						LoginDates:    []string{"2024-01-01"},
					}, nil).Once()

				repo.On("UpdateLoginStreak", mock.Anything, mock.Anything, 10, mock.Anything).
					Return(repository.ErrStreakConflict)

				repo.On("GetLoginStreak", mock.Anything, addr).
					Return(&model.LoginStreak{
						UserAddress:   addr,
						CurrentStreak: 4,
						LongestStreak: 4,
						LastLoginDate: strPtr("2024-01-02"),
						TotalPoints:   40,
					}, nil).Once()
			},
			checkResult: func(t *testing.T, result *model.CheckInResult) {
				assert.True(t, result.AlreadyCheckedIn)
				assert.Equal(t, 0, result.PointsEarned)
				assert.Equal(t, 4, result.Streak.CurrentStreak)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockStreakRepository{}
			sink := &mocks.MockNotificationSink{}
			tt.setupMocks(repo, sink)

			svc := NewStreakService(repo, sink, fixedClock{t: mustDate(t, tt.today)})

			result, err := svc.CheckIn(context.Background(), addr)
			assert.NoError(t, err)
			assert.NotNil(t, result)

			tt.checkResult(t, result)

			repo.AssertExpectations(t)
			sink.AssertExpectations(t)
		})
	}
}

func TestEvaluateStreak(t *testing.T) {
	tests := []struct {
		name             string
		prev             *model.LoginStreak
		today            string
		wantCurrent      int
		wantLongest      int
		wantFirstLogin   bool
		wantNewStreak    bool
		wantAlreadyDone  bool
		wantDatesAppends bool
	}{
		{
			name:             "No prior record",
			prev:             nil,
			today:            "2024-03-01",
			wantCurrent:      1,
			wantLongest:      1,
			wantFirstLogin:   true,
			wantDatesAppends: true,
		},
		{
			name: "Record exists but never checked in",
			prev: &model.LoginStreak{
				UserAddress: "0xabc",
				LoginDates:  []string{},
			},
			today:            "2024-03-01",
			wantCurrent:      1,
			wantLongest:      1,
			wantFirstLogin:   true,
			wantDatesAppends: true,
		},
		{
			name: "Same day is a no-op",
			prev: &model.LoginStreak{
				CurrentStreak: 4,
				LongestStreak: 9,
				LastLoginDate: strPtr("2024-03-01"),
				LoginDates:    []string{"2024-03-01"},
			},
			today:           "2024-03-01",
			wantCurrent:     4,
			wantLongest:     9,
			wantAlreadyDone: true,
		},
		{
			name: "Consecutive day extends",
			prev: &model.LoginStreak{
				CurrentStreak: 4,
				LongestStreak: 9,
				LastLoginDate: strPtr("2024-02-29"),
				LoginDates:    []string{"2024-02-29"},
			},
			today:            "2024-03-01",
			wantCurrent:      5,
			wantLongest:      9,
			wantDatesAppends: true,
		},
		{
			name: "Extension past the previous longest",
			prev: &model.LoginStreak{
				CurrentStreak: 9,
				LongestStreak: 9,
				LastLoginDate: strPtr("2024-02-29"),
			},
			today:            "2024-03-01",
			wantCurrent:      10,
			wantLongest:      10,
			wantDatesAppends: true,
		},
		{
			name: "Two day gap resets",
			prev: &model.LoginStreak{
				CurrentStreak: 6,
				LongestStreak: 6,
				LastLoginDate: strPtr("2024-02-28"),
			},
			today:            "2024-03-01",
			wantCurrent:      1,
			wantLongest:      6,
			wantNewStreak:    true,
			wantDatesAppends: true,
		},
		{
			name: "Malformed prior date resets",
			prev: &model.LoginStreak{
				CurrentStreak: 3,
				LongestStreak: 3,
				LastLoginDate: strPtr("not-a-date"),
			},
			today:            "2024-03-01",
			wantCurrent:      1,
			wantLongest:      3,
			wantNewStreak:    true,
			wantDatesAppends: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := EvaluateStreak(tt.prev, tt.today)

			assert.Equal(t, tt.wantCurrent, outcome.Streak.CurrentStreak)
			assert.Equal(t, tt.wantLongest, outcome.Streak.LongestStreak)
			assert.Equal(t, tt.wantFirstLogin, outcome.IsFirstLogin)
			assert.Equal(t, tt.wantNewStreak, outcome.IsNewStreak)
			assert.Equal(t, tt.wantAlreadyDone, outcome.AlreadyCheckedIn)

			if tt.wantDatesAppends {
				assert.NotNil(t, outcome.Streak.LastLoginDate)
				assert.Equal(t, tt.today, *outcome.Streak.LastLoginDate)
				assert.Contains(t, outcome.Streak.LoginDates, tt.today)
			}
		})
	}
}

// Longest streak must never decrease over any check-in sequence.
func TestEvaluateStreak_LongestMonotonic(t *testing.T) {
	days := []string{
		"2024-01-01", "2024-01-02", "2024-01-03", // 3 day run
		"2024-01-07",               // gap, reset
		"2024-01-08", "2024-01-08", // extension, then a duplicate
		"2024-02-01", // long gap
	}

	var prev *model.LoginStreak
	longest := 0
	for _, day := range days {
		outcome := EvaluateStreak(prev, day)
		assert.GreaterOrEqual(t, outcome.Streak.LongestStreak, longest, "day %s", day)
		assert.LessOrEqual(t, outcome.Streak.CurrentStreak, outcome.Streak.LongestStreak, "day %s", day)
		longest = outcome.Streak.LongestStreak
		prev = outcome.Streak
	}

	assert.Equal(t, 3, longest)
}

func TestPointsForCheckIn(t *testing.T) {
	tests := []struct {
		name             string
		currentStreak    int
		isFirstLogin     bool
		alreadyCheckedIn bool
		want             int
	}{
		{"First login", 1, true, false, 10},
		{"Already checked in", 5, false, true, 0},
		{"Regular day", 3, false, false, 10},
		{"Day 7 milestone", 7, false, false, 15},
		{"Day 8 back to base", 8, false, false, 10},
		{"Day 14 milestone", 14, false, false, 15},
		{"Reset to day 1", 1, false, false, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointsForCheckIn(tt.currentStreak, tt.isFirstLogin, tt.alreadyCheckedIn)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeeklyActivity(t *testing.T) {
	dates := []string{"2024-01-01", "2024-01-03", "2024-01-07", "2023-12-20"}

	week := WeeklyActivity(dates, "2024-01-07")

	// Window is 2024-01-01 .. 2024-01-07, oldest first.
	assert.Equal(t, [7]bool{true, false, true, false, false, false, true}, week)

	empty := WeeklyActivity(nil, "2024-01-07")
	assert.Equal(t, [7]bool{}, empty)
}

func TestStreakService_GetStreak(t *testing.T) {
	t.Run("Existing record", func(t *testing.T) {
		repo := &mocks.MockStreakRepository{}
		repo.On("GetLoginStreak", mock.Anything, "0xabc").
			Return(&model.LoginStreak{
				UserAddress:   "0xabc",
				CurrentStreak: 3,
				TotalPoints:   30,
			}, nil)

		svc := NewStreakService(repo, &mocks.MockNotificationSink{}, UTCClock{})

		streak, err := svc.GetStreak(context.Background(), "0xABC")
		assert.NoError(t, err)
		assert.Equal(t, 3, streak.CurrentStreak)

		repo.AssertExpectations(t)
	})

	t.Run("Never checked in yields an empty snapshot", func(t *testing.T) {
		repo := &mocks.MockStreakRepository{}
		repo.On("GetLoginStreak", mock.Anything, "0xnew").
			Return(nil, repository.ErrNotFound)

		svc := NewStreakService(repo, &mocks.MockNotificationSink{}, UTCClock{})

		streak, err := svc.GetStreak(context.Background(), "0xnew")
		assert.NoError(t, err)
		assert.Equal(t, 0, streak.CurrentStreak)
		assert.Nil(t, streak.LastLoginDate)
		assert.Empty(t, streak.LoginDates)

		repo.AssertExpectations(t)
	})
}

// Week must derive "today" from the injected clock, not the wall clock.
func TestStreakService_Week(t *testing.T) {
	svc := NewStreakService(&mocks.MockStreakRepository{}, &mocks.MockNotificationSink{},
		fixedClock{t: mustDate(t, "2024-01-07")})

	week := svc.Week([]string{"2024-01-01", "2024-01-03", "2024-01-07"})

	assert.Equal(t, [7]bool{true, false, true, false, false, false, true}, week)
}
