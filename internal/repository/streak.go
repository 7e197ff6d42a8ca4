package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"e1xp_creator_backend/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type loginStreak struct {
	UserAddress   string         `db:"user_address"`
	CurrentStreak int            `db:"current_streak"`
	LongestStreak int            `db:"longest_streak"`
	LastLoginDate *string        `db:"last_login_date"`
	TotalPoints   int            `db:"total_points"`
	LoginDates    pq.StringArray `db:"login_dates"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (s *loginStreak) toModel() *model.LoginStreak {
	return &model.LoginStreak{
		UserAddress:   s.UserAddress,
		CurrentStreak: s.CurrentStreak,
		LongestStreak: s.LongestStreak,
		LastLoginDate: s.LastLoginDate,
		TotalPoints:   s.TotalPoints,
		LoginDates:    s.LoginDates,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (r *Repository) GetLoginStreak(ctx context.Context, userAddress string) (*model.LoginStreak, error) {
	var streak loginStreak

	query, args, err := squirrel.
		Select("user_address", "current_streak", "longest_streak",
			"last_login_date", "total_points", "login_dates",
			"created_at", "updated_at").
		From("login_streaks").
		Where(squirrel.Eq{"user_address": userAddress}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &streak, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return streak.toModel(), nil
}

// CreateLoginStreak inserts the zero-valued record for a user that has
// never checked in. A concurrent insert for the same address surfaces
// as ErrStreakExists.
func (r *Repository) CreateLoginStreak(ctx context.Context, userAddress string) (*model.LoginStreak, error) {
	now := time.Now().UTC()

	query, args, err := squirrel.
		Insert("login_streaks").
		SetMap(map[string]interface{}{
			"user_address":    userAddress,
			"current_streak":  0,
			"longest_streak":  0,
			"last_login_date": nil,
			"total_points":    0,
			"login_dates":     pq.StringArray{},
			"created_at":      now,
			"updated_at":      now,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "") {
			return nil, ErrStreakExists
		}
		return nil, err
	}

	return &model.LoginStreak{
		UserAddress: userAddress,
		LoginDates:  []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateLoginStreak persists a check-in outcome. The write is
// conditional on last_login_date still matching prevLastLogin, so two
// same-day check-ins cannot both award points; the loser gets
// ErrStreakConflict. The creator's spendable balance is credited in the
// same transaction.
func (r *Repository) UpdateLoginStreak(ctx context.Context, streak *model.LoginStreak, pointsEarned int, prevLastLogin *string) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Update("login_streaks").
			SetMap(map[string]interface{}{
				"current_streak":  streak.CurrentStreak,
				"longest_streak":  streak.LongestStreak,
				"last_login_date": streak.LastLoginDate,
				"login_dates":     pq.StringArray(streak.LoginDates),
				"updated_at":      time.Now().UTC(),
			}).
			Set("total_points", squirrel.Expr("total_points + ?", pointsEarned)).
			Where(squirrel.Eq{"user_address": streak.UserAddress}).
			Where(squirrel.Expr("last_login_date IS NOT DISTINCT FROM ?", prevLastLogin)).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrStreakConflict
		}

		return creditCreatorPoints(ctx, tx, streak.UserAddress, pointsEarned)
	})
}

// creditCreatorPoints bumps the creator's balance. A missing creator
// row is not an error: streaks exist for wallets that never filled out
// a profile.
func creditCreatorPoints(ctx context.Context, tx *sqlx.Tx, address string, points int) error {
	query, args, err := squirrel.
		Update("creators").
		Set("points", squirrel.Expr("points + ?", points)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"address": address}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, query, args...)
	return err
}
