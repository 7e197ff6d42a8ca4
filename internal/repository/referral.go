package repository

import (
	"context"
	"fmt"
	"time"

	"e1xp_creator_backend/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type referral struct {
	ID              uuid.UUID `db:"id"`
	ReferrerAddress string    `db:"referrer_address"`
	ReferredAddress string    `db:"referred_address"`
	ReferralCode    string    `db:"referral_code"`
	PointsEarned    int       `db:"points_earned"`
	Claimed         bool      `db:"claimed"`
	CreatedAt       time.Time `db:"created_at"`
}

// CreateReferral inserts the referral row and credits the referrer in
// one transaction. Uniqueness of the (referrer, referred) pair is the
// referrals_referrer_referred_key constraint; a violation maps to
// ErrDuplicateReferral regardless of the code used.
func (r *Repository) CreateReferral(ctx context.Context, ref *model.Referral) error {
	id := uuid.New()
	now := time.Now().UTC()

	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Insert("referrals").
			SetMap(map[string]interface{}{
				"id":               id,
				"referrer_address": ref.ReferrerAddress,
				"referred_address": ref.ReferredAddress,
				"referral_code":    ref.ReferralCode,
				"points_earned":    ref.PointsEarned,
				"claimed":          true,
				"created_at":       now,
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build referral insert query: %w", err)
		}

		_, err = tx.ExecContext(ctx, query, args...)
		if err != nil {
			if isUniqueViolation(err, "") {
				return ErrDuplicateReferral
			}
			return fmt.Errorf("failed to insert referral: %w", err)
		}

		if err := creditCreatorPoints(ctx, tx, ref.ReferrerAddress, ref.PointsEarned); err != nil {
			return fmt.Errorf("failed to credit referrer: %w", err)
		}

		ref.ID = id
		ref.Claimed = true
		ref.CreatedAt = now
		return nil
	})
}

func (r *Repository) GetReferralsByReferrer(ctx context.Context, referrerAddress string) ([]*model.Referral, error) {
	query, args, err := squirrel.
		Select("id", "referrer_address", "referred_address",
			"referral_code", "points_earned", "claimed", "created_at").
		From("referrals").
		Where(squirrel.Eq{"referrer_address": referrerAddress}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var referrals []referral
	err = r.db.SelectContext(ctx, &referrals, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get referrals: %w", err)
	}

	out := make([]*model.Referral, len(referrals))
	for i, ref := range referrals {
		out[i] = &model.Referral{
			ID:              ref.ID,
			ReferrerAddress: ref.ReferrerAddress,
			ReferredAddress: ref.ReferredAddress,
			ReferralCode:    ref.ReferralCode,
			PointsEarned:    ref.PointsEarned,
			Claimed:         ref.Claimed,
			CreatedAt:       ref.CreatedAt,
		}
	}

	return out, nil
}
