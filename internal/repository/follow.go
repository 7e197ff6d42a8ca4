package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"e1xp_creator_backend/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type follow struct {
	ID               uuid.UUID `db:"id"`
	FollowerAddress  string    `db:"follower_address"`
	FollowingAddress string    `db:"following_address"`
	CreatedAt        time.Time `db:"created_at"`
}

func (f *follow) toModel() *model.Follow {
	return &model.Follow{
		ID:               f.ID,
		FollowerAddress:  f.FollowerAddress,
		FollowingAddress: f.FollowingAddress,
		CreatedAt:        f.CreatedAt,
	}
}

// CreateFollow inserts the follow edge and bumps the followed creator's
// counter in one transaction. The (follower, following) pair is unique;
// a repeat maps to ErrDuplicateFollow.
func (r *Repository) CreateFollow(ctx context.Context, f *model.Follow) error {
	id := uuid.New()
	now := time.Now().UTC()

	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Insert("follows").
			SetMap(map[string]interface{}{
				"id":                id,
				"follower_address":  f.FollowerAddress,
				"following_address": f.FollowingAddress,
				"created_at":        now,
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build follow insert query: %w", err)
		}

		_, err = tx.ExecContext(ctx, query, args...)
		if err != nil {
			if isUniqueViolation(err, "") {
				return ErrDuplicateFollow
			}
			return fmt.Errorf("failed to insert follow: %w", err)
		}

		if err := adjustFollowerCount(ctx, tx, f.FollowingAddress, 1); err != nil {
			return err
		}

		f.ID = id
		f.CreatedAt = now
		return nil
	})
}

// DeleteFollow removes the edge and decrements the counter. A missing
// edge is ErrNotFound and leaves the counter untouched.
func (r *Repository) DeleteFollow(ctx context.Context, followerAddress, followingAddress string) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Delete("follows").
			Where(squirrel.Eq{
				"follower_address":  followerAddress,
				"following_address": followingAddress,
			}).
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
			return ErrNotFound
		}

		return adjustFollowerCount(ctx, tx, followingAddress, -1)
	})
}

// adjustFollowerCount shifts creators.followers. A missing creator row
// is not an error, same as creditCreatorPoints.
func adjustFollowerCount(ctx context.Context, tx *sqlx.Tx, address string, delta int) error {
	query, args, err := squirrel.
		Update("creators").
		Set("followers", squirrel.Expr("greatest(followers + ?, 0)", delta)).
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

func (r *Repository) GetFollowers(ctx context.Context, userAddress string) ([]*model.Follow, error) {
	return r.selectFollows(ctx, squirrel.Eq{"following_address": userAddress})
}

func (r *Repository) GetFollowing(ctx context.Context, userAddress string) ([]*model.Follow, error) {
	return r.selectFollows(ctx, squirrel.Eq{"follower_address": userAddress})
}

func (r *Repository) selectFollows(ctx context.Context, where squirrel.Eq) ([]*model.Follow, error) {
	query, args, err := squirrel.
		Select("id", "follower_address", "following_address", "created_at").
		From("follows").
		Where(where).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var follows []follow
	err = r.db.SelectContext(ctx, &follows, query, args...)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Follow, len(follows))
	for i := range follows {
		out[i] = follows[i].toModel()
	}

	return out, nil
}

func (r *Repository) IsFollowing(ctx context.Context, followerAddress, followingAddress string) (bool, error) {
	query, args, err := squirrel.
		Select("1").
		From("follows").
		Where(squirrel.Eq{
			"follower_address":  followerAddress,
			"following_address": followingAddress,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = r.db.GetContext(ctx, &one, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
