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
)

type creator struct {
	ID           uuid.UUID `db:"id"`
	Address      string    `db:"address"`
	Name         string    `db:"name"`
	Bio          string    `db:"bio"`
	Avatar       string    `db:"avatar"`
	Verified     bool      `db:"verified"`
	IsAdmin      bool      `db:"is_admin"`
	TotalCoins   int       `db:"total_coins"`
	Followers    int       `db:"followers"`
	Points       int       `db:"points"`
	ReferralCode string    `db:"referral_code"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (c *creator) toModel() *model.Creator {
	return &model.Creator{
		ID:           c.ID.String(),
		Address:      c.Address,
		Name:         c.Name,
		Bio:          c.Bio,
		Avatar:       c.Avatar,
		Verified:     c.Verified,
		IsAdmin:      c.IsAdmin,
		TotalCoins:   c.TotalCoins,
		Followers:    c.Followers,
		Points:       c.Points,
		ReferralCode: c.ReferralCode,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

var creatorColumns = []string{
	"id", "address", "name", "bio", "avatar", "verified", "is_admin",
	"total_coins", "followers", "points", "referral_code",
	"created_at", "updated_at",
}

func (r *Repository) CreateCreator(ctx context.Context, c *model.Creator) error {
	id := uuid.New()
	now := time.Now().UTC()

	query, args, err := squirrel.
		Insert("creators").
		SetMap(map[string]interface{}{
			"id":            id,
			"address":       c.Address,
			"name":          c.Name,
			"bio":           c.Bio,
			"avatar":        c.Avatar,
			"verified":      c.Verified,
			"is_admin":      c.IsAdmin,
			"total_coins":   0,
			"followers":     0,
			"points":        0,
			"referral_code": c.ReferralCode,
			"created_at":    now,
			"updated_at":    now,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build creator insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "creators_referral_code_key") {
			return ErrReferralCodeUsed
		}
		if isUniqueViolation(err, "") {
			return ErrCreatorExists
		}
		return fmt.Errorf("failed to insert creator: %w", err)
	}

	c.ID = id.String()
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

func (r *Repository) GetCreatorByAddress(ctx context.Context, address string) (*model.Creator, error) {
	var c creator

	query, args, err := squirrel.
		Select(creatorColumns...).
		From("creators").
		Where(squirrel.Eq{"address": address}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &c, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return c.toModel(), nil
}

func (r *Repository) GetCreatorByReferralCode(ctx context.Context, code string) (*model.Creator, error) {
	var c creator

	query, args, err := squirrel.
		Select(creatorColumns...).
		From("creators").
		Where(squirrel.Eq{"referral_code": code}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &c, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return c.toModel(), nil
}

func (r *Repository) UpdateCreator(ctx context.Context, address string, update *model.CreatorUpdate) error {
	fields := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Bio != nil {
		fields["bio"] = *update.Bio
	}
	if update.Avatar != nil {
		fields["avatar"] = *update.Avatar
	}
	if update.Verified != nil {
		fields["verified"] = *update.Verified
	}

	query, args, err := squirrel.
		Update("creators").
		SetMap(fields).
		Where(squirrel.Eq{"address": address}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
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

	return nil
}

func (r *Repository) GetTopCreators(ctx context.Context, limit int) ([]*model.Creator, error) {
	query, args, err := squirrel.
		Select(creatorColumns...).
		From("creators").
		OrderBy("points DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var creators []creator
	err = r.db.SelectContext(ctx, &creators, query, args...)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Creator, len(creators))
	for i := range creators {
		out[i] = creators[i].toModel()
	}

	return out, nil
}
