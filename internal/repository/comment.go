package repository

import (
	"context"
	"fmt"
	"time"

	"e1xp_creator_backend/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type comment struct {
	ID          uuid.UUID `db:"id"`
	CoinAddress string    `db:"coin_address"`
	UserAddress string    `db:"user_address"`
	Comment     string    `db:"comment"`
	TxHash      string    `db:"transaction_hash"`
	CreatedAt   time.Time `db:"created_at"`
}

func (c *comment) toModel() *model.Comment {
	return &model.Comment{
		ID:          c.ID,
		CoinAddress: c.CoinAddress,
		UserAddress: c.UserAddress,
		Comment:     c.Comment,
		TxHash:      c.TxHash,
		CreatedAt:   c.CreatedAt,
	}
}

var commentColumns = []string{
	"id", "coin_address", "user_address", "comment",
	"transaction_hash", "created_at",
}

func (r *Repository) CreateComment(ctx context.Context, c *model.Comment) error {
	id := uuid.New()
	now := time.Now().UTC()

	query, args, err := squirrel.
		Insert("comments").
		SetMap(map[string]interface{}{
			"id":               id,
			"coin_address":     c.CoinAddress,
			"user_address":     c.UserAddress,
			"comment":          c.Comment,
			"transaction_hash": c.TxHash,
			"created_at":       now,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build comment insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	c.ID = id
	c.CreatedAt = now
	return nil
}

func (r *Repository) GetCommentsByCoin(ctx context.Context, coinAddress string) ([]*model.Comment, error) {
	return r.selectComments(ctx, squirrel.Eq{"coin_address": coinAddress})
}

func (r *Repository) GetAllComments(ctx context.Context) ([]*model.Comment, error) {
	return r.selectComments(ctx, nil)
}

func (r *Repository) selectComments(ctx context.Context, where squirrel.Eq) ([]*model.Comment, error) {
	builder := squirrel.
		Select(commentColumns...).
		From("comments").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var comments []comment
	err = r.db.SelectContext(ctx, &comments, query, args...)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Comment, len(comments))
	for i := range comments {
		out[i] = comments[i].toModel()
	}

	return out, nil
}
