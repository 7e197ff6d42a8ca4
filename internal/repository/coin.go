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
	"github.com/lib/pq"
)

type scrapedContent struct {
	ID          uuid.UUID      `db:"id"`
	URL         string         `db:"url"`
	Platform    string         `db:"platform"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Author      string         `db:"author"`
	Image       string         `db:"image"`
	Tags        pq.StringArray `db:"tags"`
	ScrapedAt   time.Time      `db:"scraped_at"`
}

type coin struct {
	ID               uuid.UUID  `db:"id"`
	Name             string     `db:"name"`
	Symbol           string     `db:"symbol"`
	Address          *string    `db:"address"`
	CreatorWallet    string     `db:"creator_wallet"`
	Status           string     `db:"status"`
	ScrapedContentID *uuid.UUID `db:"scraped_content_id"`
	IPFSURI          string     `db:"ipfs_uri"`
	ChainID          string     `db:"chain_id"`
	TxHash           string     `db:"tx_hash"`
	Description      string     `db:"description"`
	Image            string     `db:"image"`
	CreatedAt        time.Time  `db:"created_at"`
}

func (c *coin) toModel() *model.Coin {
	return &model.Coin{
		ID:               c.ID,
		Name:             c.Name,
		Symbol:           c.Symbol,
		Address:          c.Address,
		CreatorWallet:    c.CreatorWallet,
		Status:           c.Status,
		ScrapedContentID: c.ScrapedContentID,
		IPFSURI:          c.IPFSURI,
		ChainID:          c.ChainID,
		TxHash:           c.TxHash,
		Description:      c.Description,
		Image:            c.Image,
		CreatedAt:        c.CreatedAt,
	}
}

var coinColumns = []string{
	"id", "name", "symbol", "address", "creator_wallet", "status",
	"scraped_content_id", "ipfs_uri", "chain_id", "tx_hash",
	"description", "image", "created_at",
}

func (r *Repository) CreateScrapedContent(ctx context.Context, content *model.ScrapedContent) error {
	id := uuid.New()
	now := time.Now().UTC()

	query, args, err := squirrel.
		Insert("scraped_content").
		SetMap(map[string]interface{}{
			"id":          id,
			"url":         content.URL,
			"platform":    content.Platform,
			"title":       content.Title,
			"description": content.Description,
			"author":      content.Author,
			"image":       content.Image,
			"tags":        pq.StringArray(content.Tags),
			"scraped_at":  now,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert scraped content: %w", err)
	}

	content.ID = id
	content.ScrapedAt = now
	return nil
}

func (r *Repository) GetScrapedContent(ctx context.Context, id uuid.UUID) (*model.ScrapedContent, error) {
	var content scrapedContent

	query, args, err := squirrel.
		Select("id", "url", "platform", "title", "description",
			"author", "image", "tags", "scraped_at").
		From("scraped_content").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &content, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &model.ScrapedContent{
		ID:          content.ID,
		URL:         content.URL,
		Platform:    content.Platform,
		Title:       content.Title,
		Description: content.Description,
		Author:      content.Author,
		Image:       content.Image,
		Tags:        content.Tags,
		ScrapedAt:   content.ScrapedAt,
	}, nil
}

// CreateCoin inserts the coin row and bumps the creator's coin counter
// in one transaction.
func (r *Repository) CreateCoin(ctx context.Context, c *model.Coin) error {
	id := uuid.New()
	now := time.Now().UTC()

	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Insert("coins").
			SetMap(map[string]interface{}{
				"id":                 id,
				"name":               c.Name,
				"symbol":             c.Symbol,
				"address":            c.Address,
				"creator_wallet":     c.CreatorWallet,
				"status":             c.Status,
				"scraped_content_id": c.ScrapedContentID,
				"ipfs_uri":           c.IPFSURI,
				"chain_id":           c.ChainID,
				"tx_hash":            c.TxHash,
				"description":        c.Description,
				"image":              c.Image,
				"created_at":         now,
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build coin insert query: %w", err)
		}

		_, err = tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to insert coin: %w", err)
		}

		updateQuery, updateArgs, err := squirrel.
			Update("creators").
			Set("total_coins", squirrel.Expr("total_coins + 1")).
			Set("updated_at", now).
			Where(squirrel.Eq{"address": c.CreatorWallet}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build creator update query: %w", err)
		}

		_, err = tx.ExecContext(ctx, updateQuery, updateArgs...)
		if err != nil {
			return fmt.Errorf("failed to update creator coin count: %w", err)
		}

		c.ID = id
		c.CreatedAt = now
		return nil
	})
}

func (r *Repository) GetCoin(ctx context.Context, id uuid.UUID) (*model.Coin, error) {
	var c coin

	query, args, err := squirrel.
		Select(coinColumns...).
		From("coins").
		Where(squirrel.Eq{"id": id}).
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

func (r *Repository) UpdateCoin(ctx context.Context, id uuid.UUID, update *model.CoinUpdate) error {
	fields := map[string]interface{}{}
	if update.Address != nil {
		fields["address"] = *update.Address
	}
	if update.Status != nil {
		fields["status"] = *update.Status
	}
	if update.ChainID != nil {
		fields["chain_id"] = *update.ChainID
	}
	if update.TxHash != nil {
		fields["tx_hash"] = *update.TxHash
	}
	if len(fields) == 0 {
		return nil
	}

	query, args, err := squirrel.
		Update("coins").
		SetMap(fields).
		Where(squirrel.Eq{"id": id}).
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

func (r *Repository) GetAllCoins(ctx context.Context) ([]*model.Coin, error) {
	query, args, err := squirrel.
		Select(coinColumns...).
		From("coins").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var coins []coin
	err = r.db.SelectContext(ctx, &coins, query, args...)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Coin, len(coins))
	for i := range coins {
		out[i] = coins[i].toModel()
	}

	return out, nil
}

func (r *Repository) GetCoinsByCreator(ctx context.Context, creatorWallet string) ([]*model.Coin, error) {
	query, args, err := squirrel.
		Select(coinColumns...).
		From("coins").
		Where(squirrel.Eq{"creator_wallet": creatorWallet}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var coins []coin
	err = r.db.SelectContext(ctx, &coins, query, args...)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Coin, len(coins))
	for i := range coins {
		out[i] = coins[i].toModel()
	}

	return out, nil
}
