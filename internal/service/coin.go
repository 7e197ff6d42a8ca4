package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"e1xp_creator_backend/internal/model"
	"e1xp_creator_backend/internal/repository"
	"e1xp_creator_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CoinService struct {
	repo CoinRepository
	sink NotificationSink
}

func NewCoinService(repo CoinRepository, sink NotificationSink) *CoinService {
	return &CoinService{
		repo: repo,
		sink: sink,
	}
}

func (s *CoinService) CreateContent(ctx context.Context, content *model.ScrapedContent) error {
	if content.Platform == "" {
		content.Platform = "blog"
	}
	err := s.repo.CreateScrapedContent(ctx, content)
	if err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}
	return nil
}

// CreateCoin records a pending coin. The minting flow later reports the
// on-chain outcome through UpdateCoin.
func (s *CoinService) CreateCoin(ctx context.Context, c *model.Coin) error {
	c.CreatorWallet = strings.ToLower(c.CreatorWallet)
	if c.Status == "" {
		c.Status = model.CoinStatusPending
	}

	if c.ScrapedContentID != nil {
		if _, err := s.repo.GetScrapedContent(ctx, *c.ScrapedContentID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrContentNotFound
			}
			return fmt.Errorf("failed to look up content: %w", err)
		}
	}

	err := s.repo.CreateCoin(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to create coin: %w", err)
	}
	return nil
}

// UpdateCoin applies minting progress. The transition to active emits a
// coin_created notification to the creator.
func (s *CoinService) UpdateCoin(ctx context.Context, id uuid.UUID, update *model.CoinUpdate) error {
	coin, err := s.repo.GetCoin(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCoinNotFound
		}
		return fmt.Errorf("failed to get coin: %w", err)
	}

	err = s.repo.UpdateCoin(ctx, id, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCoinNotFound
		}
		return fmt.Errorf("failed to update coin: %w", err)
	}

	becameActive := update.Status != nil &&
		*update.Status == model.CoinStatusActive &&
		coin.Status != model.CoinStatusActive
	if becameActive {
		n := &model.Notification{
			UserAddress: coin.CreatorWallet,
			Type:        model.NotificationCoinCreated,
			Title:       "Coin minted",
			Message:     fmt.Sprintf("%s (%s) is now live", coin.Name, coin.Symbol),
			Metadata: &model.NotificationMetadata{
				CoinID: coin.ID.String(),
			},
		}
		if err := s.sink.Create(ctx, n); err != nil {
			logger.Logger().Warn("failed to create coin notification",
				zap.String("coin_id", coin.ID.String()),
				zap.Error(err))
		}
	}

	return nil
}

func (s *CoinService) GetCoin(ctx context.Context, id uuid.UUID) (*model.Coin, error) {
	coin, err := s.repo.GetCoin(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCoinNotFound
		}
		return nil, fmt.Errorf("failed to get coin: %w", err)
	}
	return coin, nil
}

func (s *CoinService) ListCoins(ctx context.Context) ([]*model.Coin, error) {
	coins, err := s.repo.GetAllCoins(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list coins: %w", err)
	}
	return coins, nil
}

func (s *CoinService) ListByCreator(ctx context.Context, creatorWallet string) ([]*model.Coin, error) {
	coins, err := s.repo.GetCoinsByCreator(ctx, strings.ToLower(creatorWallet))
	if err != nil {
		return nil, fmt.Errorf("failed to list creator coins: %w", err)
	}
	return coins, nil
}
