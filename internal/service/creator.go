package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"e1xp_creator_backend/internal/model"
	"e1xp_creator_backend/internal/repository"
)

const (
	leaderboardLimit    = 100
	referralCodeBytes   = 4
	referralCodeRetries = 3
)

type CreatorService struct {
	repo CreatorRepository
}

func NewCreatorService(repo CreatorRepository) *CreatorService {
	return &CreatorService{
		repo: repo,
	}
}

// Register creates a creator profile for a wallet address and assigns
// it a unique referral code. Code collisions are retried with a fresh
// code.
func (s *CreatorService) Register(ctx context.Context, creator *model.Creator) error {
	creator.Address = strings.ToLower(creator.Address)

	var err error
	for i := 0; i < referralCodeRetries; i++ {
		creator.ReferralCode, err = generateReferralCode()
		if err != nil {
			return fmt.Errorf("failed to generate referral code: %w", err)
		}

		err = s.repo.CreateCreator(ctx, creator)
		if errors.Is(err, repository.ErrReferralCodeUsed) {
			continue
		}
		if errors.Is(err, repository.ErrCreatorExists) {
			return ErrCreatorExists
		}
		if err != nil {
			return fmt.Errorf("failed to create creator: %w", err)
		}
		return nil
	}
	return fmt.Errorf("failed to create creator: %w", err)
}

func generateReferralCode() (string, error) {
	buf := make([]byte, referralCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "E1XP-" + strings.ToUpper(hex.EncodeToString(buf)), nil
}

func (s *CreatorService) GetByAddress(ctx context.Context, address string) (*model.Creator, error) {
	creator, err := s.repo.GetCreatorByAddress(ctx, strings.ToLower(address))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, fmt.Errorf("failed to get creator: %w", err)
	}
	return creator, nil
}

func (s *CreatorService) GetByReferralCode(ctx context.Context, code string) (*model.Creator, error) {
	creator, err := s.repo.GetCreatorByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReferralCodeNotFound
		}
		return nil, fmt.Errorf("failed to get creator by referral code: %w", err)
	}
	return creator, nil
}

func (s *CreatorService) Update(ctx context.Context, address string, update *model.CreatorUpdate) error {
	err := s.repo.UpdateCreator(ctx, strings.ToLower(address), update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCreatorNotFound
		}
		return fmt.Errorf("failed to update creator: %w", err)
	}
	return nil
}

func (s *CreatorService) Leaderboard(ctx context.Context) ([]*model.Creator, error) {
	creators, err := s.repo.GetTopCreators(ctx, leaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top creators: %w", err)
	}
	return creators, nil
}
