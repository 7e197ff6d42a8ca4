package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"e1xp_creator_backend/internal/model"
	"e1xp_creator_backend/internal/repository"
	"e1xp_creator_backend/pkg/logger"

	"go.uber.org/zap"
)

// ReferralPoints is the fixed award credited to the referrer when a
// referred wallet is attributed to them.
const ReferralPoints = 100

type ReferralService struct {
	repo ReferralRepository
	sink NotificationSink
}

func NewReferralService(repo ReferralRepository, sink NotificationSink) *ReferralService {
	return &ReferralService{
		repo: repo,
		sink: sink,
	}
}

// Apply records a referral. At most one referral may exist per
// (referrer, referred) pair; the storage unique constraint makes the
// second attempt fail with ErrDuplicateReferral no matter which code
// was used. The award is always ReferralPoints; any caller-supplied
// value is discarded.
func (s *ReferralService) Apply(ctx context.Context, ref *model.Referral) error {
	ref.ReferrerAddress = strings.ToLower(ref.ReferrerAddress)
	ref.ReferredAddress = strings.ToLower(ref.ReferredAddress)

	if ref.ReferrerAddress == ref.ReferredAddress {
		return ErrSelfReferral
	}

	if _, err := s.repo.GetCreatorByAddress(ctx, ref.ReferrerAddress); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCreatorNotFound
		}
		return fmt.Errorf("failed to look up referrer: %w", err)
	}

	ref.PointsEarned = ReferralPoints

	err := s.repo.CreateReferral(ctx, ref)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateReferral) {
			return ErrDuplicateReferral
		}
		return fmt.Errorf("failed to create referral: %w", err)
	}

	n := &model.Notification{
		UserAddress: ref.ReferrerAddress,
		Type:        model.NotificationReferralBonus,
		Title:       "Referral bonus",
		Message:     fmt.Sprintf("You earned %d E1XP for referring a new creator", ref.PointsEarned),
		Metadata: &model.NotificationMetadata{
			Points:       ref.PointsEarned,
			ReferralCode: ref.ReferralCode,
		},
	}
	if err := s.sink.Create(ctx, n); err != nil {
		logger.Logger().Warn("failed to create referral notification",
			zap.String("referrer_address", ref.ReferrerAddress),
			zap.Error(err))
	}

	return nil
}

func (s *ReferralService) ListByReferrer(ctx context.Context, referrerAddress string) ([]*model.Referral, error) {
	referrals, err := s.repo.GetReferralsByReferrer(ctx, strings.ToLower(referrerAddress))
	if err != nil {
		return nil, fmt.Errorf("failed to get referrals: %w", err)
	}
	return referrals, nil
}
