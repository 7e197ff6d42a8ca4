package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"e1xp_creator_backend/internal/model"
	"e1xp_creator_backend/internal/repository"
)

type FollowService struct {
	repo FollowRepository
}

func NewFollowService(repo FollowRepository) *FollowService {
	return &FollowService{
		repo: repo,
	}
}

// Follow records the edge and bumps the followed creator's counter. At
// most one edge may exist per (follower, following) pair.
func (s *FollowService) Follow(ctx context.Context, followerAddress, followingAddress string) (*model.Follow, error) {
	followerAddress = strings.ToLower(followerAddress)
	followingAddress = strings.ToLower(followingAddress)

	if followerAddress == followingAddress {
		return nil, ErrSelfFollow
	}

	if _, err := s.repo.GetCreatorByAddress(ctx, followingAddress); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, fmt.Errorf("failed to look up creator: %w", err)
	}

	f := &model.Follow{
		FollowerAddress:  followerAddress,
		FollowingAddress: followingAddress,
	}
	err := s.repo.CreateFollow(ctx, f)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateFollow) {
			return nil, ErrDuplicateFollow
		}
		return nil, fmt.Errorf("failed to create follow: %w", err)
	}

	return f, nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerAddress, followingAddress string) error {
	err := s.repo.DeleteFollow(ctx,
		strings.ToLower(followerAddress), strings.ToLower(followingAddress))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFollowNotFound
		}
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	return nil
}

func (s *FollowService) Followers(ctx context.Context, userAddress string) ([]*model.Follow, error) {
	follows, err := s.repo.GetFollowers(ctx, strings.ToLower(userAddress))
	if err != nil {
		return nil, fmt.Errorf("failed to get followers: %w", err)
	}
	return follows, nil
}

func (s *FollowService) Following(ctx context.Context, userAddress string) ([]*model.Follow, error) {
	follows, err := s.repo.GetFollowing(ctx, strings.ToLower(userAddress))
	if err != nil {
		return nil, fmt.Errorf("failed to get following: %w", err)
	}
	return follows, nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerAddress, followingAddress string) (bool, error) {
	following, err := s.repo.IsFollowing(ctx,
		strings.ToLower(followerAddress), strings.ToLower(followingAddress))
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return following, nil
}
