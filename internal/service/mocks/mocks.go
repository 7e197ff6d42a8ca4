package mocks

import (
	"context"

	"e1xp_creator_backend/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockStreakRepository struct {
	mock.Mock
}

func (m *MockStreakRepository) GetLoginStreak(ctx context.Context, userAddress string) (*model.LoginStreak, error) {
	args := m.Called(ctx, userAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LoginStreak), args.Error(1)
}

func (m *MockStreakRepository) CreateLoginStreak(ctx context.Context, userAddress string) (*model.LoginStreak, error) {
	args := m.Called(ctx, userAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LoginStreak), args.Error(1)
}

func (m *MockStreakRepository) UpdateLoginStreak(ctx context.Context, streak *model.LoginStreak, pointsEarned int, prevLastLogin *string) error {
	args := m.Called(ctx, streak, pointsEarned, prevLastLogin)
	return args.Error(0)
}

type MockReferralRepository struct {
	mock.Mock
}

func (m *MockReferralRepository) CreateReferral(ctx context.Context, ref *model.Referral) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockReferralRepository) GetReferralsByReferrer(ctx context.Context, referrerAddress string) ([]*model.Referral, error) {
	args := m.Called(ctx, referrerAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Referral), args.Error(1)
}

func (m *MockReferralRepository) GetCreatorByAddress(ctx context.Context, address string) (*model.Creator, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Creator), args.Error(1)
}

type MockCreatorRepository struct {
	mock.Mock
}

func (m *MockCreatorRepository) CreateCreator(ctx context.Context, creator *model.Creator) error {
	args := m.Called(ctx, creator)
	return args.Error(0)
}

func (m *MockCreatorRepository) GetCreatorByAddress(ctx context.Context, address string) (*model.Creator, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Creator), args.Error(1)
}

func (m *MockCreatorRepository) GetCreatorByReferralCode(ctx context.Context, code string) (*model.Creator, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Creator), args.Error(1)
}

func (m *MockCreatorRepository) UpdateCreator(ctx context.Context, address string, update *model.CreatorUpdate) error {
	args := m.Called(ctx, address, update)
	return args.Error(0)
}

func (m *MockCreatorRepository) GetTopCreators(ctx context.Context, limit int) ([]*model.Creator, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Creator), args.Error(1)
}

type MockNotificationSink struct {
	mock.Mock
}

func (m *MockNotificationSink) Create(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) CreateFollow(ctx context.Context, f *model.Follow) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFollowRepository) DeleteFollow(ctx context.Context, followerAddress, followingAddress string) error {
	args := m.Called(ctx, followerAddress, followingAddress)
	return args.Error(0)
}

func (m *MockFollowRepository) GetFollowers(ctx context.Context, userAddress string) ([]*model.Follow, error) {
	args := m.Called(ctx, userAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Follow), args.Error(1)
}

func (m *MockFollowRepository) GetFollowing(ctx context.Context, userAddress string) ([]*model.Follow, error) {
	args := m.Called(ctx, userAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Follow), args.Error(1)
}

func (m *MockFollowRepository) IsFollowing(ctx context.Context, followerAddress, followingAddress string) (bool, error) {
	args := m.Called(ctx, followerAddress, followingAddress)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) GetCreatorByAddress(ctx context.Context, address string) (*model.Creator, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Creator), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) CreateComment(ctx context.Context, c *model.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommentRepository) GetCommentsByCoin(ctx context.Context, coinAddress string) ([]*model.Comment, error) {
	args := m.Called(ctx, coinAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetAllComments(ctx context.Context) ([]*model.Comment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Comment), args.Error(1)
}
