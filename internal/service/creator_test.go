package service

import (
	"context"
	"regexp"
	"testing"

	"e1xp_creator_backend/internal/model"
	"e1xp_creator_backend/internal/repository"
	"e1xp_creator_backend/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var referralCodePattern = regexp.MustCompile(`^E1XP-[0-9A-F]{8}$`)

func TestCreatorService_Register(t *testing.T) {
	t.Run("Assigns a referral code and lowercases the address", func(t *testing.T) {
		repo := &mocks.MockCreatorRepository{}
		repo.On("CreateCreator", mock.Anything, mock.MatchedBy(func(c *model.Creator) bool {
			return c.Address == "0xdeadbeef" && referralCodePattern.MatchString(c.ReferralCode)
		})).Return(nil).Once()

		svc := NewCreatorService(repo)

		creator := &model.Creator{Address: "0xDeadBeef", Name: "alice"}
		err := svc.Register(context.Background(), creator)
		assert.NoError(t, err)
		assert.Regexp(t, referralCodePattern, creator.ReferralCode)

		repo.AssertExpectations(t)
	})

	t.Run("Retries on a referral code collision", func(t *testing.T) {
		repo := &mocks.MockCreatorRepository{}
		repo.On("CreateCreator", mock.Anything, mock.Anything).
			Return(repository.ErrReferralCodeUsed).Once()
		repo.On("CreateCreator", mock.Anything, mock.Anything).
			Return(nil).Once()

		svc := NewCreatorService(repo)

		err := svc.Register(context.Background(), &model.Creator{Address: "0xabc"})
		assert.NoError(t, err)

		repo.AssertExpectations(t)
	})

	t.Run("Gives up after exhausting code retries", func(t *testing.T) {
		repo := &mocks.MockCreatorRepository{}
		repo.On("CreateCreator", mock.Anything, mock.Anything).
			Return(repository.ErrReferralCodeUsed).Times(referralCodeRetries)

		svc := NewCreatorService(repo)

		err := svc.Register(context.Background(), &model.Creator{Address: "0xabc"})
		assert.ErrorIs(t, err, repository.ErrReferralCodeUsed)

		repo.AssertExpectations(t)
	})

	t.Run("Duplicate wallet address", func(t *testing.T) {
		repo := &mocks.MockCreatorRepository{}
		repo.On("CreateCreator", mock.Anything, mock.Anything).
			Return(repository.ErrCreatorExists).Once()

		svc := NewCreatorService(repo)

		err := svc.Register(context.Background(), &model.Creator{Address: "0xabc"})
		assert.ErrorIs(t, err, ErrCreatorExists)

		repo.AssertExpectations(t)
	})
}

func TestCreatorService_GetByAddress(t *testing.T) {
	tests := []struct {
		name       string
		address    string
		setupMocks func(repo *mocks.MockCreatorRepository)
		wantErr    error
	}{
		{
			name:    "Found, mixed case input",
			address: "0xAbC",
			setupMocks: func(repo *mocks.MockCreatorRepository) {
				repo.On("GetCreatorByAddress", mock.Anything, "0xabc").
					Return(&model.Creator{Address: "0xabc", Points: 120}, nil)
			},
		},
		{
			name:    "Not found",
			address: "0xmissing",
			setupMocks: func(repo *mocks.MockCreatorRepository) {
				repo.On("GetCreatorByAddress", mock.Anything, "0xmissing").
					Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrCreatorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockCreatorRepository{}
			tt.setupMocks(repo)

			svc := NewCreatorService(repo)

			creator, err := svc.GetByAddress(context.Background(), tt.address)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, creator)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, creator)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestCreatorService_Leaderboard(t *testing.T) {
	repo := &mocks.MockCreatorRepository{}
	expected := []*model.Creator{
		{Address: "0xaaa", Points: 500},
		{Address: "0xbbb", Points: 300},
	}
	repo.On("GetTopCreators", mock.Anything, leaderboardLimit).Return(expected, nil)

	svc := NewCreatorService(repo)

	got, err := svc.Leaderboard(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expected, got)

	repo.AssertExpectations(t)
}
