package service

import (
	"context"
	"testing"

	"e1xp_creator_backend/internal/model"
	"e1xp_creator_backend/internal/repository"
	"e1xp_creator_backend/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFollowService_Follow(t *testing.T) {
	tests := []struct {
		name       string
		follower   string
		following  string
		setupMocks func(repo *mocks.MockFollowRepository)
		wantErr    error
	}{
		{
			name:      "Successful follow, mixed case input",
			follower:  "0xAAA",
			following: "0xBBB",
			setupMocks: func(repo *mocks.MockFollowRepository) {
				repo.On("GetCreatorByAddress", mock.Anything, "0xbbb").
					Return(&model.Creator{Address: "0xbbb"}, nil)
				repo.On("CreateFollow", mock.Anything, mock.MatchedBy(func(f *model.Follow) bool {
					return f.FollowerAddress == "0xaaa" && f.FollowingAddress == "0xbbb"
				})).Return(nil)
			},
		},
		{
			name:       "Self follow is rejected",
			follower:   "0xAAA",
			following:  "0xaaa",
			setupMocks: func(repo *mocks.MockFollowRepository) {},
			wantErr:    ErrSelfFollow,
		},
		{
			name:      "Unknown creator",
			follower:  "0xaaa",
			following: "0xmissing",
			setupMocks: func(repo *mocks.MockFollowRepository) {
				repo.On("GetCreatorByAddress", mock.Anything, "0xmissing").
					Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrCreatorNotFound,
		},
		{
			name:      "Second follow for the same pair",
			follower:  "0xaaa",
			following: "0xbbb",
			setupMocks: func(repo *mocks.MockFollowRepository) {
				repo.On("GetCreatorByAddress", mock.Anything, "0xbbb").
					Return(&model.Creator{Address: "0xbbb"}, nil)
				repo.On("CreateFollow", mock.Anything, mock.Anything).
					Return(repository.ErrDuplicateFollow)
			},
			wantErr: ErrDuplicateFollow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockFollowRepository{}
			tt.setupMocks(repo)

			svc := NewFollowService(repo)

			f, err := svc.Follow(context.Background(), tt.follower, tt.following)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, f)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, f)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestFollowService_Unfollow(t *testing.T) {
	t.Run("Existing edge", func(t *testing.T) {
		repo := &mocks.MockFollowRepository{}
		repo.On("DeleteFollow", mock.Anything, "0xaaa", "0xbbb").Return(nil)

		svc := NewFollowService(repo)

		err := svc.Unfollow(context.Background(), "0xAAA", "0xBBB")
		assert.NoError(t, err)

		repo.AssertExpectations(t)
	})

	t.Run("Missing edge", func(t *testing.T) {
		repo := &mocks.MockFollowRepository{}
		repo.On("DeleteFollow", mock.Anything, "0xaaa", "0xbbb").
			Return(repository.ErrNotFound)

		svc := NewFollowService(repo)

		err := svc.Unfollow(context.Background(), "0xaaa", "0xbbb")
		assert.ErrorIs(t, err, ErrFollowNotFound)

		repo.AssertExpectations(t)
	})
}

func TestFollowService_IsFollowing(t *testing.T) {
	repo := &mocks.MockFollowRepository{}
	repo.On("IsFollowing", mock.Anything, "0xaaa", "0xbbb").Return(true, nil)

	svc := NewFollowService(repo)

	following, err := svc.IsFollowing(context.Background(), "0xAAA", "0xBBB")
	assert.NoError(t, err)
	assert.True(t, following)

	repo.AssertExpectations(t)
}
