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

func TestReferralService_Apply(t *testing.T) {
	tests := []struct {
		name       string
		referral   *model.Referral
		setupMocks func(repo *mocks.MockReferralRepository, sink *mocks.MockNotificationSink)
		wantErr    error
	}{
		{
			name: "Successful referral credits the referrer",
			referral: &model.Referral{
				ReferrerAddress: "0xAAA",
				ReferredAddress: "0xBBB",
				ReferralCode:    "E1XP-1A2B3C4D",
			},
			setupMocks: func(repo *mocks.MockReferralRepository, sink *mocks.MockNotificationSink) {
				repo.On("GetCreatorByAddress", mock.Anything, "0xaaa").
					Return(&model.Creator{Address: "0xaaa"}, nil)
				repo.On("CreateReferral", mock.Anything, mock.MatchedBy(func(ref *model.Referral) bool {
					return ref.ReferrerAddress == "0xaaa" &&
						ref.ReferredAddress == "0xbbb" &&
						ref.PointsEarned == 100
				})).Return(nil)
				sink.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
					return n.UserAddress == "0xaaa" &&
						n.Type == model.NotificationReferralBonus &&
						n.Metadata.Points == 100 &&
						n.Metadata.ReferralCode == "E1XP-1A2B3C4D"
				})).Return(nil)
			},
		},
		{
			name: "Caller-supplied points are discarded",
			referral: &model.Referral{
				ReferrerAddress: "0xaaa",
				ReferredAddress: "0xbbb",
				PointsEarned:    99999,
			},
			setupMocks: func(repo *mocks.MockReferralRepository, sink *mocks.MockNotificationSink) {
				repo.On("GetCreatorByAddress", mock.Anything, "0xaaa").
					Return(&model.Creator{Address: "0xaaa"}, nil)
				repo.On("CreateReferral", mock.Anything, mock.MatchedBy(func(ref *model.Referral) bool {
					return ref.PointsEarned == ReferralPoints
				})).Return(nil)
				sink.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
					return n.Metadata.Points == ReferralPoints
				})).Return(nil)
			},
		},
		{
			name: "Self referral is rejected",
			referral: &model.Referral{
				ReferrerAddress: "0xAAA",
				ReferredAddress: "0xaaa",
			},
			setupMocks: func(repo *mocks.MockReferralRepository, sink *mocks.MockNotificationSink) {},
			wantErr:    ErrSelfReferral,
		},
		{
			name: "Unknown referrer",
			referral: &model.Referral{
				ReferrerAddress: "0xaaa",
				ReferredAddress: "0xbbb",
			},
			setupMocks: func(repo *mocks.MockReferralRepository, sink *mocks.MockNotificationSink) {
				repo.On("GetCreatorByAddress", mock.Anything, "0xaaa").
					Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrCreatorNotFound,
		},
		{
			name: "Second referral for the same pair",
			referral: &model.Referral{
				ReferrerAddress: "0xaaa",
				ReferredAddress: "0xbbb",
			},
			setupMocks: func(repo *mocks.MockReferralRepository, sink *mocks.MockNotificationSink) {
				repo.On("GetCreatorByAddress", mock.Anything, "0xaaa").
					Return(&model.Creator{Address: "0xaaa"}, nil)
				repo.On("CreateReferral", mock.Anything, mock.Anything).
					Return(repository.ErrDuplicateReferral)
			},
			wantErr: ErrDuplicateReferral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockReferralRepository{}
			sink := &mocks.MockNotificationSink{}
			tt.setupMocks(repo, sink)

			svc := NewReferralService(repo, sink)

			err := svc.Apply(context.Background(), tt.referral)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
			sink.AssertExpectations(t)
		})
	}
}

func TestReferralService_ListByReferrer(t *testing.T) {
	repo := &mocks.MockReferralRepository{}
	sink := &mocks.MockNotificationSink{}

	expected := []*model.Referral{
		{ReferrerAddress: "0xaaa", ReferredAddress: "0xccc", PointsEarned: 100},
		{ReferrerAddress: "0xaaa", ReferredAddress: "0xbbb", PointsEarned: 100},
	}
	repo.On("GetReferralsByReferrer", mock.Anything, "0xaaa").Return(expected, nil)

	svc := NewReferralService(repo, sink)

	got, err := svc.ListByReferrer(context.Background(), "0xAAA")
	assert.NoError(t, err)
	assert.Equal(t, expected, got)

	repo.AssertExpectations(t)
}
