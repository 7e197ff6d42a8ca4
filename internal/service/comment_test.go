package service

import (
	"context"
	"testing"

	"e1xp_creator_backend/internal/model"
	"e1xp_creator_backend/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCommentService_Create(t *testing.T) {
	t.Run("Normalizes addresses and trims text", func(t *testing.T) {
		repo := &mocks.MockCommentRepository{}
		repo.On("CreateComment", mock.Anything, mock.MatchedBy(func(c *model.Comment) bool {
			return c.CoinAddress == "0xcoin" &&
				c.UserAddress == "0xuser" &&
				c.Comment == "nice coin"
		})).Return(nil)

		svc := NewCommentService(repo)

		err := svc.Create(context.Background(), &model.Comment{
			CoinAddress: "0xCoin",
			UserAddress: "0xUser",
			Comment:     "  nice coin  ",
		})
		assert.NoError(t, err)

		repo.AssertExpectations(t)
	})

	t.Run("Blank comment is rejected", func(t *testing.T) {
		repo := &mocks.MockCommentRepository{}

		svc := NewCommentService(repo)

		err := svc.Create(context.Background(), &model.Comment{
			CoinAddress: "0xcoin",
			UserAddress: "0xuser",
			Comment:     "   ",
		})
		assert.ErrorIs(t, err, ErrEmptyComment)

		repo.AssertExpectations(t)
	})
}

func TestCommentService_ListByCoin(t *testing.T) {
	repo := &mocks.MockCommentRepository{}
	expected := []*model.Comment{
		{CoinAddress: "0xcoin", UserAddress: "0xaaa", Comment: "first"},
	}
	repo.On("GetCommentsByCoin", mock.Anything, "0xcoin").Return(expected, nil)

	svc := NewCommentService(repo)

	got, err := svc.ListByCoin(context.Background(), "0xCoin")
	assert.NoError(t, err)
	assert.Equal(t, expected, got)

	repo.AssertExpectations(t)
}
