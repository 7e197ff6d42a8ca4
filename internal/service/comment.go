package service

import (
	"context"
	"fmt"
	"strings"

	"e1xp_creator_backend/internal/model"
)

type CommentService struct {
	repo CommentRepository
}

func NewCommentService(repo CommentRepository) *CommentService {
	return &CommentService{
		repo: repo,
	}
}

func (s *CommentService) Create(ctx context.Context, c *model.Comment) error {
	c.CoinAddress = strings.ToLower(c.CoinAddress)
	c.UserAddress = strings.ToLower(c.UserAddress)
	c.Comment = strings.TrimSpace(c.Comment)

	if c.Comment == "" {
		return ErrEmptyComment
	}

	err := s.repo.CreateComment(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (s *CommentService) ListByCoin(ctx context.Context, coinAddress string) ([]*model.Comment, error) {
	comments, err := s.repo.GetCommentsByCoin(ctx, strings.ToLower(coinAddress))
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	return comments, nil
}

func (s *CommentService) ListAll(ctx context.Context) ([]*model.Comment, error) {
	comments, err := s.repo.GetAllComments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	return comments, nil
}
