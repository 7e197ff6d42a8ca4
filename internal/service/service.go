package service

import (
	"context"
	"errors"

	"e1xp_creator_backend/internal/model"

	"github.com/google/uuid"
)

var (
	ErrCreatorNotFound      = errors.New("creator not found")
	ErrCreatorExists        = errors.New("creator already registered")
	ErrReferralCodeNotFound = errors.New("referral code not found")
	ErrDuplicateReferral    = errors.New("referral already claimed for this pair")
	ErrSelfReferral         = errors.New("cannot refer yourself")
	ErrCoinNotFound         = errors.New("coin not found")
	ErrContentNotFound      = errors.New("content not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrSelfFollow           = errors.New("cannot follow yourself")
	ErrDuplicateFollow      = errors.New("already following this creator")
	ErrFollowNotFound       = errors.New("follow not found")
	ErrEmptyComment         = errors.New("comment text is required")
)

type StreakServiceI interface {
	CheckIn(ctx context.Context, userAddress string) (*model.CheckInResult, error)
	GetStreak(ctx context.Context, userAddress string) (*model.LoginStreak, error)
	Week(dates []string) [7]bool
}

type StreakRepository interface {
	GetLoginStreak(ctx context.Context, userAddress string) (*model.LoginStreak, error)
	CreateLoginStreak(ctx context.Context, userAddress string) (*model.LoginStreak, error)
	UpdateLoginStreak(ctx context.Context, streak *model.LoginStreak, pointsEarned int, prevLastLogin *string) error
}

type CreatorServiceI interface {
	Register(ctx context.Context, creator *model.Creator) error
	GetByAddress(ctx context.Context, address string) (*model.Creator, error)
	GetByReferralCode(ctx context.Context, code string) (*model.Creator, error)
	Update(ctx context.Context, address string, update *model.CreatorUpdate) error
	Leaderboard(ctx context.Context) ([]*model.Creator, error)
}

type CreatorRepository interface {
	CreateCreator(ctx context.Context, creator *model.Creator) error
	GetCreatorByAddress(ctx context.Context, address string) (*model.Creator, error)
	GetCreatorByReferralCode(ctx context.Context, code string) (*model.Creator, error)
	UpdateCreator(ctx context.Context, address string, update *model.CreatorUpdate) error
	GetTopCreators(ctx context.Context, limit int) ([]*model.Creator, error)
}

type ReferralServiceI interface {
	Apply(ctx context.Context, ref *model.Referral) error
	ListByReferrer(ctx context.Context, referrerAddress string) ([]*model.Referral, error)
}

type ReferralRepository interface {
	CreateReferral(ctx context.Context, ref *model.Referral) error
	GetReferralsByReferrer(ctx context.Context, referrerAddress string) ([]*model.Referral, error)
	GetCreatorByAddress(ctx context.Context, address string) (*model.Creator, error)
}

type NotificationServiceI interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userAddress string, unreadOnly bool) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userAddress string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *model.Notification) error
	GetNotificationsByUser(ctx context.Context, userAddress string, unreadOnly bool) ([]*model.Notification, error)
	MarkNotificationRead(ctx context.Context, id uuid.UUID) error
	MarkAllNotificationsRead(ctx context.Context, userAddress string) error
	DeleteNotification(ctx context.Context, id uuid.UUID) error
}

// NotificationSink receives events produced by the streak, referral and
// coin flows. NotificationService is the production implementation.
type NotificationSink interface {
	Create(ctx context.Context, n *model.Notification) error
}

// NotificationPublisher pushes freshly created notifications to live
// subscribers (the websocket feed).
type NotificationPublisher interface {
	Publish(n *model.Notification)
}

type FollowServiceI interface {
	Follow(ctx context.Context, followerAddress, followingAddress string) (*model.Follow, error)
	Unfollow(ctx context.Context, followerAddress, followingAddress string) error
	Followers(ctx context.Context, userAddress string) ([]*model.Follow, error)
	Following(ctx context.Context, userAddress string) ([]*model.Follow, error)
	IsFollowing(ctx context.Context, followerAddress, followingAddress string) (bool, error)
}

type FollowRepository interface {
	CreateFollow(ctx context.Context, f *model.Follow) error
	DeleteFollow(ctx context.Context, followerAddress, followingAddress string) error
	GetFollowers(ctx context.Context, userAddress string) ([]*model.Follow, error)
	GetFollowing(ctx context.Context, userAddress string) ([]*model.Follow, error)
	IsFollowing(ctx context.Context, followerAddress, followingAddress string) (bool, error)
	GetCreatorByAddress(ctx context.Context, address string) (*model.Creator, error)
}

type CommentServiceI interface {
	Create(ctx context.Context, c *model.Comment) error
	ListByCoin(ctx context.Context, coinAddress string) ([]*model.Comment, error)
	ListAll(ctx context.Context) ([]*model.Comment, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, c *model.Comment) error
	GetCommentsByCoin(ctx context.Context, coinAddress string) ([]*model.Comment, error)
	GetAllComments(ctx context.Context) ([]*model.Comment, error)
}

type CoinServiceI interface {
	CreateContent(ctx context.Context, content *model.ScrapedContent) error
	CreateCoin(ctx context.Context, c *model.Coin) error
	UpdateCoin(ctx context.Context, id uuid.UUID, update *model.CoinUpdate) error
	GetCoin(ctx context.Context, id uuid.UUID) (*model.Coin, error)
	ListCoins(ctx context.Context) ([]*model.Coin, error)
	ListByCreator(ctx context.Context, creatorWallet string) ([]*model.Coin, error)
}

type CoinRepository interface {
	CreateScrapedContent(ctx context.Context, content *model.ScrapedContent) error
	GetScrapedContent(ctx context.Context, id uuid.UUID) (*model.ScrapedContent, error)
	CreateCoin(ctx context.Context, c *model.Coin) error
	GetCoin(ctx context.Context, id uuid.UUID) (*model.Coin, error)
	UpdateCoin(ctx context.Context, id uuid.UUID, update *model.CoinUpdate) error
	GetAllCoins(ctx context.Context) ([]*model.Coin, error)
	GetCoinsByCreator(ctx context.Context, creatorWallet string) ([]*model.Coin, error)
}
