package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"e1xp_creator_backend/internal/model"
	"e1xp_creator_backend/internal/service"
	"e1xp_creator_backend/pkg/auth"
	"e1xp_creator_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type followRoutes struct {
	fs service.FollowServiceI
	a  *auth.WalletAuth
}

func NewFollowRoutes(handler *gin.RouterGroup, fs service.FollowServiceI, a *auth.WalletAuth) {
	r := &followRoutes{fs: fs, a: a}
	h := handler.Group("/follows")
	h.Use(a.WalletAuthMiddleware())
	{
		h.POST("/", r.Follow)
		h.DELETE("/:address", r.Unfollow)
		h.GET("/:address/followers", r.GetFollowers)
		h.GET("/:address/following", r.GetFollowing)
		h.GET("/:address/status", r.GetStatus)
	}
}

type FollowRequest struct {
	FollowingAddress string `json:"following_address" binding:"required"`
}

func (r *followRoutes) Follow(c *gin.Context) {
	log := logger.Logger()

	user := auth.UserFromContext(c)
	if user == nil {
		log.Error("wallet user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var req FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	f, err := r.fs.Follow(c.Request.Context(), user.Address, req.FollowingAddress)
	if err != nil {
		log.Error("failed to create follow", zap.Error(err))
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot follow yourself"})
		case errors.Is(err, service.ErrCreatorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "creator not found"})
		case errors.Is(err, service.ErrDuplicateFollow):
			c.JSON(http.StatusConflict, gin.H{"error": "already following this creator"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create follow"})
		}
		return
	}

	c.JSON(http.StatusCreated, followResponse(f))
}

func (r *followRoutes) Unfollow(c *gin.Context) {
	log := logger.Logger()

	user := auth.UserFromContext(c)
	if user == nil {
		log.Error("wallet user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	address := c.Param("address")

	err := r.fs.Unfollow(c.Request.Context(), user.Address, address)
	if err != nil {
		log.Error("failed to delete follow", zap.Error(err))
		if errors.Is(err, service.ErrFollowNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not following this creator"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete follow"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

func (r *followRoutes) GetFollowers(c *gin.Context) {
	log := logger.Logger()

	follows, err := r.fs.Followers(c.Request.Context(), c.Param("address"))
	if err != nil {
		log.Error("failed to get followers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get followers"})
		return
	}

	c.JSON(http.StatusOK, followsResponse(follows))
}

func (r *followRoutes) GetFollowing(c *gin.Context) {
	log := logger.Logger()

	follows, err := r.fs.Following(c.Request.Context(), c.Param("address"))
	if err != nil {
		log.Error("failed to get following", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get following"})
		return
	}

	c.JSON(http.StatusOK, followsResponse(follows))
}

// GetStatus reports whether the authenticated wallet follows :address.
func (r *followRoutes) GetStatus(c *gin.Context) {
	log := logger.Logger()

	user := auth.UserFromContext(c)
	if user == nil {
		log.Error("wallet user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	address := c.Param("address")

	following, err := r.fs.IsFollowing(c.Request.Context(), user.Address, address)
	if err != nil {
		log.Error("failed to check follow", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check follow"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"follower_address":  user.Address,
		"following_address": strings.ToLower(address),
		"following":         following,
	})
}

func followResponse(f *model.Follow) gin.H {
	return gin.H{
		"id":                f.ID,
		"follower_address":  f.FollowerAddress,
		"following_address": f.FollowingAddress,
		"created_at":        f.CreatedAt.Format(time.RFC3339),
	}
}

func followsResponse(follows []*model.Follow) []gin.H {
	out := make([]gin.H, len(follows))
	for i, f := range follows {
		out[i] = followResponse(f)
	}
	return out
}
