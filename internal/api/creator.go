package api

import (
	"errors"
	"net/http"
	"strings"

	"e1xp_creator_backend/internal/model"
	"e1xp_creator_backend/internal/service"
	"e1xp_creator_backend/pkg/auth"
	"e1xp_creator_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type creatorRoutes struct {
	cs service.CreatorServiceI
	a  *auth.WalletAuth
}

func NewCreatorRoutes(handler *gin.RouterGroup, cs service.CreatorServiceI, a *auth.WalletAuth) {
	r := &creatorRoutes{cs: cs, a: a}
	h := handler.Group("/creators")
	h.Use(a.WalletAuthMiddleware())
	{
		h.POST("/", r.RegisterCreator)
		h.GET("/leaderboard", r.GetLeaderboard)
		h.GET("/code/:referral_code", r.GetByReferralCode)
		h.GET("/:address", r.GetCreator)
		h.PATCH("/:address", r.UpdateCreator)
	}
}

type RegisterCreatorRequest struct {
	Name   string `json:"name"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

func (r *creatorRoutes) RegisterCreator(c *gin.Context) {
	log := logger.Logger()

	user := auth.UserFromContext(c)
	if user == nil {
		log.Error("wallet user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var req RegisterCreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	creator := &model.Creator{
		Address: user.Address,
		Name:    req.Name,
		Bio:     req.Bio,
		Avatar:  req.Avatar,
	}

	err := r.cs.Register(c.Request.Context(), creator)
	if err != nil {
		log.Error("failed to register creator", zap.Error(err))
		if errors.Is(err, service.ErrCreatorExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "creator already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register creator"})
		return
	}

	c.JSON(http.StatusCreated, creatorResponse(creator))
}

func (r *creatorRoutes) GetCreator(c *gin.Context) {
	log := logger.Logger()

	address := strings.ToLower(c.Param("address"))

	creator, err := r.cs.GetByAddress(c.Request.Context(), address)
	if err != nil {
		log.Error("failed to get creator", zap.Error(err))
		if errors.Is(err, service.ErrCreatorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no creator associated with the provided address"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get creator"})
		return
	}

	c.JSON(http.StatusOK, creatorResponse(creator))
}

func (r *creatorRoutes) GetByReferralCode(c *gin.Context) {
	log := logger.Logger()

	code := c.Param("referral_code")

	creator, err := r.cs.GetByReferralCode(c.Request.Context(), code)
	if err != nil {
		log.Error("failed to resolve referral code", zap.Error(err))
		if errors.Is(err, service.ErrReferralCodeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "referral code not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve referral code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address":       creator.Address,
		"name":          creator.Name,
		"referral_code": creator.ReferralCode,
	})
}

type UpdateCreatorRequest struct {
	Name   *string `json:"name"`
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar"`
}

func (r *creatorRoutes) UpdateCreator(c *gin.Context) {
	log := logger.Logger()

	user := auth.UserFromContext(c)
	if user == nil {
		log.Error("wallet user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	address := strings.ToLower(c.Param("address"))
	if address != user.Address {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot update another creator's profile"})
		return
	}

	var req UpdateCreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := r.cs.Update(c.Request.Context(), address, &model.CreatorUpdate{
		Name:   req.Name,
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		log.Error("failed to update creator", zap.Error(err))
		if errors.Is(err, service.ErrCreatorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "creator not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update creator"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

func (r *creatorRoutes) GetLeaderboard(c *gin.Context) {
	log := logger.Logger()

	creators, err := r.cs.Leaderboard(c.Request.Context())
	if err != nil {
		log.Error("failed to get leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	response := make([]gin.H, len(creators))
	for i, creator := range creators {
		response[i] = gin.H{
			"address":     creator.Address,
			"name":        creator.Name,
			"avatar":      creator.Avatar,
			"points":      creator.Points,
			"total_coins": creator.TotalCoins,
		}
	}

	c.JSON(http.StatusOK, response)
}

func creatorResponse(creator *model.Creator) gin.H {
	return gin.H{
		"address":       creator.Address,
		"name":          creator.Name,
		"bio":           creator.Bio,
		"avatar":        creator.Avatar,
		"verified":      creator.Verified,
		"total_coins":   creator.TotalCoins,
		"followers":     creator.Followers,
		"points":        creator.Points,
		"referral_code": creator.ReferralCode,
		"created_at":    creator.CreatedAt,
	}
}
