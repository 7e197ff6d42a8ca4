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

type referralRoutes struct {
	rs service.ReferralServiceI
	a  *auth.WalletAuth
}

func NewReferralRoutes(handler *gin.RouterGroup, rs service.ReferralServiceI, a *auth.WalletAuth) {
	r := &referralRoutes{rs: rs, a: a}
	h := handler.Group("/referrals")
	h.Use(a.WalletAuthMiddleware())
	{
		h.POST("/apply", r.ApplyReferral)
		h.GET("/:address", r.GetReferrals)
	}
}

type ApplyReferralRequest struct {
	ReferrerAddress string `json:"referrer_address"`
	ReferredAddress string `json:"referred_address"`
	ReferralCode    string `json:"referral_code"`
}

func (r *referralRoutes) ApplyReferral(c *gin.Context) {
	log := logger.Logger()

	user := auth.UserFromContext(c)
	if user == nil {
		log.Error("wallet user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var req ApplyReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.ReferrerAddress == "" || req.ReferredAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "referrer and referred addresses are required"})
		return
	}

	// Only the referred wallet may claim its own attribution.
	if !strings.EqualFold(req.ReferredAddress, user.Address) {
		c.JSON(http.StatusForbidden, gin.H{"error": "referred address does not match authenticated wallet"})
		return
	}

	ref := &model.Referral{
		ReferrerAddress: req.ReferrerAddress,
		ReferredAddress: req.ReferredAddress,
		ReferralCode:    req.ReferralCode,
	}

	err := r.rs.Apply(c.Request.Context(), ref)
	if err != nil {
		log.Error("failed to apply referral", zap.Error(err))
		switch {
		case errors.Is(err, service.ErrSelfReferral):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot refer yourself"})
		case errors.Is(err, service.ErrCreatorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "referrer not found"})
		case errors.Is(err, service.ErrDuplicateReferral):
			// Distinguishable so clients can suppress duplicate toasts.
			c.JSON(http.StatusConflict, gin.H{"error": "referral already exists for this pair"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply referral"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":               ref.ID,
		"referrer_address": ref.ReferrerAddress,
		"referred_address": ref.ReferredAddress,
		"referral_code":    ref.ReferralCode,
		"points_earned":    ref.PointsEarned,
		"claimed":          ref.Claimed,
		"created_at":       ref.CreatedAt,
	})
}

type referralItem struct {
	ReferredAddress string `json:"referred_address"`
	ReferralCode    string `json:"referral_code"`
	PointsEarned    int    `json:"points_earned"`
	CreatedAt       string `json:"created_at"`
}

func (r *referralRoutes) GetReferrals(c *gin.Context) {
	log := logger.Logger()

	address := c.Param("address")

	referrals, err := r.rs.ListByReferrer(c.Request.Context(), address)
	if err != nil {
		log.Error("failed to get referrals", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get referrals"})
		return
	}

	out := make([]referralItem, len(referrals))
	for i, ref := range referrals {
		out[i] = referralItem{
			ReferredAddress: ref.ReferredAddress,
			ReferralCode:    ref.ReferralCode,
			PointsEarned:    ref.PointsEarned,
			CreatedAt:       ref.CreatedAt.Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, out)
}
