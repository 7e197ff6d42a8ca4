package api

import (
	"net/http"
	"strings"

	"e1xp_creator_backend/internal/model"
	"e1xp_creator_backend/internal/service"
	"e1xp_creator_backend/pkg/auth"
	"e1xp_creator_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type streakRoutes struct {
	ss service.StreakServiceI
	a  *auth.WalletAuth
}

func NewStreakRoutes(handler *gin.RouterGroup, ss service.StreakServiceI, a *auth.WalletAuth) {
	r := &streakRoutes{ss: ss, a: a}
	h := handler.Group("/streaks")
	h.Use(a.WalletAuthMiddleware())
	{
		h.POST("/check-in", r.CheckIn)
		h.GET("/:address", r.GetStreak)
	}
}

type CheckInRequest struct {
	Address string `json:"address"`
}

type StreakResponse struct {
	CurrentStreak int     `json:"current_streak"`
	LongestStreak int     `json:"longest_streak"`
	TotalPoints   int     `json:"total_points"`
	LastLoginDate *string `json:"last_login_date,omitempty"`
}

type CheckInResponse struct {
	PointsEarned     int            `json:"points_earned"`
	IsFirstLogin     bool           `json:"is_first_login"`
	AlreadyCheckedIn bool           `json:"already_checked_in"`
	Streak           StreakResponse `json:"streak"`
}

func (r *streakRoutes) CheckIn(c *gin.Context) {
	log := logger.Logger()

	user := auth.UserFromContext(c)
	if user == nil {
		log.Error("wallet user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.Address != "" {
		if !strings.EqualFold(req.Address, user.Address) {
			c.JSON(http.StatusForbidden, gin.H{"error": "address does not match authenticated wallet"})
			return
		}
	}

	result, err := r.ss.CheckIn(c.Request.Context(), user.Address)
	if err != nil {
		log.Error("failed to check in", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check in"})
		return
	}

	c.JSON(http.StatusOK, CheckInResponse{
		PointsEarned:     result.PointsEarned,
		IsFirstLogin:     result.IsFirstLogin,
		AlreadyCheckedIn: result.AlreadyCheckedIn,
		Streak:           toStreakResponse(result.Streak),
	})
}

type StreakStatusResponse struct {
	StreakResponse
	WeekActivity []bool `json:"week_activity"`
}

func (r *streakRoutes) GetStreak(c *gin.Context) {
	log := logger.Logger()

	address := c.Param("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
		return
	}

	streak, err := r.ss.GetStreak(c.Request.Context(), strings.ToLower(address))
	if err != nil {
		log.Error("failed to get streak", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get streak"})
		return
	}

	week := r.ss.Week(streak.LoginDates)

	c.JSON(http.StatusOK, StreakStatusResponse{
		StreakResponse: toStreakResponse(streak),
		WeekActivity:   week[:],
	})
}

func toStreakResponse(streak *model.LoginStreak) StreakResponse {
	return StreakResponse{
		CurrentStreak: streak.CurrentStreak,
		LongestStreak: streak.LongestStreak,
		TotalPoints:   streak.TotalPoints,
		LastLoginDate: streak.LastLoginDate,
	}
}
