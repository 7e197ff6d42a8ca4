package middleware

import (
	"net/http"

	"e1xp_creator_backend/internal/service"
	"e1xp_creator_backend/pkg/auth"
	"e1xp_creator_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type Authorization struct {
	creatorService service.CreatorServiceI
}

func NewAuthorization(creatorService service.CreatorServiceI) *Authorization {
	return &Authorization{
		creatorService: creatorService,
	}
}

func (a *Authorization) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		user := auth.UserFromContext(c)
		if user == nil {
			log.Error("wallet user data not found in context")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		creator, err := a.creatorService.GetByAddress(c.Request.Context(), user.Address)
		if err != nil {
			log.Error("failed to get creator data", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "creator not found"})
			return
		}

		if !creator.IsAdmin {
			log.Info("unauthorized access attempt to admin endpoint",
				zap.String("address", user.Address))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		c.Set("is_admin", true)
		c.Next()
	}
}
