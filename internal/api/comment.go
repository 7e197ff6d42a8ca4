package api

import (
	"errors"
	"net/http"

	"e1xp_creator_backend/internal/model"
	"e1xp_creator_backend/internal/service"
	"e1xp_creator_backend/pkg/auth"
	"e1xp_creator_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type commentRoutes struct {
	cs service.CommentServiceI
	a  *auth.WalletAuth
}

func NewCommentRoutes(handler *gin.RouterGroup, cs service.CommentServiceI, a *auth.WalletAuth) {
	r := &commentRoutes{cs: cs, a: a}
	h := handler.Group("/comments")
	h.Use(a.WalletAuthMiddleware())
	{
		h.POST("/", r.CreateComment)
		h.GET("/", r.ListComments)
		h.GET("/coin/:address", r.ListByCoin)
	}
}

type CreateCommentRequest struct {
	CoinAddress string `json:"coin_address" binding:"required"`
	Comment     string `json:"comment" binding:"required"`
	TxHash      string `json:"transaction_hash"`
}

func (r *commentRoutes) CreateComment(c *gin.Context) {
	log := logger.Logger()

	user := auth.UserFromContext(c)
	if user == nil {
		log.Error("wallet user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	comment := &model.Comment{
		CoinAddress: req.CoinAddress,
		UserAddress: user.Address,
		Comment:     req.Comment,
		TxHash:      req.TxHash,
	}

	err := r.cs.Create(c.Request.Context(), comment)
	if err != nil {
		log.Error("failed to create comment", zap.Error(err))
		if errors.Is(err, service.ErrEmptyComment) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "comment text is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, commentResponse(comment))
}

func (r *commentRoutes) ListComments(c *gin.Context) {
	log := logger.Logger()

	comments, err := r.cs.ListAll(c.Request.Context())
	if err != nil {
		log.Error("failed to list comments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list comments"})
		return
	}

	c.JSON(http.StatusOK, commentsResponse(comments))
}

func (r *commentRoutes) ListByCoin(c *gin.Context) {
	log := logger.Logger()

	comments, err := r.cs.ListByCoin(c.Request.Context(), c.Param("address"))
	if err != nil {
		log.Error("failed to list coin comments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list coin comments"})
		return
	}

	c.JSON(http.StatusOK, commentsResponse(comments))
}

func commentResponse(comment *model.Comment) gin.H {
	return gin.H{
		"id":               comment.ID,
		"coin_address":     comment.CoinAddress,
		"user_address":     comment.UserAddress,
		"comment":          comment.Comment,
		"transaction_hash": comment.TxHash,
		"created_at":       comment.CreatedAt,
	}
}

func commentsResponse(comments []*model.Comment) []gin.H {
	out := make([]gin.H, len(comments))
	for i, comment := range comments {
		out[i] = commentResponse(comment)
	}
	return out
}
