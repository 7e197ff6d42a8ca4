package api

import (
	"errors"
	"net/http"
	"strings"

	"e1xp_creator_backend/internal/middleware"
	"e1xp_creator_backend/internal/model"
	"e1xp_creator_backend/internal/service"
	"e1xp_creator_backend/pkg/auth"
	"e1xp_creator_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type coinRoutes struct {
	cs service.CoinServiceI
	a  *auth.WalletAuth
}

func NewCoinRoutes(handler *gin.RouterGroup, cs service.CoinServiceI, a *auth.WalletAuth, authz *middleware.Authorization) {
	r := &coinRoutes{cs: cs, a: a}
	h := handler.Group("/coins")
	h.Use(a.WalletAuthMiddleware())
	{
		h.POST("/content", r.CreateContent)
		h.POST("/", r.CreateCoin)
		h.GET("/", r.ListCoins)
		h.GET("/:id", r.GetCoin)
		h.GET("/creator/:address", r.ListByCreator)
		h.PATCH("/:id", authz.AdminOnly(), r.UpdateCoin)
	}
}

type CreateContentRequest struct {
	URL         string   `json:"url" binding:"required"`
	Platform    string   `json:"platform"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Author      string   `json:"author"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
}

func (r *coinRoutes) CreateContent(c *gin.Context) {
	log := logger.Logger()

	var req CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	content := &model.ScrapedContent{
		URL:         req.URL,
		Platform:    req.Platform,
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
		Image:       req.Image,
		Tags:        req.Tags,
	}

	err := r.cs.CreateContent(c.Request.Context(), content)
	if err != nil {
		log.Error("failed to create content", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create content"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         content.ID,
		"url":        content.URL,
		"platform":   content.Platform,
		"title":      content.Title,
		"scraped_at": content.ScrapedAt,
	})
}

type CreateCoinRequest struct {
	Name             string  `json:"name" binding:"required"`
	Symbol           string  `json:"symbol" binding:"required"`
	ScrapedContentID *string `json:"scraped_content_id"`
	IPFSURI          string  `json:"ipfs_uri"`
	Description      string  `json:"description"`
	Image            string  `json:"image"`
}

func (r *coinRoutes) CreateCoin(c *gin.Context) {
	log := logger.Logger()

	user := auth.UserFromContext(c)
	if user == nil {
		log.Error("wallet user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var req CreateCoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	coin := &model.Coin{
		Name:          req.Name,
		Symbol:        strings.ToUpper(req.Symbol),
		CreatorWallet: user.Address,
		IPFSURI:       req.IPFSURI,
		Description:   req.Description,
		Image:         req.Image,
	}

	if req.ScrapedContentID != nil {
		contentID, err := uuid.Parse(*req.ScrapedContentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scraped_content_id"})
			return
		}
		coin.ScrapedContentID = &contentID
	}

	err := r.cs.CreateCoin(c.Request.Context(), coin)
	if err != nil {
		log.Error("failed to create coin", zap.Error(err))
		if errors.Is(err, service.ErrContentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create coin"})
		return
	}

	c.JSON(http.StatusCreated, coinResponse(coin))
}

func (r *coinRoutes) GetCoin(c *gin.Context) {
	log := logger.Logger()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coin id"})
		return
	}

	coin, err := r.cs.GetCoin(c.Request.Context(), id)
	if err != nil {
		log.Error("failed to get coin", zap.Error(err))
		if errors.Is(err, service.ErrCoinNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "coin not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get coin"})
		return
	}

	c.JSON(http.StatusOK, coinResponse(coin))
}

func (r *coinRoutes) ListCoins(c *gin.Context) {
	log := logger.Logger()

	coins, err := r.cs.ListCoins(c.Request.Context())
	if err != nil {
		log.Error("failed to list coins", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list coins"})
		return
	}

	c.JSON(http.StatusOK, coinsResponse(coins))
}

func (r *coinRoutes) ListByCreator(c *gin.Context) {
	log := logger.Logger()

	address := c.Param("address")

	coins, err := r.cs.ListByCreator(c.Request.Context(), address)
	if err != nil {
		log.Error("failed to list creator coins", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list creator coins"})
		return
	}

	c.JSON(http.StatusOK, coinsResponse(coins))
}

type UpdateCoinRequest struct {
	Address *string `json:"address"`
	Status  *string `json:"status"`
	ChainID *string `json:"chain_id"`
	TxHash  *string `json:"tx_hash"`
}

func (r *coinRoutes) UpdateCoin(c *gin.Context) {
	log := logger.Logger()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coin id"})
		return
	}

	var req UpdateCoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.Status != nil {
		switch *req.Status {
		case model.CoinStatusPending, model.CoinStatusActive, model.CoinStatusFailed:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
	}

	err = r.cs.UpdateCoin(c.Request.Context(), id, &model.CoinUpdate{
		Address: req.Address,
		Status:  req.Status,
		ChainID: req.ChainID,
		TxHash:  req.TxHash,
	})
	if err != nil {
		log.Error("failed to update coin", zap.Error(err))
		if errors.Is(err, service.ErrCoinNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "coin not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update coin"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

func coinResponse(coin *model.Coin) gin.H {
	return gin.H{
		"id":                 coin.ID,
		"name":               coin.Name,
		"symbol":             coin.Symbol,
		"address":            coin.Address,
		"creator_wallet":     coin.CreatorWallet,
		"status":             coin.Status,
		"scraped_content_id": coin.ScrapedContentID,
		"ipfs_uri":           coin.IPFSURI,
		"chain_id":           coin.ChainID,
		"tx_hash":            coin.TxHash,
		"description":        coin.Description,
		"image":              coin.Image,
		"created_at":         coin.CreatedAt,
	}
}

func coinsResponse(coins []*model.Coin) []gin.H {
	out := make([]gin.H, len(coins))
	for i, coin := range coins {
		out[i] = coinResponse(coin)
	}
	return out
}
