package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"e1xp_creator_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

const expTime = 24 * time.Hour

// WalletAuth validates session tokens issued to connected wallets.
// A token is "<address>:<issued-unix>:<signature>" where the signature
// is hex HMAC-SHA256 over "<address>:<issued-unix>" with the server
// secret. Addresses are compared case-insensitively.
type WalletAuth struct {
	secret    []byte
	debugMode bool
}

func NewWalletAuth(secret string, debugMode bool) *WalletAuth {
	return &WalletAuth{
		secret:    []byte(secret),
		debugMode: debugMode,
	}
}

type WalletUserData struct {
	Address  string
	AuthDate time.Time
}

func (w *WalletAuth) WalletAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Info("missing authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		if !strings.HasPrefix(authHeader, "Wallet ") {
			log.Info("invalid authorization header format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Wallet ")
		userData, err := w.validateToken(token)
		if err != nil {
			log.Info("invalid wallet session token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid wallet auth data"})
			return
		}

		c.Set("wallet_user", userData)
		c.Next()
	}
}

// Token signs a session token for the given address. Used by the login
// exchange and by integration tooling.
func (w *WalletAuth) Token(address string, issuedAt time.Time) string {
	address = strings.ToLower(address)
	payload := fmt.Sprintf("%s:%d", address, issuedAt.Unix())
	return payload + ":" + w.sign(payload)
}

func (w *WalletAuth) validateToken(token string) (*WalletUserData, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("malformed token")
	}

	address := strings.ToLower(parts[0])
	if address == "" {
		return nil, fmt.Errorf("empty address")
	}

	issuedUnix, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid issue timestamp: %w", err)
	}

	issuedAt := time.Unix(issuedUnix, 0)
	if time.Since(issuedAt) > expTime {
		return nil, fmt.Errorf("token expired")
	}

	if !w.debugMode {
		payload := fmt.Sprintf("%s:%d", address, issuedUnix)
		if !hmac.Equal([]byte(w.sign(payload)), []byte(parts[2])) {
			return nil, fmt.Errorf("signature mismatch")
		}
	}

	return &WalletUserData{
		Address:  address,
		AuthDate: issuedAt,
	}, nil
}

func (w *WalletAuth) sign(payload string) string {
	mac := hmac.New(sha256.New, w.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// UserFromContext returns the authenticated wallet stored by the
// middleware, or nil when the request was not authenticated.
func UserFromContext(c *gin.Context) *WalletUserData {
	userData, exists := c.Get("wallet_user")
	if !exists {
		return nil
	}
	user, ok := userData.(*WalletUserData)
	if !ok {
		return nil
	}
	return user
}
