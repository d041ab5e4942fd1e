package http

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/layer-3/dropregards/core"
	"github.com/layer-3/dropregards/service"
)

type contextKey struct{}

// addressKey is the gin context key holding the authenticated wallet
const addressKey = "walletAddress"

// AddressFromContext returns the wallet authenticated by AuthMiddleware
func AddressFromContext(ctx context.Context) (string, bool) {
	address, ok := ctx.Value(contextKey{}).(string)
	return address, ok && address != ""
}

// AuthMiddleware creates middleware that validates bearer tokens
func AuthMiddleware(authService *service.AuthService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortWithError(c, log, core.ErrMissingToken)
			return
		}

		identity, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, log, err)
			return
		}

		// Set the wallet address in both contexts
		c.Set(addressKey, identity.Address)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), contextKey{}, identity.Address))

		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func currentAddress(c *gin.Context) string {
	return c.GetString(addressKey)
}
