package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/layer-3/dropregards/service"
)

// AuthHandlers contains HTTP handlers for auth endpoints
type AuthHandlers struct {
	authService *service.AuthService
	log         *zap.Logger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService *service.AuthService, log *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		log:         log,
	}
}

// Nonce issues a message for the wallet to sign
func (h *AuthHandlers) Nonce(c *gin.Context) {
	var req struct {
		WalletAddress string `json:"walletAddress" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": "Wallet address is required"})
		return
	}

	nonce, err := h.authService.CreateNonce(c.Request.Context(), req.WalletAddress)
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"nonce": nonce})
}

// VerifySignature exchanges a signed nonce for a bearer token
func (h *AuthHandlers) VerifySignature(c *gin.Context) {
	var req struct {
		WalletAddress string `json:"walletAddress" binding:"required"`
		Signature     string `json:"signature" binding:"required"`
		Nonce         string `json:"nonce" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": "Wallet address, signature, and nonce are required"})
		return
	}

	result, err := h.authService.VerifySignature(c.Request.Context(), req.WalletAddress, req.Signature, req.Nonce)
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	resp := gin.H{
		"token":         result.Token,
		"walletAddress": result.Address,
		"hasProfile":    result.HasProfile,
	}
	if result.HasProfile {
		resp["username"] = result.Username
	}

	c.JSON(http.StatusOK, resp)
}

// Logout acknowledges a logout; tokens are stateless and dropped by the client
func (h *AuthHandlers) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
