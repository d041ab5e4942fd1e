package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/layer-3/dropregards/core"
	"github.com/layer-3/dropregards/service"
)

// RegardHandlers contains HTTP handlers for regard endpoints
type RegardHandlers struct {
	regardService *service.RegardService
	log           *zap.Logger
}

// NewRegardHandlers creates new regard handlers
func NewRegardHandlers(regardService *service.RegardService, log *zap.Logger) *RegardHandlers {
	return &RegardHandlers{
		regardService: regardService,
		log:           log,
	}
}

// Send records a regard backed by an already broadcast transfer
func (h *RegardHandlers) Send(c *gin.Context) {
	var req struct {
		Recipient            string          `json:"recipient"`
		Amount               decimal.Decimal `json:"amount"`
		Message              string          `json:"message"`
		IncludeNFT           bool            `json:"includeNft"`
		NFTDesign            string          `json:"nftDesign"`
		TransactionSignature string          `json:"transactionSignature"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, h.log, fmt.Errorf("%w: %v", core.ErrValidation, err))
		return
	}

	regard, err := h.regardService.Send(c.Request.Context(), currentAddress(c), service.SendRegard{
		Recipient:            req.Recipient,
		Amount:               req.Amount,
		Message:              req.Message,
		IncludeNFT:           req.IncludeNFT,
		NFTDesign:            req.NFTDesign,
		TransactionSignature: req.TransactionSignature,
	})
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Regard sent successfully",
		"regard":  regard,
	})
}

// List returns the regards received by the authenticated wallet
func (h *RegardHandlers) List(c *gin.Context) {
	limit, err := queryInt(c, "limit", service.DefaultListLimit)
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	regards, err := h.regardService.List(c.Request.Context(), currentAddress(c), limit, offset)
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, regards)
}

// Stats returns the totals received by the authenticated wallet
func (h *RegardHandlers) Stats(c *gin.Context) {
	stats, err := h.regardService.Stats(c.Request.Context(), currentAddress(c))
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// PublicStats returns the totals of a user without the amount received
func (h *RegardHandlers) PublicStats(c *gin.Context) {
	stats, err := h.regardService.PublicStats(c.Request.Context(), c.Param("username"))
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalRegards":  stats.TotalRegards,
		"totalNfts":     stats.TotalNFTs,
		"uniqueSenders": stats.UniqueSenders,
	})
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", core.ErrValidation, key)
	}
	return n, nil
}
