package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/layer-3/dropregards/core"
	"github.com/layer-3/dropregards/service"
)

// UserHandlers contains HTTP handlers for profile endpoints
type UserHandlers struct {
	profileService *service.ProfileService
	log            *zap.Logger
}

// NewUserHandlers creates new profile handlers
func NewUserHandlers(profileService *service.ProfileService, log *zap.Logger) *UserHandlers {
	return &UserHandlers{
		profileService: profileService,
		log:            log,
	}
}

type publicProfile struct {
	Username     string `json:"username"`
	DisplayName  string `json:"displayName"`
	Bio          string `json:"bio"`
	ProfileImage string `json:"profileImage"`
}

// CheckUsername reports whether a username can still be registered
func (h *UserHandlers) CheckUsername(c *gin.Context) {
	username := c.Query("username")

	available, err := h.profileService.CheckUsername(c.Request.Context(), username)
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": username, "available": available})
}

// CreateProfile registers a profile for the authenticated wallet
func (h *UserHandlers) CreateProfile(c *gin.Context) {
	var req struct {
		Username     string  `json:"username"`
		DisplayName  *string `json:"displayName"`
		Bio          string  `json:"bio"`
		ProfileImage string  `json:"profileImage"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, h.log, fmt.Errorf("%w: %v", core.ErrValidation, err))
		return
	}

	profile, err := h.profileService.Create(c.Request.Context(), currentAddress(c), service.NewProfile{
		Username:     req.Username,
		DisplayName:  req.DisplayName,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User profile created successfully",
		"user":    profile,
	})
}

// GetProfile returns the profile of the authenticated wallet
func (h *UserHandlers) GetProfile(c *gin.Context) {
	profile, err := h.profileService.Get(c.Request.Context(), currentAddress(c))
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile changes the fields present in the request body
func (h *UserHandlers) UpdateProfile(c *gin.Context) {
	var req struct {
		DisplayName  *string `json:"displayName"`
		Bio          *string `json:"bio"`
		ProfileImage *string `json:"profileImage"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, h.log, fmt.Errorf("%w: %v", core.ErrValidation, err))
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), currentAddress(c), core.ProfileUpdate{
		DisplayName:  req.DisplayName,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetByUsername returns the public part of a profile
func (h *UserHandlers) GetByUsername(c *gin.Context) {
	profile, err := h.profileService.GetPublic(c.Request.Context(), c.Param("username"))
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, publicProfile{
		Username:     profile.Username,
		DisplayName:  profile.DisplayName,
		Bio:          profile.Bio,
		ProfileImage: profile.ProfileImage,
	})
}
