package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/layer-3/dropregards/internal/logger"
	"github.com/layer-3/dropregards/service"
)

// Version is reported by the health route
var Version = "1.0.0"

// Services groups what the router needs
type Services struct {
	Auth     *service.AuthService
	Profiles *service.ProfileService
	Regards  *service.RegardService
}

// SetupRouter sets up the Gin router
func SetupRouter(services Services, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logger.GinMiddleware(log))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "The requested resource was not found on this server.",
		})
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "DropRegards API is running",
			"status":  "success",
			"version": Version,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Create handlers
	authHandlers := NewAuthHandlers(services.Auth, log)
	userHandlers := NewUserHandlers(services.Profiles, log)
	regardHandlers := NewRegardHandlers(services.Regards, log)

	requireAuth := AuthMiddleware(services.Auth, log)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/nonce", authHandlers.Nonce)
		auth.POST("/verify-signature", authHandlers.VerifySignature)
		auth.POST("/logout", authHandlers.Logout)
	}

	users := api.Group("/users")
	{
		users.GET("/check-username", userHandlers.CheckUsername)
		users.GET("/username/:username", userHandlers.GetByUsername)
		users.POST("/profile", requireAuth, userHandlers.CreateProfile)
		users.GET("/profile", requireAuth, userHandlers.GetProfile)
		users.PUT("/profile", requireAuth, userHandlers.UpdateProfile)
	}

	regards := api.Group("/regards")
	{
		regards.GET("/public-stats/:username", regardHandlers.PublicStats)
		regards.POST("/send", requireAuth, regardHandlers.Send)
		regards.GET("/list", requireAuth, regardHandlers.List)
		regards.GET("/stats", requireAuth, regardHandlers.Stats)
	}

	return router
}
