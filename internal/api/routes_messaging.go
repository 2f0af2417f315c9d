package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/orgauthz/internal/handlers"
)

func registerMessagingRoutes(api *gin.RouterGroup, h *handlers.MessagingHandler) {
	messaging := api.Group("/messaging")
	{
		messaging.POST("/can-message", h.CanMessage)
		messaging.GET("/rules", h.Rules)
	}
}
