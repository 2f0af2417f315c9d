package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/charlesng35/orgauthz/internal/app"
	"github.com/charlesng35/orgauthz/internal/handlers"
)

func registerHealthRoutes(r *gin.Engine, cfg *app.Config, db *gorm.DB) {
	if !cfg.Monitoring.Health.Enabled {
		r.GET("/health", disabledHealthHandler)
		return
	}
	r.GET("/health", handlers.Health(db))
}

func disabledHealthHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"status":  "disabled",
	})
}
