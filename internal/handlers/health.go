package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/charlesng35/orgauthz/pkg/response"
)

const healthPingTimeout = 2 * time.Second

// Health reports liveness and, when a database handle is present, whether it answers a ping.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{"status": "ok", "checked_at": time.Now().UTC()}
		if db == nil {
			response.Success(c, http.StatusOK, status)
			return
		}

		ctx, cancel := context.WithTimeout(requestContext(c), healthPingTimeout)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, response.Response{
				Success: false,
				Data:    gin.H{"status": "degraded", "database": "unreachable"},
				Error:   &response.ErrorInfo{Code: "DATABASE_UNAVAILABLE", Message: "database ping failed"},
			})
			return
		}

		status["database"] = "ok"
		response.Success(c, http.StatusOK, status)
	}
}
