package middleware

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns a time-ordered UUID to requests that do not bring their own id.
func RequestID() gin.HandlerFunc {
	return requestid.New(
		requestid.WithCustomHeaderStrKey(RequestIDHeader),
		requestid.WithGenerator(func() string {
			return uuid.Must(uuid.NewV7()).String()
		}),
	)
}

// RequestIDFrom returns the correlation id attached to the request, if any.
func RequestIDFrom(c *gin.Context) string {
	return requestid.Get(c)
}
