package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/catering-boq/utils"
)

const headerRequestID = "X-Request-ID"

// LoggerMiddleware tags each request with an id and logs it once it completes. Server
// errors go to the error logger.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" && c.FullPath() != "/ws" {
			path = path + "?" + raw
		}

		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(headerRequestID, requestID)

		c.Next()

		entry := utils.InfoLogger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		})
		if email := c.GetString(ContextUserEmail); email != "" {
			entry = entry.WithField("user", email)
		}

		if c.Writer.Status() >= 500 {
			utils.ErrorLogger.WithFields(entry.Data).WithField("errors", c.Errors.String()).Error("request failed")
			return
		}
		entry.Info("request completed")
	}
}
