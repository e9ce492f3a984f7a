package middlewares

import (
	"net"
	"strings"
	"time"

	"certschool.io/infrastructure/logger"
	"github.com/gin-gonic/gin"
)

// ActivityLogMiddleware writes one structured log line per request. Bodies
// are never logged; payment and applicant payloads carry personal data.
func ActivityLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		options := []logger.LoggerOptions{
			{Key: "method", Data: c.Request.Method},
			{Key: "route", Data: route},
			{Key: "status", Data: c.Writer.Status()},
			{Key: "durationMs", Data: time.Since(startTime).Milliseconds()},
			{Key: "ip", Data: getClientIP(c)},
		}
		if appContext, ok := c.Get("AppContext"); ok {
			if keys, ok := appContext.(interface{ GetStringContextData(string) string }); ok {
				if userID := keys.GetStringContextData("UserID"); userID != "" {
					options = append(options, logger.LoggerOptions{Key: "userID", Data: userID})
				}
			}
		}
		if c.Writer.Status() >= 500 {
			logger.Error("request completed", options...)
			return
		}
		logger.Info("request completed", options...)
	}
}

// getClientIP extracts the real client IP address from proxy headers.
func getClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if ip != "" && ip != "unknown" {
			return ip
		}
	}
	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.ClientIP()
}
