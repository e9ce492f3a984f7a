package ratelimit

import (
	"encoding/json"
	"time"

	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/didip/tollbooth_gin"
	"github.com/gin-gonic/gin"
)

// TokenBucketPerIP allows max requests per second from each client IP.
func TokenBucketPerIP(max float64) gin.HandlerFunc {
	message := map[string]any{
		"error":   "RateLimited",
		"message": "You are going too fast! You have been ratelimited.",
	}
	jsonMessage, _ := json.Marshal(message)

	tlbthLimiter := tollbooth.NewLimiter(max, &limiter.ExpirableOptions{
		DefaultExpirationTTL: time.Minute * 1,
	})
	tlbthLimiter.SetMessageContentType("application/json")
	tlbthLimiter.SetMessage(string(jsonMessage))

	return tollbooth_gin.LimitHandler(tlbthLimiter)
}
