package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// SubmissionLimiter caps reports per citizen per day with a Redis
// INCR+TTL counter keyed by the session subject.
func SubmissionLimiter(client *redis.Client, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || limit <= 0 {
			c.Next()
			return
		}

		sess := SessionFrom(c)
		key := "reports:daily:" + sess.SubjectID

		ctx := c.Request.Context()
		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			// limiter outage should not block submissions
			c.Next()
			return
		}
		if count == 1 {
			_ = client.Expire(ctx, key, 24*time.Hour).Err()
		}
		if count > int64(limit) {
			retryAfter, _ := client.TTL(ctx, key).Result()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":        "RATE_LIMITED",
					"message":     "Daily report limit reached",
					"retry_after": retryAfter.Seconds(),
				},
			})
			return
		}
		c.Next()
	}
}
