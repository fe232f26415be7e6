package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"lumina-store/libs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Logging injects a request-scoped slog.Logger and logs one line per request. Bodies are not
// logged since they may carry card numbers.
func Logging(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header("X-Request-Id", reqID)

		l := base.With(
			"req_id", reqID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"remote", c.ClientIP(),
		)
		libs.SetRequestLogger(c, l)

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"status", status,
			"dur_ms", time.Since(start).Milliseconds(),
			"resp_bytes", c.Writer.Size(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}

		if status >= http.StatusInternalServerError {
			libs.RequestLogger(c).Error("http_request", attrs...)
			return
		}
		libs.RequestLogger(c).Info("http_request", attrs...)
	}
}
