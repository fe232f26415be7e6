package middleware

import (
	"net/http"
	"strings"

	"lumina-store/libs"
	"lumina-store/models"
	"lumina-store/services"
	"lumina-store/utils"

	"github.com/gin-gonic/gin"
)

const SessionKey = "session"

// SessionMiddleware resolves the Bearer session token to a live storefront session.
func SessionMiddleware(secret string, sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Authorization header required",
			})
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Invalid authorization header format",
			})
			return
		}

		claims, err := utils.ValidateSessionToken(secret, tokenParts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Invalid or expired session token",
				Error:   err.Error(),
			})
			return
		}

		sess, err := sessions.Get(claims.SessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Session not found",
				Error:   err.Error(),
			})
			return
		}

		libs.SetRequestLogger(c, libs.RequestLogger(c).With("session_id", sess.ID))
		c.Set(SessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session stored by SessionMiddleware.
func CurrentSession(c *gin.Context) *services.Session {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*services.Session)
	return sess
}
