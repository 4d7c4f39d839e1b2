package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"stayloop/pkg/helpers"
	"stayloop/pkg/response"
)

const (
	CtxUserIDKey   = "userID"
	CtxUsernameKey = "userName"
)

// Auth validates the access token cookie and ensures an active session with
// a matching session id exists in Redis. On success it sets userID and
// userName in the Gin context.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}

		key := helpers.SessionKey(claims.UserID)
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			response.AbortError(c, http.StatusUnauthorized, "session not found", nil)
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		if uname := data["username"]; uname != "" {
			c.Set(CtxUsernameKey, uname)
		}
		c.Next()
	}
}

// UserID reads the authenticated user id from the context; 0 when absent.
func UserID(c *gin.Context) int64 {
	if v, ok := c.Get(CtxUserIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
