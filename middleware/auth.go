package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"inkwell/utils"
)

// UserIDKey is the context key under which the authenticated user's
// id is stored.
const UserIDKey = "userId"

// JWTAuth validates the bearer token and injects the user id into the
// request context. Every protected route goes through this gate; no
// handler parses tokens on its own.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Fail(c, http.StatusUnauthorized, utils.KindUnauthenticated, "Please authenticate using a valid token")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Fail(c, http.StatusUnauthorized, utils.KindUnauthenticated, "Authorization header must be: Bearer <token>")
			return
		}

		claims, err := utils.ParseToken(secret, parts[1])
		if err != nil {
			utils.Sugar.Debugf("token validation failed: %v", err)
			utils.Fail(c, http.StatusUnauthorized, utils.KindUnauthenticated, "Please authenticate using a valid token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}
