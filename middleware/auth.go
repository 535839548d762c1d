package middleware

import (
	"context"
	"strings"

	"pousada/response"
	"pousada/types"

	"github.com/gin-gonic/gin"
)

const userContextKey = "authUser"

// TokenVerifier resolves a bearer token to the user it was issued for
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*types.AuthUser, error)
}

// AuthMiddleware requires a valid bearer token and, when roles are given, one of them
func AuthMiddleware(verifier TokenVerifier, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := BearerToken(c)
		if tokenString == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		user, err := verifier.Verify(c.Request.Context(), tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if !user.HasRole(roles...) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Set(userContextKey, *user)
		c.Next()
	}
}

// RoleMiddleware narrows a group already behind AuthMiddleware
func RoleMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		if !user.HasRole(roles...) {
			response.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ErrorHandler renders the last error a handler attached with c.Error
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			response.Error(c, c.Errors.Last().Err)
		}
	}
}

func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

func CurrentUser(c *gin.Context) (types.AuthUser, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return types.AuthUser{}, false
	}
	user, ok := v.(types.AuthUser)
	return user, ok
}
