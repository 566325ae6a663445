package auth

import (
	"net/http"

	dom "github.com/thienhiep1711/node-todo-api/internal/domain"
	"github.com/thienhiep1711/node-todo-api/internal/repo"
	"github.com/thienhiep1711/node-todo-api/internal/token"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HeaderName carries the auth token on requests and responses.
const HeaderName = "x-auth"

const (
	contextKeyUser  = "auth_user"
	contextKeyToken = "auth_token"
)

// UserFromContext returns the user resolved by RequireToken.
func UserFromContext(c *gin.Context) (dom.User, bool) {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return dom.User{}, false
	}
	u, ok := v.(dom.User)
	return u, ok
}

// TokenFromContext returns the raw token string the request carried.
func TokenFromContext(c *gin.Context) string {
	v, ok := c.Get(contextKeyToken)
	if !ok {
		return ""
	}
	t, _ := v.(string)
	return t
}

// RequireToken returns a middleware that authenticates the x-auth
// header. The token must verify cryptographically AND still be
// present in the user's stored token set; a token that verifies but
// was revoked by logout is rejected the same way as a forged one.
func RequireToken(tokens *token.Service, users repo.UserRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderName)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		claims, err := tokens.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		uid, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		u, err := users.GetByIDAndToken(c.Request.Context(), uid, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		c.Set(contextKeyUser, u)
		c.Set(contextKeyToken, raw)
		c.Next()
	}
}
