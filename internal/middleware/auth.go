package middleware

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/community-platform/backend/internal/auth"
	"github.com/community-platform/backend/internal/models"
	"github.com/community-platform/backend/pkg/response"
)

const (
	// ContextUserID is the key for user ID in gin context.
	ContextUserID = "user_id"
	// ContextUserRole is the key for user role in gin context.
	ContextUserRole = "user_role"
	// ContextUserName is the key for the display name in gin context.
	ContextUserName = "user_name"
)

// Identify resolves the viewer from a Bearer header or token cookie and sets
// claims in context. It never aborts; anonymous requests pass through so that
// endpoints like ad click tracking can attach an optional viewer identity.
func Identify(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie("token"); err == nil {
				token = cookie
			}
		}
		if token != "" {
			if claims, err := jwtService.Validate(token); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextUserRole, claims.Role)
				c.Set(ContextUserName, claims.Name)
			}
		}
		c.Next()
	}
}

// RequireAuth rejects anonymous API requests with 401 JSON.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			response.Unauthorized(c, "login required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAuthPage redirects anonymous page requests to login with a flash message.
func RequireAuthPage() gin.HandlerFunc {
	return redirectUnless(func(c *gin.Context) bool {
		return UserID(c) != ""
	}, "Please login to access this page")
}

// RequireAdmin redirects non-admin page requests to login with a flash message.
func RequireAdmin() gin.HandlerFunc {
	return redirectUnless(func(c *gin.Context) bool {
		role, _ := c.Get(ContextUserRole)
		return role == models.RoleAdmin
	}, "Admin access required")
}

// UserID returns the authenticated user ID, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func redirectUnless(allowed func(*gin.Context) bool, flash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if allowed(c) {
			c.Next()
			return
		}
		q := url.Values{}
		q.Set("flash", flash)
		q.Set("next", c.Request.URL.RequestURI())
		c.Redirect(302, "/login?"+q.Encode())
		c.Abort()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
