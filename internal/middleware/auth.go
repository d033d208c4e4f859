// internal/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/littlethreads/storefront/internal/utils"
)

const (
	SessionCookie = "shop_session"
	AdminCookie   = "shop_admin"
)

// AuthRequired gates buyer pages. Browsers get redirected to the login
// page rather than a bare 401, matching the storefront flow.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := sessionClaims(c, SessionCookie)
		if claims == nil || claims.UserID == 0 {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		setPrincipal(c, claims)
		c.Next()
	}
}

// OptionalAuth resolves the session when present so pages can greet the
// buyer, but never blocks.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := sessionClaims(c, SessionCookie); claims != nil && claims.UserID != 0 {
			setPrincipal(c, claims)
		}
		c.Next()
	}
}

// AdminRequired gates the seller dashboard on the admin cookie. The
// admin plane is independent of the buyer session.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := sessionClaims(c, AdminCookie)
		if claims == nil || !claims.Admin {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}

		c.Set("is_admin", true)
		c.Next()
	}
}

func sessionClaims(c *gin.Context, cookieName string) *utils.SessionClaims {
	token, err := c.Cookie(cookieName)
	if err != nil || token == "" {
		return nil
	}

	claims, err := utils.ValidateSessionToken(token)
	if err != nil {
		return nil
	}
	return claims
}

func setPrincipal(c *gin.Context, claims *utils.SessionClaims) {
	c.Set("user_id", claims.UserID)
	c.Set("user_email", claims.Email)
	c.Set("user_name", claims.Name)
}
