// internal/handlers/auth.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/littlethreads/storefront/internal/config"
	"github.com/littlethreads/storefront/internal/middleware"
	"github.com/littlethreads/storefront/internal/services"
	"github.com/littlethreads/storefront/internal/utils"
)

type AuthHandler struct {
	auth *services.AuthService
	cfg  *config.Config
}

func NewAuthHandler(auth *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{auth: auth, cfg: cfg}
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{
		"Next": c.Query("next"),
	})
}

func (h *AuthHandler) SignupPage(c *gin.Context) {
	render(c, http.StatusOK, "signup.html", nil)
}

// Login verifies credentials and establishes the buyer session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequestResponse(c, "email and password are required")
		return
	}

	user, err := h.auth.Login(&req)
	if err != nil {
		serviceError(c, err)
		return
	}

	token, err := utils.GenerateSessionToken(user.ID, user.Email, user.Name, h.cfg.Session.TTLHours)
	if err != nil {
		serviceError(c, err)
		return
	}
	setSessionCookie(c, middleware.SessionCookie, token, h.cfg.Session.TTLHours)

	redirect(c, safeNextPath(c.PostForm("next")))
}

// Signup creates the account and logs the buyer in immediately.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequestResponse(c, "email and password are required")
		return
	}

	user, err := h.auth.Signup(&req)
	if err != nil {
		serviceError(c, err)
		return
	}

	token, err := utils.GenerateSessionToken(user.ID, user.Email, user.Name, h.cfg.Session.TTLHours)
	if err != nil {
		serviceError(c, err)
		return
	}
	setSessionCookie(c, middleware.SessionCookie, token, h.cfg.Session.TTLHours)

	redirect(c, "/")
}

// Logout clears the buyer session. The admin cookie is untouched.
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c, middleware.SessionCookie)
	redirect(c, "/")
}

// safeNextPath confines the post-login redirect to same-site paths.
// "//host" and "/\host" are protocol-relative URLs to browsers, so a
// single leading slash is not enough.
func safeNextPath(next string) string {
	if !strings.HasPrefix(next, "/") ||
		strings.HasPrefix(next, "//") ||
		strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func setSessionCookie(c *gin.Context, name, token string, ttlHours int) {
	c.SetCookie(name, token, ttlHours*3600, "/", "", false, true)
}

func clearSessionCookie(c *gin.Context, name string) {
	c.SetCookie(name, "", -1, "/", "", false, true)
}
