package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/teamsite/teamsite/internal/users"
	"github.com/teamsite/teamsite/pkg/logger"
	"github.com/teamsite/teamsite/pkg/metrics"
	"github.com/teamsite/teamsite/pkg/middleware"
)

// DefaultLanding is where a successful login goes without a usable next_url.
const DefaultLanding = "/add-project"

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	NextURL  string `form:"next_url"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	gate     *middleware.Gate
	usersSvc *users.Service
}

func NewAuthHandler(gate *middleware.Gate, u *users.Service) *AuthHandler {
	return &AuthHandler{gate: gate, usersSvc: u}
}

// Register routes for the HTML login flow.
func (h *AuthHandler) Register(r gin.IRoutes) {
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
}

// Login checks the form credentials and starts a session. Every outcome is a
// 303 redirect; credentials are never echoed back.
func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		c.Redirect(http.StatusSeeOther, loginFailedURL(""))
		return
	}
	u, err := h.usersSvc.Authenticate(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		logger.Errorf("login: %v", err)
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	if u == nil {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		c.Redirect(http.StatusSeeOther, loginFailedURL(form.NextURL))
		return
	}
	if err := h.gate.StartSession(c, u); err != nil {
		logger.Errorf("login: start session: %v", err)
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logger.Infof("login: session started for user %s", u.ID)
	c.Redirect(http.StatusSeeOther, middleware.SafeRedirect(form.NextURL, DefaultLanding))
}

// Logout ends the session, if any, and goes home.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.gate.EndSession(c); err != nil {
		logger.Errorf("logout: %v", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func loginFailedURL(next string) string {
	q := url.Values{"error": {"1"}}
	if middleware.IsRelativePath(next) {
		q.Set("next", next)
	}
	return middleware.LoginPath + "?" + q.Encode()
}
