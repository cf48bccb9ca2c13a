package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/teamsite/teamsite/internal/models"
	"github.com/teamsite/teamsite/internal/sessions"
	"github.com/teamsite/teamsite/internal/tokens"
	"github.com/teamsite/teamsite/pkg/logger"
)

// ContextKeyUser is where LoadUser stores the resolved *models.User.
const ContextKeyUser = "user"

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/login"

// AuthenticationRequired is returned by RequireUser when the request has no
// valid session. Location is the login URL carrying the return-to parameter.
type AuthenticationRequired struct {
	Location string
}

func (e *AuthenticationRequired) Error() string {
	return "authentication required"
}

// UserLookup is the minimal user store the gate depends on.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// CookieOptions configures the session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
}

// Gate resolves the current user from the signed session cookie and guards
// protected routes.
type Gate struct {
	secret   []byte
	cookie   CookieOptions
	sessions *sessions.Service
	users    UserLookup
}

func NewGate(secret []byte, cookie CookieOptions, s *sessions.Service, u UserLookup) *Gate {
	if cookie.Name == "" {
		cookie.Name = "session_cookie"
	}
	return &Gate{secret: secret, cookie: cookie, sessions: s, users: u}
}

// CurrentUser returns the logged-in user, or nil when there is no cookie, the
// cookie is invalid, the session is gone or the user no longer exists. Only
// storage failures are returned as errors.
func (g *Gate) CurrentUser(c *gin.Context) (*models.User, error) {
	if v, ok := c.Get(ContextKeyUser); ok {
		u, _ := v.(*models.User)
		return u, nil
	}
	sess, err := g.session(c)
	if err != nil || sess == nil {
		return nil, err
	}
	u, err := g.users.GetByEmail(c.Request.Context(), sess.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup session user: %w", err)
	}
	return u, nil
}

func (g *Gate) session(c *gin.Context) (*sessions.Session, error) {
	raw, err := c.Cookie(g.cookie.Name)
	if err != nil || raw == "" {
		return nil, nil
	}
	claims, err := tokens.ParseSession(g.secret, raw)
	if err != nil {
		logger.Debugf("auth: rejecting session cookie: %v", err)
		return nil, nil
	}
	sess, err := g.sessions.Get(c.Request.Context(), claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil || sess.Email != claims.Email {
		return nil, nil
	}
	return sess, nil
}

// RequireUser is CurrentUser that fails with *AuthenticationRequired when
// nobody is logged in.
func (g *Gate) RequireUser(c *gin.Context) (*models.User, error) {
	u, err := g.CurrentUser(c)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, &AuthenticationRequired{Location: LoginRedirect(c.Request.URL.RequestURI())}
	}
	return u, nil
}

// LoadUser stores the current user (possibly nil) in the gin context.
func (g *Gate) LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := g.CurrentUser(c)
		if err != nil {
			logger.Errorf("auth: %v", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Set(ContextKeyUser, u)
		c.Next()
	}
}

// RequireLogin redirects unauthenticated requests to the login page with a
// 307 so the original URL can be resumed after login.
func (g *Gate) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := g.RequireUser(c)
		var authErr *AuthenticationRequired
		switch {
		case errors.As(err, &authErr):
			c.Header("Location", authErr.Location)
			c.AbortWithStatus(http.StatusTemporaryRedirect)
			return
		case err != nil:
			logger.Errorf("auth: %v", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Set(ContextKeyUser, u)
		c.Next()
	}
}

// StartSession creates a session for u and sets the signed cookie.
func (g *Gate) StartSession(c *gin.Context, u *models.User) error {
	sess, err := g.sessions.Create(c.Request.Context(), u.Email, u.Name)
	if err != nil {
		return err
	}
	val, err := tokens.SignSession(g.secret, sess)
	if err != nil {
		_ = g.sessions.Delete(c.Request.Context(), sess.ID)
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(g.cookie.Name, val, int(g.sessions.TTL().Seconds()), "/", "", g.cookie.Secure, true)
	c.Set(ContextKeyUser, u)
	return nil
}

// EndSession deletes the server-side session, if any, and expires the
// cookie. Safe to call without a session.
func (g *Gate) EndSession(c *gin.Context) error {
	if raw, err := c.Cookie(g.cookie.Name); err == nil && raw != "" {
		if claims, err := tokens.ParseSession(g.secret, raw); err == nil {
			if err := g.sessions.Delete(c.Request.Context(), claims.SessionID); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(g.cookie.Name, "", -1, "/", "", g.cookie.Secure, true)
	c.Set(ContextKeyUser, (*models.User)(nil))
	return nil
}

// UserFrom returns the user LoadUser or RequireLogin stored, or nil.
func UserFrom(c *gin.Context) *models.User {
	v, ok := c.Get(ContextKeyUser)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

// LoginRedirect builds /login?next=<escaped original>.
func LoginRedirect(original string) string {
	return LoginPath + "?next=" + url.QueryEscape(original)
}

// SafeRedirect returns next when it is a same-origin relative path and
// fallback otherwise. Protocol-relative ("//host") and backslash forms are
// rejected since browsers treat them as absolute.
func SafeRedirect(next, fallback string) string {
	if IsRelativePath(next) {
		return next
	}
	return fallback
}

// IsRelativePath reports whether p is a same-origin path like "/x?y".
func IsRelativePath(p string) bool {
	if !strings.HasPrefix(p, "/") {
		return false
	}
	if len(p) > 1 && (p[1] == '/' || p[1] == '\\') {
		return false
	}
	return true
}
